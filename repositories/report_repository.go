package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/referee-review/models"
)

var (
	ErrReportNotFound       = errors.New("report not found")
	ErrReportConflict       = errors.New("comment already reported by this user")
	ErrReportCommentInvalid = errors.New("report comment conflict or invalid")
)

type ReportRepository interface {
	Create(ctx context.Context, report *models.Report) error
	ListByStatus(ctx context.Context, status models.ReportStatus) ([]models.Report, error)
	UpdateStatus(ctx context.Context, id int, status models.ReportStatus) error
}

type postgresReportRepository struct {
	db *sql.DB
}

func NewPostgresReportRepository(db *sql.DB) ReportRepository {
	return &postgresReportRepository{db: db}
}

func (r *postgresReportRepository) Create(ctx context.Context, report *models.Report) error {
	query := `
		INSERT INTO reports (comment_id, reporter_id, reason, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		report.CommentID,
		report.ReporterID,
		report.Reason,
		report.Status,
	).Scan(&report.ID, &report.CreatedAt)

	if err != nil {
		if code, constraint, ok := constraintViolation(err); ok {
			switch {
			case code == pqUniqueViolation:
				return ErrReportConflict
			case code == pqForeignKeyViolation && constraint == "reports_comment_id_fkey":
				return ErrReportCommentInvalid
			}
		}
		return fmt.Errorf("failed to insert report: %w", err)
	}
	return nil
}

func (r *postgresReportRepository) ListByStatus(ctx context.Context, status models.ReportStatus) ([]models.Report, error) {
	query := `
		SELECT id, comment_id, reporter_id, reason, status, created_at
		FROM reports
		WHERE status = $1
		ORDER BY created_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer rows.Close()

	reports := make([]models.Report, 0)
	for rows.Next() {
		var report models.Report
		if scanErr := rows.Scan(
			&report.ID,
			&report.CommentID,
			&report.ReporterID,
			&report.Reason,
			&report.Status,
			&report.CreatedAt,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", scanErr)
		}
		reports = append(reports, report)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during report rows iteration: %w", err)
	}
	return reports, nil
}

func (r *postgresReportRepository) UpdateStatus(ctx context.Context, id int, status models.ReportStatus) error {
	query := `UPDATE reports SET status = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update status of report %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrReportNotFound)
}
