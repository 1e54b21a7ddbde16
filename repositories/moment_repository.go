package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/referee-review/models"
)

var (
	ErrMomentNotFound     = errors.New("moment not found")
	ErrMomentMatchInvalid = errors.New("moment match conflict or invalid")
)

type MomentRepository interface {
	Create(ctx context.Context, moment *models.Moment) error
	GetByID(ctx context.Context, id int) (*models.Moment, error)
	ListByMatch(ctx context.Context, matchID int) ([]models.Moment, error)
}

type postgresMomentRepository struct {
	db *sql.DB
}

func NewPostgresMomentRepository(db *sql.DB) MomentRepository {
	return &postgresMomentRepository{db: db}
}

func (r *postgresMomentRepository) Create(ctx context.Context, moment *models.Moment) error {
	query := `
		INSERT INTO moments (match_id, minute, title, description, video_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		moment.MatchID,
		moment.Minute,
		moment.Title,
		moment.Description,
		moment.VideoURL,
	).Scan(&moment.ID, &moment.CreatedAt)

	if err != nil {
		if code, constraint, ok := constraintViolation(err); ok &&
			code == pqForeignKeyViolation && constraint == "moments_match_id_fkey" {
			return ErrMomentMatchInvalid
		}
		return fmt.Errorf("failed to insert moment: %w", err)
	}
	return nil
}

func (r *postgresMomentRepository) GetByID(ctx context.Context, id int) (*models.Moment, error) {
	query := `
		SELECT id, match_id, minute, title, description, video_url, created_at
		FROM moments
		WHERE id = $1`

	moment := &models.Moment{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&moment.ID,
		&moment.MatchID,
		&moment.Minute,
		&moment.Title,
		&moment.Description,
		&moment.VideoURL,
		&moment.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMomentNotFound
		}
		return nil, fmt.Errorf("failed to scan moment by id %d: %w", id, err)
	}
	return moment, nil
}

func (r *postgresMomentRepository) ListByMatch(ctx context.Context, matchID int) ([]models.Moment, error) {
	query := `
		SELECT id, match_id, minute, title, description, video_url, created_at
		FROM moments
		WHERE match_id = $1
		ORDER BY minute ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query moments for match %d: %w", matchID, err)
	}
	defer rows.Close()

	moments := make([]models.Moment, 0)
	for rows.Next() {
		var moment models.Moment
		if scanErr := rows.Scan(
			&moment.ID,
			&moment.MatchID,
			&moment.Minute,
			&moment.Title,
			&moment.Description,
			&moment.VideoURL,
			&moment.CreatedAt,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan moment row: %w", scanErr)
		}
		moments = append(moments, moment)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during moment rows iteration: %w", err)
	}
	return moments, nil
}
