package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/referee-review/models"
	"github.com/lib/pq"
)

var (
	ErrCommentNotFound      = errors.New("comment not found")
	ErrCommentMomentInvalid = errors.New("comment moment conflict or invalid")
)

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id int) (*models.Comment, error)
	ListByMoment(ctx context.Context, momentID int) ([]models.Comment, error)
	// CountByMoments returns comment counts keyed by moment id; moments without comments are absent.
	CountByMoments(ctx context.Context, momentIDs []int) (map[int]int, error)
	Delete(ctx context.Context, id int) error
}

type postgresCommentRepository struct {
	db *sql.DB
}

func NewPostgresCommentRepository(db *sql.DB) CommentRepository {
	return &postgresCommentRepository{db: db}
}

func (r *postgresCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (moment_id, user_id, body)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, comment.MomentID, comment.UserID, comment.Body).
		Scan(&comment.ID, &comment.CreatedAt)
	if err != nil {
		if code, constraint, ok := constraintViolation(err); ok &&
			code == pqForeignKeyViolation && constraint == "comments_moment_id_fkey" {
			return ErrCommentMomentInvalid
		}
		return fmt.Errorf("failed to insert comment: %w", err)
	}
	return nil
}

func (r *postgresCommentRepository) GetByID(ctx context.Context, id int) (*models.Comment, error) {
	query := `
		SELECT c.id, c.moment_id, c.user_id, c.body, c.created_at, u.nickname
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.id = $1`

	comment := &models.Comment{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&comment.ID,
		&comment.MomentID,
		&comment.UserID,
		&comment.Body,
		&comment.CreatedAt,
		&comment.AuthorNickname,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to scan comment by id %d: %w", id, err)
	}
	return comment, nil
}

func (r *postgresCommentRepository) ListByMoment(ctx context.Context, momentID int) ([]models.Comment, error) {
	query := `
		SELECT c.id, c.moment_id, c.user_id, c.body, c.created_at, u.nickname
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.moment_id = $1
		ORDER BY c.created_at ASC, c.id ASC`

	rows, err := r.db.QueryContext(ctx, query, momentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments for moment %d: %w", momentID, err)
	}
	defer rows.Close()

	comments := make([]models.Comment, 0)
	for rows.Next() {
		var comment models.Comment
		if scanErr := rows.Scan(
			&comment.ID,
			&comment.MomentID,
			&comment.UserID,
			&comment.Body,
			&comment.CreatedAt,
			&comment.AuthorNickname,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan comment row: %w", scanErr)
		}
		comments = append(comments, comment)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during comment rows iteration: %w", err)
	}
	return comments, nil
}

func (r *postgresCommentRepository) CountByMoments(ctx context.Context, momentIDs []int) (map[int]int, error) {
	counts := make(map[int]int, len(momentIDs))
	if len(momentIDs) == 0 {
		return counts, nil
	}

	ids := make([]int64, len(momentIDs))
	for i, id := range momentIDs {
		ids[i] = int64(id)
	}

	query := `
		SELECT moment_id, COUNT(*)
		FROM comments
		WHERE moment_id = ANY($1)
		GROUP BY moment_id`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to count comments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var momentID, count int
		if err := rows.Scan(&momentID, &count); err != nil {
			return nil, fmt.Errorf("failed to scan comment count row: %w", err)
		}
		counts[momentID] = count
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during comment count rows iteration: %w", err)
	}
	return counts, nil
}

func (r *postgresCommentRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM comments WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrCommentNotFound)
}
