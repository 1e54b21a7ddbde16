package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/referee-review/models"
)

var (
	ErrRatingConflict     = errors.New("rating already exists for this user and match")
	ErrRatingInvalidScore = errors.New("rating score out of range")
	ErrRatingInvalidRef   = errors.New("invalid referee, match or user reference")
)

type RatingRepository interface {
	Create(ctx context.Context, rating *models.RefereeRating) error
}

type postgresRatingRepository struct {
	db *sql.DB
}

func NewPostgresRatingRepository(db *sql.DB) RatingRepository {
	return &postgresRatingRepository{db: db}
}

func (r *postgresRatingRepository) Create(ctx context.Context, rating *models.RefereeRating) error {
	query := `
		INSERT INTO referee_ratings (referee_id, match_id, user_id, score)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		rating.RefereeID,
		rating.MatchID,
		rating.UserID,
		rating.Score,
	).Scan(&rating.ID, &rating.CreatedAt)

	if err != nil {
		if code, _, ok := constraintViolation(err); ok {
			switch code {
			case pqUniqueViolation:
				return ErrRatingConflict
			case pqCheckViolation:
				return ErrRatingInvalidScore
			case pqForeignKeyViolation:
				return ErrRatingInvalidRef
			}
		}
		return fmt.Errorf("failed to insert referee rating: %w", err)
	}
	return nil
}
