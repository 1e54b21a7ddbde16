package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/referee-review/models"
)

var (
	ErrRefereeNotFound = errors.New("referee not found")
)

type RefereeRepository interface {
	GetByID(ctx context.Context, id int) (*models.Referee, error)
	List(ctx context.Context) ([]models.Referee, error)
	UpdatePhotoKey(ctx context.Context, id int, photoKey *string) error
}

type postgresRefereeRepository struct {
	db *sql.DB
}

func NewPostgresRefereeRepository(db *sql.DB) RefereeRepository {
	return &postgresRefereeRepository{db: db}
}

// Средний рейтинг считается на лету, отдельной колонки нет.
const refereeSelect = `
	SELECT rf.id, rf.name, rf.nationality, rf.photo_key, rf.created_at,
	       COALESCE(AVG(rt.score), 0), COUNT(rt.id)
	FROM referees rf
	LEFT JOIN referee_ratings rt ON rt.referee_id = rf.id`

func (r *postgresRefereeRepository) GetByID(ctx context.Context, id int) (*models.Referee, error) {
	query := refereeSelect + `
	WHERE rf.id = $1
	GROUP BY rf.id`

	referee, err := scanReferee(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRefereeNotFound
		}
		return nil, fmt.Errorf("failed to scan referee by id %d: %w", id, err)
	}
	return referee, nil
}

func (r *postgresRefereeRepository) List(ctx context.Context) ([]models.Referee, error) {
	query := refereeSelect + `
	GROUP BY rf.id
	ORDER BY rf.name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query referees: %w", err)
	}
	defer rows.Close()

	referees := make([]models.Referee, 0)
	for rows.Next() {
		referee, scanErr := scanReferee(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan referee row: %w", scanErr)
		}
		referees = append(referees, *referee)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during referee rows iteration: %w", err)
	}
	return referees, nil
}

func (r *postgresRefereeRepository) UpdatePhotoKey(ctx context.Context, id int, photoKey *string) error {
	query := `UPDATE referees SET photo_key = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, photoKey, id)
	if err != nil {
		return fmt.Errorf("failed to update photo of referee %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrRefereeNotFound)
}

func scanReferee(row rowScanner) (*models.Referee, error) {
	referee := &models.Referee{}
	err := row.Scan(
		&referee.ID,
		&referee.Name,
		&referee.Nationality,
		&referee.PhotoKey,
		&referee.CreatedAt,
		&referee.AverageRating,
		&referee.RatingCount,
	)
	if err != nil {
		return nil, err
	}
	return referee, nil
}
