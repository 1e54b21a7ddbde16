package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Dosada05/referee-review/models"
)

var (
	ErrLeagueNotFound = errors.New("league not found")
)

type LeagueRepository interface {
	GetByID(ctx context.Context, id int) (*models.League, error)
	List(ctx context.Context, season *int) ([]models.League, error)
}

type postgresLeagueRepository struct {
	db *sql.DB
}

func NewPostgresLeagueRepository(db *sql.DB) LeagueRepository {
	return &postgresLeagueRepository{db: db}
}

func (r *postgresLeagueRepository) GetByID(ctx context.Context, id int) (*models.League, error) {
	query := `SELECT id, name, season, created_at FROM leagues WHERE id = $1`

	league := &models.League{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&league.ID, &league.Name, &league.Season, &league.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLeagueNotFound
		}
		return nil, fmt.Errorf("failed to scan league by id %d: %w", id, err)
	}
	return league, nil
}

func (r *postgresLeagueRepository) List(ctx context.Context, season *int) ([]models.League, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT id, name, season, created_at FROM leagues`)

	args := []interface{}{}
	if season != nil {
		args = append(args, *season)
		queryBuilder.WriteString(" WHERE season = $")
		queryBuilder.WriteString(strconv.Itoa(len(args)))
	}
	queryBuilder.WriteString(" ORDER BY season DESC, name ASC")

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query leagues: %w", err)
	}
	defer rows.Close()

	leagues := make([]models.League, 0)
	for rows.Next() {
		var league models.League
		if err := rows.Scan(&league.ID, &league.Name, &league.Season, &league.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan league row: %w", err)
		}
		leagues = append(leagues, league)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during league rows iteration: %w", err)
	}
	return leagues, nil
}
