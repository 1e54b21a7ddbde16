package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/referee-review/models"
)

var (
	ErrMatchNotFound = errors.New("match not found")
)

type MatchRepository interface {
	GetByID(ctx context.Context, id int) (*models.Match, error)
	ListByRound(ctx context.Context, roundID int) ([]models.Match, error)
	// ListByKickoffRange returns matches whose kickoff lies in [start, end).
	ListByKickoffRange(ctx context.Context, start, end time.Time) ([]models.Match, error)
	// ListStatusCandidates returns matches with a kickoff time that are not cancelled.
	ListStatusCandidates(ctx context.Context) ([]models.Match, error)
	UpdateStatus(ctx context.Context, id int, status models.MatchStatus) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

const matchColumns = `id, round_id, home_team, away_team, venue, kickoff_time, status, referee_id, created_at`

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`

	match, err := scanMatch(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to scan match by id %d: %w", id, err)
	}
	return match, nil
}

func (r *postgresMatchRepository) ListByRound(ctx context.Context, roundID int) ([]models.Match, error) {
	query := `
		SELECT ` + matchColumns + `
		FROM matches
		WHERE round_id = $1
		ORDER BY kickoff_time ASC NULLS LAST, id ASC`

	return r.queryMatches(ctx, query, roundID)
}

func (r *postgresMatchRepository) ListByKickoffRange(ctx context.Context, start, end time.Time) ([]models.Match, error) {
	query := `
		SELECT ` + matchColumns + `
		FROM matches
		WHERE kickoff_time >= $1 AND kickoff_time < $2
		ORDER BY kickoff_time ASC`

	return r.queryMatches(ctx, query, start, end)
}

func (r *postgresMatchRepository) ListStatusCandidates(ctx context.Context) ([]models.Match, error) {
	query := `
		SELECT ` + matchColumns + `
		FROM matches
		WHERE kickoff_time IS NOT NULL AND status <> $1
		ORDER BY id ASC`

	return r.queryMatches(ctx, query, models.MatchStatusCancelled)
}

func (r *postgresMatchRepository) UpdateStatus(ctx context.Context, id int, status models.MatchStatus) error {
	query := `UPDATE matches SET status = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update status of match %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) queryMatches(ctx context.Context, query string, args ...interface{}) ([]models.Match, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	matches := make([]models.Match, 0)
	for rows.Next() {
		match, scanErr := scanMatch(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", scanErr)
		}
		matches = append(matches, *match)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during match rows iteration: %w", err)
	}
	return matches, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMatch(row rowScanner) (*models.Match, error) {
	var (
		match   models.Match
		kickoff sql.NullTime
		referee sql.NullInt64
	)
	err := row.Scan(
		&match.ID,
		&match.RoundID,
		&match.HomeTeam,
		&match.AwayTeam,
		&match.Venue,
		&kickoff,
		&match.Status,
		&referee,
		&match.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if kickoff.Valid {
		k := kickoff.Time
		match.KickoffTime = &k
	}
	if referee.Valid {
		id := int(referee.Int64)
		match.RefereeID = &id
	}
	return &match, nil
}
