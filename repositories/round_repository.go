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
	ErrRoundNotFound = errors.New("round not found")
)

// RoundKickoffs is a round with the kickoff times of its scheduled matches.
type RoundKickoffs struct {
	Round    models.Round
	Kickoffs []time.Time
}

// LeagueRounds groups the rounds of one league ordered by number.
type LeagueRounds struct {
	LeagueID int
	Rounds   []RoundKickoffs
}

type RoundRepository interface {
	GetByID(ctx context.Context, id int) (*models.Round, error)
	ListByLeague(ctx context.Context, leagueID int) ([]models.Round, error)
	GetFocusedByLeague(ctx context.Context, leagueID int) (*models.Round, error)
	// ListLeagueRounds loads every league with its rounds and each round's kickoff times.
	ListLeagueRounds(ctx context.Context) ([]LeagueRounds, error)
	UpdateFocus(ctx context.Context, id int, isFocus bool) error
}

type postgresRoundRepository struct {
	db *sql.DB
}

func NewPostgresRoundRepository(db *sql.DB) RoundRepository {
	return &postgresRoundRepository{db: db}
}

func (r *postgresRoundRepository) GetByID(ctx context.Context, id int) (*models.Round, error) {
	query := `SELECT id, league_id, number, is_focus, created_at FROM rounds WHERE id = $1`

	round := &models.Round{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&round.ID, &round.LeagueID, &round.Number, &round.IsFocus, &round.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoundNotFound
		}
		return nil, fmt.Errorf("failed to scan round by id %d: %w", id, err)
	}
	return round, nil
}

func (r *postgresRoundRepository) ListByLeague(ctx context.Context, leagueID int) ([]models.Round, error) {
	query := `
		SELECT id, league_id, number, is_focus, created_at
		FROM rounds
		WHERE league_id = $1
		ORDER BY number ASC`

	rows, err := r.db.QueryContext(ctx, query, leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to query rounds for league %d: %w", leagueID, err)
	}
	defer rows.Close()

	rounds := make([]models.Round, 0)
	for rows.Next() {
		var round models.Round
		if err := rows.Scan(&round.ID, &round.LeagueID, &round.Number, &round.IsFocus, &round.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan round row: %w", err)
		}
		rounds = append(rounds, round)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during round rows iteration: %w", err)
	}
	return rounds, nil
}

func (r *postgresRoundRepository) GetFocusedByLeague(ctx context.Context, leagueID int) (*models.Round, error) {
	query := `
		SELECT id, league_id, number, is_focus, created_at
		FROM rounds
		WHERE league_id = $1 AND is_focus
		ORDER BY number ASC
		LIMIT 1`

	round := &models.Round{}
	err := r.db.QueryRowContext(ctx, query, leagueID).Scan(
		&round.ID, &round.LeagueID, &round.Number, &round.IsFocus, &round.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoundNotFound
		}
		return nil, fmt.Errorf("failed to scan focused round for league %d: %w", leagueID, err)
	}
	return round, nil
}

func (r *postgresRoundRepository) ListLeagueRounds(ctx context.Context) ([]LeagueRounds, error) {
	// Один проход по join: лиги без раундов и раунды без матчей тоже попадают в выборку.
	query := `
		SELECT l.id, r.id, r.number, r.is_focus, m.kickoff_time
		FROM leagues l
		LEFT JOIN rounds r ON r.league_id = l.id
		LEFT JOIN matches m ON m.round_id = r.id AND m.kickoff_time IS NOT NULL
		ORDER BY l.id ASC, r.number ASC, m.kickoff_time ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query league rounds: %w", err)
	}
	defer rows.Close()

	leagues := make([]LeagueRounds, 0)
	for rows.Next() {
		var (
			leagueID int
			roundID  sql.NullInt64
			number   sql.NullInt64
			isFocus  sql.NullBool
			kickoff  sql.NullTime
		)
		if err := rows.Scan(&leagueID, &roundID, &number, &isFocus, &kickoff); err != nil {
			return nil, fmt.Errorf("failed to scan league round row: %w", err)
		}

		if len(leagues) == 0 || leagues[len(leagues)-1].LeagueID != leagueID {
			leagues = append(leagues, LeagueRounds{LeagueID: leagueID, Rounds: []RoundKickoffs{}})
		}
		league := &leagues[len(leagues)-1]
		if !roundID.Valid {
			continue
		}

		if n := len(league.Rounds); n == 0 || league.Rounds[n-1].Round.ID != int(roundID.Int64) {
			league.Rounds = append(league.Rounds, RoundKickoffs{
				Round: models.Round{
					ID:       int(roundID.Int64),
					LeagueID: leagueID,
					Number:   int(number.Int64),
					IsFocus:  isFocus.Bool,
				},
			})
		}
		if kickoff.Valid {
			last := &league.Rounds[len(league.Rounds)-1]
			last.Kickoffs = append(last.Kickoffs, kickoff.Time)
		}
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during league round rows iteration: %w", err)
	}
	return leagues, nil
}

func (r *postgresRoundRepository) UpdateFocus(ctx context.Context, id int, isFocus bool) error {
	query := `UPDATE rounds SET is_focus = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, isFocus, id)
	if err != nil {
		return fmt.Errorf("failed to update focus of round %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrRoundNotFound)
}
