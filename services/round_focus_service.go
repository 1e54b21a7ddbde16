package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Dosada05/referee-review/lifecycle"
	"github.com/Dosada05/referee-review/live"
	"github.com/Dosada05/referee-review/repositories"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// defaultFocusConcurrency bounds how many leagues are processed at once.
const defaultFocusConcurrency = 4

type RoundFocusChange struct {
	LeagueID int `json:"league_id"`
	RoundID  int `json:"round_id"`
	Number   int `json:"number"`
}

type RoundFocusService interface {
	// UpdateFocus recomputes the focused round of every league for the civil
	// day of now and persists the flags that differ. It returns the number of
	// rounds whose flag changed, even when some updates failed.
	UpdateFocus(ctx context.Context, now time.Time) (int, error)
}

type roundFocusService struct {
	roundRepo   repositories.RoundRepository
	loc         *time.Location
	publisher   EventPublisher
	log         zerolog.Logger
	concurrency int
}

func NewRoundFocusService(
	roundRepo repositories.RoundRepository,
	loc *time.Location,
	publisher EventPublisher,
	log zerolog.Logger,
) RoundFocusService {
	if loc == nil {
		loc = time.UTC
	}
	return &roundFocusService{
		roundRepo:   roundRepo,
		loc:         loc,
		publisher:   publisherOrNop(publisher),
		log:         log.With().Str("component", "round_focus").Logger(),
		concurrency: defaultFocusConcurrency,
	}
}

func (s *roundFocusService) UpdateFocus(ctx context.Context, now time.Time) (int, error) {
	leagues, err := s.roundRepo.ListLeagueRounds(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to load league rounds: %w", ErrFocusUpdateFailed, err)
	}

	today := lifecycle.DateOf(now, s.loc)

	var (
		updated atomic.Int64
		mu      sync.Mutex
		errs    []error
	)

	// Лиги независимы друг от друга, поэтому обрабатываем их параллельно.
	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for _, league := range leagues {
		g.Go(func() error {
			n, err := s.applyLeague(ctx, league, today)
			updated.Add(int64(n))
			if err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	total := int(updated.Load())
	if len(errs) > 0 {
		return total, fmt.Errorf("%w: %w", ErrFocusUpdateFailed, errors.Join(errs...))
	}
	return total, nil
}

// applyLeague clears stale focus flags before setting the new one, so a
// league never shows two focused rounds between the writes.
func (s *roundFocusService) applyLeague(ctx context.Context, league repositories.LeagueRounds, today lifecycle.Date) (int, error) {
	dated := make([]lifecycle.RoundDates, len(league.Rounds))
	for i, r := range league.Rounds {
		dates := make([]lifecycle.Date, len(r.Kickoffs))
		for j, k := range r.Kickoffs {
			dates[j] = lifecycle.DateOf(k, s.loc)
		}
		dated[i] = lifecycle.RoundDates{RoundID: r.Round.ID, Number: r.Round.Number, MatchDates: dates}
	}

	focusID := 0
	if idx, ok := lifecycle.SelectFocusRound(dated, today); ok {
		focusID = league.Rounds[idx].Round.ID
	}

	changed := 0
	var errs []error
	for _, r := range league.Rounds {
		if r.Round.IsFocus && r.Round.ID != focusID {
			if err := s.roundRepo.UpdateFocus(ctx, r.Round.ID, false); err != nil {
				errs = append(errs, fmt.Errorf("league %d round %d: %w", league.LeagueID, r.Round.ID, err))
				continue
			}
			changed++
		}
	}

	for _, r := range league.Rounds {
		if r.Round.ID != focusID || r.Round.IsFocus {
			continue
		}
		if err := s.roundRepo.UpdateFocus(ctx, r.Round.ID, true); err != nil {
			errs = append(errs, fmt.Errorf("league %d round %d: %w", league.LeagueID, r.Round.ID, err))
			break
		}
		changed++

		s.log.Info().Int("league_id", league.LeagueID).Int("round_id", r.Round.ID).Int("number", r.Round.Number).Msg("round focus changed")
		s.publisher.Publish(live.LeagueRoom(league.LeagueID), live.MessageRoundFocusChanged, RoundFocusChange{
			LeagueID: league.LeagueID,
			RoundID:  r.Round.ID,
			Number:   r.Round.Number,
		})
	}

	if len(errs) > 0 {
		for _, err := range errs {
			s.log.Error().Err(err).Int("league_id", league.LeagueID).Msg("failed to update round focus")
		}
		return changed, errors.Join(errs...)
	}
	return changed, nil
}
