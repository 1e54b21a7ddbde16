package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/referee-review/lifecycle"
	"github.com/Dosada05/referee-review/live"
	"github.com/Dosada05/referee-review/models"
	"github.com/Dosada05/referee-review/repositories"
	"github.com/rs/zerolog"
)

// Причины, по которым проход обновления статусов пропускается.
const (
	SkipReasonNoMatchesToday = "no matches today"
	SkipReasonOutsideWindow  = "outside window"
)

// WindowDecision is the outcome of the daily update window check.
type WindowDecision struct {
	Open         bool       `json:"open"`
	Reason       string     `json:"reason,omitempty"`
	MatchesToday int        `json:"matches_today"`
	WindowStart  *time.Time `json:"window_start,omitempty"`
	WindowEnd    *time.Time `json:"window_end,omitempty"`
}

// StatusRunResult describes one gated pass of the status job.
type StatusRunResult struct {
	Ran     bool   `json:"ran"`
	Reason  string `json:"reason,omitempty"`
	Updated int    `json:"updated"`
}

type MatchStatusChange struct {
	MatchID int                `json:"match_id"`
	From    models.MatchStatus `json:"from"`
	To      models.MatchStatus `json:"to"`
}

type MatchStatusService interface {
	// CheckWindow decides whether today's fixtures make a status pass worthwhile at now.
	CheckWindow(ctx context.Context, now time.Time) (WindowDecision, error)
	// UpdateStatuses re-derives the status of every non-cancelled match with a
	// kickoff time and persists the ones that changed. The count of successful
	// updates is returned even when some rows failed.
	UpdateStatuses(ctx context.Context, now time.Time) (int, error)
	// Run is CheckWindow followed by UpdateStatuses when the window is open.
	Run(ctx context.Context, now time.Time) (StatusRunResult, error)
}

type matchStatusService struct {
	matchRepo repositories.MatchRepository
	loc       *time.Location
	publisher EventPublisher
	log       zerolog.Logger
}

func NewMatchStatusService(
	matchRepo repositories.MatchRepository,
	loc *time.Location,
	publisher EventPublisher,
	log zerolog.Logger,
) MatchStatusService {
	if loc == nil {
		loc = time.UTC
	}
	return &matchStatusService{
		matchRepo: matchRepo,
		loc:       loc,
		publisher: publisherOrNop(publisher),
		log:       log.With().Str("component", "match_status").Logger(),
	}
}

func (s *matchStatusService) CheckWindow(ctx context.Context, now time.Time) (WindowDecision, error) {
	dayStart, dayEnd := lifecycle.DayBounds(now, s.loc)

	matches, err := s.matchRepo.ListByKickoffRange(ctx, dayStart, dayEnd)
	if err != nil {
		return WindowDecision{}, fmt.Errorf("%w: failed to load today's matches: %w", ErrStatusUpdateFailed, err)
	}

	kickoffs := make([]time.Time, 0, len(matches))
	for _, m := range matches {
		if m.KickoffTime != nil {
			kickoffs = append(kickoffs, *m.KickoffTime)
		}
	}

	windowStart, windowEnd, ok := lifecycle.UpdateWindow(kickoffs)
	if !ok {
		return WindowDecision{Reason: SkipReasonNoMatchesToday}, nil
	}

	decision := WindowDecision{
		Open:         lifecycle.InUpdateWindow(kickoffs, now),
		MatchesToday: len(kickoffs),
		WindowStart:  &windowStart,
		WindowEnd:    &windowEnd,
	}
	if !decision.Open {
		decision.Reason = SkipReasonOutsideWindow
	}
	return decision, nil
}

func (s *matchStatusService) UpdateStatuses(ctx context.Context, now time.Time) (int, error) {
	matches, err := s.matchRepo.ListStatusCandidates(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to load matches: %w", ErrStatusUpdateFailed, err)
	}

	updated := 0
	var errs []error
	for _, m := range matches {
		next := lifecycle.DeriveStatus(m.KickoffTime, now, m.Status)
		if next == m.Status {
			continue
		}

		if err := s.matchRepo.UpdateStatus(ctx, m.ID, next); err != nil {
			s.log.Error().Err(err).Int("match_id", m.ID).Str("to", string(next)).Msg("failed to update match status")
			errs = append(errs, fmt.Errorf("match %d: %w", m.ID, err))
			continue
		}
		updated++

		s.log.Info().Int("match_id", m.ID).Str("from", string(m.Status)).Str("to", string(next)).Msg("match status changed")
		s.publisher.Publish(live.MatchRoom(m.ID), live.MessageMatchStatusChanged, MatchStatusChange{
			MatchID: m.ID,
			From:    m.Status,
			To:      next,
		})
	}

	if len(errs) > 0 {
		return updated, fmt.Errorf("%w: %d of %d updates failed: %w", ErrStatusUpdateFailed, len(errs), len(errs)+updated, errors.Join(errs...))
	}
	return updated, nil
}

func (s *matchStatusService) Run(ctx context.Context, now time.Time) (StatusRunResult, error) {
	decision, err := s.CheckWindow(ctx, now)
	if err != nil {
		return StatusRunResult{}, err
	}
	if !decision.Open {
		s.log.Debug().Str("reason", decision.Reason).Msg("match status pass skipped")
		return StatusRunResult{Reason: decision.Reason}, nil
	}

	updated, err := s.UpdateStatuses(ctx, now)
	return StatusRunResult{Ran: true, Updated: updated}, err
}
