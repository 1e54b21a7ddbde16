package scheduler

import (
	"context"
	"time"

	"github.com/Dosada05/referee-review/services"
	"github.com/rs/zerolog"
)

// MatchStatusJob runs the gated match status pass.
type MatchStatusJob struct {
	service services.MatchStatusService
	now     func() time.Time
	log     zerolog.Logger
}

func NewMatchStatusJob(service services.MatchStatusService, log zerolog.Logger) *MatchStatusJob {
	return &MatchStatusJob{
		service: service,
		now:     time.Now,
		log:     log.With().Str("job", "match_status").Logger(),
	}
}

func (j *MatchStatusJob) Name() string { return "match_status" }

func (j *MatchStatusJob) Run(ctx context.Context) error {
	result, err := j.service.Run(ctx, j.now())
	if err != nil {
		return err
	}
	if !result.Ran {
		j.log.Debug().Str("reason", result.Reason).Msg("skipped")
		return nil
	}
	j.log.Info().Int("updated", result.Updated).Msg("match statuses updated")
	return nil
}

// RoundFocusJob recomputes the focused round of every league.
type RoundFocusJob struct {
	service services.RoundFocusService
	now     func() time.Time
	log     zerolog.Logger
}

func NewRoundFocusJob(service services.RoundFocusService, log zerolog.Logger) *RoundFocusJob {
	return &RoundFocusJob{
		service: service,
		now:     time.Now,
		log:     log.With().Str("job", "round_focus").Logger(),
	}
}

func (j *RoundFocusJob) Name() string { return "round_focus" }

func (j *RoundFocusJob) Run(ctx context.Context) error {
	updated, err := j.service.UpdateFocus(ctx, j.now())
	if err != nil {
		return err
	}
	j.log.Info().Int("updated", updated).Msg("round focus updated")
	return nil
}
