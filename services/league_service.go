package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/referee-review/models"
	"github.com/Dosada05/referee-review/repositories"
)

type LeagueService interface {
	ListLeagues(ctx context.Context, season *int) ([]models.League, error)
	ListRounds(ctx context.Context, leagueID int) ([]models.Round, error)
	// GetFocusRound returns the focused round of a league with its matches.
	GetFocusRound(ctx context.Context, leagueID int) (*models.Round, error)
}

type leagueService struct {
	leagueRepo repositories.LeagueRepository
	roundRepo  repositories.RoundRepository
	matchRepo  repositories.MatchRepository
}

func NewLeagueService(
	leagueRepo repositories.LeagueRepository,
	roundRepo repositories.RoundRepository,
	matchRepo repositories.MatchRepository,
) LeagueService {
	return &leagueService{
		leagueRepo: leagueRepo,
		roundRepo:  roundRepo,
		matchRepo:  matchRepo,
	}
}

func (s *leagueService) ListLeagues(ctx context.Context, season *int) ([]models.League, error) {
	if season != nil && *season <= 0 {
		return nil, ErrInvalidSeason
	}
	leagues, err := s.leagueRepo.List(ctx, season)
	if err != nil {
		return nil, fmt.Errorf("failed to list leagues: %w", err)
	}
	return leagues, nil
}

func (s *leagueService) ListRounds(ctx context.Context, leagueID int) ([]models.Round, error) {
	if err := s.ensureLeague(ctx, leagueID); err != nil {
		return nil, err
	}
	rounds, err := s.roundRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rounds of league %d: %w", leagueID, err)
	}
	return rounds, nil
}

func (s *leagueService) GetFocusRound(ctx context.Context, leagueID int) (*models.Round, error) {
	if err := s.ensureLeague(ctx, leagueID); err != nil {
		return nil, err
	}

	round, err := s.roundRepo.GetFocusedByLeague(ctx, leagueID)
	if err != nil {
		if errors.Is(err, repositories.ErrRoundNotFound) {
			return nil, ErrRoundNotFound
		}
		return nil, fmt.Errorf("failed to get focused round of league %d: %w", leagueID, err)
	}

	matches, err := s.matchRepo.ListByRound(ctx, round.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches of round %d: %w", round.ID, err)
	}
	round.Matches = matches
	return round, nil
}

func (s *leagueService) ensureLeague(ctx context.Context, leagueID int) error {
	if _, err := s.leagueRepo.GetByID(ctx, leagueID); err != nil {
		if errors.Is(err, repositories.ErrLeagueNotFound) {
			return ErrLeagueNotFound
		}
		return fmt.Errorf("failed to get league %d: %w", leagueID, err)
	}
	return nil
}
