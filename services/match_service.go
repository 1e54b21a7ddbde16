package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/referee-review/models"
	"github.com/Dosada05/referee-review/repositories"
)

type MatchService interface {
	GetMatch(ctx context.Context, matchID int) (*models.Match, error)
	ListRoundMatches(ctx context.Context, roundID int) ([]models.Match, error)
}

type matchService struct {
	matchRepo   repositories.MatchRepository
	roundRepo   repositories.RoundRepository
	refereeRepo repositories.RefereeRepository
	photos      PhotoURLResolver
}

func NewMatchService(
	matchRepo repositories.MatchRepository,
	roundRepo repositories.RoundRepository,
	refereeRepo repositories.RefereeRepository,
	photos PhotoURLResolver,
) MatchService {
	return &matchService{
		matchRepo:   matchRepo,
		roundRepo:   roundRepo,
		refereeRepo: refereeRepo,
		photos:      photos,
	}
}

func (s *matchService) GetMatch(ctx context.Context, matchID int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match %d: %w", matchID, err)
	}

	if match.RefereeID != nil {
		referee, err := s.refereeRepo.GetByID(ctx, *match.RefereeID)
		switch {
		case err == nil:
			populateRefereePhotoURL(referee, s.photos)
			match.Referee = referee
		case errors.Is(err, repositories.ErrRefereeNotFound):
			// судья удален, матч отдаем без него
		default:
			return nil, fmt.Errorf("failed to get referee of match %d: %w", matchID, err)
		}
	}
	return match, nil
}

func (s *matchService) ListRoundMatches(ctx context.Context, roundID int) ([]models.Match, error) {
	if _, err := s.roundRepo.GetByID(ctx, roundID); err != nil {
		if errors.Is(err, repositories.ErrRoundNotFound) {
			return nil, ErrRoundNotFound
		}
		return nil, fmt.Errorf("failed to get round %d: %w", roundID, err)
	}
	matches, err := s.matchRepo.ListByRound(ctx, roundID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches of round %d: %w", roundID, err)
	}
	return matches, nil
}
