package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/Dosada05/referee-review/models"
	"github.com/Dosada05/referee-review/repositories"
	"github.com/Dosada05/referee-review/storage"
	"github.com/rs/zerolog"
)

type RateInput struct {
	MatchID int `json:"match_id"`
	Score   int `json:"score"`
}

type RefereeService interface {
	ListReferees(ctx context.Context) ([]models.Referee, error)
	GetReferee(ctx context.Context, refereeID int) (*models.Referee, error)
	// Rate stores one fan's score for the referee's work in a finished match.
	Rate(ctx context.Context, userID, refereeID int, input RateInput) (*models.RefereeRating, error)
	UploadPhoto(ctx context.Context, refereeID int, contentType string, file io.Reader) (*models.Referee, error)
}

type refereeService struct {
	refereeRepo repositories.RefereeRepository
	ratingRepo  repositories.RatingRepository
	matchRepo   repositories.MatchRepository
	uploader    storage.FileUploader
	log         zerolog.Logger
}

// NewRefereeService принимает uploader == nil, если загрузка файлов не настроена.
func NewRefereeService(
	refereeRepo repositories.RefereeRepository,
	ratingRepo repositories.RatingRepository,
	matchRepo repositories.MatchRepository,
	uploader storage.FileUploader,
	log zerolog.Logger,
) RefereeService {
	return &refereeService{
		refereeRepo: refereeRepo,
		ratingRepo:  ratingRepo,
		matchRepo:   matchRepo,
		uploader:    uploader,
		log:         log.With().Str("component", "referees").Logger(),
	}
}

func (s *refereeService) photos() PhotoURLResolver {
	if s.uploader == nil {
		return nil
	}
	return s.uploader
}

func (s *refereeService) ListReferees(ctx context.Context) ([]models.Referee, error) {
	referees, err := s.refereeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list referees: %w", err)
	}
	for i := range referees {
		populateRefereePhotoURL(&referees[i], s.photos())
	}
	return referees, nil
}

func (s *refereeService) GetReferee(ctx context.Context, refereeID int) (*models.Referee, error) {
	referee, err := s.refereeRepo.GetByID(ctx, refereeID)
	if err != nil {
		if errors.Is(err, repositories.ErrRefereeNotFound) {
			return nil, ErrRefereeNotFound
		}
		return nil, fmt.Errorf("failed to get referee %d: %w", refereeID, err)
	}
	populateRefereePhotoURL(referee, s.photos())
	return referee, nil
}

func (s *refereeService) Rate(ctx context.Context, userID, refereeID int, input RateInput) (*models.RefereeRating, error) {
	if input.Score < 1 || input.Score > 5 {
		return nil, ErrRatingInvalidScore
	}
	if _, err := s.GetReferee(ctx, refereeID); err != nil {
		return nil, err
	}

	match, err := s.matchRepo.GetByID(ctx, input.MatchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match %d: %w", input.MatchID, err)
	}
	if match.Status != models.MatchStatusFinished || match.RefereeID == nil || *match.RefereeID != refereeID {
		return nil, ErrRatingMatchNotRated
	}

	rating := &models.RefereeRating{
		RefereeID: refereeID,
		MatchID:   input.MatchID,
		UserID:    userID,
		Score:     input.Score,
	}
	if err := s.ratingRepo.Create(ctx, rating); err != nil {
		switch {
		case errors.Is(err, repositories.ErrRatingConflict):
			return nil, ErrRatingConflict
		case errors.Is(err, repositories.ErrRatingInvalidScore):
			return nil, ErrRatingInvalidScore
		case errors.Is(err, repositories.ErrRatingInvalidRef):
			return nil, fmt.Errorf("%w: unknown referee, match or user", ErrValidationFailed)
		}
		return nil, fmt.Errorf("failed to create rating: %w", err)
	}
	return rating, nil
}

func (s *refereeService) UploadPhoto(ctx context.Context, refereeID int, contentType string, file io.Reader) (*models.Referee, error) {
	if s.uploader == nil {
		return nil, ErrUploadsNotConfigured
	}

	referee, err := s.GetReferee(ctx, refereeID)
	if err != nil {
		return nil, err
	}

	key, err := storage.RefereePhotoKey(refereeID, contentType)
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedContentType) {
			return nil, ErrUnsupportedPhotoType
		}
		return nil, err
	}

	if _, err := s.uploader.Upload(ctx, key, contentType, file); err != nil {
		return nil, fmt.Errorf("failed to upload photo of referee %d: %w", refereeID, err)
	}

	if err := s.refereeRepo.UpdatePhotoKey(ctx, refereeID, &key); err != nil {
		// новый файл уже загружен, удаляем его, чтобы не копить мусор
		if delErr := s.uploader.Delete(ctx, key); delErr != nil {
			s.log.Warn().Err(delErr).Str("key", key).Msg("failed to delete orphaned referee photo")
		}
		if errors.Is(err, repositories.ErrRefereeNotFound) {
			return nil, ErrRefereeNotFound
		}
		return nil, fmt.Errorf("failed to save photo key of referee %d: %w", refereeID, err)
	}

	if oldKey := derefString(referee.PhotoKey); oldKey != "" && oldKey != key {
		if err := s.uploader.Delete(ctx, oldKey); err != nil {
			s.log.Warn().Err(err).Str("key", oldKey).Msg("failed to delete previous referee photo")
		}
	}

	referee.PhotoKey = &key
	referee.PhotoURL = nil
	populateRefereePhotoURL(referee, s.photos())
	return referee, nil
}
