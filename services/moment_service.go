package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Dosada05/referee-review/embeds"
	"github.com/Dosada05/referee-review/models"
	"github.com/Dosada05/referee-review/repositories"
	"golang.org/x/sync/errgroup"
)

const maxMomentMinute = 150

type CreateMomentInput struct {
	Minute      int     `json:"minute"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	VideoURL    *string `json:"video_url"`
}

type MomentService interface {
	ListMatchMoments(ctx context.Context, matchID int) ([]models.Moment, error)
	GetMoment(ctx context.Context, momentID int) (*models.Moment, error)
	CreateMoment(ctx context.Context, matchID int, input CreateMomentInput) (*models.Moment, error)
}

type momentService struct {
	momentRepo  repositories.MomentRepository
	commentRepo repositories.CommentRepository
	matchRepo   repositories.MatchRepository
}

func NewMomentService(
	momentRepo repositories.MomentRepository,
	commentRepo repositories.CommentRepository,
	matchRepo repositories.MatchRepository,
) MomentService {
	return &momentService{
		momentRepo:  momentRepo,
		commentRepo: commentRepo,
		matchRepo:   matchRepo,
	}
}

// populateEmbedURL выставляет embed_url только для распознанных ссылок.
func populateEmbedURL(moment *models.Moment) {
	moment.EmbedURL = nil
	if moment.VideoURL == nil {
		return
	}
	if embedURL, ok := embeds.EmbedURL(*moment.VideoURL); ok {
		moment.EmbedURL = &embedURL
	}
}

func (s *momentService) ListMatchMoments(ctx context.Context, matchID int) ([]models.Moment, error) {
	if _, err := s.matchRepo.GetByID(ctx, matchID); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match %d: %w", matchID, err)
	}

	moments, err := s.momentRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list moments of match %d: %w", matchID, err)
	}
	if len(moments) == 0 {
		return moments, nil
	}

	ids := make([]int, len(moments))
	for i := range moments {
		ids[i] = moments[i].ID
	}
	counts, err := s.commentRepo.CountByMoments(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to count comments of match %d: %w", matchID, err)
	}

	for i := range moments {
		moments[i].CommentCount = counts[moments[i].ID]
		populateEmbedURL(&moments[i])
	}
	return moments, nil
}

func (s *momentService) GetMoment(ctx context.Context, momentID int) (*models.Moment, error) {
	var (
		moment *models.Moment
		counts map[int]int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		moment, err = s.momentRepo.GetByID(gctx, momentID)
		return err
	})
	g.Go(func() error {
		var err error
		counts, err = s.commentRepo.CountByMoments(gctx, []int{momentID})
		return err
	})

	if err := g.Wait(); err != nil {
		if errors.Is(err, repositories.ErrMomentNotFound) {
			return nil, ErrMomentNotFound
		}
		return nil, fmt.Errorf("failed to get moment %d: %w", momentID, err)
	}

	moment.CommentCount = counts[momentID]
	populateEmbedURL(moment)
	return moment, nil
}

func (s *momentService) CreateMoment(ctx context.Context, matchID int, input CreateMomentInput) (*models.Moment, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrMomentTitleRequired
	}
	if input.Minute < 0 || input.Minute > maxMomentMinute {
		return nil, ErrMomentInvalidMinute
	}

	moment := &models.Moment{
		MatchID:     matchID,
		Minute:      input.Minute,
		Title:       title,
		Description: optionalString(input.Description),
		VideoURL:    optionalString(input.VideoURL),
	}

	if err := s.momentRepo.Create(ctx, moment); err != nil {
		if errors.Is(err, repositories.ErrMomentMatchInvalid) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to create moment: %w", err)
	}
	populateEmbedURL(moment)
	return moment, nil
}
