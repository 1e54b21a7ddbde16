package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Dosada05/referee-review/embeds"
	"github.com/Dosada05/referee-review/models"
	"github.com/Dosada05/referee-review/repositories"
)

const maxCommentLength = 2000

type CommentService interface {
	ListMomentComments(ctx context.Context, momentID int) ([]models.Comment, error)
	CreateComment(ctx context.Context, userID, momentID int, body string) (*models.Comment, error)
	// DeleteComment is allowed to the author and to admins.
	DeleteComment(ctx context.Context, userID int, role models.UserRole, commentID int) error
}

type commentService struct {
	commentRepo repositories.CommentRepository
	momentRepo  repositories.MomentRepository
}

func NewCommentService(commentRepo repositories.CommentRepository, momentRepo repositories.MomentRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		momentRepo:  momentRepo,
	}
}

func (s *commentService) ListMomentComments(ctx context.Context, momentID int) ([]models.Comment, error) {
	if _, err := s.momentRepo.GetByID(ctx, momentID); err != nil {
		if errors.Is(err, repositories.ErrMomentNotFound) {
			return nil, ErrMomentNotFound
		}
		return nil, fmt.Errorf("failed to get moment %d: %w", momentID, err)
	}

	comments, err := s.commentRepo.ListByMoment(ctx, momentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments of moment %d: %w", momentID, err)
	}
	for i := range comments {
		comments[i].Segments = embeds.Parse(comments[i].Body)
	}
	return comments, nil
}

func (s *commentService) CreateComment(ctx context.Context, userID, momentID int, body string) (*models.Comment, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrCommentBodyRequired
	}
	if utf8.RuneCountInString(body) > maxCommentLength {
		return nil, ErrCommentBodyTooLong
	}

	comment := &models.Comment{
		MomentID: momentID,
		UserID:   userID,
		Body:     body,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		if errors.Is(err, repositories.ErrCommentMomentInvalid) {
			return nil, ErrMomentNotFound
		}
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	comment.Segments = embeds.Parse(comment.Body)
	return comment, nil
}

func (s *commentService) DeleteComment(ctx context.Context, userID int, role models.UserRole, commentID int) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, repositories.ErrCommentNotFound) {
			return ErrCommentNotFound
		}
		return fmt.Errorf("failed to get comment %d: %w", commentID, err)
	}

	if comment.UserID != userID && role != models.RoleAdmin {
		return ErrForbiddenOperation
	}

	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		if errors.Is(err, repositories.ErrCommentNotFound) {
			return ErrCommentNotFound
		}
		return fmt.Errorf("failed to delete comment %d: %w", commentID, err)
	}
	return nil
}
