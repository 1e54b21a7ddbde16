package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Dosada05/referee-review/models"
	"github.com/Dosada05/referee-review/repositories"
)

type ReportService interface {
	CreateReport(ctx context.Context, reporterID, commentID int, reason string) (*models.Report, error)
	ListOpenReports(ctx context.Context) ([]models.Report, error)
	ResolveReport(ctx context.Context, reportID int) error
}

type reportService struct {
	reportRepo repositories.ReportRepository
}

func NewReportService(reportRepo repositories.ReportRepository) ReportService {
	return &reportService{reportRepo: reportRepo}
}

func (s *reportService) CreateReport(ctx context.Context, reporterID, commentID int, reason string) (*models.Report, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrReportReasonRequired
	}

	report := &models.Report{
		CommentID:  commentID,
		ReporterID: reporterID,
		Reason:     reason,
		Status:     models.ReportStatusOpen,
	}
	if err := s.reportRepo.Create(ctx, report); err != nil {
		switch {
		case errors.Is(err, repositories.ErrReportConflict):
			return nil, ErrReportConflict
		case errors.Is(err, repositories.ErrReportCommentInvalid):
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to create report: %w", err)
	}
	return report, nil
}

func (s *reportService) ListOpenReports(ctx context.Context) ([]models.Report, error) {
	reports, err := s.reportRepo.ListByStatus(ctx, models.ReportStatusOpen)
	if err != nil {
		return nil, fmt.Errorf("failed to list open reports: %w", err)
	}
	return reports, nil
}

// ResolveReport is idempotent: resolving a resolved report succeeds.
func (s *reportService) ResolveReport(ctx context.Context, reportID int) error {
	if err := s.reportRepo.UpdateStatus(ctx, reportID, models.ReportStatusResolved); err != nil {
		if errors.Is(err, repositories.ErrReportNotFound) {
			return ErrReportNotFound
		}
		return fmt.Errorf("failed to resolve report %d: %w", reportID, err)
	}
	return nil
}
