package services

import (
	"context"
	"errors"
	"fmt"

	"staffline/internal/domain"
)

type reportService struct {
	reportRepo  domain.ReportRepository
	profileRepo domain.ProfileRepository
}

// NewReportService creates a ReportService with the given repositories.
func NewReportService(reportRepo domain.ReportRepository, profileRepo domain.ProfileRepository) domain.ReportService {
	return &reportService{reportRepo: reportRepo, profileRepo: profileRepo}
}

func (s *reportService) LaborReport(ctx context.Context, callerID string) ([]*domain.LaborReportRow, error) {
	orgID, err := s.adminOrg(ctx, callerID)
	if err != nil {
		return nil, err
	}
	rows, err := s.reportRepo.LaborReport(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("labor report: %w", err)
	}
	if rows == nil {
		rows = []*domain.LaborReportRow{}
	}
	return rows, nil
}

func (s *reportService) StaffReliability(ctx context.Context, callerID string) ([]*domain.StaffReliabilityRow, error) {
	orgID, err := s.adminOrg(ctx, callerID)
	if err != nil {
		return nil, err
	}
	rows, err := s.reportRepo.StaffReliability(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("staff reliability report: %w", err)
	}
	if rows == nil {
		rows = []*domain.StaffReliabilityRow{}
	}
	return rows, nil
}

func (s *reportService) adminOrg(ctx context.Context, callerID string) (string, error) {
	caller, err := s.profileRepo.GetByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrUnauthorized
		}
		return "", fmt.Errorf("get caller profile: %w", err)
	}
	if !caller.IsAdmin() {
		return "", domain.ErrForbidden
	}
	if caller.OrgID == nil {
		return "", nil
	}
	return *caller.OrgID, nil
}
