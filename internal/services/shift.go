package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"staffline/internal/domain"
)

type shiftService struct {
	shiftRepo    domain.ShiftRequestRepository
	eventRepo    domain.EventRepository
	profileRepo  domain.ProfileRepository
	emailService domain.EmailService
	logger       *slog.Logger
}

// NewShiftService creates a ShiftService with the given repositories. The
// email service may be nil; decision emails are then skipped.
func NewShiftService(
	shiftRepo domain.ShiftRequestRepository,
	eventRepo domain.EventRepository,
	profileRepo domain.ProfileRepository,
	emailService domain.EmailService,
	logger *slog.Logger,
) domain.ShiftService {
	if logger == nil {
		logger = slog.Default()
	}
	return &shiftService{
		shiftRepo:    shiftRepo,
		eventRepo:    eventRepo,
		profileRepo:  profileRepo,
		emailService: emailService,
		logger:       logger,
	}
}

func (s *shiftService) RequestShift(ctx context.Context, eventID, staffID string) (*domain.ShiftRequest, bool, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, false, domain.ErrNotFound
		}
		return nil, false, fmt.Errorf("get event: %w", err)
	}
	// Staff can only request shifts on published events.
	if event.Status != domain.EventStatusPublished {
		return nil, false, domain.ErrNotFound
	}

	// Requesting twice returns the existing request; make it idempotent.
	if existing, err := s.shiftRepo.GetByEventAndStaff(ctx, eventID, staffID); err == nil {
		return existing, false, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, fmt.Errorf("get shift request: %w", err)
	}

	req := &domain.ShiftRequest{
		ID:          uuid.NewString(),
		EventID:     eventID,
		StaffID:     staffID,
		Status:      domain.ShiftStatusPending,
		RequestedAt: time.Now(),
	}
	if err := s.shiftRepo.Create(ctx, req); err != nil {
		return nil, false, fmt.Errorf("create shift request: %w", err)
	}
	return req, true, nil
}

func (s *shiftService) ApproveRequest(ctx context.Context, requestID, adminID string) (*domain.ShiftRequest, error) {
	admin, err := s.requireAdmin(ctx, adminID)
	if err != nil {
		return nil, err
	}
	req, err := s.getRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status == domain.ShiftStatusConfirmed {
		return req, nil
	}
	if req.Status != domain.ShiftStatusPending {
		return nil, fmt.Errorf("%w: request is %s", domain.ErrInvalidInput, req.Status)
	}

	event, err := s.eventRepo.GetByID(ctx, req.EventID)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	confirmed, err := s.shiftRepo.CountConfirmedByEvent(ctx, req.EventID)
	if err != nil {
		return nil, fmt.Errorf("count confirmed shifts: %w", err)
	}
	if confirmed >= event.OpenShifts {
		return nil, domain.ErrNoOpenShifts
	}

	now := time.Now()
	if err := s.shiftRepo.SetStatus(ctx, req.ID, domain.ShiftStatusConfirmed, &admin.ID, &now); err != nil {
		return nil, fmt.Errorf("confirm shift request: %w", err)
	}
	req.Status = domain.ShiftStatusConfirmed
	req.ApprovedBy = &admin.ID
	req.ApprovedAt = &now

	s.sendDecisionEmail(ctx, req, event, true)
	return req, nil
}

func (s *shiftService) RejectRequest(ctx context.Context, requestID, adminID string) (*domain.ShiftRequest, error) {
	admin, err := s.requireAdmin(ctx, adminID)
	if err != nil {
		return nil, err
	}
	req, err := s.getRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status == domain.ShiftStatusRejected {
		return req, nil
	}
	if req.Status != domain.ShiftStatusPending {
		return nil, fmt.Errorf("%w: request is %s", domain.ErrInvalidInput, req.Status)
	}

	now := time.Now()
	if err := s.shiftRepo.SetStatus(ctx, req.ID, domain.ShiftStatusRejected, &admin.ID, &now); err != nil {
		return nil, fmt.Errorf("reject shift request: %w", err)
	}
	req.Status = domain.ShiftStatusRejected
	req.ApprovedBy = &admin.ID
	req.ApprovedAt = &now

	event, err := s.eventRepo.GetByID(ctx, req.EventID)
	if err == nil {
		s.sendDecisionEmail(ctx, req, event, false)
	}
	return req, nil
}

func (s *shiftService) CheckIn(ctx context.Context, requestID, staffID, signature string) (*domain.ShiftRequest, error) {
	signature = strings.TrimSpace(signature)
	if signature == "" {
		return nil, fmt.Errorf("%w: signature is required", domain.ErrInvalidInput)
	}
	req, err := s.getRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.StaffID != staffID {
		return nil, domain.ErrForbidden
	}
	if req.Status != domain.ShiftStatusConfirmed {
		return nil, fmt.Errorf("%w: only confirmed shifts can check in", domain.ErrInvalidInput)
	}
	if req.CheckInTime != nil {
		return nil, fmt.Errorf("%w: already checked in", domain.ErrInvalidInput)
	}

	now := time.Now()
	if err := s.shiftRepo.SetCheckIn(ctx, req.ID, signature, now); err != nil {
		return nil, fmt.Errorf("set check-in: %w", err)
	}
	req.CheckInSignature = &signature
	req.CheckInTime = &now
	return req, nil
}

func (s *shiftService) CheckOut(ctx context.Context, requestID, staffID, signature string) (*domain.ShiftRequest, error) {
	signature = strings.TrimSpace(signature)
	if signature == "" {
		return nil, fmt.Errorf("%w: signature is required", domain.ErrInvalidInput)
	}
	req, err := s.getRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.StaffID != staffID {
		return nil, domain.ErrForbidden
	}
	if req.CheckInTime == nil {
		return nil, fmt.Errorf("%w: must check in before checking out", domain.ErrInvalidInput)
	}
	if req.CheckOutTime != nil {
		return nil, fmt.Errorf("%w: already checked out", domain.ErrInvalidInput)
	}

	now := time.Now()
	if err := s.shiftRepo.SetCheckOut(ctx, req.ID, signature, now); err != nil {
		return nil, fmt.Errorf("set check-out: %w", err)
	}
	req.CheckOutSignature = &signature
	req.CheckOutTime = &now
	return req, nil
}

func (s *shiftService) VerifyUniform(ctx context.Context, requestID, adminID string) (*domain.ShiftRequest, error) {
	admin, err := s.requireAdmin(ctx, adminID)
	if err != nil {
		return nil, err
	}
	req, err := s.getRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != domain.ShiftStatusConfirmed {
		return nil, fmt.Errorf("%w: only confirmed shifts can be verified", domain.ErrInvalidInput)
	}
	if req.UniformVerified {
		return req, nil
	}

	now := time.Now()
	if err := s.shiftRepo.SetUniformVerified(ctx, req.ID, admin.ID, now); err != nil {
		return nil, fmt.Errorf("set uniform verified: %w", err)
	}
	req.UniformVerified = true
	req.UniformVerifiedBy = &admin.ID
	req.UniformVerifiedAt = &now
	return req, nil
}

func (s *shiftService) ListByEvent(ctx context.Context, eventID, callerID string) ([]*domain.ShiftRequest, error) {
	if _, err := s.requireAdmin(ctx, callerID); err != nil {
		return nil, err
	}
	reqs, err := s.shiftRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list shift requests: %w", err)
	}
	if reqs == nil {
		reqs = []*domain.ShiftRequest{}
	}
	return reqs, nil
}

func (s *shiftService) ListMine(ctx context.Context, staffID string) ([]*domain.ShiftRequest, error) {
	reqs, err := s.shiftRepo.ListByStaff(ctx, staffID)
	if err != nil {
		return nil, fmt.Errorf("list shift requests: %w", err)
	}
	if reqs == nil {
		reqs = []*domain.ShiftRequest{}
	}
	return reqs, nil
}

// sendDecisionEmail is best-effort; a mail failure never rolls back the decision.
func (s *shiftService) sendDecisionEmail(ctx context.Context, req *domain.ShiftRequest, event *domain.Event, approved bool) {
	if s.emailService == nil {
		return
	}
	staff, err := s.profileRepo.GetByID(ctx, req.StaffID)
	if err != nil {
		s.logger.Warn("skipping decision email, staff profile lookup failed", "staff_id", req.StaffID, "error", err)
		return
	}
	name := staff.Email
	if staff.FullName != nil && *staff.FullName != "" {
		name = *staff.FullName
	}
	data := &domain.ShiftDecisionEmailData{
		Email:      staff.Email,
		StaffName:  name,
		EventTitle: event.Title,
		EventDate:  event.EventDate,
		Venue:      event.Venue,
		StartTime:  event.StartTime,
	}
	if approved {
		err = s.emailService.SendShiftApproved(ctx, data)
	} else {
		err = s.emailService.SendShiftRejected(ctx, data)
	}
	if err != nil {
		s.logger.Warn("failed to send shift decision email", "request_id", req.ID, "error", err)
	}
}

func (s *shiftService) getRequest(ctx context.Context, requestID string) (*domain.ShiftRequest, error) {
	req, err := s.shiftRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get shift request: %w", err)
	}
	return req, nil
}

func (s *shiftService) requireAdmin(ctx context.Context, callerID string) (*domain.Profile, error) {
	caller, err := s.profileRepo.GetByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("get caller profile: %w", err)
	}
	if !caller.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return caller, nil
}
