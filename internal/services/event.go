package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"staffline/internal/domain"
)

type eventService struct {
	eventRepo   domain.EventRepository
	profileRepo domain.ProfileRepository
}

// NewEventService creates an EventService with the given repositories.
func NewEventService(eventRepo domain.EventRepository, profileRepo domain.ProfileRepository) domain.EventService {
	return &eventService{eventRepo: eventRepo, profileRepo: profileRepo}
}

func (s *eventService) CreateEvent(ctx context.Context, callerID string, event *domain.Event) error {
	caller, err := s.requireAdmin(ctx, callerID)
	if err != nil {
		return err
	}
	event.Title = strings.TrimSpace(event.Title)
	if event.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if err := validateEventFields(event.EventDate, event.StartTime, event.EndTime, event.RoleRequired); err != nil {
		return err
	}
	if event.OpenShifts < 0 {
		return fmt.Errorf("%w: open_shifts must not be negative", domain.ErrInvalidInput)
	}

	event.ID = uuid.NewString()
	if event.Status == "" {
		event.Status = domain.EventStatusDraft
	}
	event.CreatedBy = &caller.ID
	event.OrgID = caller.OrgID
	event.CreatedAt = time.Now()
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (s *eventService) GetEvent(ctx context.Context, callerID, eventID string) (*domain.Event, error) {
	caller, err := s.getCaller(ctx, callerID)
	if err != nil {
		return nil, err
	}
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	// Draft events are admin-only; staff never learn they exist.
	if event.Status != domain.EventStatusPublished && !caller.IsAdmin() {
		return nil, domain.ErrNotFound
	}
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context, callerID string) ([]*domain.Event, error) {
	caller, err := s.getCaller(ctx, callerID)
	if err != nil {
		return nil, err
	}
	orgID := ""
	if caller.OrgID != nil {
		orgID = *caller.OrgID
	}

	var events []*domain.Event
	if caller.IsAdmin() {
		events, err = s.eventRepo.ListByOrg(ctx, orgID)
	} else {
		events, err = s.eventRepo.ListPublishedByOrg(ctx, orgID)
	}
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, callerID, eventID string, upd domain.EventUpdate) (*domain.Event, error) {
	if _, err := s.requireAdmin(ctx, callerID); err != nil {
		return nil, err
	}
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	applyEventUpdate(event, upd)
	event.Title = strings.TrimSpace(event.Title)
	if event.Title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if err := validateEventFields(event.EventDate, event.StartTime, event.EndTime, event.RoleRequired); err != nil {
		return nil, err
	}
	if event.OpenShifts < 0 {
		return nil, fmt.Errorf("%w: open_shifts must not be negative", domain.ErrInvalidInput)
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}
	return event, nil
}

func (s *eventService) PublishEvent(ctx context.Context, callerID, eventID string) (*domain.Event, error) {
	if _, err := s.requireAdmin(ctx, callerID); err != nil {
		return nil, err
	}
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event.Status == domain.EventStatusPublished {
		return event, nil
	}
	if err := s.eventRepo.SetStatus(ctx, eventID, domain.EventStatusPublished); err != nil {
		return nil, fmt.Errorf("publish event: %w", err)
	}
	event.Status = domain.EventStatusPublished
	return event, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, callerID, eventID string) error {
	if _, err := s.requireAdmin(ctx, callerID); err != nil {
		return err
	}
	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

func (s *eventService) getCaller(ctx context.Context, callerID string) (*domain.Profile, error) {
	caller, err := s.profileRepo.GetByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("get caller profile: %w", err)
	}
	return caller, nil
}

func (s *eventService) requireAdmin(ctx context.Context, callerID string) (*domain.Profile, error) {
	caller, err := s.getCaller(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return caller, nil
}

var (
	dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRe = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

func validateEventFields(eventDate, startTime, endTime, roleRequired string) error {
	if eventDate != "" && !dateRe.MatchString(eventDate) {
		return fmt.Errorf("%w: event_date must be YYYY-MM-DD", domain.ErrInvalidInput)
	}
	if startTime != "" && !timeRe.MatchString(startTime) {
		return fmt.Errorf("%w: start_time must be HH:MM", domain.ErrInvalidInput)
	}
	if endTime != "" && !timeRe.MatchString(endTime) {
		return fmt.Errorf("%w: end_time must be HH:MM", domain.ErrInvalidInput)
	}
	switch roleRequired {
	case "", domain.StaffRoleServer, domain.StaffRoleBartender, domain.StaffRoleHost:
	default:
		return fmt.Errorf("%w: unknown role_required %q", domain.ErrInvalidInput, roleRequired)
	}
	return nil
}

func applyEventUpdate(event *domain.Event, upd domain.EventUpdate) {
	if upd.Title != nil {
		event.Title = *upd.Title
	}
	if upd.EventDate != nil {
		event.EventDate = *upd.EventDate
	}
	if upd.Venue != nil {
		event.Venue = *upd.Venue
	}
	if upd.DressCode != nil {
		event.DressCode = *upd.DressCode
	}
	if upd.OpenShifts != nil {
		event.OpenShifts = *upd.OpenShifts
	}
	if upd.RoleRequired != nil {
		event.RoleRequired = *upd.RoleRequired
	}
	if upd.StartTime != nil {
		event.StartTime = *upd.StartTime
	}
	if upd.EndTime != nil {
		event.EndTime = *upd.EndTime
	}
	if upd.HourlyRate != nil {
		event.HourlyRate = upd.HourlyRate
	}
	if upd.UniformRequirements != nil {
		event.UniformRequirements = upd.UniformRequirements
	}
	if upd.Description != nil {
		event.Description = upd.Description
	}
}
