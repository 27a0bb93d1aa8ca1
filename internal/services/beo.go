package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"staffline/internal/beo"
	"staffline/internal/domain"
)

// Draft defaults applied when extraction leaves a field empty.
const (
	defaultEventTitle = "Untitled Event"
	defaultVenue      = "TBD"
	defaultStartTime  = "00:00"
	defaultOpenShifts = 5

	manualEntrySource = "Manual Entry"
)

// documentExtractor is the slice of beo.Extractor this service needs.
type documentExtractor interface {
	Extract(ctx context.Context, filename, mimeType string, data []byte) (*beo.Outcome, error)
}

// BEOConfig tunes draft materialization and the upload permission gate.
type BEOConfig struct {
	// GuestsPerShift sizes open_shifts from the extracted guest count.
	GuestsPerShift int
	// AllowStaffUploads opens the upload endpoint to any authenticated
	// caller instead of admins only.
	AllowStaffUploads bool
}

type beoService struct {
	extractor   documentExtractor
	eventRepo   domain.EventRepository
	profileRepo domain.ProfileRepository
	fileStore   domain.FileStore
	cfg         BEOConfig
	logger      *slog.Logger
	now         func() time.Time
}

// NewBEOService creates a BEOService. The file store may be nil; uploaded
// documents are then not archived.
func NewBEOService(
	extractor documentExtractor,
	eventRepo domain.EventRepository,
	profileRepo domain.ProfileRepository,
	fileStore domain.FileStore,
	cfg BEOConfig,
	logger *slog.Logger,
) domain.BEOService {
	if cfg.GuestsPerShift <= 0 {
		cfg.GuestsPerShift = 50
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &beoService{
		extractor:   extractor,
		eventRepo:   eventRepo,
		profileRepo: profileRepo,
		fileStore:   fileStore,
		cfg:         cfg,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *beoService) ProcessUpload(ctx context.Context, callerID, filename, mimeType string, data []byte) (*domain.UploadResult, error) {
	caller, err := s.requireUploader(ctx, callerID)
	if err != nil {
		return nil, err
	}

	outcome, err := s.extractor.Extract(ctx, filename, mimeType, data)
	if err != nil {
		return nil, err
	}

	source := strings.TrimSpace(filename)
	if source == "" {
		source = "upload"
	}
	event := s.materializeDraft(outcome.Data, source, caller)
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create draft event: %w", err)
	}

	s.archive(ctx, event.ID, source, mimeType, data)

	s.logger.Info("draft event created from upload",
		"event_id", event.ID,
		"method", outcome.Method,
		"text_length", outcome.TextLen,
		"source", source,
	)
	return &domain.UploadResult{
		Extracted:  outcome.Data,
		Event:      event,
		Method:     outcome.Method,
		TextLength: outcome.TextLen,
	}, nil
}

func (s *beoService) CreateManualDraft(ctx context.Context, callerID string, data beo.ExtractedEventData) (*domain.Event, error) {
	caller, err := s.requireUploader(ctx, callerID)
	if err != nil {
		return nil, err
	}
	event := s.materializeDraft(data, manualEntrySource, caller)
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create draft event: %w", err)
	}
	s.logger.Info("draft event created from manual entry", "event_id", event.ID)
	return event, nil
}

// materializeDraft fills defaults for missing fields. The result is always a
// draft; publishing is a separate admin action.
func (s *beoService) materializeDraft(data beo.ExtractedEventData, source string, caller *domain.Profile) *domain.Event {
	title := strings.TrimSpace(data.EventName)
	if title == "" {
		title = defaultEventTitle
	}
	eventDate := data.Date
	if eventDate == "" {
		eventDate = s.now().Format("2006-01-02")
	}
	venue := strings.TrimSpace(data.Venue)
	if venue == "" {
		venue = defaultVenue
	}
	startTime := data.StartTime
	if startTime == "" {
		startTime = defaultStartTime
	}

	openShifts := defaultOpenShifts
	if data.GuestCount > 0 {
		openShifts = (data.GuestCount + s.cfg.GuestsPerShift - 1) / s.cfg.GuestsPerShift
	}

	return &domain.Event{
		ID:         uuid.NewString(),
		Title:      title,
		EventDate:  eventDate,
		Venue:      venue,
		OpenShifts: openShifts,
		StartTime:  startTime,
		EndTime:    data.EndTime,
		Status:     domain.EventStatusDraft,
		BEOSource:  &source,
		CreatedBy:  &caller.ID,
		OrgID:      caller.OrgID,
		CreatedAt:  s.now(),
	}
}

// archive is best-effort; a storage failure never fails the upload.
func (s *beoService) archive(ctx context.Context, eventID, filename, contentType string, data []byte) {
	if s.fileStore == nil {
		return
	}
	key := fmt.Sprintf("beo/%s/%s", eventID, filename)
	if err := s.fileStore.Put(ctx, key, contentType, data); err != nil {
		s.logger.Warn("failed to archive uploaded document", "key", key, "error", err)
	}
}

func (s *beoService) requireUploader(ctx context.Context, callerID string) (*domain.Profile, error) {
	caller, err := s.profileRepo.GetByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("get caller profile: %w", err)
	}
	if !caller.IsAdmin() && !s.cfg.AllowStaffUploads {
		return nil, domain.ErrForbidden
	}
	return caller, nil
}
