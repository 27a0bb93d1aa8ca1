package controllers

import (
	"context"
	"io"
	"log/slog"

	"staffline/internal/beo"
	"staffline/internal/domain"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeBEOService implements domain.BEOService for handler tests.
type fakeBEOService struct {
	uploadErr    error
	uploadResult *domain.UploadResult
	manualErr    error
	manualResult *domain.Event

	lastCallerID string
	lastFilename string
	lastMimeType string
	lastData     []byte
	lastManual   beo.ExtractedEventData
}

func (f *fakeBEOService) ProcessUpload(ctx context.Context, callerID, filename, mimeType string, data []byte) (*domain.UploadResult, error) {
	f.lastCallerID = callerID
	f.lastFilename = filename
	f.lastMimeType = mimeType
	f.lastData = data
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	return f.uploadResult, nil
}

func (f *fakeBEOService) CreateManualDraft(ctx context.Context, callerID string, data beo.ExtractedEventData) (*domain.Event, error) {
	f.lastCallerID = callerID
	f.lastManual = data
	if f.manualErr != nil {
		return nil, f.manualErr
	}
	return f.manualResult, nil
}

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	createErr  error
	getErr     error
	getResult  *domain.Event
	listErr    error
	listResult []*domain.Event
	updateErr  error
	updateRes  *domain.Event
	publishErr error
	publishRes *domain.Event
	deleteErr  error

	lastCallerID    string
	lastEventID     string
	lastCreateEvent *domain.Event
	lastUpdate      domain.EventUpdate
}

func (f *fakeEventService) CreateEvent(ctx context.Context, callerID string, event *domain.Event) error {
	f.lastCallerID = callerID
	f.lastCreateEvent = event
	if f.createErr != nil {
		return f.createErr
	}
	event.ID = "ev-created"
	event.Status = domain.EventStatusDraft
	return nil
}

func (f *fakeEventService) GetEvent(ctx context.Context, callerID, eventID string) (*domain.Event, error) {
	f.lastCallerID = callerID
	f.lastEventID = eventID
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getResult, nil
}

func (f *fakeEventService) ListEvents(ctx context.Context, callerID string) ([]*domain.Event, error) {
	f.lastCallerID = callerID
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listResult, nil
}

func (f *fakeEventService) UpdateEvent(ctx context.Context, callerID, eventID string, upd domain.EventUpdate) (*domain.Event, error) {
	f.lastCallerID = callerID
	f.lastEventID = eventID
	f.lastUpdate = upd
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.updateRes, nil
}

func (f *fakeEventService) PublishEvent(ctx context.Context, callerID, eventID string) (*domain.Event, error) {
	f.lastCallerID = callerID
	f.lastEventID = eventID
	if f.publishErr != nil {
		return nil, f.publishErr
	}
	return f.publishRes, nil
}

func (f *fakeEventService) DeleteEvent(ctx context.Context, callerID, eventID string) error {
	f.lastCallerID = callerID
	f.lastEventID = eventID
	return f.deleteErr
}

// fakeShiftService implements domain.ShiftService for handler tests.
type fakeShiftService struct {
	requestErr     error
	requestResult  *domain.ShiftRequest
	requestCreated bool
	decideErr      error
	decideResult   *domain.ShiftRequest
	attendErr      error
	attendResult   *domain.ShiftRequest
	listErr        error
	listResult     []*domain.ShiftRequest

	lastEventID   string
	lastStaffID   string
	lastRequestID string
	lastCallerID  string
	lastSignature string
	lastOp        string
}

func (f *fakeShiftService) RequestShift(ctx context.Context, eventID, staffID string) (*domain.ShiftRequest, bool, error) {
	f.lastEventID = eventID
	f.lastStaffID = staffID
	if f.requestErr != nil {
		return nil, false, f.requestErr
	}
	return f.requestResult, f.requestCreated, nil
}

func (f *fakeShiftService) decide(op, requestID, adminID string) (*domain.ShiftRequest, error) {
	f.lastOp = op
	f.lastRequestID = requestID
	f.lastCallerID = adminID
	if f.decideErr != nil {
		return nil, f.decideErr
	}
	return f.decideResult, nil
}

func (f *fakeShiftService) ApproveRequest(ctx context.Context, requestID, adminID string) (*domain.ShiftRequest, error) {
	return f.decide("approve", requestID, adminID)
}

func (f *fakeShiftService) RejectRequest(ctx context.Context, requestID, adminID string) (*domain.ShiftRequest, error) {
	return f.decide("reject", requestID, adminID)
}

func (f *fakeShiftService) VerifyUniform(ctx context.Context, requestID, adminID string) (*domain.ShiftRequest, error) {
	return f.decide("verify-uniform", requestID, adminID)
}

func (f *fakeShiftService) attend(op, requestID, staffID, signature string) (*domain.ShiftRequest, error) {
	f.lastOp = op
	f.lastRequestID = requestID
	f.lastCallerID = staffID
	f.lastSignature = signature
	if f.attendErr != nil {
		return nil, f.attendErr
	}
	return f.attendResult, nil
}

func (f *fakeShiftService) CheckIn(ctx context.Context, requestID, staffID, signature string) (*domain.ShiftRequest, error) {
	return f.attend("check-in", requestID, staffID, signature)
}

func (f *fakeShiftService) CheckOut(ctx context.Context, requestID, staffID, signature string) (*domain.ShiftRequest, error) {
	return f.attend("check-out", requestID, staffID, signature)
}

func (f *fakeShiftService) ListByEvent(ctx context.Context, eventID, callerID string) ([]*domain.ShiftRequest, error) {
	f.lastEventID = eventID
	f.lastCallerID = callerID
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listResult, nil
}

func (f *fakeShiftService) ListMine(ctx context.Context, staffID string) ([]*domain.ShiftRequest, error) {
	f.lastStaffID = staffID
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listResult, nil
}

// fakeReportService implements domain.ReportService for handler tests.
type fakeReportService struct {
	laborErr          error
	laborResult       []*domain.LaborReportRow
	reliabilityErr    error
	reliabilityResult []*domain.StaffReliabilityRow

	lastCallerID string
}

func (f *fakeReportService) LaborReport(ctx context.Context, callerID string) ([]*domain.LaborReportRow, error) {
	f.lastCallerID = callerID
	if f.laborErr != nil {
		return nil, f.laborErr
	}
	return f.laborResult, nil
}

func (f *fakeReportService) StaffReliability(ctx context.Context, callerID string) ([]*domain.StaffReliabilityRow, error) {
	f.lastCallerID = callerID
	if f.reliabilityErr != nil {
		return nil, f.reliabilityErr
	}
	return f.reliabilityResult, nil
}

// fakeUserService implements domain.UserService for handler tests.
type fakeUserService struct {
	signUpErr    error
	signUpResult *domain.Profile
	loginErr     error
	loginToken   string
	loginProfile *domain.Profile
	getErr       error
	getResult    *domain.Profile
	listStaffErr error
	listStaffRes []*domain.Profile
	validateErr  error
	setStatusErr error

	lastEmail    string
	lastPassword string
	lastFullName string
	lastOrgID    string
	lastCallerID string
	lastStaffID  string
	lastStatus   string
}

func (f *fakeUserService) SignUp(ctx context.Context, email, password, fullName, orgID string) (*domain.Profile, error) {
	f.lastEmail = email
	f.lastPassword = password
	f.lastFullName = fullName
	f.lastOrgID = orgID
	if f.signUpErr != nil {
		return nil, f.signUpErr
	}
	return f.signUpResult, nil
}

func (f *fakeUserService) Login(ctx context.Context, email, password string) (string, *domain.Profile, error) {
	f.lastEmail = email
	f.lastPassword = password
	if f.loginErr != nil {
		return "", nil, f.loginErr
	}
	return f.loginToken, f.loginProfile, nil
}

func (f *fakeUserService) GetProfile(ctx context.Context, id string) (*domain.Profile, error) {
	f.lastCallerID = id
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getResult, nil
}

func (f *fakeUserService) ListStaff(ctx context.Context, callerID string) ([]*domain.Profile, error) {
	f.lastCallerID = callerID
	if f.listStaffErr != nil {
		return nil, f.listStaffErr
	}
	return f.listStaffRes, nil
}

func (f *fakeUserService) ValidateStaff(ctx context.Context, callerID, staffID string) error {
	f.lastCallerID = callerID
	f.lastStaffID = staffID
	return f.validateErr
}

func (f *fakeUserService) SetStaffStatus(ctx context.Context, callerID, staffID, status string) error {
	f.lastCallerID = callerID
	f.lastStaffID = staffID
	f.lastStatus = status
	return f.setStatusErr
}
