package services

import (
	"context"
	"io"
	"log/slog"
	"time"

	"staffline/internal/beo"
	"staffline/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockProfileRepository struct {
	profiles map[string]*domain.Profile // by ID
	orgCount int
	err      error

	created []*domain.Profile
}

func (m *mockProfileRepository) Create(ctx context.Context, p *domain.Profile) error {
	if m.err != nil {
		return m.err
	}
	m.created = append(m.created, p)
	return nil
}

func (m *mockProfileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.profiles[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (m *mockProfileRepository) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, p := range m.profiles {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockProfileRepository) CountByOrg(ctx context.Context, orgID string) (int, error) {
	return m.orgCount, m.err
}

func (m *mockProfileRepository) ListStaffByOrg(ctx context.Context, orgID string) ([]*domain.Profile, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*domain.Profile
	for _, p := range m.profiles {
		if p.Role == domain.RoleStaff {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockProfileRepository) SetValidated(ctx context.Context, id string, validated bool) error {
	if m.err != nil {
		return m.err
	}
	p, ok := m.profiles[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.IsValidated = validated
	return nil
}

func (m *mockProfileRepository) SetStatus(ctx context.Context, id, status string) error {
	if m.err != nil {
		return m.err
	}
	p, ok := m.profiles[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Status = status
	return nil
}

type mockEventRepository struct {
	events map[string]*domain.Event
	err    error

	created []*domain.Event
	updated []*domain.Event
	deleted []string
	status  map[string]string
}

func (m *mockEventRepository) Create(ctx context.Context, event *domain.Event) error {
	if m.err != nil {
		return m.err
	}
	m.created = append(m.created, event)
	return nil
}

func (m *mockEventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	ev, ok := m.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return ev, nil
}

func (m *mockEventRepository) ListByOrg(ctx context.Context, orgID string) ([]*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*domain.Event
	for _, ev := range m.events {
		out = append(out, ev)
	}
	return out, nil
}

func (m *mockEventRepository) ListPublishedByOrg(ctx context.Context, orgID string) ([]*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*domain.Event
	for _, ev := range m.events {
		if ev.Status == domain.EventStatusPublished {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (m *mockEventRepository) Update(ctx context.Context, event *domain.Event) error {
	if m.err != nil {
		return m.err
	}
	m.updated = append(m.updated, event)
	return nil
}

func (m *mockEventRepository) SetStatus(ctx context.Context, id, status string) error {
	if m.err != nil {
		return m.err
	}
	if m.status == nil {
		m.status = map[string]string{}
	}
	m.status[id] = status
	return nil
}

func (m *mockEventRepository) Delete(ctx context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.events[id]; !ok {
		return domain.ErrNotFound
	}
	m.deleted = append(m.deleted, id)
	return nil
}

type mockShiftRequestRepository struct {
	requests       map[string]*domain.ShiftRequest // by ID
	byEventStaff   map[string]*domain.ShiftRequest // eventID:staffID
	confirmedCount int
	err            error

	created []*domain.ShiftRequest
}

func (m *mockShiftRequestRepository) Create(ctx context.Context, req *domain.ShiftRequest) error {
	if m.err != nil {
		return m.err
	}
	m.created = append(m.created, req)
	return nil
}

func (m *mockShiftRequestRepository) GetByID(ctx context.Context, id string) (*domain.ShiftRequest, error) {
	if m.err != nil {
		return nil, m.err
	}
	r, ok := m.requests[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return r, nil
}

func (m *mockShiftRequestRepository) GetByEventAndStaff(ctx context.Context, eventID, staffID string) (*domain.ShiftRequest, error) {
	if m.err != nil {
		return nil, m.err
	}
	if r, ok := m.byEventStaff[eventID+":"+staffID]; ok {
		return r, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockShiftRequestRepository) ListByEvent(ctx context.Context, eventID string) ([]*domain.ShiftRequest, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*domain.ShiftRequest
	for _, r := range m.requests {
		if r.EventID == eventID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockShiftRequestRepository) ListByStaff(ctx context.Context, staffID string) ([]*domain.ShiftRequest, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*domain.ShiftRequest
	for _, r := range m.requests {
		if r.StaffID == staffID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockShiftRequestRepository) CountConfirmedByEvent(ctx context.Context, eventID string) (int, error) {
	return m.confirmedCount, m.err
}

func (m *mockShiftRequestRepository) SetStatus(ctx context.Context, id, status string, approvedBy *string, approvedAt *time.Time) error {
	if m.err != nil {
		return m.err
	}
	r, ok := m.requests[id]
	if !ok {
		return domain.ErrNotFound
	}
	r.Status = status
	r.ApprovedBy = approvedBy
	r.ApprovedAt = approvedAt
	return nil
}

func (m *mockShiftRequestRepository) SetCheckIn(ctx context.Context, id, signature string, at time.Time) error {
	if m.err != nil {
		return m.err
	}
	r, ok := m.requests[id]
	if !ok {
		return domain.ErrNotFound
	}
	r.CheckInSignature = &signature
	r.CheckInTime = &at
	return nil
}

func (m *mockShiftRequestRepository) SetCheckOut(ctx context.Context, id, signature string, at time.Time) error {
	if m.err != nil {
		return m.err
	}
	r, ok := m.requests[id]
	if !ok {
		return domain.ErrNotFound
	}
	r.CheckOutSignature = &signature
	r.CheckOutTime = &at
	return nil
}

func (m *mockShiftRequestRepository) SetUniformVerified(ctx context.Context, id, verifiedBy string, at time.Time) error {
	if m.err != nil {
		return m.err
	}
	r, ok := m.requests[id]
	if !ok {
		return domain.ErrNotFound
	}
	r.UniformVerified = true
	r.UniformVerifiedBy = &verifiedBy
	r.UniformVerifiedAt = &at
	return nil
}

type mockOrganizationRepository struct {
	orgs map[string]*domain.Organization // by OrgID
	err  error
}

func (m *mockOrganizationRepository) Create(ctx context.Context, org *domain.Organization) error {
	return m.err
}

func (m *mockOrganizationRepository) GetByOrgID(ctx context.Context, orgID string) (*domain.Organization, error) {
	if m.err != nil {
		return nil, m.err
	}
	org, ok := m.orgs[orgID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return org, nil
}

type mockReportRepository struct {
	labor       []*domain.LaborReportRow
	reliability []*domain.StaffReliabilityRow
	err         error
}

func (m *mockReportRepository) LaborReport(ctx context.Context, orgID string) ([]*domain.LaborReportRow, error) {
	return m.labor, m.err
}

func (m *mockReportRepository) StaffReliability(ctx context.Context, orgID string) ([]*domain.StaffReliabilityRow, error) {
	return m.reliability, m.err
}

type mockExtractor struct {
	outcome *beo.Outcome
	err     error
}

func (m *mockExtractor) Extract(ctx context.Context, filename, mimeType string, data []byte) (*beo.Outcome, error) {
	return m.outcome, m.err
}

type mockFileStore struct {
	keys []string
	err  error
}

func (m *mockFileStore) Put(ctx context.Context, key, contentType string, data []byte) error {
	m.keys = append(m.keys, key)
	return m.err
}

type mockMailer struct {
	sent []string // "to|subject"
	err  error
}

func (m *mockMailer) Send(to, subject, html, text string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, to+"|"+subject)
	return nil
}

type mockRenderer struct {
	err error
}

func (m *mockRenderer) Render(templateName string, data any) (string, string, string, error) {
	if m.err != nil {
		return "", "", "", m.err
	}
	return templateName + " subject", "<p>" + templateName + "</p>", templateName, nil
}

type mockEmailService struct {
	approved []*domain.ShiftDecisionEmailData
	rejected []*domain.ShiftDecisionEmailData
	err      error
}

func (m *mockEmailService) SendShiftApproved(ctx context.Context, data *domain.ShiftDecisionEmailData) error {
	if m.err != nil {
		return m.err
	}
	m.approved = append(m.approved, data)
	return nil
}

func (m *mockEmailService) SendShiftRejected(ctx context.Context, data *domain.ShiftDecisionEmailData) error {
	if m.err != nil {
		return m.err
	}
	m.rejected = append(m.rejected, data)
	return nil
}

type mockHasher struct {
	compareErr error
}

func (m *mockHasher) GenerateSalt() (string, error) { return "salt", nil }

func (m *mockHasher) Hash(salt, password string) (string, error) { return "hash:" + password, nil }

func (m *mockHasher) Compare(hash, salt, password string) error { return m.compareErr }

type mockTokenIssuer struct {
	err error
}

func (m *mockTokenIssuer) Issue(userID, email, role string, expiry time.Duration) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return "token-" + userID, nil
}
