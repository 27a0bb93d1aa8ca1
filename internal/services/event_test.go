package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staffline/internal/domain"
)

func TestEventService_CreateEvent(t *testing.T) {
	eventRepo := &mockEventRepository{}
	profileRepo := &mockProfileRepository{profiles: map[string]*domain.Profile{"admin-1": adminProfile()}}
	svc := NewEventService(eventRepo, profileRepo)

	ev := &domain.Event{
		Title:        "Charity Auction",
		EventDate:    "2025-05-01",
		Venue:        "Harmony Hall",
		OpenShifts:   3,
		RoleRequired: domain.StaffRoleServer,
		StartTime:    "17:00",
		EndTime:      "22:00",
	}
	err := svc.CreateEvent(context.Background(), "admin-1", ev)
	require.NoError(t, err)

	require.Len(t, eventRepo.created, 1)
	got := eventRepo.created[0]
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, domain.EventStatusDraft, got.Status)
	require.NotNil(t, got.CreatedBy)
	assert.Equal(t, "admin-1", *got.CreatedBy)
	require.NotNil(t, got.OrgID)
	assert.Equal(t, "acme", *got.OrgID)
}

func TestEventService_CreateEvent_validation(t *testing.T) {
	profileRepo := &mockProfileRepository{profiles: map[string]*domain.Profile{"admin-1": adminProfile()}}
	svc := NewEventService(&mockEventRepository{}, profileRepo)

	tests := []struct {
		name  string
		event *domain.Event
	}{
		{"missing title", &domain.Event{Title: "  "}},
		{"bad date", &domain.Event{Title: "X", EventDate: "25/12/2024"}},
		{"bad start time", &domain.Event{Title: "X", StartTime: "6pm"}},
		{"bad end time", &domain.Event{Title: "X", EndTime: "25:99x"}},
		{"unknown role", &domain.Event{Title: "X", RoleRequired: "Chef"}},
		{"negative open shifts", &domain.Event{Title: "X", OpenShifts: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.CreateEvent(context.Background(), "admin-1", tt.event)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestEventService_CreateEvent_staffForbidden(t *testing.T) {
	profileRepo := &mockProfileRepository{profiles: map[string]*domain.Profile{"staff-1": staffProfile()}}
	svc := NewEventService(&mockEventRepository{}, profileRepo)

	err := svc.CreateEvent(context.Background(), "staff-1", &domain.Event{Title: "X"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestEventService_GetEvent_draftHiddenFromStaff(t *testing.T) {
	draft := &domain.Event{ID: "e1", Title: "Secret", Status: domain.EventStatusDraft}
	eventRepo := &mockEventRepository{events: map[string]*domain.Event{"e1": draft}}
	profileRepo := &mockProfileRepository{profiles: map[string]*domain.Profile{
		"admin-1": adminProfile(),
		"staff-1": staffProfile(),
	}}
	svc := NewEventService(eventRepo, profileRepo)

	_, err := svc.GetEvent(context.Background(), "staff-1", "e1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := svc.GetEvent(context.Background(), "admin-1", "e1")
	require.NoError(t, err)
	assert.Equal(t, "Secret", got.Title)
}

func TestEventService_ListEvents_byRole(t *testing.T) {
	eventRepo := &mockEventRepository{events: map[string]*domain.Event{
		"e1": {ID: "e1", Status: domain.EventStatusDraft},
		"e2": {ID: "e2", Status: domain.EventStatusPublished},
	}}
	profileRepo := &mockProfileRepository{profiles: map[string]*domain.Profile{
		"admin-1": adminProfile(),
		"staff-1": staffProfile(),
	}}
	svc := NewEventService(eventRepo, profileRepo)

	all, err := svc.ListEvents(context.Background(), "admin-1")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	visible, err := svc.ListEvents(context.Background(), "staff-1")
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "e2", visible[0].ID)
}

func TestEventService_UpdateEvent(t *testing.T) {
	ev := &domain.Event{ID: "e1", Title: "Old Title", EventDate: "2025-05-01", Status: domain.EventStatusDraft}
	eventRepo := &mockEventRepository{events: map[string]*domain.Event{"e1": ev}}
	profileRepo := &mockProfileRepository{profiles: map[string]*domain.Profile{"admin-1": adminProfile()}}
	svc := NewEventService(eventRepo, profileRepo)

	newTitle := "New Title"
	shifts := 7
	got, err := svc.UpdateEvent(context.Background(), "admin-1", "e1", domain.EventUpdate{
		Title:      &newTitle,
		OpenShifts: &shifts,
	})
	require.NoError(t, err)
	assert.Equal(t, "New Title", got.Title)
	assert.Equal(t, 7, got.OpenShifts)
	assert.Equal(t, "2025-05-01", got.EventDate) // untouched fields survive
	assert.Len(t, eventRepo.updated, 1)
}

func TestEventService_PublishEvent(t *testing.T) {
	ev := &domain.Event{ID: "e1", Title: "Gala", Status: domain.EventStatusDraft}
	eventRepo := &mockEventRepository{events: map[string]*domain.Event{"e1": ev}}
	profileRepo := &mockProfileRepository{profiles: map[string]*domain.Profile{"admin-1": adminProfile()}}
	svc := NewEventService(eventRepo, profileRepo)

	got, err := svc.PublishEvent(context.Background(), "admin-1", "e1")
	require.NoError(t, err)
	assert.Equal(t, domain.EventStatusPublished, got.Status)
	assert.Equal(t, domain.EventStatusPublished, eventRepo.status["e1"])
}

func TestEventService_PublishEvent_alreadyPublished(t *testing.T) {
	ev := &domain.Event{ID: "e1", Title: "Gala", Status: domain.EventStatusPublished}
	eventRepo := &mockEventRepository{events: map[string]*domain.Event{"e1": ev}}
	profileRepo := &mockProfileRepository{profiles: map[string]*domain.Profile{"admin-1": adminProfile()}}
	svc := NewEventService(eventRepo, profileRepo)

	got, err := svc.PublishEvent(context.Background(), "admin-1", "e1")
	require.NoError(t, err)
	assert.Equal(t, domain.EventStatusPublished, got.Status)
	assert.Empty(t, eventRepo.status)
}

func TestEventService_DeleteEvent(t *testing.T) {
	ev := &domain.Event{ID: "e1", Status: domain.EventStatusDraft}
	eventRepo := &mockEventRepository{events: map[string]*domain.Event{"e1": ev}}
	profileRepo := &mockProfileRepository{profiles: map[string]*domain.Profile{"admin-1": adminProfile()}}
	svc := NewEventService(eventRepo, profileRepo)

	require.NoError(t, svc.DeleteEvent(context.Background(), "admin-1", "e1"))
	assert.Equal(t, []string{"e1"}, eventRepo.deleted)

	err := svc.DeleteEvent(context.Background(), "admin-1", "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
