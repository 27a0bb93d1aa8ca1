package domain

import (
	"context"
	"time"
)

// Event statuses. Draft events are only visible to admins; publishing is an
// explicit transition and is never performed by the extraction pipeline.
const (
	EventStatusDraft     = "draft"
	EventStatusPublished = "published"
)

// Staff roles an event can require.
const (
	StaffRoleServer    = "Server"
	StaffRoleBartender = "Bartender"
	StaffRoleHost      = "Host"
)

// Event represents a catering or banquet event with open staff positions.
// EventDate is YYYY-MM-DD; StartTime and EndTime are HH:MM, 24-hour.
// swagger:model Event
type Event struct {
	ID                  string    `json:"id"`
	Title               string    `json:"title"`
	EventDate           string    `json:"event_date"`
	Venue               string    `json:"venue"`
	DressCode           string    `json:"dress_code"`
	OpenShifts          int       `json:"open_shifts"`
	RoleRequired        string    `json:"role_required"`
	StartTime           string    `json:"start_time"`
	EndTime             string    `json:"end_time"`
	HourlyRate          *float64  `json:"hourly_rate"`
	UniformRequirements *string   `json:"uniform_requirements"`
	Description         *string   `json:"description"`
	Status              string    `json:"status"`
	BEOSource           *string   `json:"beo_source"`
	CreatedBy           *string   `json:"created_by"`
	OrgID               *string   `json:"org_id"`
	CreatedAt           time.Time `json:"created_at"`
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	ListByOrg(ctx context.Context, orgID string) ([]*Event, error)
	ListPublishedByOrg(ctx context.Context, orgID string) ([]*Event, error)
	Update(ctx context.Context, event *Event) error
	SetStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}

// EventUpdate carries the optional fields of a PATCH; nil means unchanged.
type EventUpdate struct {
	Title               *string
	EventDate           *string
	Venue               *string
	DressCode           *string
	OpenShifts          *int
	RoleRequired        *string
	StartTime           *string
	EndTime             *string
	HourlyRate          *float64
	UniformRequirements *string
	Description         *string
}

// EventService defines admin-facing event management.
type EventService interface {
	CreateEvent(ctx context.Context, callerID string, event *Event) error
	GetEvent(ctx context.Context, callerID, eventID string) (*Event, error)
	ListEvents(ctx context.Context, callerID string) ([]*Event, error)
	UpdateEvent(ctx context.Context, callerID, eventID string, upd EventUpdate) (*Event, error)
	PublishEvent(ctx context.Context, callerID, eventID string) (*Event, error)
	DeleteEvent(ctx context.Context, callerID, eventID string) error
}
