package domain

import (
	"context"
	"time"
)

// Shift request statuses.
const (
	ShiftStatusPending   = "pending"
	ShiftStatusConfirmed = "confirmed"
	ShiftStatusRejected  = "rejected"
)

// ShiftRequest represents a staff member's request to work an event, and the
// attendance record for a confirmed shift. Signatures are the data-URL strings
// captured by the signing sheet in the UI.
// swagger:model ShiftRequest
type ShiftRequest struct {
	ID          string    `json:"id"`
	EventID     string    `json:"event_id"`
	StaffID     string    `json:"staff_id"`
	Status      string    `json:"status"`
	RequestedAt time.Time `json:"requested_at"`

	ApprovedAt *time.Time `json:"approved_at"`
	ApprovedBy *string    `json:"approved_by"`

	CheckInSignature  *string    `json:"check_in_signature"`
	CheckInTime       *time.Time `json:"check_in_time"`
	CheckOutSignature *string    `json:"check_out_signature"`
	CheckOutTime      *time.Time `json:"check_out_time"`

	UniformVerified   bool       `json:"uniform_verified"`
	UniformVerifiedBy *string    `json:"uniform_verified_by"`
	UniformVerifiedAt *time.Time `json:"uniform_verified_at"`
}

// ShiftRequestRepository defines the interface for shift request storage.
type ShiftRequestRepository interface {
	Create(ctx context.Context, req *ShiftRequest) error
	GetByID(ctx context.Context, id string) (*ShiftRequest, error)
	GetByEventAndStaff(ctx context.Context, eventID, staffID string) (*ShiftRequest, error)
	ListByEvent(ctx context.Context, eventID string) ([]*ShiftRequest, error)
	ListByStaff(ctx context.Context, staffID string) ([]*ShiftRequest, error)
	CountConfirmedByEvent(ctx context.Context, eventID string) (int, error)
	SetStatus(ctx context.Context, id, status string, approvedBy *string, approvedAt *time.Time) error
	SetCheckIn(ctx context.Context, id, signature string, at time.Time) error
	SetCheckOut(ctx context.Context, id, signature string, at time.Time) error
	SetUniformVerified(ctx context.Context, id string, verifiedBy string, at time.Time) error
}

// ShiftService defines the shift request lifecycle.
type ShiftService interface {
	// RequestShift creates a pending request. Returns (req, created, err);
	// created is false when the staff member already requested this event.
	RequestShift(ctx context.Context, eventID, staffID string) (*ShiftRequest, bool, error)
	ApproveRequest(ctx context.Context, requestID, adminID string) (*ShiftRequest, error)
	RejectRequest(ctx context.Context, requestID, adminID string) (*ShiftRequest, error)
	CheckIn(ctx context.Context, requestID, staffID, signature string) (*ShiftRequest, error)
	CheckOut(ctx context.Context, requestID, staffID, signature string) (*ShiftRequest, error)
	VerifyUniform(ctx context.Context, requestID, adminID string) (*ShiftRequest, error)
	ListByEvent(ctx context.Context, eventID, callerID string) ([]*ShiftRequest, error)
	ListMine(ctx context.Context, staffID string) ([]*ShiftRequest, error)
}
