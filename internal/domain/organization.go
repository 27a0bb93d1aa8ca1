package domain

import (
	"context"
	"time"
)

// Organization represents a staffing company (a tenant).
// swagger:model Organization
type Organization struct {
	ID            string    `json:"id"`
	OrgID         string    `json:"org_id"`
	Name          string    `json:"name"`
	LogoURL       *string   `json:"logo_url"`
	PrimaryColor  *string   `json:"primary_color"`
	BillingStatus *string   `json:"billing_status"`
	CreatedAt     time.Time `json:"created_at"`
}

// OrganizationRepository defines the interface for organization storage.
type OrganizationRepository interface {
	Create(ctx context.Context, org *Organization) error
	GetByOrgID(ctx context.Context, orgID string) (*Organization, error)
}
