package domain

import (
	"context"
	"time"
)

// Application roles.
const (
	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
	RoleStaff      = "staff"
)

// Profile statuses.
const (
	ProfileStatusActive   = "active"
	ProfileStatusInactive = "inactive"
)

// Profile represents a registered user of a staffing organization.
// swagger:model Profile
type Profile struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	FullName    *string   `json:"full_name"`
	Role        string    `json:"role"`
	OrgID       *string   `json:"org_id"`
	StaffRole   *string   `json:"staff_role"`
	Rating      float64   `json:"rating"`
	Status      string    `json:"status"`
	IsValidated bool      `json:"is_validated"`
	CreatedAt   time.Time `json:"created_at"`

	PasswordHash string `json:"-"`
	PasswordSalt string `json:"-"`
}

// IsAdmin reports whether the profile may perform admin-only actions.
func (p *Profile) IsAdmin() bool {
	return p.Role == RoleAdmin || p.Role == RoleSuperAdmin
}

// ProfileRepository defines the interface for profile storage.
type ProfileRepository interface {
	Create(ctx context.Context, profile *Profile) error
	GetByID(ctx context.Context, id string) (*Profile, error)
	GetByEmail(ctx context.Context, email string) (*Profile, error)
	CountByOrg(ctx context.Context, orgID string) (int, error)
	ListStaffByOrg(ctx context.Context, orgID string) ([]*Profile, error)
	SetValidated(ctx context.Context, id string, validated bool) error
	SetStatus(ctx context.Context, id, status string) error
}

// PasswordHasher handles salt generation, hashing, and verification.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID, email, role string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated user ID.
type TokenVerifier interface {
	Verify(token string) (userID string, err error)
}

// UserService defines authentication and profile management.
type UserService interface {
	SignUp(ctx context.Context, email, password, fullName, orgID string) (*Profile, error)
	Login(ctx context.Context, email, password string) (token string, profile *Profile, err error)
	GetProfile(ctx context.Context, id string) (*Profile, error)
	ListStaff(ctx context.Context, callerID string) ([]*Profile, error)
	ValidateStaff(ctx context.Context, callerID, staffID string) error
	SetStaffStatus(ctx context.Context, callerID, staffID, status string) error
}
