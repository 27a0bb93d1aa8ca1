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

const minPasswordLen = 8

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type userService struct {
	profileRepo domain.ProfileRepository
	orgRepo     domain.OrganizationRepository
	hasher      domain.PasswordHasher
	tokenIssuer domain.TokenIssuer
	tokenExpiry time.Duration
}

// NewUserService creates a UserService with the given repositories and auth ports.
func NewUserService(
	profileRepo domain.ProfileRepository,
	orgRepo domain.OrganizationRepository,
	hasher domain.PasswordHasher,
	tokenIssuer domain.TokenIssuer,
	tokenExpiry time.Duration,
) domain.UserService {
	return &userService{
		profileRepo: profileRepo,
		orgRepo:     orgRepo,
		hasher:      hasher,
		tokenIssuer: tokenIssuer,
		tokenExpiry: tokenExpiry,
	}
}

func (s *userService) SignUp(ctx context.Context, email, password, fullName, orgID string) (*domain.Profile, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if !emailRegexp.MatchString(email) {
		return nil, fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
	}
	if len(password) < minPasswordLen {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLen)
	}
	orgID = strings.TrimSpace(orgID)
	if orgID != "" {
		if _, err := s.orgRepo.GetByOrgID(ctx, orgID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("%w: unknown organization %q", domain.ErrInvalidInput, orgID)
			}
			return nil, fmt.Errorf("get organization: %w", err)
		}
	}

	if _, err := s.profileRepo.GetByEmail(ctx, email); err == nil {
		return nil, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get profile by email: %w", err)
	}

	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	hash, err := s.hasher.Hash(salt, password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// The first account of an organization becomes its admin.
	role := domain.RoleStaff
	if orgID != "" {
		count, err := s.profileRepo.CountByOrg(ctx, orgID)
		if err != nil {
			return nil, fmt.Errorf("count profiles: %w", err)
		}
		if count == 0 {
			role = domain.RoleAdmin
		}
	}

	name := strings.TrimSpace(fullName)
	profile := &domain.Profile{
		ID:           uuid.NewString(),
		Email:        email,
		Role:         role,
		Rating:       0,
		Status:       domain.ProfileStatusActive,
		CreatedAt:    time.Now(),
		PasswordHash: hash,
		PasswordSalt: salt,
	}
	if name != "" {
		profile.FullName = &name
	}
	if orgID != "" {
		profile.OrgID = &orgID
	}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	return profile, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (string, *domain.Profile, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	profile, err := s.profileRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, domain.ErrUnauthorized
		}
		return "", nil, fmt.Errorf("get profile by email: %w", err)
	}
	if profile.Status != domain.ProfileStatusActive {
		return "", nil, domain.ErrUnauthorized
	}
	if err := s.hasher.Compare(profile.PasswordHash, profile.PasswordSalt, password); err != nil {
		return "", nil, domain.ErrUnauthorized
	}
	token, err := s.tokenIssuer.Issue(profile.ID, profile.Email, profile.Role, s.tokenExpiry)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return token, profile, nil
}

func (s *userService) GetProfile(ctx context.Context, id string) (*domain.Profile, error) {
	profile, err := s.profileRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return profile, nil
}

func (s *userService) ListStaff(ctx context.Context, callerID string) ([]*domain.Profile, error) {
	caller, err := s.requireAdmin(ctx, callerID)
	if err != nil {
		return nil, err
	}
	orgID := ""
	if caller.OrgID != nil {
		orgID = *caller.OrgID
	}
	staff, err := s.profileRepo.ListStaffByOrg(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("list staff: %w", err)
	}
	if staff == nil {
		staff = []*domain.Profile{}
	}
	return staff, nil
}

func (s *userService) ValidateStaff(ctx context.Context, callerID, staffID string) error {
	if _, err := s.requireAdmin(ctx, callerID); err != nil {
		return err
	}
	if err := s.profileRepo.SetValidated(ctx, staffID, true); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("set validated: %w", err)
	}
	return nil
}

func (s *userService) SetStaffStatus(ctx context.Context, callerID, staffID, status string) error {
	if status != domain.ProfileStatusActive && status != domain.ProfileStatusInactive {
		return fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, status)
	}
	if _, err := s.requireAdmin(ctx, callerID); err != nil {
		return err
	}
	if err := s.profileRepo.SetStatus(ctx, staffID, status); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("set status: %w", err)
	}
	return nil
}

func (s *userService) requireAdmin(ctx context.Context, callerID string) (*domain.Profile, error) {
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
