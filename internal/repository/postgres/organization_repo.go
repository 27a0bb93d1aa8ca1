package postgres

import (
	"context"
	"database/sql"
	"errors"

	"staffline/internal/domain"
)

type organizationRepository struct {
	DB *sql.DB
}

func NewOrganizationRepository(db *sql.DB) domain.OrganizationRepository {
	return &organizationRepository{
		DB: db,
	}
}

func (r *organizationRepository) Create(ctx context.Context, org *domain.Organization) error {
	query := `
		INSERT INTO organizations (id, org_id, name, logo_url, primary_color, billing_status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.DB.ExecContext(ctx, query,
		org.ID, org.OrgID, org.Name, org.LogoURL, org.PrimaryColor, org.BillingStatus, org.CreatedAt,
	)
	return err
}

func (r *organizationRepository) GetByOrgID(ctx context.Context, orgID string) (*domain.Organization, error) {
	query := `
		SELECT id, org_id, name, logo_url, primary_color, billing_status, created_at
		FROM organizations
		WHERE org_id = $1
	`
	org := &domain.Organization{}
	var logoNull, colorNull, billingNull sql.NullString
	err := r.DB.QueryRowContext(ctx, query, orgID).Scan(
		&org.ID, &org.OrgID, &org.Name, &logoNull, &colorNull, &billingNull, &org.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if logoNull.Valid {
		org.LogoURL = &logoNull.String
	}
	if colorNull.Valid {
		org.PrimaryColor = &colorNull.String
	}
	if billingNull.Valid {
		org.BillingStatus = &billingNull.String
	}
	return org, nil
}
