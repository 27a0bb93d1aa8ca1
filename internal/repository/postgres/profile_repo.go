package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/lib/pq"

	"staffline/internal/domain"
)

type profileRepository struct {
	DB *sql.DB
}

func NewProfileRepository(db *sql.DB) domain.ProfileRepository {
	return &profileRepository{
		DB: db,
	}
}

const profileColumns = `id, email, full_name, role, org_id, staff_role, rating, status,
	is_validated, password_hash, password_salt, created_at`

func (r *profileRepository) Create(ctx context.Context, p *domain.Profile) error {
	query := `
		INSERT INTO profiles (id, email, full_name, role, org_id, staff_role, rating, status,
			is_validated, password_hash, password_salt, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.DB.ExecContext(ctx, query,
		p.ID, p.Email, p.FullName, p.Role, p.OrgID, p.StaffRole, p.Rating, p.Status,
		p.IsValidated, p.PasswordHash, p.PasswordSalt, p.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	return r.getOne(ctx, query, id)
}

func (r *profileRepository) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE email = $1`
	return r.getOne(ctx, query, strings.ToLower(strings.TrimSpace(email)))
}

func (r *profileRepository) getOne(ctx context.Context, query string, arg any) (*domain.Profile, error) {
	p, err := scanProfile(r.DB.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *profileRepository) CountByOrg(ctx context.Context, orgID string) (int, error) {
	query := `SELECT COUNT(*) FROM profiles WHERE org_id = $1`
	var count int
	if err := r.DB.QueryRowContext(ctx, query, orgID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *profileRepository) ListStaffByOrg(ctx context.Context, orgID string) ([]*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles
		WHERE org_id IS NOT DISTINCT FROM NULLIF($1, '') AND role = $2
		ORDER BY created_at`
	rows, err := r.DB.QueryContext(ctx, query, orgID, domain.RoleStaff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	profiles := make([]*domain.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func (r *profileRepository) SetValidated(ctx context.Context, id string, validated bool) error {
	query := `UPDATE profiles SET is_validated = $2 WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id, validated)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *profileRepository) SetStatus(ctx context.Context, id, status string) error {
	query := `UPDATE profiles SET status = $2 WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id, status)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanProfile(row rowScanner) (*domain.Profile, error) {
	p := &domain.Profile{}
	var nameNull, orgNull, staffRoleNull sql.NullString
	err := row.Scan(
		&p.ID, &p.Email, &nameNull, &p.Role, &orgNull, &staffRoleNull, &p.Rating, &p.Status,
		&p.IsValidated, &p.PasswordHash, &p.PasswordSalt, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if nameNull.Valid {
		p.FullName = &nameNull.String
	}
	if orgNull.Valid {
		p.OrgID = &orgNull.String
	}
	if staffRoleNull.Valid {
		p.StaffRole = &staffRoleNull.String
	}
	return p, nil
}
