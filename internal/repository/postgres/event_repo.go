package postgres

import (
	"context"
	"database/sql"
	"errors"

	"staffline/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

const eventColumns = `id, title, event_date, venue, dress_code, open_shifts, role_required,
	start_time, end_time, hourly_rate, uniform_requirements, description, status,
	beo_source, created_by, org_id, created_at`

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (id, title, event_date, venue, dress_code, open_shifts, role_required,
			start_time, end_time, hourly_rate, uniform_requirements, description, status,
			beo_source, created_by, org_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`
	_, err := r.DB.ExecContext(ctx, query,
		e.ID, e.Title, e.EventDate, e.Venue, e.DressCode, e.OpenShifts, e.RoleRequired,
		e.StartTime, e.EndTime, e.HourlyRate, e.UniformRequirements, e.Description, e.Status,
		e.BEOSource, e.CreatedBy, e.OrgID, e.CreatedAt,
	)
	return err
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) ListByOrg(ctx context.Context, orgID string) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE org_id IS NOT DISTINCT FROM NULLIF($1, '') ORDER BY event_date, created_at`
	return r.list(ctx, query, orgID)
}

func (r *eventRepository) ListPublishedByOrg(ctx context.Context, orgID string) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE org_id IS NOT DISTINCT FROM NULLIF($1, '') AND status = $2 ORDER BY event_date, created_at`
	return r.list(ctx, query, orgID, domain.EventStatusPublished)
}

func (r *eventRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Event, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	query := `
		UPDATE events
		SET title = $2, event_date = $3, venue = $4, dress_code = $5, open_shifts = $6,
			role_required = $7, start_time = $8, end_time = $9, hourly_rate = $10,
			uniform_requirements = $11, description = $12
		WHERE id = $1
	`
	result, err := r.DB.ExecContext(ctx, query,
		e.ID, e.Title, e.EventDate, e.Venue, e.DressCode, e.OpenShifts,
		e.RoleRequired, e.StartTime, e.EndTime, e.HourlyRate,
		e.UniformRequirements, e.Description,
	)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) SetStatus(ctx context.Context, id, status string) error {
	query := `UPDATE events SET status = $2 WHERE id = $1`
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

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM events WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	var rateNull sql.NullFloat64
	var uniformNull, descNull, sourceNull, createdByNull, orgNull sql.NullString
	err := row.Scan(
		&e.ID, &e.Title, &e.EventDate, &e.Venue, &e.DressCode, &e.OpenShifts, &e.RoleRequired,
		&e.StartTime, &e.EndTime, &rateNull, &uniformNull, &descNull, &e.Status,
		&sourceNull, &createdByNull, &orgNull, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if rateNull.Valid {
		e.HourlyRate = &rateNull.Float64
	}
	if uniformNull.Valid {
		e.UniformRequirements = &uniformNull.String
	}
	if descNull.Valid {
		e.Description = &descNull.String
	}
	if sourceNull.Valid {
		e.BEOSource = &sourceNull.String
	}
	if createdByNull.Valid {
		e.CreatedBy = &createdByNull.String
	}
	if orgNull.Valid {
		e.OrgID = &orgNull.String
	}
	return e, nil
}
