package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"staffline/internal/domain"
)

type shiftRequestRepository struct {
	DB *sql.DB
}

func NewShiftRequestRepository(db *sql.DB) domain.ShiftRequestRepository {
	return &shiftRequestRepository{
		DB: db,
	}
}

const shiftRequestColumns = `id, event_id, staff_id, status, requested_at, approved_at, approved_by,
	check_in_signature, check_in_time, check_out_signature, check_out_time,
	uniform_verified, uniform_verified_by, uniform_verified_at`

func (r *shiftRequestRepository) Create(ctx context.Context, req *domain.ShiftRequest) error {
	query := `
		INSERT INTO shift_requests (id, event_id, staff_id, status, requested_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.DB.ExecContext(ctx, query, req.ID, req.EventID, req.StaffID, req.Status, req.RequestedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.ErrAlreadyRequested
		}
		return err
	}
	return nil
}

func (r *shiftRequestRepository) GetByID(ctx context.Context, id string) (*domain.ShiftRequest, error) {
	query := `SELECT ` + shiftRequestColumns + ` FROM shift_requests WHERE id = $1`
	return r.getOne(ctx, query, id)
}

func (r *shiftRequestRepository) GetByEventAndStaff(ctx context.Context, eventID, staffID string) (*domain.ShiftRequest, error) {
	query := `SELECT ` + shiftRequestColumns + ` FROM shift_requests WHERE event_id = $1 AND staff_id = $2`
	req, err := scanShiftRequest(r.DB.QueryRowContext(ctx, query, eventID, staffID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return req, nil
}

func (r *shiftRequestRepository) getOne(ctx context.Context, query string, arg any) (*domain.ShiftRequest, error) {
	req, err := scanShiftRequest(r.DB.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return req, nil
}

func (r *shiftRequestRepository) ListByEvent(ctx context.Context, eventID string) ([]*domain.ShiftRequest, error) {
	query := `SELECT ` + shiftRequestColumns + ` FROM shift_requests WHERE event_id = $1 ORDER BY requested_at`
	return r.list(ctx, query, eventID)
}

func (r *shiftRequestRepository) ListByStaff(ctx context.Context, staffID string) ([]*domain.ShiftRequest, error) {
	query := `SELECT ` + shiftRequestColumns + ` FROM shift_requests WHERE staff_id = $1 ORDER BY requested_at DESC`
	return r.list(ctx, query, staffID)
}

func (r *shiftRequestRepository) list(ctx context.Context, query string, args ...any) ([]*domain.ShiftRequest, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	reqs := make([]*domain.ShiftRequest, 0)
	for rows.Next() {
		req, err := scanShiftRequest(rows)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}

func (r *shiftRequestRepository) CountConfirmedByEvent(ctx context.Context, eventID string) (int, error) {
	query := `SELECT COUNT(*) FROM shift_requests WHERE event_id = $1 AND status = $2`
	var count int
	if err := r.DB.QueryRowContext(ctx, query, eventID, domain.ShiftStatusConfirmed).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *shiftRequestRepository) SetStatus(ctx context.Context, id, status string, approvedBy *string, approvedAt *time.Time) error {
	query := `UPDATE shift_requests SET status = $2, approved_by = $3, approved_at = $4 WHERE id = $1`
	return r.exec(ctx, query, id, status, approvedBy, approvedAt)
}

func (r *shiftRequestRepository) SetCheckIn(ctx context.Context, id, signature string, at time.Time) error {
	query := `UPDATE shift_requests SET check_in_signature = $2, check_in_time = $3 WHERE id = $1`
	return r.exec(ctx, query, id, signature, at)
}

func (r *shiftRequestRepository) SetCheckOut(ctx context.Context, id, signature string, at time.Time) error {
	query := `UPDATE shift_requests SET check_out_signature = $2, check_out_time = $3 WHERE id = $1`
	return r.exec(ctx, query, id, signature, at)
}

func (r *shiftRequestRepository) SetUniformVerified(ctx context.Context, id, verifiedBy string, at time.Time) error {
	query := `UPDATE shift_requests SET uniform_verified = TRUE, uniform_verified_by = $2, uniform_verified_at = $3 WHERE id = $1`
	return r.exec(ctx, query, id, verifiedBy, at)
}

func (r *shiftRequestRepository) exec(ctx context.Context, query string, args ...any) error {
	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanShiftRequest(row rowScanner) (*domain.ShiftRequest, error) {
	req := &domain.ShiftRequest{}
	var approvedAtNull, checkInTimeNull, checkOutTimeNull, verifiedAtNull sql.NullTime
	var approvedByNull, checkInSigNull, checkOutSigNull, verifiedByNull sql.NullString
	err := row.Scan(
		&req.ID, &req.EventID, &req.StaffID, &req.Status, &req.RequestedAt,
		&approvedAtNull, &approvedByNull,
		&checkInSigNull, &checkInTimeNull, &checkOutSigNull, &checkOutTimeNull,
		&req.UniformVerified, &verifiedByNull, &verifiedAtNull,
	)
	if err != nil {
		return nil, err
	}
	if approvedAtNull.Valid {
		req.ApprovedAt = &approvedAtNull.Time
	}
	if approvedByNull.Valid {
		req.ApprovedBy = &approvedByNull.String
	}
	if checkInSigNull.Valid {
		req.CheckInSignature = &checkInSigNull.String
	}
	if checkInTimeNull.Valid {
		req.CheckInTime = &checkInTimeNull.Time
	}
	if checkOutSigNull.Valid {
		req.CheckOutSignature = &checkOutSigNull.String
	}
	if checkOutTimeNull.Valid {
		req.CheckOutTime = &checkOutTimeNull.Time
	}
	if verifiedByNull.Valid {
		req.UniformVerifiedBy = &verifiedByNull.String
	}
	if verifiedAtNull.Valid {
		req.UniformVerifiedAt = &verifiedAtNull.Time
	}
	return req, nil
}
