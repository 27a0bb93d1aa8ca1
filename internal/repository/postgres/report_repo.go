package postgres

import (
	"context"
	"database/sql"

	"staffline/internal/domain"
)

type reportRepository struct {
	DB *sql.DB
}

func NewReportRepository(db *sql.DB) domain.ReportRepository {
	return &reportRepository{
		DB: db,
	}
}

// LaborReport aggregates hours from check-in/check-out deltas of confirmed
// shifts; cost applies the event's hourly rate to those hours.
func (r *reportRepository) LaborReport(ctx context.Context, orgID string) ([]*domain.LaborReportRow, error) {
	query := `
		SELECT e.id, e.title, e.event_date, e.venue, e.hourly_rate, e.open_shifts,
			COUNT(sr.id) AS total_staff,
			COALESCE(SUM(
				EXTRACT(EPOCH FROM (sr.check_out_time - sr.check_in_time)) / 3600.0
			) FILTER (WHERE sr.check_in_time IS NOT NULL AND sr.check_out_time IS NOT NULL), 0) AS total_hours,
			COALESCE(SUM(
				EXTRACT(EPOCH FROM (sr.check_out_time - sr.check_in_time)) / 3600.0
			) FILTER (WHERE sr.check_in_time IS NOT NULL AND sr.check_out_time IS NOT NULL), 0) * COALESCE(e.hourly_rate, 0) AS total_cost
		FROM events e
		LEFT JOIN shift_requests sr ON sr.event_id = e.id AND sr.status = 'confirmed'
		WHERE e.org_id IS NOT DISTINCT FROM NULLIF($1, '')
		GROUP BY e.id, e.title, e.event_date, e.venue, e.hourly_rate, e.open_shifts
		ORDER BY e.event_date, e.title
	`
	rows, err := r.DB.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	report := make([]*domain.LaborReportRow, 0)
	for rows.Next() {
		row := &domain.LaborReportRow{}
		var rateNull sql.NullFloat64
		if err := rows.Scan(
			&row.EventID, &row.EventName, &row.EventDate, &row.Venue, &rateNull,
			&row.PositionsNeeded, &row.TotalStaff, &row.TotalHoursWorked, &row.TotalLaborCost,
		); err != nil {
			return nil, err
		}
		if rateNull.Valid {
			row.HourlyRate = &rateNull.Float64
		}
		report = append(report, row)
	}
	return report, rows.Err()
}

// StaffReliability counts a confirmed shift as on time when check-in happened
// at or before the event's start time.
func (r *reportRepository) StaffReliability(ctx context.Context, orgID string) ([]*domain.StaffReliabilityRow, error) {
	query := `
		SELECT p.id, COALESCE(p.full_name, ''), p.email, p.staff_role,
			COUNT(sr.id) AS total_shifts,
			COUNT(sr.id) FILTER (
				WHERE sr.check_in_time IS NOT NULL AND to_char(sr.check_in_time, 'HH24:MI') <= e.start_time
			) AS on_time_count,
			COUNT(sr.id) FILTER (
				WHERE sr.check_in_time IS NOT NULL AND to_char(sr.check_in_time, 'HH24:MI') > e.start_time
			) AS late_count
		FROM profiles p
		JOIN shift_requests sr ON sr.staff_id = p.id AND sr.status = 'confirmed'
		JOIN events e ON e.id = sr.event_id
		WHERE p.org_id IS NOT DISTINCT FROM NULLIF($1, '')
		GROUP BY p.id, p.full_name, p.email, p.staff_role
		ORDER BY COALESCE(p.full_name, ''), p.email
	`
	rows, err := r.DB.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	report := make([]*domain.StaffReliabilityRow, 0)
	for rows.Next() {
		row := &domain.StaffReliabilityRow{}
		var staffRoleNull sql.NullString
		if err := rows.Scan(
			&row.StaffID, &row.FullName, &row.Email, &staffRoleNull,
			&row.TotalShifts, &row.OnTimeCount, &row.LateCount,
		); err != nil {
			return nil, err
		}
		if staffRoleNull.Valid {
			row.StaffRole = &staffRoleNull.String
		}
		report = append(report, row)
	}
	return report, rows.Err()
}
