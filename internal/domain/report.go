package domain

import "context"

// LaborReportRow summarizes staffing cost for a single event. Hours are
// derived from check-in/check-out deltas of confirmed shifts.
// swagger:model LaborReportRow
type LaborReportRow struct {
	EventID          string   `json:"event_id"`
	EventName        string   `json:"event_name"`
	EventDate        string   `json:"event_date"`
	Venue            string   `json:"venue"`
	HourlyRate       *float64 `json:"hourly_rate"`
	PositionsNeeded  int      `json:"positions_needed"`
	TotalStaff       int      `json:"total_staff"`
	TotalHoursWorked float64  `json:"total_hours_worked"`
	TotalLaborCost   float64  `json:"total_labor_cost"`
}

// StaffReliabilityRow summarizes a staff member's attendance record.
// A shift counts as on time when check-in happened at or before event start.
// swagger:model StaffReliabilityRow
type StaffReliabilityRow struct {
	StaffID     string  `json:"staff_id"`
	FullName    string  `json:"full_name"`
	Email       string  `json:"email"`
	StaffRole   *string `json:"staff_role"`
	TotalShifts int     `json:"total_shifts"`
	OnTimeCount int     `json:"on_time_count"`
	LateCount   int     `json:"late_count"`
}

// ReportRepository runs the aggregate report queries.
type ReportRepository interface {
	LaborReport(ctx context.Context, orgID string) ([]*LaborReportRow, error)
	StaffReliability(ctx context.Context, orgID string) ([]*StaffReliabilityRow, error)
}

// ReportService exposes reports to admins.
type ReportService interface {
	LaborReport(ctx context.Context, callerID string) ([]*LaborReportRow, error)
	StaffReliability(ctx context.Context, callerID string) ([]*StaffReliabilityRow, error)
}
