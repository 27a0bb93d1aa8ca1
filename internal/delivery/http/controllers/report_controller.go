package controllers

import (
	"log/slog"
	"net/http"

	"staffline/internal/delivery/http/helpers"
	"staffline/internal/delivery/http/middleware"
	"staffline/internal/domain"
)

type ReportController struct {
	Logger  *slog.Logger
	Service domain.ReportService
}

func NewReportController(logger *slog.Logger, svc domain.ReportService) *ReportController {
	return &ReportController{
		Logger:  logger,
		Service: svc,
	}
}

// LaborReportSuccessResponse is the success response envelope for GET /reports/labor (200).
type LaborReportSuccessResponse struct {
	Data  []*domain.LaborReportRow `json:"data"`
	Error *helpers.APIError        `json:"error"`
}

// StaffReliabilitySuccessResponse is the success response envelope for GET /reports/reliability (200).
type StaffReliabilitySuccessResponse struct {
	Data  []*domain.StaffReliabilityRow `json:"data"`
	Error *helpers.APIError             `json:"error"`
}

// LaborReport godoc
// @Summary Per-event labor cost report
// @Description Returns worked hours and labor cost per event, computed from check-in/check-out deltas of confirmed shifts. Admin only.
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.LaborReportSuccessResponse "data is an array of per-event rows"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not admin)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /reports/labor [get]
func (c *ReportController) LaborReport(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	rows, err := c.Service.LaborReport(r.Context(), userID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	if rows == nil {
		rows = []*domain.LaborReportRow{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, rows)
}

// StaffReliability godoc
// @Summary Staff reliability report
// @Description Returns per-staff shift counts with on-time and late check-in tallies (on time means checked in at or before event start). Admin only.
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.StaffReliabilitySuccessResponse "data is an array of per-staff rows"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not admin)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /reports/reliability [get]
func (c *ReportController) StaffReliability(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	rows, err := c.Service.StaffReliability(r.Context(), userID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	if rows == nil {
		rows = []*domain.StaffReliabilityRow{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, rows)
}
