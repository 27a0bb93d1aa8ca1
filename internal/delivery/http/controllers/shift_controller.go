package controllers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"staffline/internal/delivery/http/helpers"
	"staffline/internal/delivery/http/middleware"
	"staffline/internal/domain"
)

type ShiftController struct {
	Logger  *slog.Logger
	Service domain.ShiftService
}

func NewShiftController(logger *slog.Logger, svc domain.ShiftService) *ShiftController {
	return &ShiftController{
		Logger:  logger,
		Service: svc,
	}
}

// ShiftRequestSuccessResponse is the success response envelope for shift request endpoints.
type ShiftRequestSuccessResponse struct {
	Data  *domain.ShiftRequest `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// ListShiftRequestsSuccessResponse is the success response envelope for shift request list endpoints.
type ListShiftRequestsSuccessResponse struct {
	Data  []*domain.ShiftRequest `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

// RequestShift godoc
// @Summary Request a shift on an event
// @Description Creates a pending shift request for the authenticated staff member on a published event. Requesting the same event twice returns the existing request with 200 instead of creating a duplicate.
// @Tags shifts
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 201 {object} controllers.ShiftRequestSuccessResponse "data contains the new pending request"
// @Success 200 {object} controllers.ShiftRequestSuccessResponse "data contains the already-existing request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (no such published event)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/shift-requests [post]
func (c *ShiftController) RequestShift(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	req, created, err := c.Service.RequestShift(r.Context(), eventID, userID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	helpers.WriteJSONSuccess(w, status, req)
}

// ListByEvent godoc
// @Summary List shift requests for an event
// @Description Returns all shift requests for the event, including attendance records. Admin only.
// @Tags shifts
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.ListShiftRequestsSuccessResponse "data is an array of shift requests"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not admin)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/shift-requests [get]
func (c *ShiftController) ListByEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	requests, err := c.Service.ListByEvent(r.Context(), eventID, userID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	if requests == nil {
		requests = []*domain.ShiftRequest{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, requests)
}

// ListMine godoc
// @Summary List my shift requests
// @Description Returns the authenticated staff member's shift requests across all events.
// @Tags shifts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListShiftRequestsSuccessResponse "data is an array of shift requests"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /shift-requests/me [get]
func (c *ShiftController) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	requests, err := c.Service.ListMine(r.Context(), userID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	if requests == nil {
		requests = []*domain.ShiftRequest{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, requests)
}

// decide is the shared handler body for approve, reject, and verify-uniform:
// path requestID plus the authenticated caller, no request body.
func (c *ShiftController) decide(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, requestID, adminID string) (*domain.ShiftRequest, error)) {
	requestID := r.PathValue("requestID")
	if requestID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing requestID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	req, err := op(r.Context(), requestID, userID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, req)
}

// Approve godoc
// @Summary Approve a shift request
// @Description Confirms a pending shift request and emails the staff member. Admin only. Fails with 409 when the event has no open shifts left; approving an already-confirmed request is a no-op.
// @Tags shifts
// @Produce json
// @Security BearerAuth
// @Param requestID path string true "Shift request ID (UUID)"
// @Success 200 {object} controllers.ShiftRequestSuccessResponse "data contains the confirmed request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not admin)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: bad_request (no open shifts)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /shift-requests/{requestID}/approve [post]
func (c *ShiftController) Approve(w http.ResponseWriter, r *http.Request) {
	c.decide(w, r, c.Service.ApproveRequest)
}

// Reject godoc
// @Summary Reject a shift request
// @Description Rejects a pending shift request and emails the staff member. Admin only.
// @Tags shifts
// @Produce json
// @Security BearerAuth
// @Param requestID path string true "Shift request ID (UUID)"
// @Success 200 {object} controllers.ShiftRequestSuccessResponse "data contains the rejected request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not admin)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /shift-requests/{requestID}/reject [post]
func (c *ShiftController) Reject(w http.ResponseWriter, r *http.Request) {
	c.decide(w, r, c.Service.RejectRequest)
}

// VerifyUniform godoc
// @Summary Verify a staff member's uniform
// @Description Marks the confirmed shift request's uniform as verified by the calling admin. Verifying twice is a no-op.
// @Tags shifts
// @Produce json
// @Security BearerAuth
// @Param requestID path string true "Shift request ID (UUID)"
// @Success 200 {object} controllers.ShiftRequestSuccessResponse "data contains the updated request"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (request not confirmed)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not admin)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /shift-requests/{requestID}/verify-uniform [post]
func (c *ShiftController) VerifyUniform(w http.ResponseWriter, r *http.Request) {
	c.decide(w, r, c.Service.VerifyUniform)
}

// SignatureRequest is the request body for check-in and check-out: the data-URL
// signature string captured by the signing sheet.
type SignatureRequest struct {
	Signature string `json:"signature"`
}

// Validate implements Validator.
func (s SignatureRequest) Validate() []string {
	if strings.TrimSpace(s.Signature) == "" {
		return []string{"signature is required"}
	}
	return nil
}

// attend is the shared handler body for check-in and check-out.
func (c *ShiftController) attend(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, requestID, staffID, signature string) (*domain.ShiftRequest, error)) {
	requestID := r.PathValue("requestID")
	if requestID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing requestID")
		return
	}
	var req SignatureRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	result, err := op(r.Context(), requestID, userID, req.Signature)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}

// CheckIn godoc
// @Summary Check in to a confirmed shift
// @Description Records the staff member's check-in signature and timestamp. Only the request owner may check in, the request must be confirmed, and a second check-in is rejected.
// @Tags shifts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param requestID path string true "Shift request ID (UUID)"
// @Param body body SignatureRequest true "Check-in signature"
// @Success 200 {object} controllers.ShiftRequestSuccessResponse "data contains the updated request"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (missing signature, not confirmed, or already checked in)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not the request owner)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /shift-requests/{requestID}/check-in [post]
func (c *ShiftController) CheckIn(w http.ResponseWriter, r *http.Request) {
	c.attend(w, r, c.Service.CheckIn)
}

// CheckOut godoc
// @Summary Check out of a shift
// @Description Records the staff member's check-out signature and timestamp. Requires a prior check-in on the same request.
// @Tags shifts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param requestID path string true "Shift request ID (UUID)"
// @Param body body SignatureRequest true "Check-out signature"
// @Success 200 {object} controllers.ShiftRequestSuccessResponse "data contains the updated request"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (missing signature or no check-in)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not the request owner)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /shift-requests/{requestID}/check-out [post]
func (c *ShiftController) CheckOut(w http.ResponseWriter, r *http.Request) {
	c.attend(w, r, c.Service.CheckOut)
}
