package controllers

import (
	"io"
	"log/slog"
	"net/http"
	"strings"

	"staffline/internal/beo"
	"staffline/internal/delivery/http/helpers"
	"staffline/internal/delivery/http/middleware"
	"staffline/internal/domain"
)

// maxUploadBytes caps the in-memory portion of a multipart BEO upload.
const maxUploadBytes = 32 << 20

type BEOController struct {
	Logger  *slog.Logger
	Service domain.BEOService
}

func NewBEOController(logger *slog.Logger, svc domain.BEOService) *BEOController {
	return &BEOController{
		Logger:  logger,
		Service: svc,
	}
}

// UploadSuccessResponse is the success response envelope for POST /beo/upload (201).
type UploadSuccessResponse struct {
	Data  *domain.UploadResult `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// Upload godoc
// @Summary Upload a BEO document
// @Description Accepts a BEO (Banquet Event Order) as PDF, Excel (.xlsx/.xls), or CSV in the multipart field "file", runs field extraction, and creates a draft event from the result. The draft is never auto-published. Admin only unless staff uploads are enabled.
// @Tags beo
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "BEO document (PDF, .xlsx, .xls, or .csv)"
// @Success 201 {object} controllers.UploadSuccessResponse "data contains extracted fields, the draft event, and extraction provenance"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request, unsupported_file, or extraction_failed (message plus detail)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (staff uploads disabled)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /beo/upload [post]
func (c *BEOController) Upload(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing file field")
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "could not read upload")
		return
	}
	mimeType := header.Header.Get("Content-Type")
	result, err := c.Service.ProcessUpload(r.Context(), userID, header.Filename, mimeType, data)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, result)
}

// ManualEntryRequest is the request body for POST /beo/manual. All fields are
// optional: missing values get the same defaults an upload would.
type ManualEntryRequest struct {
	EventName  string `json:"eventName"`
	Date       string `json:"date"`
	Venue      string `json:"venue"`
	GuestCount int    `json:"guestCount"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
}

// Validate implements Validator.
func (m ManualEntryRequest) Validate() []string {
	var errs []string
	if m.GuestCount < 0 {
		errs = append(errs, "guestCount must be non-negative")
	}
	if m.Date != "" && !dateRegex.MatchString(strings.TrimSpace(m.Date)) {
		errs = append(errs, "date must be YYYY-MM-DD")
	}
	return errs
}

// ManualEntrySuccessResponse is the success response envelope for POST /beo/manual (201).
type ManualEntrySuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ManualEntry godoc
// @Summary Create a draft event from manual field entry
// @Description Creates a draft event from hand-entered BEO fields, applying the same defaults as an upload (Untitled Event, today, TBD, 00:00, shift count from guests). Admin only unless staff uploads are enabled.
// @Tags beo
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ManualEntryRequest true "BEO fields (all optional)"
// @Success 201 {object} controllers.ManualEntrySuccessResponse "data contains the created draft event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /beo/manual [post]
func (c *BEOController) ManualEntry(w http.ResponseWriter, r *http.Request) {
	var req ManualEntryRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	event, err := c.Service.CreateManualDraft(r.Context(), userID, beo.ExtractedEventData{
		EventName:  strings.TrimSpace(req.EventName),
		Date:       strings.TrimSpace(req.Date),
		Venue:      strings.TrimSpace(req.Venue),
		GuestCount: req.GuestCount,
		StartTime:  strings.TrimSpace(req.StartTime),
		EndTime:    strings.TrimSpace(req.EndTime),
	})
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}
