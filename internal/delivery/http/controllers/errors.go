package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"staffline/internal/beo"
	"staffline/internal/delivery/http/helpers"
	"staffline/internal/domain"
)

// writeServiceError maps service-layer errors to the response envelope.
// Extraction errors keep their user-facing message plus detail; unknown errors
// are logged and returned as opaque 500s.
func writeServiceError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	var xerr *beo.ExtractionError
	switch {
	case errors.As(err, &xerr):
		code := helpers.ErrCodeExtractionFailed
		if xerr.Code == beo.ErrCodeUnsupportedFile {
			code = helpers.ErrCodeUnsupportedFile
		}
		helpers.WriteJSONErrorDetail(w, http.StatusBadRequest, code, xerr.Message, xerr.Detail)
	case errors.Is(err, domain.ErrUnauthorized):
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "forbidden")
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "not found")
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrDuplicateEmail):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrNoOpenShifts):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeBadRequest, err.Error())
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
	}
}
