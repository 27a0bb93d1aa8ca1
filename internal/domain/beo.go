package domain

import (
	"context"

	"staffline/internal/beo"
)

// UploadResult is what a BEO upload returns: the raw extraction, the draft
// event materialized from it, and provenance for the UI.
// swagger:model UploadResult
type UploadResult struct {
	Extracted  beo.ExtractedEventData `json:"extracted_data"`
	Event      *Event                 `json:"event"`
	Method     string                 `json:"extraction_method"`
	TextLength int                    `json:"text_length"`
}

// BEOService turns uploaded BEO documents (or manual field entry) into draft events.
type BEOService interface {
	ProcessUpload(ctx context.Context, callerID, filename, mimeType string, data []byte) (*UploadResult, error)
	CreateManualDraft(ctx context.Context, callerID string, data beo.ExtractedEventData) (*Event, error)
}
