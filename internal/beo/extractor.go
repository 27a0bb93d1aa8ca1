// Package beo extracts structured event data from uploaded Banquet Event
// Order documents (PDF, Excel, CSV). Extraction is best-effort: every field
// is independently optional and the empty string / zero value means "not
// found".
package beo

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
)

// Extraction methods, reported for diagnostics only.
const (
	MethodTextExtraction  = "text_extraction"
	MethodExcelStructured = "excel_structured"
	MethodExcelHybrid     = "excel_hybrid"
	MethodOCR             = "ocr"
)

// ExtractedEventData is the canonical output of any extraction path.
// Date is YYYY-MM-DD, times are HH:MM 24-hour; empty string / 0 means the
// field was not found.
type ExtractedEventData struct {
	EventName  string `json:"eventName"`
	Date       string `json:"date"`
	Venue      string `json:"venue"`
	GuestCount int    `json:"guestCount"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
}

// Outcome wraps extracted data with provenance: which method produced it and
// how much intermediate raw text was involved (0 for a purely structured
// spreadsheet pass).
type Outcome struct {
	Data    ExtractedEventData `json:"data"`
	Method  string             `json:"method"`
	TextLen int                `json:"text_len"`
}

// Error codes for extraction failures.
const (
	ErrCodeUnsupportedFile  = "unsupported_file"
	ErrCodeSpreadsheetParse = "spreadsheet_parse_failed"
	ErrCodePDFUnreadable    = "pdf_unreadable"
)

// ExtractionError is a fatal extraction failure. Message is safe to show to
// end users; Detail carries the underlying parser/tool output for support.
type ExtractionError struct {
	Code    string
	Message string
	Detail  string
}

func (e *ExtractionError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Config holds the extraction pipeline settings.
type Config struct {
	Pdftotext string // binary name or absolute path; empty -> "pdftotext"
	Pdftoppm  string // binary name or absolute path; empty -> "pdftoppm"
	Tesseract string // binary name or absolute path; empty -> "tesseract"

	// DPI for rasterizing scanned PDFs. 144 renders at twice the PDF's
	// nominal 72dpi, which is enough for tesseract on typical BEO print.
	DPI int
	// MaxPages caps how many pages are OCRed per document.
	MaxPages int
	// MinTextLen is the trimmed text-layer length below which OCR kicks in.
	MinTextLen int
	// MaxGuestCount is the exclusive upper bound for accepted guest counts.
	MaxGuestCount int
}

// Extractor runs the BEO extraction pipeline. It holds no per-document state;
// one Extractor serves concurrent uploads.
type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

// NewExtractor returns an Extractor with defaults filled in.
func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 144
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = 5
	}
	if cfg.MinTextLen <= 0 {
		cfg.MinTextLen = 50
	}
	if cfg.MaxGuestCount <= 0 {
		cfg.MaxGuestCount = DefaultMaxGuestCount
	}
	return &Extractor{cfg: cfg, runner: execRunner{}, logger: logger}
}

var allowedMIMETypes = map[string]struct{}{
	"application/pdf":          {},
	"application/vnd.ms-excel": {},
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": {},
	"text/csv": {},
}

var spreadsheetExtensions = map[string]struct{}{
	"xlsx": {},
	"xls":  {},
	"csv":  {},
}

func normalizeExt(filename string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
}

// IsSpreadsheet reports whether the file should take the spreadsheet path.
func IsSpreadsheet(filename, mimeType string) bool {
	if _, ok := spreadsheetExtensions[normalizeExt(filename)]; ok {
		return true
	}
	return strings.Contains(mimeType, "spreadsheet") ||
		strings.Contains(mimeType, "excel") ||
		mimeType == "text/csv"
}

// IsSupported reports whether the declared filename/MIME combination is
// accepted at all.
func IsSupported(filename, mimeType string) bool {
	if _, ok := allowedMIMETypes[mimeType]; ok {
		return true
	}
	return IsSpreadsheet(filename, mimeType)
}

// Merge combines a primary and a fallback extraction field by field,
// preferring the primary value whenever it is present.
func Merge(primary, fallback ExtractedEventData) ExtractedEventData {
	out := primary
	if out.EventName == "" {
		out.EventName = fallback.EventName
	}
	if out.Date == "" {
		out.Date = fallback.Date
	}
	if out.Venue == "" {
		out.Venue = fallback.Venue
	}
	if out.GuestCount == 0 {
		out.GuestCount = fallback.GuestCount
	}
	if out.StartTime == "" {
		out.StartTime = fallback.StartTime
	}
	if out.EndTime == "" {
		out.EndTime = fallback.EndTime
	}
	return out
}

// Extract runs the pipeline appropriate for the declared file type. The type
// gate runs before any parsing work. Returned errors are *ExtractionError
// except for context cancellation.
func (e *Extractor) Extract(ctx context.Context, filename, mimeType string, data []byte) (*Outcome, error) {
	if !IsSupported(filename, mimeType) {
		return nil, &ExtractionError{
			Code:    ErrCodeUnsupportedFile,
			Message: "Only PDF, Excel (.xlsx, .xls), and CSV files are supported.",
			Detail:  fmt.Sprintf("filename=%q mime=%q", filename, mimeType),
		}
	}
	if IsSpreadsheet(filename, mimeType) {
		return e.extractSpreadsheet(filename, data)
	}
	return e.extractPDFDocument(ctx, data)
}

func (e *Extractor) extractSpreadsheet(filename string, data []byte) (*Outcome, error) {
	sheets, err := loadWorkbook(filename, data)
	if err != nil {
		return nil, &ExtractionError{
			Code:    ErrCodeSpreadsheetParse,
			Message: "Failed to extract data from the spreadsheet.",
			Detail:  err.Error(),
		}
	}

	var first [][]string
	if len(sheets) > 0 {
		first = sheets[0]
	}
	result := e.scanStructured(first)
	if result.EventName != "" && result.Date != "" {
		e.logger.Debug("structured spreadsheet extraction complete", "event_name", result.EventName, "date", result.Date)
		return &Outcome{Data: result, Method: MethodExcelStructured, TextLen: 0}, nil
	}

	// Structured pass came back incomplete; flatten the workbook to text and
	// let the pattern extractors fill the gaps.
	text := flattenWorkbook(sheets)
	merged := Merge(result, ExtractFields(text, e.cfg.MaxGuestCount))
	e.logger.Debug("hybrid spreadsheet extraction complete", "text_len", len(text))
	return &Outcome{Data: merged, Method: MethodExcelHybrid, TextLen: len(text)}, nil
}

func (e *Extractor) extractPDFDocument(ctx context.Context, data []byte) (*Outcome, error) {
	text, err := e.pdfText(ctx, data)
	if err != nil {
		e.logger.Warn("pdf text layer extraction failed, trying ocr", "error", err)
		text = ""
	}

	method := MethodTextExtraction
	if len(strings.TrimSpace(text)) < e.cfg.MinTextLen {
		ocrText, err := e.pdfOCR(ctx, data)
		if err != nil {
			return nil, &ExtractionError{
				Code:    ErrCodePDFUnreadable,
				Message: "Failed to extract text from the PDF using both standard extraction and OCR.",
				Detail:  err.Error(),
			}
		}
		if strings.TrimSpace(ocrText) == "" {
			return nil, &ExtractionError{
				Code:    ErrCodePDFUnreadable,
				Message: "No text could be extracted from the PDF. The file may be empty, corrupted, or unreadable.",
			}
		}
		text = ocrText
		method = MethodOCR
	}

	return &Outcome{
		Data:    ExtractFields(text, e.cfg.MaxGuestCount),
		Method:  method,
		TextLen: len(text),
	}, nil
}
