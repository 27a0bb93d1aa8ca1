package beo

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// maxScanRows bounds the structured label/value scan. Label cells live near
// the top of real BEO sheets; anything past this is line-item data.
const maxScanRows = 100

// loadWorkbook reads the spreadsheet into per-sheet row grids. Cell values
// are raw, so date/time serials survive as their numeric text.
func loadWorkbook(filename string, data []byte) ([][][]string, error) {
	switch normalizeExt(filename) {
	case "xls":
		wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
		if err != nil {
			return nil, fmt.Errorf("open xls: %w", err)
		}
		if wb.NumSheets() == 0 {
			return nil, fmt.Errorf("no worksheet found")
		}
		rows := wb.ReadAllCells(100000)
		return [][][]string{rows}, nil
	case "csv":
		r := csv.NewReader(bytes.NewReader(data))
		r.FieldsPerRecord = -1
		rows, err := r.ReadAll()
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		return [][][]string{rows}, nil
	default:
		f, err := excelize.OpenReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("open xlsx: %w", err)
		}
		defer func() { _ = f.Close() }()

		var sheets [][][]string
		for _, name := range f.GetSheetList() {
			rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
			if err != nil {
				return nil, fmt.Errorf("read sheet %q: %w", name, err)
			}
			sheets = append(sheets, rows)
		}
		if len(sheets) == 0 {
			return nil, fmt.Errorf("no worksheet found")
		}
		return sheets, nil
	}
}

// flattenWorkbook renders the workbook as plain text for the pattern
// extractors: cells joined by spaces, rows by newlines, sheets in order.
func flattenWorkbook(sheets [][][]string) string {
	var b strings.Builder
	for _, rows := range sheets {
		for _, row := range rows {
			b.WriteString(strings.Join(row, " "))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// scanStructured walks the first maxScanRows rows of the sheet looking for
// recognized field labels and reads each label's right-hand neighbor as the
// value. Later matches overwrite earlier ones.
func (e *Extractor) scanStructured(rows [][]string) ExtractedEventData {
	var data ExtractedEventData
	for r, row := range rows {
		if r > maxScanRows {
			break
		}
		for c, cell := range row {
			if cell == "" {
				continue
			}
			label := strings.ToLower(cell)
			next := ""
			if c+1 < len(row) {
				next = strings.TrimSpace(row[c+1])
			}
			if next == "" {
				continue
			}

			switch {
			case strings.Contains(label, "event") && (strings.Contains(label, "name") || strings.Contains(label, "title")):
				data.EventName = next
			case strings.Contains(label, "date") && !strings.Contains(label, "update"):
				data.Date = parseCellDate(next)
			case (strings.Contains(label, "venue") || strings.Contains(label, "location") || strings.Contains(label, "room")) &&
				!strings.Contains(label, "contact"):
				data.Venue = next
			case strings.Contains(label, "guest") || strings.Contains(label, "attendance") ||
				strings.Contains(label, "pax") || strings.Contains(label, "capacity"):
				if n := parseCellGuestCount(next, e.cfg.MaxGuestCount); n > 0 {
					data.GuestCount = n
				}
			case strings.Contains(label, "start") && strings.Contains(label, "time"):
				data.StartTime = parseCellTime(next)
			case strings.Contains(label, "end") && strings.Contains(label, "time"):
				data.EndTime = parseCellTime(next)
			}
		}
	}
	return data
}

// parseCellDate decodes a date cell: numeric values are Excel date serials,
// anything else goes through the text date extractor.
func parseCellDate(v string) string {
	if serial, err := strconv.ParseFloat(v, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return ""
		}
		return t.Format("2006-01-02")
	}
	return ExtractDate(v)
}

// parseCellTime decodes a time cell: numeric values are Excel time serials
// (fraction of a day), anything else goes through the text time extractor.
func parseCellTime(v string) string {
	if serial, err := strconv.ParseFloat(v, 64); err == nil {
		totalMinutes := int(math.Round(serial * 24 * 60))
		return fmt.Sprintf("%02d:%02d", totalMinutes/60, totalMinutes%60)
	}
	return ExtractTime(v, true)
}

var nonDigitRe = regexp.MustCompile(`[^\d]`)

func parseCellGuestCount(v string, maxGuestCount int) int {
	digits := nonDigitRe.ReplaceAllString(v, "")
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	if n > 0 && n < maxGuestCount {
		return n
	}
	return 0
}
