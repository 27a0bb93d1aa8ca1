package beo

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildXLSX(t *testing.T, cells map[string]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for ref, v := range cells {
		require.NoError(t, f.SetCellValue("Sheet1", ref, v))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func TestExtract_XLSXStructured(t *testing.T) {
	data := buildXLSX(t, map[string]any{
		"A1": "Event Name", "B1": "Annual Gala",
		"A2": "Date", "B2": 45651, // 2024-12-25 as an Excel serial
		"A3": "Venue", "B3": "Grand Ballroom",
		"A4": "Guest Count", "B4": "200 pax",
		"A5": "Start Time", "B5": 0.75, // 18:00 as a day fraction
		"A6": "End Time", "B6": "11:00 pm",
	})

	e := newTestExtractor(&stubRunner{})
	out, err := e.Extract(context.Background(), "beo.xlsx",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
	require.NoError(t, err)

	assert.Equal(t, MethodExcelStructured, out.Method)
	assert.Equal(t, ExtractedEventData{
		EventName:  "Annual Gala",
		Date:       "2024-12-25",
		Venue:      "Grand Ballroom",
		GuestCount: 200,
		StartTime:  "18:00",
		EndTime:    "23:00",
	}, out.Data)
	assert.Zero(t, out.TextLen)
}

func TestExtract_XLSXHybrid(t *testing.T) {
	// Only the venue sits in a label/value pair; the event name and date are
	// embedded in free text, so the pipeline must fall back to pattern
	// extraction over the flattened sheet and merge the results.
	data := buildXLSX(t, map[string]any{
		"A1": "Venue", "B1": "Grand Ballroom",
		"A2": "Event Name: Gala Dinner",
		"A3": "Date: 12/25/2024",
	})

	e := newTestExtractor(&stubRunner{})
	out, err := e.Extract(context.Background(), "beo.xlsx",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
	require.NoError(t, err)

	assert.Equal(t, MethodExcelHybrid, out.Method)
	assert.Equal(t, "Gala Dinner", out.Data.EventName)
	assert.Equal(t, "2024-12-25", out.Data.Date)
	assert.Equal(t, "Grand Ballroom", out.Data.Venue)
	assert.Greater(t, out.TextLen, 0)
}

func TestExtract_CSVStructured(t *testing.T) {
	csvData := strings.Join([]string{
		"Event Name,Summer Soiree",
		"Date,2025-07-04",
		"Venue,Harbor Terrace",
		"Expected Attendance,85",
		"Start Time,5:30 pm",
		"End Time,10:00 pm",
	}, "\n")

	e := newTestExtractor(&stubRunner{})
	out, err := e.Extract(context.Background(), "beo.csv", "text/csv", []byte(csvData))
	require.NoError(t, err)

	assert.Equal(t, MethodExcelStructured, out.Method)
	assert.Equal(t, ExtractedEventData{
		EventName:  "Summer Soiree",
		Date:       "2025-07-04",
		Venue:      "Harbor Terrace",
		GuestCount: 85,
		StartTime:  "17:30",
		EndTime:    "22:00",
	}, out.Data)
}

func TestExtract_CorruptXLSX(t *testing.T) {
	e := newTestExtractor(&stubRunner{})
	_, err := e.Extract(context.Background(), "beo.xlsx",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", []byte("not a zip"))

	var xerr *ExtractionError
	require.ErrorAs(t, err, &xerr)
	assert.Equal(t, ErrCodeSpreadsheetParse, xerr.Code)
}

func TestScanStructured_LastWriteWins(t *testing.T) {
	e := newTestExtractor(&stubRunner{})
	got := e.scanStructured([][]string{
		{"Event Name", "First Draft"},
		{"Event Name", "Final Title"},
		{"Date", "2024-12-25"},
	})
	assert.Equal(t, "Final Title", got.EventName)
	assert.Equal(t, "2024-12-25", got.Date)
}

func TestScanStructured_GuestWindow(t *testing.T) {
	e := newTestExtractor(&stubRunner{})

	got := e.scanStructured([][]string{{"Guest Count", "15000"}})
	assert.Zero(t, got.GuestCount)

	got = e.scanStructured([][]string{{"Guest Count", "0"}})
	assert.Zero(t, got.GuestCount)

	got = e.scanStructured([][]string{{"Guest Count", "9999"}})
	assert.Equal(t, 9999, got.GuestCount)
}

func TestScanStructured_LabelExclusions(t *testing.T) {
	e := newTestExtractor(&stubRunner{})
	got := e.scanStructured([][]string{
		{"Last Update Date", "2024-01-01"},  // "update" disqualifies a date label
		{"Venue Contact", "555-0100"},       // "contact" disqualifies a venue label
		{"Date", "2024-12-25"},
		{"Venue", "Grand Ballroom"},
	})
	assert.Equal(t, "2024-12-25", got.Date)
	assert.Equal(t, "Grand Ballroom", got.Venue)
}

func TestScanStructured_MissingValuesAreEmpty(t *testing.T) {
	e := newTestExtractor(&stubRunner{})
	got := e.scanStructured([][]string{
		{"Event Name", ""},
		{"Date"},
		{"", "orphan value"},
	})
	assert.Equal(t, ExtractedEventData{}, got)
}

func TestScanStructured_RowLimit(t *testing.T) {
	rows := make([][]string, 0, maxScanRows+10)
	for i := 0; i < maxScanRows+5; i++ {
		rows = append(rows, []string{"filler", "x"})
	}
	rows = append(rows, []string{"Event Name", "Too Far Down"})

	e := newTestExtractor(&stubRunner{})
	got := e.scanStructured(rows)
	assert.Empty(t, got.EventName)
}
