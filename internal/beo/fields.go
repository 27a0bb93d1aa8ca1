package beo

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DefaultMaxGuestCount is the exclusive upper bound for an accepted guest
// count. Larger numbers in a BEO are almost always invoice totals or room
// capacities, not headcounts.
const DefaultMaxGuestCount = 10000

// The field extractors below each try an ordered list of patterns against the
// raw document text and return on the first usable match. Labelled patterns
// come first so that generic fallbacks only fire when nothing better matched.

var eventNamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)event\s*name[:\s]+([^\n]{3,80})`),
	regexp.MustCompile(`(?i)function[:\s]+([^\n]{3,80})`),
	regexp.MustCompile(`(?i)occasion[:\s]+([^\n]{3,80})`),
	regexp.MustCompile(`(?i)title[:\s]+([^\n]{3,80})`),
	regexp.MustCompile(`(?i)event[:\s]+([^\n]{3,80})`),
}

// ExtractEventName returns the event name found in text, or "".
func ExtractEventName(text string) string {
	for _, p := range eventNamePatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			if name := strings.TrimSpace(m[1]); name != "" {
				return name
			}
		}
	}
	return ""
}

var (
	isoDateRe       = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
	slashDateRe     = regexp.MustCompile(`(\d{1,2})[/\-](\d{1,2})[/\-](\d{4})`)
	shortYearDateRe = regexp.MustCompile(`(\d{1,2})[/\-](\d{1,2})[/\-](\d{2})`)
	labelledDateRe  = regexp.MustCompile(`(?i)date[:\s]+(\d{1,2})[/\-](\d{1,2})[/\-](\d{2,4})`)
	monthNameDateRe = regexp.MustCompile(`(?i)(january|february|march|april|may|june|july|august|september|october|november|december)\s+(\d{1,2}),?\s+(\d{4})`)
)

var monthNumbers = map[string]string{
	"january": "01", "february": "02", "march": "03", "april": "04",
	"may": "05", "june": "06", "july": "07", "august": "08",
	"september": "09", "october": "10", "november": "11", "december": "12",
}

// ExtractDate returns the first recognizable date in text normalized to
// YYYY-MM-DD, or "". Two-digit years are assumed to be 20YY.
func ExtractDate(text string) string {
	if m := isoDateRe.FindString(text); m != "" {
		return m
	}
	for _, re := range []*regexp.Regexp{slashDateRe, shortYearDateRe, labelledDateRe} {
		if m := re.FindStringSubmatch(text); m != nil {
			return normalizeDate(m[1], m[2], m[3])
		}
	}
	if m := monthNameDateRe.FindStringSubmatch(text); m != nil {
		return normalizeDate(monthNumbers[strings.ToLower(m[1])], m[2], m[3])
	}
	return ""
}

func normalizeDate(month, day, year string) string {
	if len(year) == 2 {
		year = "20" + year
	}
	if len(month) == 1 {
		month = "0" + month
	}
	if len(day) == 1 {
		day = "0" + day
	}
	return year + "-" + month + "-" + day
}

var venuePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)venue[:\s]+([^\n]{3,60})`),
	regexp.MustCompile(`(?i)location[:\s]+([^\n]{3,60})`),
	regexp.MustCompile(`(?i)room[:\s]+([^\n]{3,60})`),
	regexp.MustCompile(`(?i)ballroom[:\s]+([^\n]{3,60})`),
	regexp.MustCompile(`(?i)(\w+\s+ballroom)`),
	regexp.MustCompile(`(?i)(\w+\s+hall)`),
}

// ExtractVenue returns the venue found in text, or "".
func ExtractVenue(text string) string {
	for _, p := range venuePatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			if venue := strings.TrimSpace(m[1]); venue != "" {
				return venue
			}
		}
	}
	return ""
}

var guestCountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)guests?[:\s]+(\d+)`),
	regexp.MustCompile(`(?i)attendance[:\s]+(\d+)`),
	regexp.MustCompile(`(?i)expected[:\s]+(\d+)`),
	regexp.MustCompile(`(?i)capacity[:\s]+(\d+)`),
	regexp.MustCompile(`(?i)pax[:\s]+(\d+)`),
	regexp.MustCompile(`(?i)(\d+)\s+guests`),
	regexp.MustCompile(`(?i)(\d+)\s+people`),
	regexp.MustCompile(`(?i)(\d+)\s+attendees`),
}

// ExtractGuestCount returns the first guest count strictly between 0 and
// maxGuestCount, or 0 when no pattern yields an acceptable number.
func ExtractGuestCount(text string, maxGuestCount int) int {
	if maxGuestCount <= 0 {
		maxGuestCount = DefaultMaxGuestCount
	}
	for _, p := range guestCountPatterns {
		m := p.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		count, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if count > 0 && count < maxGuestCount {
			return count
		}
	}
	return 0
}

var (
	startTimePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)start\s*time[:\s]+(\d{1,2})[:.]?(\d{2})\s*(am|pm)?`),
		regexp.MustCompile(`(?i)begin[:\s]+(\d{1,2})[:.]?(\d{2})\s*(am|pm)?`),
	}
	endTimePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)end\s*time[:\s]+(\d{1,2})[:.]?(\d{2})\s*(am|pm)?`),
		regexp.MustCompile(`(?i)(?:finish|close)[:\s]+(\d{1,2})[:.]?(\d{2})\s*(am|pm)?`),
	}
	bareTimeRe = regexp.MustCompile(`(?i)(\d{1,2})[:.]?(\d{2})\s*(am|pm)`)
)

// ExtractTime returns a HH:MM 24-hour time for the start (isStart) or end of
// the event, or "". Labelled times win; otherwise the first bare am/pm time in
// document order is taken as the start and the last as the end.
func ExtractTime(text string, isStart bool) string {
	patterns := endTimePatterns
	if isStart {
		patterns = startTimePatterns
	}
	for _, p := range patterns {
		if m := p.FindStringSubmatch(text); m != nil {
			return normalizeClock(m[1], m[2], m[3])
		}
	}

	all := bareTimeRe.FindAllStringSubmatch(text, -1)
	if len(all) == 0 {
		return ""
	}
	if isStart {
		m := all[0]
		return normalizeClock(m[1], m[2], m[3])
	}
	m := all[len(all)-1]
	return normalizeClock(m[1], m[2], m[3])
}

func normalizeClock(hourStr, minuteStr, period string) string {
	hours, _ := strconv.Atoi(hourStr)
	switch strings.ToLower(period) {
	case "pm":
		if hours < 12 {
			hours += 12
		}
	case "am":
		if hours == 12 {
			hours = 0
		}
	}
	return fmt.Sprintf("%02d:%s", hours, minuteStr)
}

// ExtractFields runs every field extractor over text and assembles the result.
func ExtractFields(text string, maxGuestCount int) ExtractedEventData {
	return ExtractedEventData{
		EventName:  ExtractEventName(text),
		Date:       ExtractDate(text),
		Venue:      ExtractVenue(text),
		GuestCount: ExtractGuestCount(text, maxGuestCount),
		StartTime:  ExtractTime(text, true),
		EndTime:    ExtractTime(text, false),
	}
}
