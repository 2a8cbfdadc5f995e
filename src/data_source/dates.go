package datasource

import (
	"strings"
	"time"

	"sentiment-dashboard/src/helpers"
)

// DateLayouts are tried in order against the first value of a column.
// Numeric dates with the year last are month-first for both slash and dash
// separators. Single-digit month and day fields are accepted in date-only
// layouts, so padded and unpadded rows may share a column.
var DateLayouts = []string{
	"2006-1-2",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04:05-07:00",
	"2006/1/2",
	"1/2/2006",
	"1-2-2006",
	"2-Jan-2006",
	"Jan 2, 2006",
	"2 Jan 2006",
	"20060102",
}

// -----------------------------------------------------------------------------

// NormalizeDates parses a whole date column into calendar dates at UTC
// midnight. The layout is inferred from the first value and every other
// value must match it; the first failure aborts the batch.
// firstRow is the file row number of raw[0], used in errors.
func NormalizeDates(file, column string, raw []string, firstRow int) ([]time.Time, error) {
	dates := make([]time.Time, len(raw))
	if len(raw) == 0 {
		return dates, nil
	}

	layout, ok := inferLayout(raw[0])
	if !ok {
		return nil, helpers.NewDateParseError(file, column, firstRow, raw[0])
	}

	for i, value := range raw {
		t, err := time.Parse(layout, strings.TrimSpace(value))
		if err != nil {
			return nil, helpers.NewDateParseError(file, column, firstRow+i, value)
		}
		dates[i] = CalendarDate(t)
	}
	return dates, nil
}

// -----------------------------------------------------------------------------

// CalendarDate drops the clock, keeping the date as written.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// -----------------------------------------------------------------------------

func inferLayout(value string) (string, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}
	for _, layout := range DateLayouts {
		if _, err := time.Parse(layout, value); err == nil {
			return layout, true
		}
	}
	return "", false
}
