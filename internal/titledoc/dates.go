package titledoc

import (
	"regexp"
	"strings"
	"time"
)

// recordDateLayouts are tried in order; the first match wins. Numeric layouts
// use single-digit reference fields so both padded and unpadded values parse.
var recordDateLayouts = []string{
	"January 2, 2006",
	"Jan 2, 2006",
	"1/2/2006",
	"2006-1-2",
	"1-2-2006",
	"January 2 2006",
}

var yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// ParseRecordDate parses a free-text record date against the accepted
// layouts. It returns false for empty strings, the literal "None" that some
// extractions produce for missing values, and anything no layout accepts.
func ParseRecordDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == "None" {
		return time.Time{}, false
	}
	for _, layout := range recordDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// unknownDate sorts after every real record date.
var unknownDate = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)

// DateSortKey converts a free-text date into a sortable key. Unparseable
// dates fall back to a bare-year scan ("recorded sometime in 1925"), and
// fully unknown dates sort last.
func DateSortKey(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" || s == "Unknown" {
		return unknownDate
	}
	if t, ok := ParseRecordDate(s); ok {
		return t
	}
	if m := yearPattern.FindString(s); m != "" {
		year, _ := time.Parse("2006", m)
		return year
	}
	return unknownDate
}

// KnownDate reports whether key represents a real parsed date rather than
// the unknown sentinel.
func KnownDate(key time.Time) bool {
	return !key.Equal(unknownDate)
}
