// Package display holds the pure formatting helpers shared by the public
// pages and the admin dashboard.
package display

import (
	"html"
	"strings"
	"time"

	"clubsite/internal/records"
)

// StatusUpcoming is the explicit marker that always classifies an event as upcoming.
const StatusUpcoming = "UPCOMING"

// Wings are the three thematic buckets events fall into.
const (
	WingACM      = "acm"
	WingResearch = "research"
	WingCareer   = "career"
)

const dayMillis = 24 * 60 * 60 * 1000

// FormatDate renders a record date for display. Absent values become "TBA",
// strings pass through untouched, timestamps become YYYY-MM-DD.
func FormatDate(value any) string {
	switch v := value.(type) {
	case nil:
		return "TBA"
	case string:
		if v == "" {
			return "TBA"
		}
		return v
	case time.Time:
		if v.IsZero() {
			return "TBA"
		}
		return v.UTC().Format("2006-01-02")
	case *time.Time:
		if v == nil {
			return "TBA"
		}
		return FormatDate(*v)
	default:
		return "TBA"
	}
}

// ParseMillis is the inverse of FormatDate, used for sorting and filtering.
// Absent or unparseable values become 0.
func ParseMillis(value any) int64 {
	switch v := value.(type) {
	case nil:
		return 0
	case string:
		if v == "" {
			return 0
		}
		if t, err := time.Parse("2006-01-02", v); err == nil {
			return t.UnixMilli()
		}
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t.UnixMilli()
		}
		return 0
	case time.Time:
		if v.IsZero() {
			return 0
		}
		return v.UnixMilli()
	default:
		return 0
	}
}

// IsUpcoming reports whether the event should appear in upcoming listings:
// either its status carries the explicit marker, or its date is not more
// than one day in the past.
func IsUpcoming(e records.Event) bool {
	return IsUpcomingAt(e, time.Now())
}

// IsUpcomingAt is IsUpcoming against a fixed clock.
func IsUpcomingAt(e records.Event, now time.Time) bool {
	if strings.ToUpper(e.Status) == StatusUpcoming {
		return true
	}
	return ParseMillis(e.DateISO) > now.UnixMilli()-dayMillis
}

// NormalizeWing buckets an event into one of the three wings. An explicit
// known wing field wins; otherwise keywords in title+description decide,
// defaulting to acm.
func NormalizeWing(e records.Event) string {
	switch strings.ToLower(e.Wing) {
	case WingACM, WingResearch, WingCareer:
		return strings.ToLower(e.Wing)
	}
	text := strings.ToLower(e.Title + " " + e.Description)
	switch {
	case strings.Contains(text, "research"):
		return WingResearch
	case strings.Contains(text, "career"), strings.Contains(text, "development"), strings.Contains(text, "devops"):
		return WingCareer
	default:
		return WingACM
	}
}

// EscapeHTML escapes a raw field for embedding in markup.
func EscapeHTML(value string) string {
	return html.EscapeString(value)
}
