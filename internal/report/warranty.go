package report

import (
	"strings"
	"time"
)

type WarrantyState int

const (
	// WarrantyUnknown means neither coverage date could be read.
	WarrantyUnknown WarrantyState = iota
	WarrantyActive
	WarrantyInactive
)

func (s WarrantyState) String() string {
	switch s {
	case WarrantyActive:
		return "active"
	case WarrantyInactive:
		return "inactive"
	}
	return "unknown"
}

var dateLayouts = []string{
	"2006-01-02",
	"20060102",
	"2006-01-02T15",
	"2006-01-02 15",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02T15:04Z07:00",
	"2006-01-02 15:04Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05.999999999",
	time.RFC3339Nano,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05.999999999Z07:00",
}

// ParseDate reads an ISO date or date-time, "/" separators are accepted.
// Only the calendar date is kept, ok is false when s is empty or unreadable.
func ParseDate(s string) (date time.Time, ok bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), "/", "-")
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			return calendarDate(parsed), true
		}
	}
	return time.Time{}, false
}

func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// State tells whether `today` falls within the coverage window. A missing
// bound counts as satisfied, with both missing the state is unknown.
func State(start, end string, today time.Time) WarrantyState {
	startDate, hasStart := ParseDate(start)
	endDate, hasEnd := ParseDate(end)
	if !hasStart && !hasEnd {
		return WarrantyUnknown
	}

	today = calendarDate(today)
	if hasEnd && today.After(endDate) {
		return WarrantyInactive
	}
	if hasStart && today.Before(startDate) {
		return WarrantyInactive
	}
	return WarrantyActive
}
