package timeutil

import (
	"fmt"
	"time"
)

// DateLayout defines the canonical date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// NormalizeDate validates a YYYY-MM-DD string. An empty value resolves to today in loc.
func NormalizeDate(value string, now time.Time, loc *time.Location) (string, error) {
	if value == "" {
		return Today(now, loc), nil
	}
	if _, err := ParseDate(value); err != nil {
		return "", fmt.Errorf("invalid date %q: expected %s", value, DateLayout)
	}
	return value, nil
}

// Today returns the calendar date of now in loc (UTC when nil).
func Today(now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return FormatDate(now.In(loc))
}

// LoadLocation resolves a tz name, falling back to UTC when empty or unknown.
func LoadLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}
