package catalog

import (
	"fmt"
	"strings"
	"time"
)

// dateLayout is the wire format for calendar dates (ISO-8601, date only).
const dateLayout = "2006-01-02"

// Date is a calendar date without a time-of-day component.
// The remote API serializes dates as "yyyy-mm-dd" strings; Date normalizes
// every value to midnight UTC so that two dates naming the same day compare equal.
type Date struct {
	time.Time
}

// NewDate returns the date for the given year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar date.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// Today returns the current calendar date.
func Today() Date {
	return DateOf(time.Now())
}

// ParseDate parses a "yyyy-mm-dd" string into a Date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// AddYears returns the date with the year shifted by n, keeping month and day.
// Like the upstream form logic, Feb 29 rolls over to Mar 1 in non-leap years.
func (d Date) AddYears(n int) Date {
	return NewDate(d.Year()+n, d.Month(), d.Day())
}

// Equal reports whether both values name the same calendar date.
func (d Date) Equal(o Date) bool {
	return d.Time.Equal(o.Time)
}

// Before reports whether d falls strictly before o.
func (d Date) Before(o Date) bool {
	return d.Time.Before(o.Time)
}

// String returns the wire representation.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

// MarshalJSON encodes the date as a "yyyy-mm-dd" string.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

// UnmarshalJSON accepts "yyyy-mm-dd" and, for compatibility with deployments
// that echo full timestamps, any RFC 3339 value; the time-of-day is dropped.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		*d = DateOf(t)
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("invalid date %q", s)
	}
	*d = DateOf(t)
	return nil
}
