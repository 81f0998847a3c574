// Package calendar provides the date-only and clock-time value types shared by the
// mastery scheduler and the time allocation engine.
package calendar

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

const dateLayout = "2006-01-02"

var (
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidClockTime = errors.New("invalid clock time")
)

// Date is a calendar day without a time component.
// The embedded time is always midnight UTC so that two Dates for the same day compare equal.
type Date struct {
	time.Time
}

// NewDate returns the Date for the given year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day in t's own location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w %q: expected YYYY-MM-DD", ErrInvalidDate, s)
	}
	return DateOf(t), nil
}

// AddDays returns the date n days after d. Negative n moves backwards.
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time.AddDate(0, 0, n))
}

// OnOrBefore reports whether d is the same day as other or earlier.
func (d Date) OnOrBefore(other Date) bool {
	return !d.Time.After(other.Time)
}

// InRange reports whether d lies in the inclusive range [from, to].
func (d Date) InRange(from, to Date) bool {
	return from.OnOrBefore(d) && d.OnOrBefore(to)
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

// MarshalText implements encoding.TextMarshaler
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalJSON overrides the promoted time.Time encoding so dates serialize as YYYY-MM-DD.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidDate, data)
	}
	return d.UnmarshalText([]byte(s))
}

// MarshalYAML implements the yaml.Marshaler interface
func (d Date) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

// UnmarshalYAML implements the yaml.Unmarshaler interface.
// Besides YYYY-MM-DD it accepts RFC3339 timestamps, keeping only their day.
func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	if parsed, err := ParseDate(value.Value); err == nil {
		*d = parsed
		return nil
	}
	t, err := time.Parse(time.RFC3339, value.Value)
	if err != nil {
		return fmt.Errorf("unable to parse date '%s': expected YYYY-MM-DD or RFC3339 format", value.Value)
	}
	*d = DateOf(t)
	return nil
}

// Value implements driver.Valuer. Dates are stored as midnight UTC timestamps.
func (d Date) Value() (driver.Value, error) {
	return d.Time, nil
}

// Scan implements sql.Scanner
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*d = DateOf(v)
		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidDate, src)
	}
}

func (d *Date) scanString(s string) error {
	if len(s) >= len(dateLayout) {
		s = s[:len(dateLayout)]
	}
	return d.UnmarshalText([]byte(s))
}
