package calendar

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
)

const (
	MinutesPerHour = 60
	MinutesPerDay  = 24 * MinutesPerHour
)

// ClockTime is a time of day with minute resolution, stored as minutes since midnight.
// Valid values are 00:00 through 24:00, where 24:00 is only meaningful as an end time.
type ClockTime int

// EndOfDay is 24:00, the end time of a task that runs until midnight.
const EndOfDay ClockTime = MinutesPerDay

// NewClockTime returns the ClockTime for hour:minute. 24:00 is the only value with hour 24.
func NewClockTime(hour, minute int) (ClockTime, error) {
	if hour == 24 && minute == 0 {
		return EndOfDay, nil
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %02d:%02d", ErrInvalidClockTime, hour, minute)
	}
	return ClockTime(hour*MinutesPerHour + minute), nil
}

// MustClockTime is like ParseClockTime but panics on malformed input. Intended for literals.
func MustClockTime(s string) ClockTime {
	c, err := ParseClockTime(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseClockTime parses a 24-hour HH:MM string. A single-digit hour is accepted.
func ParseClockTime(s string) (ClockTime, error) {
	hourText, minuteText, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(hourText) == 0 || len(hourText) > 2 || len(minuteText) != 2 {
		return 0, fmt.Errorf("%w %q: expected HH:MM", ErrInvalidClockTime, s)
	}
	hour, err := strconv.Atoi(hourText)
	if err != nil {
		return 0, fmt.Errorf("%w %q: expected HH:MM", ErrInvalidClockTime, s)
	}
	minute, err := strconv.Atoi(minuteText)
	if err != nil {
		return 0, fmt.Errorf("%w %q: expected HH:MM", ErrInvalidClockTime, s)
	}
	return NewClockTime(hour, minute)
}

// Minutes returns the minutes elapsed since midnight.
func (c ClockTime) Minutes() int {
	return int(c)
}

// Hour returns the hour of day, 0-23, or 24 for EndOfDay.
func (c ClockTime) Hour() int {
	return int(c) / MinutesPerHour
}

// AddMinutes returns c moved forward by n minutes.
// It fails when the result is past 24:00, since a clock time never wraps past midnight.
func (c ClockTime) AddMinutes(n int) (ClockTime, error) {
	total := int(c) + n
	if total < 0 || total > MinutesPerDay {
		return 0, fmt.Errorf("%w: %s%+d minutes leaves the day", ErrInvalidClockTime, c, n)
	}
	return ClockTime(total), nil
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/MinutesPerHour, int(c)%MinutesPerHour)
}

// HourLabel formats the hour bucket label, e.g. "09:00".
func HourLabel(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}

// MarshalText implements encoding.TextMarshaler
func (c ClockTime) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (c *ClockTime) UnmarshalText(text []byte) error {
	parsed, err := ParseClockTime(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Value implements driver.Valuer
func (c ClockTime) Value() (driver.Value, error) {
	return c.String(), nil
}

// Scan implements sql.Scanner
func (c *ClockTime) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		return c.scanString(v)
	case []byte:
		return c.scanString(string(v))
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidClockTime, src)
	}
}

// scanString accepts the HH:MM:SS form that TIME columns return.
func (c *ClockTime) scanString(s string) error {
	if strings.Count(s, ":") == 2 {
		s = s[:strings.LastIndex(s, ":")]
	}
	return c.UnmarshalText([]byte(s))
}
