package mastery

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"github.com/at-ishikawa/studyplan/internal/validation"
)

// Status is a topic's position in the mastery lifecycle.
// There is no terminal status: a mastered topic can be demoted again.
type Status string

const (
	StatusNotStudied Status = "NOT_STUDIED"
	StatusStudying   Status = "STUDYING"
	StatusToReview   Status = "TO_REVIEW"
	StatusMastered   Status = "MASTERED"
)

// Statuses lists every status in lifecycle order.
var Statuses = []Status{StatusNotStudied, StatusStudying, StatusToReview, StatusMastered}

// ParseStatus accepts a status name case-insensitively, with '-' or '_' separators.
func ParseStatus(s string) (Status, error) {
	status := Status(strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_")))
	if !status.IsValid() {
		return "", validation.Errorf("status", "unknown status %q", s)
	}
	return status, nil
}

func (s Status) IsValid() bool {
	switch s {
	case StatusNotStudied, StatusStudying, StatusToReview, StatusMastered:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// MarshalText implements encoding.TextMarshaler. An unset status encodes as "".
func (s Status) MarshalText() ([]byte, error) {
	if s != "" && !s.IsValid() {
		return nil, fmt.Errorf("invalid status %q", string(s))
	}
	return []byte(s), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *Status) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*s = ""
		return nil
	}
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Value implements driver.Valuer
func (s Status) Value() (driver.Value, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("invalid status %q", string(s))
	}
	return string(s), nil
}

// Scan implements sql.Scanner
func (s *Status) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		return s.scanString(v)
	case []byte:
		return s.scanString(string(v))
	default:
		return fmt.Errorf("cannot scan %T into a status", src)
	}
}

func (s *Status) scanString(v string) error {
	parsed, err := ParseStatus(v)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
