// Package allocation places study tasks on the hourly calendar grid.
package allocation

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/at-ishikawa/studyplan/internal/calendar"
	"github.com/at-ishikawa/studyplan/internal/validation"
)

var ErrTaskNotFound = errors.New("task not found")

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToUpper(strings.TrimSpace(s)))
	if !p.IsValid() {
		return "", validation.Errorf("priority", "unknown priority %q", s)
	}
	return p, nil
}

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

func (p Priority) String() string {
	return string(p)
}

// MarshalText implements encoding.TextMarshaler
func (p Priority) MarshalText() ([]byte, error) {
	if !p.IsValid() {
		return nil, fmt.Errorf("invalid priority %q", string(p))
	}
	return []byte(p), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (p *Priority) UnmarshalText(text []byte) error {
	parsed, err := ParsePriority(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Value implements driver.Valuer
func (p Priority) Value() (driver.Value, error) {
	if !p.IsValid() {
		return nil, fmt.Errorf("invalid priority %q", string(p))
	}
	return string(p), nil
}

// Scan implements sql.Scanner
func (p *Priority) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		return p.UnmarshalText([]byte(v))
	case []byte:
		return p.UnmarshalText(v)
	default:
		return fmt.Errorf("cannot scan %T into a priority", src)
	}
}

// Task is a block of study time. A task without ScheduledDate sits in the unscheduled pool.
type Task struct {
	ID            string              `db:"id" json:"id" yaml:"id"`
	SubjectRef    string              `db:"subject_id" json:"subject_ref" yaml:"subject_ref"`
	TopicRef      *string             `db:"topic_id" json:"topic_ref" yaml:"topic_ref,omitempty"`
	Title         string              `db:"title" json:"title" yaml:"title"`
	Description   string              `db:"description" json:"description" yaml:"description,omitempty"`
	Priority      Priority            `db:"priority" json:"priority" yaml:"priority"`
	DurationHours float64             `db:"duration_hours" json:"duration_hours" yaml:"duration_hours"`
	ScheduledDate *calendar.Date      `db:"scheduled_date" json:"scheduled_date" yaml:"scheduled_date,omitempty"`
	StartTime     *calendar.ClockTime `db:"start_time" json:"start_time" yaml:"start_time,omitempty"`
	EndTime       *calendar.ClockTime `db:"end_time" json:"end_time" yaml:"end_time,omitempty"`
	Completed     bool                `db:"completed" json:"completed" yaml:"completed"`
}

// IsScheduled reports whether the task has a place on the calendar.
func (t Task) IsScheduled() bool {
	return t.ScheduledDate != nil
}

// DurationMinutes converts DurationHours to whole minutes, the resolution of the grid.
func (t Task) DurationMinutes() int {
	return durationMinutes(t.DurationHours)
}

func durationMinutes(hours float64) int {
	return int(math.Round(hours * calendar.MinutesPerHour))
}

// FindTask returns a pointer into tasks for the task with the given id.
func FindTask(tasks []Task, id string) (*Task, error) {
	for i := range tasks {
		if tasks[i].ID == id {
			return &tasks[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
}
