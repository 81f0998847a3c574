package main

import (
	"github.com/spf13/pflag"

	"github.com/at-ishikawa/studyplan/internal/allocation"
	"github.com/at-ishikawa/studyplan/internal/calendar"
	"github.com/at-ishikawa/studyplan/internal/mastery"
)

// StatusFlag accepts a mastery status name.
type StatusFlag mastery.Status

// Set implements pflag.Value.
func (s *StatusFlag) Set(v string) error {
	status, err := mastery.ParseStatus(v)
	if err != nil {
		return err
	}
	*s = StatusFlag(status)
	return nil
}

// String implements pflag.Value.
func (s *StatusFlag) String() string {
	if s == nil {
		return ""
	}
	return string(*s)
}

// Type implements pflag.Value.
func (s *StatusFlag) Type() string {
	return "status"
}

// PriorityFlag accepts a task priority name.
type PriorityFlag allocation.Priority

// Set implements pflag.Value.
func (p *PriorityFlag) Set(v string) error {
	priority, err := allocation.ParsePriority(v)
	if err != nil {
		return err
	}
	*p = PriorityFlag(priority)
	return nil
}

// String implements pflag.Value.
func (p *PriorityFlag) String() string {
	if p == nil {
		return ""
	}
	return string(*p)
}

// Type implements pflag.Value.
func (p *PriorityFlag) Type() string {
	return "priority"
}

// DateFlag accepts YYYY-MM-DD. The zero value means unset.
type DateFlag struct {
	date *calendar.Date
}

// Set implements pflag.Value.
func (d *DateFlag) Set(v string) error {
	date, err := calendar.ParseDate(v)
	if err != nil {
		return err
	}
	d.date = &date
	return nil
}

// String implements pflag.Value.
func (d *DateFlag) String() string {
	if d == nil || d.date == nil {
		return ""
	}
	return d.date.String()
}

// Type implements pflag.Value.
func (d *DateFlag) Type() string {
	return "date"
}

// Or returns the flag value or fallback when it was not set.
func (d *DateFlag) Or(fallback calendar.Date) calendar.Date {
	if d.date == nil {
		return fallback
	}
	return *d.date
}

// ClockFlag accepts HH:MM. The zero value means unset.
type ClockFlag struct {
	clock *calendar.ClockTime
}

// Set implements pflag.Value.
func (c *ClockFlag) Set(v string) error {
	clock, err := calendar.ParseClockTime(v)
	if err != nil {
		return err
	}
	c.clock = &clock
	return nil
}

// String implements pflag.Value.
func (c *ClockFlag) String() string {
	if c == nil || c.clock == nil {
		return ""
	}
	return c.clock.String()
}

// Type implements pflag.Value.
func (c *ClockFlag) Type() string {
	return "clock"
}

var (
	_ pflag.Value = (*StatusFlag)(nil)
	_ pflag.Value = (*PriorityFlag)(nil)
	_ pflag.Value = (*DateFlag)(nil)
	_ pflag.Value = (*ClockFlag)(nil)
)
