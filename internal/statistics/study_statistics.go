// Package statistics summarizes planned and completed study hours.
package statistics

import (
	"sort"

	"github.com/at-ishikawa/studyplan/internal/allocation"
	"github.com/at-ishikawa/studyplan/internal/calendar"
)

// Hours holds the planned and completed totals of a group of tasks
type Hours struct {
	PlannedHours   float64 `json:"planned_hours"`
	CompletedHours float64 `json:"completed_hours"`
	TaskCount      int     `json:"task_count"`
	CompletedCount int     `json:"completed_count"`
}

// CompletionRate returns CompletedHours / PlannedHours, or 0 when nothing is planned
func (h Hours) CompletionRate() float64 {
	if h.PlannedHours == 0 {
		return 0
	}
	return h.CompletedHours / h.PlannedHours
}

func (h *Hours) add(task allocation.Task) {
	h.PlannedHours += task.DurationHours
	h.TaskCount++
	if task.Completed {
		h.CompletedHours += task.DurationHours
		h.CompletedCount++
	}
}

// DayHours is the total for one scheduled date
type DayHours struct {
	Date calendar.Date `json:"date"`
	Hours
}

// SubjectHours is the total for one subject
type SubjectHours struct {
	SubjectRef string `json:"subject_ref"`
	Hours
}

// Summary holds per-day, per-subject and overall totals for a date range
type Summary struct {
	From     calendar.Date  `json:"from"`
	To       calendar.Date  `json:"to"`
	Total    Hours          `json:"total"`
	Days     []DayHours     `json:"days"`
	Subjects []SubjectHours `json:"subjects"`
}

// Summarize folds the tasks scheduled between from and to, both inclusive.
// Unscheduled tasks are ignored. Days are sorted ascending, subjects by reference.
func Summarize(tasks []allocation.Task, from, to calendar.Date) Summary {
	days := make(map[string]*DayHours)
	subjects := make(map[string]*SubjectHours)
	summary := Summary{From: from, To: to}

	for _, task := range tasks {
		if !task.IsScheduled() || !task.ScheduledDate.InRange(from, to) {
			continue
		}
		summary.Total.add(task)

		day := task.ScheduledDate.String()
		if days[day] == nil {
			days[day] = &DayHours{Date: *task.ScheduledDate}
		}
		days[day].add(task)

		if subjects[task.SubjectRef] == nil {
			subjects[task.SubjectRef] = &SubjectHours{SubjectRef: task.SubjectRef}
		}
		subjects[task.SubjectRef].add(task)
	}

	summary.Days = make([]DayHours, 0, len(days))
	for _, day := range days {
		summary.Days = append(summary.Days, *day)
	}
	sort.Slice(summary.Days, func(i, j int) bool {
		return summary.Days[i].Date.Before(summary.Days[j].Date.Time)
	})

	summary.Subjects = make([]SubjectHours, 0, len(subjects))
	for _, subject := range subjects {
		summary.Subjects = append(summary.Subjects, *subject)
	}
	sort.Slice(summary.Subjects, func(i, j int) bool {
		return summary.Subjects[i].SubjectRef < summary.Subjects[j].SubjectRef
	})

	return summary
}

// PlannedHours sums the duration of the tasks scheduled in [from, to]
func PlannedHours(tasks []allocation.Task, from, to calendar.Date) float64 {
	return Summarize(tasks, from, to).Total.PlannedHours
}

// CompletedHours sums the duration of the completed tasks scheduled in [from, to]
func CompletedHours(tasks []allocation.Task, from, to calendar.Date) float64 {
	return Summarize(tasks, from, to).Total.CompletedHours
}
