package allocation

import (
	"fmt"
	"sort"

	"github.com/at-ishikawa/studyplan/internal/calendar"
)

const HoursPerDay = calendar.MinutesPerDay / calendar.MinutesPerHour

// Overlap is a pair of tasks on the same day whose time ranges intersect.
// Overlaps are allowed; they are reported so that a caller can show them.
type Overlap struct {
	Date    calendar.Date `json:"date"`
	First   string        `json:"first_task_id"`
	Second  string        `json:"second_task_id"`
	Minutes int           `json:"minutes"`
}

// FindOverlaps returns every overlapping pair of scheduled tasks, ordered by date and
// start time. Tasks that merely touch (one ends when the other starts) do not overlap.
func FindOverlaps(tasks []Task) []Overlap {
	scheduled := scheduledByStart(tasks)

	var overlaps []Overlap
	for i := range scheduled {
		a := scheduled[i]
		for j := i + 1; j < len(scheduled); j++ {
			b := scheduled[j]
			if !b.ScheduledDate.Equal(a.ScheduledDate.Time) {
				break
			}
			if b.StartTime.Minutes() >= a.EndTime.Minutes() {
				break
			}
			overlaps = append(overlaps, Overlap{
				Date:    *a.ScheduledDate,
				First:   a.ID,
				Second:  b.ID,
				Minutes: min(a.EndTime.Minutes(), b.EndTime.Minutes()) - b.StartTime.Minutes(),
			})
		}
	}
	return overlaps
}

// GridEntry is one task's share of a grid cell. Only the entry in the task's first
// bucket carries the title; later buckets only mark that the task continues.
type GridEntry struct {
	TaskID          string   `json:"task_id"`
	Title           string   `json:"title,omitempty"`
	Priority        Priority `json:"priority"`
	Completed       bool     `json:"completed"`
	Continues       bool     `json:"continues"`
	IsEndSlot       bool     `json:"is_end_slot"`
	FillPercentage  float64  `json:"fill_percentage"`
	OccupiedMinutes int      `json:"occupied_minutes"`
	Overlapping     bool     `json:"overlapping"`
}

type GridCell struct {
	Bucket  string      `json:"bucket"`
	Hour    int         `json:"hour"`
	Entries []GridEntry `json:"entries"`
}

// DayGrid is the 24 hour buckets of one date.
type DayGrid struct {
	Date  calendar.Date `json:"date"`
	Cells []GridCell    `json:"cells"`
}

// BuildDayGrid lays every task scheduled on date onto the hourly grid.
// Within a cell, entries are ordered by the start time of their task.
func BuildDayGrid(tasks []Task, date calendar.Date) (DayGrid, error) {
	grid := DayGrid{Date: date, Cells: make([]GridCell, HoursPerDay)}
	for hour := range grid.Cells {
		grid.Cells[hour] = GridCell{Bucket: calendar.HourLabel(hour), Hour: hour}
	}

	var onDate []Task
	for _, task := range tasks {
		if task.IsScheduled() && task.ScheduledDate.Equal(date.Time) {
			onDate = append(onDate, task)
		}
	}

	overlapping := make(map[string]bool)
	for _, overlap := range FindOverlaps(onDate) {
		overlapping[overlap.First] = true
		overlapping[overlap.Second] = true
	}

	for _, task := range scheduledByStart(onDate) {
		fills, err := Buckets(task)
		if err != nil {
			return DayGrid{}, fmt.Errorf("place task %s: %w", task.ID, err)
		}
		for _, fill := range fills {
			entry := GridEntry{
				TaskID:          task.ID,
				Priority:        task.Priority,
				Completed:       task.Completed,
				Continues:       !fill.IsStartSlot,
				IsEndSlot:       fill.IsEndSlot,
				FillPercentage:  fill.FillPercentage,
				OccupiedMinutes: fill.OccupiedMinutes,
				Overlapping:     overlapping[task.ID],
			}
			if fill.IsStartSlot {
				entry.Title = task.Title
			}
			grid.Cells[fill.Hour].Entries = append(grid.Cells[fill.Hour].Entries, entry)
		}
	}
	return grid, nil
}

// scheduledByStart keeps tasks with a date and both times, sorted by date then start.
// The sort is stable so equal starts keep their input order.
func scheduledByStart(tasks []Task) []Task {
	var scheduled []Task
	for _, task := range tasks {
		if task.IsScheduled() && task.StartTime != nil && task.EndTime != nil {
			scheduled = append(scheduled, task)
		}
	}
	sort.SliceStable(scheduled, func(i, j int) bool {
		a, b := scheduled[i], scheduled[j]
		if !a.ScheduledDate.Equal(b.ScheduledDate.Time) {
			return a.ScheduledDate.Before(b.ScheduledDate.Time)
		}
		return a.StartTime.Minutes() < b.StartTime.Minutes()
	})
	return scheduled
}
