package statistics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/studyplan/internal/allocation"
	"github.com/at-ishikawa/studyplan/internal/calendar"
)

func task(id, subject string, date *calendar.Date, hours float64, completed bool) allocation.Task {
	return allocation.Task{
		ID:            id,
		SubjectRef:    subject,
		Priority:      allocation.PriorityMedium,
		DurationHours: hours,
		ScheduledDate: date,
		Completed:     completed,
	}
}

func day(d int) *calendar.Date {
	date := calendar.NewDate(2024, time.January, d)
	return &date
}

func TestSummarize(t *testing.T) {
	tasks := []allocation.Task{
		task("1", "math", day(1), 1.5, true),
		task("2", "physics", day(1), 2, false),
		task("3", "math", day(3), 0.5, true),
		task("4", "math", day(7), 1, false),
		task("5", "math", day(8), 4, true),
		task("6", "physics", nil, 3, true),
		task("7", "chemistry", day(2), 1.25, true),
	}

	got := Summarize(tasks, *day(1), *day(7))

	assert.Equal(t, Hours{PlannedHours: 6.25, CompletedHours: 3.25, TaskCount: 5, CompletedCount: 3}, got.Total)

	require.Len(t, got.Days, 4)
	assert.Equal(t, DayHours{Date: *day(1), Hours: Hours{PlannedHours: 3.5, CompletedHours: 1.5, TaskCount: 2, CompletedCount: 1}}, got.Days[0])
	assert.Equal(t, *day(2), got.Days[1].Date)
	assert.Equal(t, *day(3), got.Days[2].Date)
	assert.Equal(t, DayHours{Date: *day(7), Hours: Hours{PlannedHours: 1, TaskCount: 1}}, got.Days[3])

	assert.Equal(t, []SubjectHours{
		{SubjectRef: "chemistry", Hours: Hours{PlannedHours: 1.25, CompletedHours: 1.25, TaskCount: 1, CompletedCount: 1}},
		{SubjectRef: "math", Hours: Hours{PlannedHours: 3, CompletedHours: 2, TaskCount: 3, CompletedCount: 2}},
		{SubjectRef: "physics", Hours: Hours{PlannedHours: 2, TaskCount: 1}},
	}, got.Subjects)
}

func TestSummarize_Empty(t *testing.T) {
	got := Summarize(nil, *day(1), *day(7))

	assert.Equal(t, Hours{}, got.Total)
	assert.Empty(t, got.Days)
	assert.Empty(t, got.Subjects)
	assert.Equal(t, 0.0, got.Total.CompletionRate())
}

func TestPlannedAndCompletedHours(t *testing.T) {
	tasks := []allocation.Task{
		task("1", "math", day(1), 2, true),
		task("2", "math", day(2), 1, false),
		task("3", "math", day(9), 5, true),
	}

	assert.Equal(t, 3.0, PlannedHours(tasks, *day(1), *day(7)))
	assert.Equal(t, 2.0, CompletedHours(tasks, *day(1), *day(7)))
	assert.InDelta(t, 2.0/3.0, Summarize(tasks, *day(1), *day(7)).Total.CompletionRate(), 1e-9)
}

func TestSummarize_ReflectsCurrentCollection(t *testing.T) {
	tasks := []allocation.Task{task("1", "math", day(1), 2, false)}
	assert.Equal(t, 0.0, CompletedHours(tasks, *day(1), *day(1)))

	tasks[0].Completed = true
	assert.Equal(t, 2.0, CompletedHours(tasks, *day(1), *day(1)))
}
