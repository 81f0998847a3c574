package allocation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/studyplan/internal/calendar"
	"github.com/at-ishikawa/studyplan/internal/validation"
)

func TestRelocate_KeepsDurationAndRecomputesBuckets(t *testing.T) {
	original := scheduledTask("d", "09:30", "11:00", 1.5)
	newDate := calendar.NewDate(2024, time.January, 3)

	moved, err := Relocate(original, newDate, calendar.MustClockTime("14:00"))
	require.NoError(t, err)

	assert.Equal(t, "d", moved.ID)
	assert.Equal(t, original.DurationHours, moved.DurationHours)
	assert.Equal(t, newDate, *moved.ScheduledDate)
	assert.Equal(t, "14:00", moved.StartTime.String())
	assert.Equal(t, "15:30", moved.EndTime.String())
	assert.Equal(t, 90, moved.EndTime.Minutes()-moved.StartTime.Minutes())

	fills, err := Buckets(moved)
	require.NoError(t, err)
	require.Len(t, fills, 2)
	assert.Equal(t, "14:00", fills[0].Bucket)
	assert.Equal(t, 100.0, fills[0].FillPercentage)
	assert.Equal(t, "15:00", fills[1].Bucket)
	assert.Equal(t, 50.0, fills[1].FillPercentage)

	assert.Equal(t, "09:30", original.StartTime.String(), "the input task is not modified")
	require.NoError(t, Validate(moved))
}

func TestRelocate_PreservesDurationForAnyStart(t *testing.T) {
	date := calendar.NewDate(2024, time.February, 1)
	for _, hours := range []float64{0.25, 0.5, 1, 1.5, 2.75, 4} {
		task := Task{ID: "t", SubjectRef: "math", Priority: PriorityHigh, DurationHours: hours}
		for start := 0; start+task.DurationMinutes() < calendar.MinutesPerDay; start += 17 {
			moved, err := Relocate(task, date, calendar.ClockTime(start))
			require.NoError(t, err)
			assert.Equal(t, hours, moved.DurationHours)
			assert.Equal(t, task.DurationMinutes(), moved.EndTime.Minutes()-moved.StartTime.Minutes())
		}
	}
}

func TestRelocate_Rejections(t *testing.T) {
	date := calendar.NewDate(2024, time.January, 1)
	tests := []struct {
		name  string
		task  Task
		start string
	}{
		{
			name:  "no subject",
			task:  Task{ID: "t", Priority: PriorityLow, DurationHours: 1},
			start: "09:00",
		},
		{
			name:  "zero duration",
			task:  Task{ID: "t", SubjectRef: "math", Priority: PriorityLow},
			start: "09:00",
		},
		{
			name:  "negative duration",
			task:  Task{ID: "t", SubjectRef: "math", Priority: PriorityLow, DurationHours: -2},
			start: "09:00",
		},
		{
			name:  "crosses midnight",
			task:  Task{ID: "t", SubjectRef: "math", Priority: PriorityLow, DurationHours: 2},
			start: "23:00",
		},
		{
			name:  "starts at the end of the day",
			task:  Task{ID: "t", SubjectRef: "math", Priority: PriorityLow, DurationHours: 0.5},
			start: "24:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Relocate(tt.task, date, calendar.MustClockTime(tt.start))
			assert.ErrorIs(t, err, validation.ErrValidation)
		})
	}
}

func TestRelocate_EndsAtMidnight(t *testing.T) {
	date := calendar.NewDate(2024, time.January, 1)
	task := Task{ID: "t", SubjectRef: "math", Priority: PriorityLow, DurationHours: 1}

	moved, err := Relocate(task, date, calendar.MustClockTime("23:00"))
	require.NoError(t, err)
	assert.Equal(t, calendar.EndOfDay, *moved.EndTime)

	fills, err := Buckets(moved)
	require.NoError(t, err)
	require.Len(t, fills, 1)
	assert.Equal(t, "23:00", fills[0].Bucket)
	assert.Equal(t, 100.0, fills[0].FillPercentage)
	assert.True(t, fills[0].IsEndSlot)
}

func TestRelocateByID(t *testing.T) {
	tasks := []Task{
		scheduledTask("a", "09:00", "10:00", 1),
		{ID: "b", SubjectRef: "math", Priority: PriorityLow, DurationHours: 0.5},
	}
	date := calendar.NewDate(2024, time.January, 2)

	moved, err := RelocateByID(tasks, "b", date, calendar.MustClockTime("08:15"))
	require.NoError(t, err)
	assert.Equal(t, "08:45", moved.EndTime.String())
	assert.Equal(t, moved, tasks[1])

	_, err = RelocateByID(tasks, "missing", date, calendar.MustClockTime("08:15"))
	assert.ErrorIs(t, err, ErrTaskNotFound)

	_, err = RelocateByID(tasks, "a", date, calendar.MustClockTime("23:30"))
	assert.ErrorIs(t, err, validation.ErrValidation)
	assert.Equal(t, "09:00", tasks[0].StartTime.String(), "rejected relocation leaves the task untouched")
}

func TestUnscheduleAndPool(t *testing.T) {
	tasks := []Task{
		scheduledTask("a", "09:00", "10:00", 1),
		scheduledTask("b", "10:00", "11:00", 1),
	}
	tasks[1] = Unschedule(tasks[1])

	assert.False(t, tasks[1].IsScheduled())
	assert.Nil(t, tasks[1].StartTime)
	assert.Nil(t, tasks[1].EndTime)
	assert.Equal(t, 1.0, tasks[1].DurationHours)

	pool := Pool(tasks)
	require.Len(t, pool, 1)
	assert.Equal(t, "b", pool[0].ID)
}

func TestValidate(t *testing.T) {
	date := calendar.NewDate(2024, time.January, 1)
	tests := []struct {
		name    string
		task    Task
		wantErr string
	}{
		{name: "valid scheduled", task: scheduledTask("t", "09:30", "11:00", 1.5)},
		{name: "valid pool task", task: Task{ID: "t", SubjectRef: "math", Priority: PriorityUrgent, DurationHours: 2}},
		{name: "missing subject", task: Task{ID: "t", Priority: PriorityLow, DurationHours: 1}, wantErr: "subject_ref"},
		{name: "unknown priority", task: Task{ID: "t", SubjectRef: "math", Priority: "SOMEDAY", DurationHours: 1}, wantErr: "priority"},
		{name: "zero duration", task: Task{ID: "t", SubjectRef: "math", Priority: PriorityLow}, wantErr: "duration_hours"},
		{name: "under a minute", task: Task{ID: "t", SubjectRef: "math", Priority: PriorityLow, DurationHours: 0.001}, wantErr: "duration_hours"},
		{
			name:    "times without date",
			task:    Task{ID: "t", SubjectRef: "math", Priority: PriorityLow, DurationHours: 1, StartTime: clockPtr("09:00"), EndTime: clockPtr("10:00")},
			wantErr: "scheduled_date",
		},
		{
			name:    "date without times",
			task:    Task{ID: "t", SubjectRef: "math", Priority: PriorityLow, DurationHours: 1, ScheduledDate: &date},
			wantErr: "start_time",
		},
		{name: "end before start", task: scheduledTask("t", "11:00", "10:00", 1), wantErr: "end_time"},
		{name: "end equals start", task: scheduledTask("t", "10:00", "10:00", 1), wantErr: "end_time"},
		{name: "duration mismatch", task: scheduledTask("t", "09:00", "10:00", 2), wantErr: "end_time"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.task)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, validation.ErrValidation)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewTask(t *testing.T) {
	task, err := NewTask("t", "math", "Read chapter 3", 1.5)
	require.NoError(t, err)
	assert.Equal(t, PriorityMedium, task.Priority)
	assert.False(t, task.IsScheduled())

	_, err = NewTask("t", "", "Read chapter 3", 1.5)
	assert.ErrorIs(t, err, validation.ErrValidation)
}

func TestSetCompleted(t *testing.T) {
	task := scheduledTask("t", "09:00", "10:00", 1)

	done := SetCompleted(task, true)
	assert.True(t, done.Completed)
	assert.Equal(t, task.ScheduledDate, done.ScheduledDate)
	assert.Equal(t, task.StartTime, done.StartTime)
	assert.False(t, task.Completed)

	assert.False(t, SetCompleted(done, false).Completed)
}
