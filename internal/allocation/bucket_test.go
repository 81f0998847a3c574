package allocation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/studyplan/internal/calendar"
	"github.com/at-ishikawa/studyplan/internal/validation"
)

func clockPtr(s string) *calendar.ClockTime {
	c := calendar.MustClockTime(s)
	return &c
}

func scheduledTask(id, start, end string, hours float64) Task {
	date := calendar.NewDate(2024, time.January, 1)
	return Task{
		ID:            id,
		SubjectRef:    "math",
		Title:         "Task " + id,
		Priority:      PriorityMedium,
		DurationHours: hours,
		ScheduledDate: &date,
		StartTime:     clockPtr(start),
		EndTime:       clockPtr(end),
	}
}

func TestDistributeOverBuckets_NinetyMinutes(t *testing.T) {
	got, err := DistributeOverBuckets(scheduledTask("d", "09:30", "11:00", 1.5))
	require.NoError(t, err)

	assert.Equal(t, map[string]BucketFill{
		"09:00": {Bucket: "09:00", Hour: 9, FillPercentage: 50, IsStartSlot: true, IsEndSlot: false, OccupiedMinutes: 30},
		"10:00": {Bucket: "10:00", Hour: 10, FillPercentage: 100, IsStartSlot: false, IsEndSlot: true, OccupiedMinutes: 60},
	}, got)
}

func TestBuckets(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		want       []BucketFill
	}{
		{
			name:  "within one hour",
			start: "09:10", end: "09:40",
			want: []BucketFill{
				{Bucket: "09:00", Hour: 9, FillPercentage: 50, IsStartSlot: true, IsEndSlot: true, OccupiedMinutes: 30},
			},
		},
		{
			name:  "exactly one hour on the boundary",
			start: "10:00", end: "11:00",
			want: []BucketFill{
				{Bucket: "10:00", Hour: 10, FillPercentage: 100, IsStartSlot: true, IsEndSlot: true, OccupiedMinutes: 60},
			},
		},
		{
			name:  "partial at both ends",
			start: "08:45", end: "11:15",
			want: []BucketFill{
				{Bucket: "08:00", Hour: 8, FillPercentage: 25, IsStartSlot: true, OccupiedMinutes: 15},
				{Bucket: "09:00", Hour: 9, FillPercentage: 100, OccupiedMinutes: 60},
				{Bucket: "10:00", Hour: 10, FillPercentage: 100, OccupiedMinutes: 60},
				{Bucket: "11:00", Hour: 11, FillPercentage: 25, IsEndSlot: true, OccupiedMinutes: 15},
			},
		},
		{
			name:  "quarter hours up to the last bucket",
			start: "22:15", end: "23:45",
			want: []BucketFill{
				{Bucket: "22:00", Hour: 22, FillPercentage: 75, IsStartSlot: true, OccupiedMinutes: 45},
				{Bucket: "23:00", Hour: 23, FillPercentage: 75, IsEndSlot: true, OccupiedMinutes: 45},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Buckets(scheduledTask("t", tt.start, tt.end, 1))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDistribute_SumsToDuration(t *testing.T) {
	for start := 0; start < calendar.MinutesPerDay; start += 7 {
		for end := start + 1; end <= calendar.MinutesPerDay-1; end += 13 {
			fills := distribute(start, end)

			total := 0
			for i, fill := range fills {
				total += fill.OccupiedMinutes
				assert.Greater(t, fill.FillPercentage, 0.0)
				assert.LessOrEqual(t, fill.FillPercentage, 100.0)
				assert.Equal(t, i == 0, fill.IsStartSlot)
				assert.Equal(t, i == len(fills)-1, fill.IsEndSlot)
			}
			require.Equal(t, end-start, total, "start=%d end=%d", start, end)
		}
	}
}

func TestBuckets_LastMinuteOfDay(t *testing.T) {
	got, err := Buckets(scheduledTask("late", "23:00", "23:59", 59.0/60))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 59, got[0].OccupiedMinutes)
	assert.InDelta(t, 98.333, got[0].FillPercentage, 0.001)
}

func TestBuckets_RequiresTimes(t *testing.T) {
	task := Task{ID: "pool", SubjectRef: "math", Priority: PriorityLow, DurationHours: 1}
	_, err := Buckets(task)
	assert.ErrorIs(t, err, validation.ErrValidation)

	backwards := scheduledTask("b", "11:00", "10:00", 1)
	_, err = DistributeOverBuckets(backwards)
	assert.ErrorIs(t, err, validation.ErrValidation)
}
