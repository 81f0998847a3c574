package allocation

import (
	"github.com/at-ishikawa/studyplan/internal/calendar"
	"github.com/at-ishikawa/studyplan/internal/validation"
)

// BucketFill is the share of one hour bucket claimed by a task.
type BucketFill struct {
	Bucket          string  `json:"bucket"`
	Hour            int     `json:"hour"`
	FillPercentage  float64 `json:"fill_percentage"`
	IsStartSlot     bool    `json:"is_start_slot"`
	IsEndSlot       bool    `json:"is_end_slot"`
	OccupiedMinutes int     `json:"occupied_minutes"`
}

// DistributeOverBuckets returns the occupancy of every hour bucket the task overlaps,
// keyed by the bucket label ("09:00").
func DistributeOverBuckets(task Task) (map[string]BucketFill, error) {
	fills, err := Buckets(task)
	if err != nil {
		return nil, err
	}
	result := make(map[string]BucketFill, len(fills))
	for _, fill := range fills {
		result[fill.Bucket] = fill
	}
	return result, nil
}

// Buckets is DistributeOverBuckets ordered by hour.
func Buckets(task Task) ([]BucketFill, error) {
	if task.StartTime == nil || task.EndTime == nil {
		return nil, validation.Errorf("start_time", "task %s has no start and end time", task.ID)
	}
	start, end := task.StartTime.Minutes(), task.EndTime.Minutes()
	if end <= start {
		return nil, validation.Errorf("end_time", "%s must be after start_time %s", task.EndTime, task.StartTime)
	}
	return distribute(start, end), nil
}

// distribute splits [startMin, endMin) over hour buckets. The occupied minutes of all
// buckets add up to endMin-startMin. A range ending exactly on the hour does not claim
// the following bucket.
func distribute(startMin, endMin int) []BucketFill {
	startHour := startMin / calendar.MinutesPerHour
	endHour := (endMin - 1) / calendar.MinutesPerHour

	fills := make([]BucketFill, 0, endHour-startHour+1)
	for hour := startHour; hour <= endHour; hour++ {
		hourStart := hour * calendar.MinutesPerHour
		hourEnd := hourStart + calendar.MinutesPerHour

		occupied := min(endMin, hourEnd) - max(startMin, hourStart)
		fills = append(fills, BucketFill{
			Bucket:          calendar.HourLabel(hour),
			Hour:            hour,
			FillPercentage:  float64(occupied) / calendar.MinutesPerHour * 100,
			IsStartSlot:     hour == startHour,
			IsEndSlot:       hour == endHour,
			OccupiedMinutes: occupied,
		})
	}
	return fills
}
