package mastery

import (
	"fmt"

	"github.com/at-ishikawa/studyplan/internal/calendar"
	"github.com/at-ishikawa/studyplan/internal/validation"
)

// DefaultReviewIntervals are the days until the next review, indexed by review level.
var DefaultReviewIntervals = []int{3, 7, 15, 30, 60}

// IntervalTable maps a review level to the number of days until the next review.
// A topic whose level reaches the table length is graduated.
type IntervalTable struct {
	days []int
}

// NewIntervalTable validates and copies days.
func NewIntervalTable(days []int) (IntervalTable, error) {
	if len(days) == 0 {
		return IntervalTable{}, validation.Errorf("review_intervals", "must contain at least one interval")
	}
	for i, d := range days {
		if d <= 0 {
			return IntervalTable{}, validation.Errorf("review_intervals", "interval at level %d must be positive, got %d", i, d)
		}
	}
	copied := make([]int, len(days))
	copy(copied, days)
	return IntervalTable{days: copied}, nil
}

// DefaultIntervalTable returns the table built from DefaultReviewIntervals.
func DefaultIntervalTable() IntervalTable {
	table, _ := NewIntervalTable(DefaultReviewIntervals)
	return table
}

// Len returns the number of levels before a topic graduates.
func (t IntervalTable) Len() int {
	return len(t.days)
}

// Days returns the interval for level, and false once the level is graduated.
func (t IntervalTable) Days(level int) (int, bool) {
	if level < 0 || level >= len(t.days) {
		return 0, false
	}
	return t.days[level], true
}

// Graduated reports whether level is past the last interval.
func (t IntervalTable) Graduated(level int) bool {
	return level >= len(t.days)
}

// Scheduler applies status changes and completed reviews to topics.
type Scheduler struct {
	table IntervalTable
}

func NewScheduler(table IntervalTable) *Scheduler {
	return &Scheduler{table: table}
}

func (s *Scheduler) Table() IntervalTable {
	return s.table
}

// SetStatus moves topic to status.
//
// Marking a topic mastered schedules its next review from the interval of its current
// level and leaves the date untouched once the topic is graduated. Any other status
// resets the level and clears the next review date. The level is never incremented here.
func (s *Scheduler) SetStatus(topic *Topic, status Status, today calendar.Date) error {
	switch status {
	case StatusMastered:
		topic.Status = StatusMastered
		if days, ok := s.table.Days(topic.ReviewLevel); ok {
			next := today.AddDays(days)
			topic.NextReviewDate = &next
		}
	case StatusNotStudied, StatusStudying, StatusToReview:
		topic.Status = status
		topic.ReviewLevel = 0
		topic.NextReviewDate = nil
	default:
		return validation.Errorf("status", "unknown status %q", string(status))
	}
	return nil
}

// CompleteReview records a successful review: the topic becomes mastered, its level
// advances by one, and the next review is scheduled from the new level.
// Completing a review past the last level is not an error; the topic simply has no
// further review date.
func (s *Scheduler) CompleteReview(topic *Topic, today calendar.Date) {
	topic.Status = StatusMastered
	topic.ReviewLevel++
	if days, ok := s.table.Days(topic.ReviewLevel); ok {
		next := today.AddDays(days)
		topic.NextReviewDate = &next
		return
	}
	topic.NextReviewDate = nil
}

// SetStatusByID looks the topic up in subjects and applies SetStatus to it.
func (s *Scheduler) SetStatusByID(subjects []Subject, topicID string, status Status, today calendar.Date) (Topic, error) {
	topic, err := FindTopic(subjects, topicID)
	if err != nil {
		return Topic{}, err
	}
	if err := s.SetStatus(topic, status, today); err != nil {
		return Topic{}, fmt.Errorf("set status of topic %s: %w", topicID, err)
	}
	return *topic, nil
}

// CompleteReviewByID looks the topic up in subjects and applies CompleteReview to it.
func (s *Scheduler) CompleteReviewByID(subjects []Subject, topicID string, today calendar.Date) (Topic, error) {
	topic, err := FindTopic(subjects, topicID)
	if err != nil {
		return Topic{}, err
	}
	s.CompleteReview(topic, today)
	return *topic, nil
}
