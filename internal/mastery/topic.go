// Package mastery tracks how well each syllabus topic is known and when it has to be
// reviewed again.
package mastery

import (
	"errors"
	"fmt"

	"github.com/at-ishikawa/studyplan/internal/calendar"
	"github.com/at-ishikawa/studyplan/internal/validation"
)

var ErrTopicNotFound = errors.New("topic not found")

// Subject groups topics. The order of Topics is the default iteration order.
type Subject struct {
	ID     string  `db:"id" json:"id" yaml:"id"`
	Name   string  `db:"name" json:"name" yaml:"name"`
	Topics []Topic `db:"-" json:"topics" yaml:"topics"`
}

// Topic is a single syllabus entry and its review state.
type Topic struct {
	ID               string         `db:"id" json:"id" yaml:"id"`
	SubjectID        string         `db:"subject_id" json:"subject_id" yaml:"subject_id"`
	Name             string         `db:"name" json:"name" yaml:"name"`
	Status           Status         `db:"status" json:"status" yaml:"status"`
	ReviewLevel      int            `db:"review_level" json:"review_level" yaml:"review_level"`
	NextReviewDate   *calendar.Date `db:"next_review_date" json:"next_review_date" yaml:"next_review_date,omitempty"`
	QuestionsTotal   int            `db:"questions_total" json:"questions_total" yaml:"questions_total"`
	QuestionsCorrect int            `db:"questions_correct" json:"questions_correct" yaml:"questions_correct"`
	Notes            string         `db:"notes" json:"notes" yaml:"notes,omitempty"`
}

// NewTopic returns a topic that has not been studied yet.
func NewTopic(id, subjectID, name string) Topic {
	return Topic{
		ID:        id,
		SubjectID: subjectID,
		Name:      name,
		Status:    StatusNotStudied,
	}
}

// RecordQuestions adds the result of a practice round to the topic's question counts.
func (t *Topic) RecordQuestions(total, correct int) error {
	if total < 0 {
		return validation.Errorf("questions_total", "must not be negative, got %d", total)
	}
	if correct < 0 {
		return validation.Errorf("questions_correct", "must not be negative, got %d", correct)
	}
	t.QuestionsTotal += total
	t.QuestionsCorrect += correct
	return nil
}

// Accuracy returns the share of correctly answered questions, or 0 without any answers.
func (t Topic) Accuracy() float64 {
	if t.QuestionsTotal == 0 {
		return 0
	}
	return float64(t.QuestionsCorrect) / float64(t.QuestionsTotal)
}

// FindTopic returns a pointer into subjects for the topic with the given id,
// so that callers can mutate it in place.
func FindTopic(subjects []Subject, id string) (*Topic, error) {
	for i := range subjects {
		for j := range subjects[i].Topics {
			if subjects[i].Topics[j].ID == id {
				return &subjects[i].Topics[j], nil
			}
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrTopicNotFound, id)
}
