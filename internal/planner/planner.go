// Package planner runs the scheduling engines against the stored records of one owner.
package planner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/at-ishikawa/studyplan/internal/allocation"
	"github.com/at-ishikawa/studyplan/internal/calendar"
	"github.com/at-ishikawa/studyplan/internal/mastery"
	"github.com/at-ishikawa/studyplan/internal/statistics"
	"github.com/at-ishikawa/studyplan/internal/store"
	"github.com/at-ishikawa/studyplan/internal/validation"
)

//go:generate mockgen -source=planner.go -destination=../mocks/planner/mock_planner.go -package=mock_planner

// Planner is every operation offered to the CLI and the HTTP API.
type Planner interface {
	ListSubjects(ctx context.Context, ownerID string) ([]mastery.Subject, error)
	ImportSubjects(ctx context.Context, ownerID string, subjects []mastery.Subject) ([]mastery.Subject, error)
	AddTopic(ctx context.Context, ownerID string, input TopicInput) (mastery.Topic, error)
	ListTopics(ctx context.Context, ownerID string, status mastery.Status) ([]mastery.Topic, error)
	SetTopicStatus(ctx context.Context, ownerID, topicID string, status mastery.Status) (mastery.Topic, error)
	CompleteReview(ctx context.Context, ownerID, topicID string) (mastery.Topic, error)
	RecordQuestions(ctx context.Context, ownerID, topicID string, total, correct int) (mastery.Topic, error)
	DueTopics(ctx context.Context, ownerID string) ([]mastery.Topic, error)

	ListTasks(ctx context.Context, ownerID string) ([]allocation.Task, error)
	CreateTask(ctx context.Context, ownerID string, input TaskInput) (allocation.Task, error)
	RelocateTask(ctx context.Context, ownerID, taskID string, date calendar.Date, start calendar.ClockTime) (allocation.Task, error)
	UnscheduleTask(ctx context.Context, ownerID, taskID string) (allocation.Task, error)
	CompleteTask(ctx context.Context, ownerID, taskID string, completed bool) (allocation.Task, error)
	DeleteTask(ctx context.Context, ownerID, taskID string) error
	TaskBuckets(ctx context.Context, ownerID, taskID string) ([]allocation.BucketFill, error)
	DayGrid(ctx context.Context, ownerID string, date calendar.Date) (allocation.DayGrid, error)
	Overlaps(ctx context.Context, ownerID string, from, to calendar.Date) ([]allocation.Overlap, error)
	Stats(ctx context.Context, ownerID string, from, to calendar.Date) (statistics.Summary, error)
}

// TopicInput describes a topic to append to an existing subject.
type TopicInput struct {
	SubjectID string `json:"subject_id"`
	Name      string `json:"name"`
	Notes     string `json:"notes,omitempty"`
}

// TaskInput describes a new task. Date and start time are given together or not at all;
// without them the task goes to the unscheduled pool.
type TaskInput struct {
	SubjectRef    string              `json:"subject_ref"`
	TopicRef      *string             `json:"topic_ref,omitempty"`
	Title         string              `json:"title"`
	Description   string              `json:"description,omitempty"`
	Priority      allocation.Priority `json:"priority,omitempty"`
	DurationHours float64             `json:"duration_hours"`
	ScheduledDate *calendar.Date      `json:"scheduled_date,omitempty"`
	StartTime     *calendar.ClockTime `json:"start_time,omitempty"`
}

// Service implements Planner on top of the store repositories.
type Service struct {
	subjects  store.SubjectRepository
	topics    store.TopicRepository
	tasks     store.TaskRepository
	scheduler *mastery.Scheduler
	location  *time.Location
	now       func() time.Time
	newID     func() string
}

var _ Planner = (*Service)(nil)

type Option func(*Service)

// WithClock replaces time.Now, which decides what "today" is.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithLocation sets the time zone in which "today" is evaluated.
func WithLocation(location *time.Location) Option {
	return func(s *Service) {
		s.location = location
	}
}

// WithIDGenerator replaces the UUID generator for new records.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		s.newID = newID
	}
}

func NewService(
	subjects store.SubjectRepository,
	topics store.TopicRepository,
	tasks store.TaskRepository,
	scheduler *mastery.Scheduler,
	opts ...Option,
) *Service {
	s := &Service{
		subjects:  subjects,
		topics:    topics,
		tasks:     tasks,
		scheduler: scheduler,
		location:  time.Local,
		now:       time.Now,
		newID:     func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Today is the current date in the configured location.
func (s *Service) Today() calendar.Date {
	return calendar.DateOf(s.now().In(s.location))
}

func (s *Service) ListSubjects(ctx context.Context, ownerID string) ([]mastery.Subject, error) {
	subjects, err := s.subjects.FindAll(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("load subjects: %w", err)
	}
	return subjects, nil
}

// ImportSubjects appends subjects to the syllabus. Missing IDs are generated and every
// topic starts as NOT_STUDIED.
func (s *Service) ImportSubjects(ctx context.Context, ownerID string, subjects []mastery.Subject) ([]mastery.Subject, error) {
	imported := make([]mastery.Subject, len(subjects))
	for i, subject := range subjects {
		if subject.Name == "" {
			return nil, validation.Errorf("subjects", "subject %d has no name", i+1)
		}
		if subject.ID == "" {
			subject.ID = s.newID()
		}
		topics := make([]mastery.Topic, len(subject.Topics))
		for j, topic := range subject.Topics {
			if topic.Name == "" {
				return nil, validation.Errorf("topics", "topic %d of subject %s has no name", j+1, subject.Name)
			}
			id := topic.ID
			if id == "" {
				id = s.newID()
			}
			fresh := mastery.NewTopic(id, subject.ID, topic.Name)
			fresh.Notes = topic.Notes
			topics[j] = fresh
		}
		subject.Topics = topics
		imported[i] = subject
	}

	if err := s.subjects.Create(ctx, ownerID, imported); err != nil {
		return nil, fmt.Errorf("save subjects: %w", err)
	}
	slog.Default().Info("imported syllabus", "owner", ownerID, "subjects", len(imported))
	return imported, nil
}

func (s *Service) AddTopic(ctx context.Context, ownerID string, input TopicInput) (mastery.Topic, error) {
	if input.SubjectID == "" {
		return mastery.Topic{}, validation.Errorf("subject_id", "is required")
	}
	if input.Name == "" {
		return mastery.Topic{}, validation.Errorf("name", "is required")
	}
	topic := mastery.NewTopic(s.newID(), input.SubjectID, input.Name)
	topic.Notes = input.Notes
	if err := s.topics.Create(ctx, ownerID, topic); err != nil {
		return mastery.Topic{}, fmt.Errorf("save topic: %w", err)
	}
	return topic, nil
}

// ListTopics returns the owner's topics. An empty status returns all of them.
func (s *Service) ListTopics(ctx context.Context, ownerID string, status mastery.Status) ([]mastery.Topic, error) {
	if status != "" && !status.IsValid() {
		return nil, validation.Errorf("status", "unknown status %q", string(status))
	}
	topics, err := s.topics.FindAll(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("load topics: %w", err)
	}
	if status == "" {
		return topics, nil
	}
	var filtered []mastery.Topic
	for _, topic := range topics {
		if topic.Status == status {
			filtered = append(filtered, topic)
		}
	}
	return filtered, nil
}

func (s *Service) SetTopicStatus(ctx context.Context, ownerID, topicID string, status mastery.Status) (mastery.Topic, error) {
	return s.updateTopic(ctx, ownerID, func(subjects []mastery.Subject) (mastery.Topic, error) {
		return s.scheduler.SetStatusByID(subjects, topicID, status, s.Today())
	})
}

func (s *Service) CompleteReview(ctx context.Context, ownerID, topicID string) (mastery.Topic, error) {
	return s.updateTopic(ctx, ownerID, func(subjects []mastery.Subject) (mastery.Topic, error) {
		return s.scheduler.CompleteReviewByID(subjects, topicID, s.Today())
	})
}

func (s *Service) RecordQuestions(ctx context.Context, ownerID, topicID string, total, correct int) (mastery.Topic, error) {
	return s.updateTopic(ctx, ownerID, func(subjects []mastery.Subject) (mastery.Topic, error) {
		topic, err := mastery.FindTopic(subjects, topicID)
		if err != nil {
			return mastery.Topic{}, err
		}
		if err := topic.RecordQuestions(total, correct); err != nil {
			return mastery.Topic{}, err
		}
		return *topic, nil
	})
}

func (s *Service) updateTopic(ctx context.Context, ownerID string, apply func([]mastery.Subject) (mastery.Topic, error)) (mastery.Topic, error) {
	subjects, err := s.subjects.FindAll(ctx, ownerID)
	if err != nil {
		return mastery.Topic{}, fmt.Errorf("load subjects: %w", err)
	}
	topic, err := apply(subjects)
	if err != nil {
		return mastery.Topic{}, err
	}
	if err := s.topics.Update(ctx, ownerID, topic); err != nil {
		return mastery.Topic{}, fmt.Errorf("save topic %s: %w", topic.ID, err)
	}
	slog.Default().Debug("updated topic",
		"owner", ownerID,
		"topic", topic.ID,
		"status", topic.Status,
		"review_level", topic.ReviewLevel)
	return topic, nil
}

func (s *Service) DueTopics(ctx context.Context, ownerID string) ([]mastery.Topic, error) {
	subjects, err := s.subjects.FindAll(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("load subjects: %w", err)
	}
	return mastery.DueTopics(subjects, s.Today()), nil
}

func (s *Service) ListTasks(ctx context.Context, ownerID string) ([]allocation.Task, error) {
	tasks, err := s.tasks.FindAll(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	return tasks, nil
}

func (s *Service) CreateTask(ctx context.Context, ownerID string, input TaskInput) (allocation.Task, error) {
	task, err := allocation.NewTask(s.newID(), input.SubjectRef, input.Title, input.DurationHours)
	if err != nil {
		return allocation.Task{}, err
	}
	task.TopicRef = input.TopicRef
	task.Description = input.Description
	if input.Priority != "" {
		task.Priority = input.Priority
	}

	switch {
	case input.ScheduledDate != nil && input.StartTime != nil:
		task, err = allocation.Relocate(task, *input.ScheduledDate, *input.StartTime)
		if err != nil {
			return allocation.Task{}, err
		}
	case input.ScheduledDate != nil:
		return allocation.Task{}, validation.Errorf("start_time", "is required when scheduled_date is set")
	case input.StartTime != nil:
		return allocation.Task{}, validation.Errorf("scheduled_date", "is required when start_time is set")
	}
	if err := allocation.Validate(task); err != nil {
		return allocation.Task{}, err
	}

	if err := s.tasks.Create(ctx, ownerID, task); err != nil {
		return allocation.Task{}, fmt.Errorf("save task: %w", err)
	}
	return task, nil
}

func (s *Service) RelocateTask(ctx context.Context, ownerID, taskID string, date calendar.Date, start calendar.ClockTime) (allocation.Task, error) {
	return s.updateTask(ctx, ownerID, taskID, func(task allocation.Task) (allocation.Task, error) {
		return allocation.Relocate(task, date, start)
	})
}

func (s *Service) UnscheduleTask(ctx context.Context, ownerID, taskID string) (allocation.Task, error) {
	return s.updateTask(ctx, ownerID, taskID, func(task allocation.Task) (allocation.Task, error) {
		return allocation.Unschedule(task), nil
	})
}

func (s *Service) CompleteTask(ctx context.Context, ownerID, taskID string, completed bool) (allocation.Task, error) {
	return s.updateTask(ctx, ownerID, taskID, func(task allocation.Task) (allocation.Task, error) {
		return allocation.SetCompleted(task, completed), nil
	})
}

func (s *Service) updateTask(ctx context.Context, ownerID, taskID string, apply func(allocation.Task) (allocation.Task, error)) (allocation.Task, error) {
	stored, err := s.tasks.FindByID(ctx, ownerID, taskID)
	if err != nil {
		return allocation.Task{}, fmt.Errorf("load task: %w", err)
	}
	task, err := apply(*stored)
	if err != nil {
		return allocation.Task{}, err
	}
	if err := s.tasks.Update(ctx, ownerID, task); err != nil {
		return allocation.Task{}, fmt.Errorf("save task %s: %w", task.ID, err)
	}
	return task, nil
}

func (s *Service) DeleteTask(ctx context.Context, ownerID, taskID string) error {
	if err := s.tasks.Delete(ctx, ownerID, taskID); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

func (s *Service) TaskBuckets(ctx context.Context, ownerID, taskID string) ([]allocation.BucketFill, error) {
	task, err := s.tasks.FindByID(ctx, ownerID, taskID)
	if err != nil {
		return nil, fmt.Errorf("load task: %w", err)
	}
	return allocation.Buckets(*task)
}

func (s *Service) DayGrid(ctx context.Context, ownerID string, date calendar.Date) (allocation.DayGrid, error) {
	tasks, err := s.tasks.FindInRange(ctx, ownerID, date, date)
	if err != nil {
		return allocation.DayGrid{}, fmt.Errorf("load tasks: %w", err)
	}
	return allocation.BuildDayGrid(tasks, date)
}

func (s *Service) Overlaps(ctx context.Context, ownerID string, from, to calendar.Date) ([]allocation.Overlap, error) {
	if err := validateRange(from, to); err != nil {
		return nil, err
	}
	tasks, err := s.tasks.FindInRange(ctx, ownerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	return allocation.FindOverlaps(tasks), nil
}

func (s *Service) Stats(ctx context.Context, ownerID string, from, to calendar.Date) (statistics.Summary, error) {
	if err := validateRange(from, to); err != nil {
		return statistics.Summary{}, err
	}
	tasks, err := s.tasks.FindInRange(ctx, ownerID, from, to)
	if err != nil {
		return statistics.Summary{}, fmt.Errorf("load tasks: %w", err)
	}
	return statistics.Summarize(tasks, from, to), nil
}

func validateRange(from, to calendar.Date) error {
	if to.Before(from.Time) {
		return validation.Errorf("to", "%s is before from %s", to, from)
	}
	return nil
}
