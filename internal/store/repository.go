// Package store persists subjects, topics and tasks per owner.
package store

import (
	"context"

	"github.com/at-ishikawa/studyplan/internal/allocation"
	"github.com/at-ishikawa/studyplan/internal/calendar"
	"github.com/at-ishikawa/studyplan/internal/mastery"
)

//go:generate mockgen -source=repository.go -destination=../mocks/store/mock_repository.go -package=mock_store

// SubjectRepository defines operations for managing subjects with their topics.
type SubjectRepository interface {
	FindAll(ctx context.Context, ownerID string) ([]mastery.Subject, error)
	Create(ctx context.Context, ownerID string, subjects []mastery.Subject) error
}

// TopicRepository defines operations for managing topics.
type TopicRepository interface {
	FindByID(ctx context.Context, ownerID, id string) (*mastery.Topic, error)
	FindAll(ctx context.Context, ownerID string) ([]mastery.Topic, error)
	Create(ctx context.Context, ownerID string, topic mastery.Topic) error
	Update(ctx context.Context, ownerID string, topic mastery.Topic) error
}

// TaskRepository defines operations for managing study tasks.
type TaskRepository interface {
	FindByID(ctx context.Context, ownerID, id string) (*allocation.Task, error)
	FindAll(ctx context.Context, ownerID string) ([]allocation.Task, error)
	FindInRange(ctx context.Context, ownerID string, from, to calendar.Date) ([]allocation.Task, error)
	Create(ctx context.Context, ownerID string, task allocation.Task) error
	Update(ctx context.Context, ownerID string, task allocation.Task) error
	Delete(ctx context.Context, ownerID, id string) error
}
