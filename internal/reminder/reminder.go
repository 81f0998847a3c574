// Package reminder recomputes the review due queue once a day and reports it.
package reminder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/at-ishikawa/studyplan/internal/mastery"
)

const defaultAt = "00:00"

// DueLister returns the topics due for review of an owner. planner.Planner satisfies it.
type DueLister interface {
	DueTopics(ctx context.Context, ownerID string) ([]mastery.Topic, error)
}

// Notifier delivers the due queue of one owner.
type Notifier interface {
	Notify(ctx context.Context, ownerID string, due []mastery.Topic) error
}

// LogNotifier writes the due queue to the structured log.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(ctx context.Context, ownerID string, due []mastery.Topic) error {
	names := make([]string, 0, len(due))
	for _, topic := range due {
		names = append(names, topic.Name)
	}
	n.logger.InfoContext(ctx, "topics due for review",
		"owner", ownerID,
		"count", len(due),
		"topics", names)
	return nil
}

type Reminder struct {
	planner   DueLister
	notifier  Notifier
	owners    []string
	at        string
	scheduler *gocron.Scheduler
	job       *gocron.Job
}

// New returns a reminder that runs every day at at ("HH:MM") in location.
func New(p DueLister, notifier Notifier, owners []string, at string, location *time.Location) *Reminder {
	if at == "" {
		at = defaultAt
	}
	if location == nil {
		location = time.Local
	}
	scheduler := gocron.NewScheduler(location)
	scheduler.SingletonModeAll()
	return &Reminder{
		planner:   p,
		notifier:  notifier,
		owners:    owners,
		at:        at,
		scheduler: scheduler,
	}
}

// Start schedules the daily job without blocking. The context is passed to every run.
func (r *Reminder) Start(ctx context.Context) error {
	job, err := r.scheduler.Every(1).Day().At(r.at).Do(func() {
		if err := r.RunOnce(ctx); err != nil {
			slog.Default().Error("reminder run failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("scheduler.Every(1).Day().At(%s).Do > %w", r.at, err)
	}
	r.job = job
	r.scheduler.StartAsync()
	slog.Default().Info("reminder scheduled", "at", r.at, "owners", r.owners)
	return nil
}

func (r *Reminder) Stop() {
	r.scheduler.Stop()
}

// RunOnce notifies every owner. A failing owner does not stop the others.
func (r *Reminder) RunOnce(ctx context.Context) error {
	var errs []error
	for _, owner := range r.owners {
		due, err := r.planner.DueTopics(ctx, owner)
		if err != nil {
			errs = append(errs, fmt.Errorf("planner.DueTopics(%s) > %w", owner, err))
			continue
		}
		if len(due) == 0 {
			slog.Default().Debug("nothing due", "owner", owner)
			continue
		}
		if err := r.notifier.Notify(ctx, owner, due); err != nil {
			errs = append(errs, fmt.Errorf("notifier.Notify(%s) > %w", owner, err))
		}
	}
	return errors.Join(errs...)
}
