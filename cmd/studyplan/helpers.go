package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/studyplan/internal/calendar"
	"github.com/at-ishikawa/studyplan/internal/client"
	"github.com/at-ishikawa/studyplan/internal/config"
	"github.com/at-ishikawa/studyplan/internal/database"
	"github.com/at-ishikawa/studyplan/internal/mastery"
	"github.com/at-ishikawa/studyplan/internal/planner"
	"github.com/at-ishikawa/studyplan/internal/store"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

// ownerID returns the --owner flag, falling back to the configured owner.
func ownerID(cfg *config.Config) string {
	if ownerFlag != "" {
		return ownerFlag
	}
	return cfg.OwnerID
}

// openPlanner is replaced in tests.
var openPlanner = defaultOpenPlanner

// defaultOpenPlanner talks to --server when it is set and to the configured database otherwise.
// The returned function releases the connection.
func defaultOpenPlanner(ctx context.Context, cfg *config.Config) (planner.Planner, func() error, error) {
	if serverURL != "" {
		return client.New(serverURL), func() error { return nil }, nil
	}

	db, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("database.Connect() > %w", err)
	}
	service, err := newService(db, cfg)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return service, db.Close, nil
}

func newService(db *sqlx.DB, cfg *config.Config) (*planner.Service, error) {
	table, err := cfg.IntervalTable()
	if err != nil {
		return nil, fmt.Errorf("cfg.IntervalTable() > %w", err)
	}
	location, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	return planner.NewService(
		store.NewDBSubjectRepository(db),
		store.NewDBTopicRepository(db),
		store.NewDBTaskRepository(db),
		mastery.NewScheduler(table),
		planner.WithLocation(location),
	), nil
}

// withPlanner loads the config, opens the planner and runs fn with the owner to act on.
func withPlanner(ctx context.Context, fn func(p planner.Planner, cfg *config.Config, owner string) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	p, closeFn, err := openPlanner(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		_ = closeFn()
	}()
	return fn(p, cfg, ownerID(cfg))
}

// today is the current date in the configured timezone.
func today(cfg *config.Config) (calendar.Date, error) {
	location, err := cfg.Location()
	if err != nil {
		return calendar.Date{}, err
	}
	return calendar.DateOf(now().In(location)), nil
}

var now = time.Now
