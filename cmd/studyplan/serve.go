package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/studyplan/internal/bootstrap"
	"github.com/at-ishikawa/studyplan/internal/database"
	"github.com/at-ishikawa/studyplan/internal/reminder"
	"github.com/at-ishikawa/studyplan/internal/server"
	"github.com/at-ishikawa/studyplan/schemas"
)

var errServerFlag = errors.New("this command needs a database connection and cannot be used with --server")

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if serverURL != "" {
				return errServerFlag
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := database.Connect(cmd.Context(), cfg.Database)
			if err != nil {
				return fmt.Errorf("database.Connect() > %w", err)
			}
			defer func() {
				_ = db.Close()
			}()

			applied, err := database.Migrate(cmd.Context(), db, schemas.Migrations)
			if err != nil {
				return fmt.Errorf("database.Migrate() > %w", err)
			}
			if len(applied) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Database is up to date.")
				return nil
			}
			for _, version := range applied {
				fmt.Fprintf(cmd.OutOrStdout(), "Applied %s\n", version)
			}
			return nil
		},
	}
}

func newServeCommand() *cobra.Command {
	var migrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the planner API and run the daily review reminder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if serverURL != "" {
				return errServerFlag
			}
			ctx := cmd.Context()
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			location, err := cfg.Location()
			if err != nil {
				return err
			}

			db, err := database.Connect(ctx, cfg.Database)
			if err != nil {
				return fmt.Errorf("database.Connect() > %w", err)
			}
			app := bootstrap.New()
			app.AddShutdownHook(func(ctx context.Context) error {
				return db.Close()
			})

			if migrate {
				if _, err := database.Migrate(ctx, db, schemas.Migrations); err != nil {
					_ = db.Close()
					return fmt.Errorf("database.Migrate() > %w", err)
				}
			}
			service, err := newService(db, cfg)
			if err != nil {
				_ = db.Close()
				return err
			}

			if cfg.Reminder.Enabled {
				owners := cfg.Reminder.Owners
				if len(owners) == 0 {
					owners = []string{cfg.OwnerID}
				}
				r := reminder.New(service, reminder.NewLogNotifier(nil), owners, cfg.Reminder.At, location)
				if err := r.Start(ctx); err != nil {
					_ = db.Close()
					return fmt.Errorf("reminder.Start() > %w", err)
				}
				app.AddShutdownHook(func(ctx context.Context) error {
					r.Stop()
					return nil
				})
			}

			srv := server.New(cfg, service)
			app.AddShutdownHook(srv.Shutdown)
			return app.Run(ctx, func(ctx context.Context) error {
				slog.Default().Info("starting server", "addr", srv.Addr, "driver", cfg.Database.Driver)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("srv.ListenAndServe() > %w", err)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "Apply pending migrations before serving")
	return cmd
}
