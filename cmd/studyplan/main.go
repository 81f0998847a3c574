package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configFile string
	serverURL  string
	ownerFlag  string
)

func main() {
	rootCommand := newRootCommand()
	if err := rootCommand.Execute(); err != nil {
		if _, fprintfErr := fmt.Fprintf(os.Stderr, "failed to execute a command: %+v\n", err); fprintfErr != nil {
			panic(fmt.Errorf("failed to output an error: %w. Reason: %w", err, fprintfErr))
		}
		os.Exit(1)
	}
	os.Exit(0)
}

func newRootCommand() *cobra.Command {
	var debugMode bool
	var envFile string
	rootCommand := &cobra.Command{
		Use:           "studyplan",
		Short:         "Track syllabus mastery and schedule study tasks",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogger(debugMode)
			return loadEnvFile(envFile)
		},
	}
	flags := rootCommand.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file path")
	flags.BoolVar(&debugMode, "debug", false, "Enable debug mode")
	flags.StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the config")
	flags.StringVar(&serverURL, "server", "", "URL of a running studyplan server, for example http://localhost:8080")
	flags.StringVar(&ownerFlag, "owner", "", "owner whose plan is used (default: owner_id of the config)")

	rootCommand.AddCommand(
		newSubjectsCommand(),
		newTopicsCommand(),
		newDueCommand(),
		newTasksCommand(),
		newStatsCommand(),
		newImportCommand(),
		newExportCommand(),
		newMigrateCommand(),
		newServeCommand(),
	)
	return rootCommand
}

// setupLogger configures the default logger based on debug mode
func setupLogger(debugMode bool) {
	logLevel := slog.LevelInfo
	if debugMode {
		logLevel = slog.LevelDebug
	}

	slog.SetDefault(
		slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		})),
	)
}

// loadEnvFile exports the variables of a dotenv file. A missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("godotenv.Load(%s) > %w", path, err)
	}
	slog.Default().Debug("loaded env file", "path", path)
	return nil
}
