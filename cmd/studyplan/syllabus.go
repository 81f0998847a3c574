package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/studyplan/internal/config"
	"github.com/at-ishikawa/studyplan/internal/datasync"
	"github.com/at-ishikawa/studyplan/internal/planner"
	"github.com/at-ishikawa/studyplan/schemas"
)

func newImportCommand() *cobra.Command {
	var (
		dryRun         bool
		updateExisting bool
		sheet          string
	)
	cmd := &cobra.Command{
		Use:   "import [syllabus file]",
		Short: "Import subjects and topics from a YAML or XLSX syllabus",
		Long: "Import subjects and topics from a YAML or XLSX syllabus. Without a file, " +
			"syllabus.default_file of the config is used, or the built-in syllabus when it is empty.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPlanner(cmd.Context(), func(p planner.Planner, cfg *config.Config, owner string) error {
				path := cfg.Syllabus.DefaultFile
				if len(args) > 0 {
					path = args[0]
				}
				syllabus, err := readSyllabus(path, sheet)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				opts := datasync.ImportOptions{
					DryRun:         dryRun,
					UpdateExisting: updateExisting,
				}
				result, err := datasync.NewImporter(p, out).Import(cmd.Context(), owner, syllabus, opts)
				if err != nil {
					return fmt.Errorf("importer.Import() > %w", err)
				}

				fmt.Fprintln(out, "\nImport Summary:")
				if opts.DryRun {
					fmt.Fprintln(out, "  (dry-run mode, no changes made)")
				}
				fmt.Fprintf(out, "  Subjects: %d new, %d skipped\n", result.SubjectsNew, result.SubjectsSkipped)
				fmt.Fprintf(out, "  Topics:   %d new, %d skipped\n", result.TopicsNew, result.TopicsSkipped)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview changes without modifying the plan")
	cmd.Flags().BoolVar(&updateExisting, "update-existing", false, "Add missing topics to existing subjects")
	cmd.Flags().StringVar(&sheet, "sheet", "", "Sheet of an XLSX syllabus (default: the first sheet)")
	return cmd
}

// readSyllabus reads path as XLSX or YAML by its extension. An empty path reads the built-in syllabus.
func readSyllabus(path, sheet string) (*datasync.Syllabus, error) {
	if path == "" {
		return datasync.ReadYAML(bytes.NewReader(schemas.DefaultSyllabus))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("os.Open(%s) > %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return datasync.ReadXLSX(f, sheet)
	default:
		return datasync.ReadYAML(f)
	}
}

func newExportCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the syllabus with the progress of every topic as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPlanner(cmd.Context(), func(p planner.Planner, _ *config.Config, owner string) error {
				syllabus, err := datasync.NewExporter(p).Export(cmd.Context(), owner)
				if err != nil {
					return fmt.Errorf("exporter.Export() > %w", err)
				}

				var w io.Writer = cmd.OutOrStdout()
				if output != "" {
					f, err := os.Create(output)
					if err != nil {
						return fmt.Errorf("os.Create(%s) > %w", output, err)
					}
					defer func() {
						_ = f.Close()
					}()
					w = f
				}
				return datasync.WriteYAML(w, syllabus)
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	return cmd
}
