package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/studyplan/internal/allocation"
	"github.com/at-ishikawa/studyplan/internal/calendar"
	"github.com/at-ishikawa/studyplan/internal/config"
	"github.com/at-ishikawa/studyplan/internal/planner"
)

func newTasksCommand() *cobra.Command {
	tasksCommand := &cobra.Command{
		Use:   "tasks",
		Short: "Plan study tasks on the calendar",
	}
	tasksCommand.AddCommand(
		newTasksListCommand(),
		newTasksCreateCommand(),
		newTasksRelocateCommand(),
		newTasksUnscheduleCommand(),
		newTasksCompleteCommand(),
		newTasksDeleteCommand(),
		newTasksBucketsCommand(),
		newTasksGridCommand(),
		newTasksOverlapsCommand(),
	)
	return tasksCommand
}

func newTasksListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPlanner(cmd.Context(), func(p planner.Planner, _ *config.Config, owner string) error {
				tasks, err := p.ListTasks(cmd.Context(), owner)
				if err != nil {
					return err
				}
				printTasks(cmd.OutOrStdout(), tasks)
				return nil
			})
		},
	}
}

func newTasksCreateCommand() *cobra.Command {
	var (
		subject     string
		topic       string
		description string
		hours       float64
		priority    = PriorityFlag(allocation.PriorityMedium)
		date        DateFlag
		start       ClockFlag
	)
	cmd := &cobra.Command{
		Use:   "create <title>",
		Short: "Create a task in the pool, or on the calendar with --date and --start",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := planner.TaskInput{
				SubjectRef:    subject,
				Title:         args[0],
				Description:   description,
				Priority:      allocation.Priority(priority),
				DurationHours: hours,
				ScheduledDate: date.date,
				StartTime:     start.clock,
			}
			if topic != "" {
				input.TopicRef = &topic
			}
			return withPlanner(cmd.Context(), func(p planner.Planner, _ *config.Config, owner string) error {
				task, err := p.CreateTask(cmd.Context(), owner, input)
				if err != nil {
					return err
				}
				printTask(cmd.OutOrStdout(), task)
				return nil
			})
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&subject, "subject", "", "Subject ID of the task")
	flags.StringVar(&topic, "topic", "", "Topic ID of the task")
	flags.StringVar(&description, "description", "", "Description of the task")
	flags.Float64Var(&hours, "hours", 1, "Duration in hours")
	flags.Var(&priority, "priority", "Priority. Options: LOW, MEDIUM, HIGH, URGENT")
	flags.Var(&date, "date", "Scheduled date (YYYY-MM-DD)")
	flags.Var(&start, "start", "Start time (HH:MM)")
	_ = cmd.MarkFlagRequired("subject")
	cmd.MarkFlagsRequiredTogether("date", "start")
	return cmd
}

func newTasksRelocateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "relocate <task id> <date> <start>",
		Short: "Move a task to a date and start time, keeping its duration",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := calendar.ParseDate(args[1])
			if err != nil {
				return err
			}
			start, err := calendar.ParseClockTime(args[2])
			if err != nil {
				return err
			}
			return withPlanner(cmd.Context(), func(p planner.Planner, _ *config.Config, owner string) error {
				task, err := p.RelocateTask(cmd.Context(), owner, args[0], date, start)
				if err != nil {
					return err
				}
				printTask(cmd.OutOrStdout(), task)
				return nil
			})
		},
	}
}

func newTasksUnscheduleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unschedule <task id>",
		Short: "Return a task to the pool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPlanner(cmd.Context(), func(p planner.Planner, _ *config.Config, owner string) error {
				task, err := p.UnscheduleTask(cmd.Context(), owner, args[0])
				if err != nil {
					return err
				}
				printTask(cmd.OutOrStdout(), task)
				return nil
			})
		},
	}
}

func newTasksCompleteCommand() *cobra.Command {
	var undo bool
	cmd := &cobra.Command{
		Use:   "complete <task id>",
		Short: "Mark a task as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPlanner(cmd.Context(), func(p planner.Planner, _ *config.Config, owner string) error {
				task, err := p.CompleteTask(cmd.Context(), owner, args[0], !undo)
				if err != nil {
					return err
				}
				printTask(cmd.OutOrStdout(), task)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&undo, "undo", false, "Mark the task as not completed")
	return cmd
}

func newTasksDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <task id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPlanner(cmd.Context(), func(p planner.Planner, _ *config.Config, owner string) error {
				if err := p.DeleteTask(cmd.Context(), owner, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %s\n", args[0])
				return nil
			})
		},
	}
}

func newTasksBucketsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "buckets <task id>",
		Short: "Show how a scheduled task fills the hour buckets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPlanner(cmd.Context(), func(p planner.Planner, _ *config.Config, owner string) error {
				fills, err := p.TaskBuckets(cmd.Context(), owner, args[0])
				if err != nil {
					return err
				}
				printBuckets(cmd.OutOrStdout(), fills)
				return nil
			})
		},
	}
}

func newTasksGridCommand() *cobra.Command {
	var date DateFlag
	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Show the hour grid of a day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPlanner(cmd.Context(), func(p planner.Planner, cfg *config.Config, owner string) error {
				day, err := today(cfg)
				if err != nil {
					return err
				}
				grid, err := p.DayGrid(cmd.Context(), owner, date.Or(day))
				if err != nil {
					return err
				}
				printGrid(cmd.OutOrStdout(), grid)
				return nil
			})
		},
	}
	cmd.Flags().Var(&date, "date", "Day to show (YYYY-MM-DD, default: today)")
	return cmd
}

func newTasksOverlapsCommand() *cobra.Command {
	var from, to DateFlag
	cmd := &cobra.Command{
		Use:   "overlaps",
		Short: "List scheduled tasks that overlap each other",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPlanner(cmd.Context(), func(p planner.Planner, cfg *config.Config, owner string) error {
				start, end, err := dateRange(cfg, from, to)
				if err != nil {
					return err
				}
				overlaps, err := p.Overlaps(cmd.Context(), owner, start, end)
				if err != nil {
					return err
				}
				printOverlaps(cmd.OutOrStdout(), overlaps)
				return nil
			})
		},
	}
	addRangeFlags(cmd, &from, &to)
	return cmd
}

func newStatsCommand() *cobra.Command {
	var from, to DateFlag
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize planned and completed hours",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPlanner(cmd.Context(), func(p planner.Planner, cfg *config.Config, owner string) error {
				start, end, err := dateRange(cfg, from, to)
				if err != nil {
					return err
				}
				summary, err := p.Stats(cmd.Context(), owner, start, end)
				if err != nil {
					return err
				}
				printSummary(cmd.OutOrStdout(), summary)
				return nil
			})
		},
	}
	addRangeFlags(cmd, &from, &to)
	return cmd
}

const defaultRangeDays = 7

func addRangeFlags(cmd *cobra.Command, from, to *DateFlag) {
	cmd.Flags().Var(from, "from", "First day (YYYY-MM-DD, default: six days before --to)")
	cmd.Flags().Var(to, "to", "Last day (YYYY-MM-DD, default: today)")
}

// dateRange defaults to the week ending today.
func dateRange(cfg *config.Config, from, to DateFlag) (calendar.Date, calendar.Date, error) {
	day, err := today(cfg)
	if err != nil {
		return calendar.Date{}, calendar.Date{}, err
	}
	end := to.Or(day)
	return from.Or(end.AddDays(-(defaultRangeDays - 1))), end, nil
}
