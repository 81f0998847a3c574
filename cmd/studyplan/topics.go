package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/studyplan/internal/config"
	"github.com/at-ishikawa/studyplan/internal/mastery"
	"github.com/at-ishikawa/studyplan/internal/planner"
)

func newSubjectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "subjects",
		Short: "List subjects with the status of their topics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPlanner(cmd.Context(), func(p planner.Planner, _ *config.Config, owner string) error {
				subjects, err := p.ListSubjects(cmd.Context(), owner)
				if err != nil {
					return err
				}
				printSubjects(cmd.OutOrStdout(), subjects)
				return nil
			})
		},
	}
}

func newTopicsCommand() *cobra.Command {
	topicsCommand := &cobra.Command{
		Use:   "topics",
		Short: "Track the mastery of topics",
	}
	topicsCommand.AddCommand(
		newTopicsListCommand(),
		newTopicsAddCommand(),
		newTopicsStatusCommand(),
		newTopicsReviewCommand(),
		newTopicsQuestionsCommand(),
	)
	return topicsCommand
}

func newTopicsListCommand() *cobra.Command {
	var status StatusFlag
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List topics, optionally only those with a status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPlanner(cmd.Context(), func(p planner.Planner, _ *config.Config, owner string) error {
				topics, err := p.ListTopics(cmd.Context(), owner, mastery.Status(status))
				if err != nil {
					return err
				}
				printTopics(cmd.OutOrStdout(), topics)
				return nil
			})
		},
	}
	cmd.Flags().Var(&status, "status", "Only list topics with this status. Options: NOT_STUDIED, STUDYING, TO_REVIEW, MASTERED")
	return cmd
}

func newTopicsAddCommand() *cobra.Command {
	var notes string
	cmd := &cobra.Command{
		Use:   "add <subject id> <name>",
		Short: "Add a topic at the end of a subject",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPlanner(cmd.Context(), func(p planner.Planner, _ *config.Config, owner string) error {
				topic, err := p.AddTopic(cmd.Context(), owner, planner.TopicInput{
					SubjectID: args[0],
					Name:      args[1],
					Notes:     notes,
				})
				if err != nil {
					return err
				}
				printTopic(cmd.OutOrStdout(), topic)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&notes, "notes", "", "Notes of the topic")
	return cmd
}

func newTopicsStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status <topic id> <status>",
		Short: "Move a topic to a status",
		Long:  "Move a topic to a status. MASTERED schedules the next review; any other status resets the review level.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := mastery.ParseStatus(args[1])
			if err != nil {
				return err
			}
			return withPlanner(cmd.Context(), func(p planner.Planner, _ *config.Config, owner string) error {
				topic, err := p.SetTopicStatus(cmd.Context(), owner, args[0], status)
				if err != nil {
					return err
				}
				printTopic(cmd.OutOrStdout(), topic)
				return nil
			})
		},
	}
}

func newTopicsReviewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "review <topic id>",
		Short: "Record a successful review of a topic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPlanner(cmd.Context(), func(p planner.Planner, _ *config.Config, owner string) error {
				topic, err := p.CompleteReview(cmd.Context(), owner, args[0])
				if err != nil {
					return err
				}
				printTopic(cmd.OutOrStdout(), topic)
				if topic.NextReviewDate == nil {
					fmt.Fprintln(cmd.OutOrStdout(), "All review intervals are done for this topic.")
				}
				return nil
			})
		},
	}
}

func newTopicsQuestionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "questions <topic id> <total> <correct>",
		Short: "Record answered practice questions of a topic",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			total, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid total %q: %w", args[1], err)
			}
			correct, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid correct %q: %w", args[2], err)
			}
			return withPlanner(cmd.Context(), func(p planner.Planner, _ *config.Config, owner string) error {
				topic, err := p.RecordQuestions(cmd.Context(), owner, args[0], total, correct)
				if err != nil {
					return err
				}
				printTopic(cmd.OutOrStdout(), topic)
				return nil
			})
		},
	}
}

func newDueCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "due",
		Short: "List topics due for review today, in syllabus order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPlanner(cmd.Context(), func(p planner.Planner, cfg *config.Config, owner string) error {
				day, err := today(cfg)
				if err != nil {
					return err
				}
				topics, err := p.DueTopics(cmd.Context(), owner)
				if err != nil {
					return err
				}
				printDue(cmd.OutOrStdout(), topics, day)
				return nil
			})
		},
	}
}
