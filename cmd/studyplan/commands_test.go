package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/studyplan/internal/allocation"
	"github.com/at-ishikawa/studyplan/internal/calendar"
	"github.com/at-ishikawa/studyplan/internal/config"
	"github.com/at-ishikawa/studyplan/internal/mastery"
	mock_planner "github.com/at-ishikawa/studyplan/internal/mocks/planner"
	"github.com/at-ishikawa/studyplan/internal/planner"
	"github.com/at-ishikawa/studyplan/internal/statistics"
	"github.com/at-ishikawa/studyplan/internal/validation"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// runCommand executes the root command against p with a fixed clock of 2024-01-10 in UTC.
func runCommand(t *testing.T, p planner.Planner, args ...string) (string, error) {
	t.Helper()
	cfgPath := writeFile(t, "config.yml", "owner_id: alice\ntimezone: UTC\n")

	oldOpen, oldNow, oldNoColor := openPlanner, now, color.NoColor
	openPlanner = func(ctx context.Context, cfg *config.Config) (planner.Planner, func() error, error) {
		return p, func() error { return nil }, nil
	}
	now = func() time.Time { return time.Date(2024, time.January, 10, 8, 0, 0, 0, time.UTC) }
	color.NoColor = true
	t.Cleanup(func() {
		openPlanner, now, color.NoColor = oldOpen, oldNow, oldNoColor
	})

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--env-file", "", "--config", cfgPath}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func day(d int) calendar.Date {
	return calendar.NewDate(2024, time.January, d)
}

func TestTopicCommands(t *testing.T) {
	mastered := mastery.NewTopic("t1", "s1", "Graphs")
	mastered.Status = mastery.StatusMastered
	next := day(11)
	mastered.NextReviewDate = &next

	tests := []struct {
		name       string
		args       []string
		setup      func(p *mock_planner.MockPlanner)
		wantOutput []string
		wantErr    error
	}{
		{
			name: "subjects",
			args: []string{"subjects"},
			setup: func(p *mock_planner.MockPlanner) {
				p.EXPECT().ListSubjects(gomock.Any(), "alice").Return([]mastery.Subject{
					{ID: "s1", Name: "Algorithms", Topics: []mastery.Topic{mastered, mastery.NewTopic("t2", "s1", "Heaps")}},
				}, nil)
			},
			wantOutput: []string{"Algorithms (s1)  1/2 mastered", "MASTERED    Graphs (t1)  next review 2024-01-11, level 0", "NOT_STUDIED Heaps (t2)"},
		},
		{
			name: "list by status for another owner",
			args: []string{"--owner", "bob", "topics", "list", "--status", "mastered"},
			setup: func(p *mock_planner.MockPlanner) {
				p.EXPECT().ListTopics(gomock.Any(), "bob", mastery.StatusMastered).Return([]mastery.Topic{mastered}, nil)
			},
			wantOutput: []string{"Graphs (t1)"},
		},
		{
			name: "set status",
			args: []string{"topics", "status", "t1", "mastered"},
			setup: func(p *mock_planner.MockPlanner) {
				p.EXPECT().SetTopicStatus(gomock.Any(), "alice", "t1", mastery.StatusMastered).Return(mastered, nil)
			},
			wantOutput: []string{"next review 2024-01-11"},
		},
		{
			name:    "unknown status is rejected before the planner is called",
			args:    []string{"topics", "status", "t1", "paused"},
			setup:   func(p *mock_planner.MockPlanner) {},
			wantErr: validation.ErrValidation,
		},
		{
			name: "review past the last interval",
			args: []string{"topics", "review", "t1"},
			setup: func(p *mock_planner.MockPlanner) {
				graduated := mastered
				graduated.NextReviewDate = nil
				graduated.ReviewLevel = 3
				p.EXPECT().CompleteReview(gomock.Any(), "alice", "t1").Return(graduated, nil)
			},
			wantOutput: []string{"level 3", "All review intervals are done"},
		},
		{
			name: "record questions",
			args: []string{"topics", "questions", "t1", "10", "7"},
			setup: func(p *mock_planner.MockPlanner) {
				answered := mastered
				answered.QuestionsTotal = 10
				answered.QuestionsCorrect = 7
				p.EXPECT().RecordQuestions(gomock.Any(), "alice", "t1", 10, 7).Return(answered, nil)
			},
			wantOutput: []string{"7/10 correct (70%)"},
		},
		{
			name: "due topics",
			args: []string{"due"},
			setup: func(p *mock_planner.MockPlanner) {
				overdue := mastered
				past := day(7)
				overdue.NextReviewDate = &past
				overdue.Status = mastery.StatusToReview
				p.EXPECT().DueTopics(gomock.Any(), "alice").Return([]mastery.Topic{overdue}, nil)
			},
			wantOutput: []string{"1 topics to review", "Graphs (t1)  overdue 3 days"},
		},
		{
			name: "nothing due",
			args: []string{"due"},
			setup: func(p *mock_planner.MockPlanner) {
				p.EXPECT().DueTopics(gomock.Any(), "alice").Return(nil, nil)
			},
			wantOutput: []string{"Nothing to review today."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := mock_planner.NewMockPlanner(gomock.NewController(t))
			tt.setup(p)

			out, err := runCommand(t, p, tt.args...)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			for _, want := range tt.wantOutput {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestTaskCommands(t *testing.T) {
	date := day(3)
	start := calendar.MustClockTime("09:30")
	end := calendar.MustClockTime("11:00")
	scheduled := allocation.Task{
		ID:            "k1",
		SubjectRef:    "s1",
		Title:         "Read chapter 3",
		Priority:      allocation.PriorityHigh,
		DurationHours: 1.5,
		ScheduledDate: &date,
		StartTime:     &start,
		EndTime:       &end,
	}

	tests := []struct {
		name       string
		args       []string
		setup      func(p *mock_planner.MockPlanner)
		wantOutput []string
		wantErr    bool
	}{
		{
			name: "create on the calendar",
			args: []string{"tasks", "create", "Read chapter 3", "--subject", "s1", "--hours", "1.5",
				"--priority", "high", "--date", "2024-01-03", "--start", "09:30"},
			setup: func(p *mock_planner.MockPlanner) {
				p.EXPECT().CreateTask(gomock.Any(), "alice", planner.TaskInput{
					SubjectRef:    "s1",
					Title:         "Read chapter 3",
					Priority:      allocation.PriorityHigh,
					DurationHours: 1.5,
					ScheduledDate: &date,
					StartTime:     &start,
				}).Return(scheduled, nil)
			},
			wantOutput: []string{"[ ] HIGH   Read chapter 3 (k1)  1.5h  2024-01-03 09:30-11:00"},
		},
		{
			name: "create in the pool with a topic",
			args: []string{"tasks", "create", "Practice", "--subject", "s1", "--topic", "t1"},
			setup: func(p *mock_planner.MockPlanner) {
				topic := "t1"
				p.EXPECT().CreateTask(gomock.Any(), "alice", planner.TaskInput{
					SubjectRef:    "s1",
					TopicRef:      &topic,
					Title:         "Practice",
					Priority:      allocation.PriorityMedium,
					DurationHours: 1,
				}).Return(allocation.Task{ID: "k2", Title: "Practice", Priority: allocation.PriorityMedium, DurationHours: 1}, nil)
			},
			wantOutput: []string{"Practice (k2)  1h  unscheduled"},
		},
		{
			name:    "date without start",
			args:    []string{"tasks", "create", "Read", "--subject", "s1", "--date", "2024-01-03"},
			setup:   func(p *mock_planner.MockPlanner) {},
			wantErr: true,
		},
		{
			name: "relocate",
			args: []string{"tasks", "relocate", "k1", "2024-01-03", "09:30"},
			setup: func(p *mock_planner.MockPlanner) {
				p.EXPECT().RelocateTask(gomock.Any(), "alice", "k1", date, start).Return(scheduled, nil)
			},
			wantOutput: []string{"09:30-11:00"},
		},
		{
			name:    "relocate with a bad time",
			args:    []string{"tasks", "relocate", "k1", "2024-01-03", "9.30"},
			setup:   func(p *mock_planner.MockPlanner) {},
			wantErr: true,
		},
		{
			name: "undo completion",
			args: []string{"tasks", "complete", "k1", "--undo"},
			setup: func(p *mock_planner.MockPlanner) {
				p.EXPECT().CompleteTask(gomock.Any(), "alice", "k1", false).Return(scheduled, nil)
			},
			wantOutput: []string{"[ ] HIGH"},
		},
		{
			name: "delete",
			args: []string{"tasks", "delete", "k1"},
			setup: func(p *mock_planner.MockPlanner) {
				p.EXPECT().DeleteTask(gomock.Any(), "alice", "k1").Return(nil)
			},
			wantOutput: []string{"Deleted task k1"},
		},
		{
			name: "grid defaults to today",
			args: []string{"tasks", "grid"},
			setup: func(p *mock_planner.MockPlanner) {
				p.EXPECT().DayGrid(gomock.Any(), "alice", day(10)).Return(allocation.DayGrid{
					Date: day(10),
					Cells: []allocation.GridCell{
						{Bucket: "09:00", Hour: 9, Entries: []allocation.GridEntry{{TaskID: "k1", Title: "Read", FillPercentage: 50}}},
						{Bucket: "10:00", Hour: 10, Entries: []allocation.GridEntry{{TaskID: "k1", Continues: true, FillPercentage: 100}}},
						{Bucket: "11:00", Hour: 11},
					},
				}, nil)
			},
			wantOutput: []string{"2024-01-10", "09:00 | Read 50%", "10:00 | ...k1 100%"},
		},
		{
			name: "stats for the last week",
			args: []string{"stats"},
			setup: func(p *mock_planner.MockPlanner) {
				p.EXPECT().Stats(gomock.Any(), "alice", day(4), day(10)).Return(statistics.Summary{
					From:  day(4),
					To:    day(10),
					Total: statistics.Hours{PlannedHours: 4, CompletedHours: 1, TaskCount: 2, CompletedCount: 1},
				}, nil)
			},
			wantOutput: []string{"2024-01-04 to 2024-01-10", "Total", "25%", "(1/2 tasks)"},
		},
		{
			name: "overlaps in a range",
			args: []string{"tasks", "overlaps", "--from", "2024-01-01", "--to", "2024-01-31"},
			setup: func(p *mock_planner.MockPlanner) {
				p.EXPECT().Overlaps(gomock.Any(), "alice", day(1), day(31)).Return([]allocation.Overlap{
					{Date: day(3), First: "k1", Second: "k2", Minutes: 30},
				}, nil)
			},
			wantOutput: []string{"2024-01-03  k1 and k2 overlap for 30 min"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := mock_planner.NewMockPlanner(gomock.NewController(t))
			tt.setup(p)

			out, err := runCommand(t, p, tt.args...)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			for _, want := range tt.wantOutput {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestImportCommand(t *testing.T) {
	t.Run("yaml file", func(t *testing.T) {
		p := mock_planner.NewMockPlanner(gomock.NewController(t))
		path := writeFile(t, "syllabus.yaml", "subjects:\n  - name: Calculus\n    topics:\n      - name: Limits\n")
		p.EXPECT().ListSubjects(gomock.Any(), "alice").Return(nil, nil)
		p.EXPECT().ImportSubjects(gomock.Any(), "alice", []mastery.Subject{
			{Name: "Calculus", Topics: []mastery.Topic{{Name: "Limits"}}},
		}).Return(nil, nil)

		out, err := runCommand(t, p, "import", path)
		require.NoError(t, err)
		assert.Contains(t, out, `[NEW]  "Calculus" (1 topics)`)
		assert.Contains(t, out, "Subjects: 1 new, 0 skipped")
	})

	t.Run("built-in syllabus", func(t *testing.T) {
		p := mock_planner.NewMockPlanner(gomock.NewController(t))
		p.EXPECT().ListSubjects(gomock.Any(), "alice").Return(nil, nil)
		p.EXPECT().ImportSubjects(gomock.Any(), "alice", gomock.Len(3)).Return(nil, nil)

		out, err := runCommand(t, p, "import")
		require.NoError(t, err)
		assert.Contains(t, out, `[NEW]  "Algorithms"`)
	})

	t.Run("dry run", func(t *testing.T) {
		p := mock_planner.NewMockPlanner(gomock.NewController(t))
		p.EXPECT().ListSubjects(gomock.Any(), "alice").Return(nil, nil)

		out, err := runCommand(t, p, "import", "--dry-run")
		require.NoError(t, err)
		assert.Contains(t, out, "dry-run mode")
	})

	t.Run("missing file", func(t *testing.T) {
		p := mock_planner.NewMockPlanner(gomock.NewController(t))

		_, err := runCommand(t, p, "import", filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})
}

func TestExportCommand(t *testing.T) {
	p := mock_planner.NewMockPlanner(gomock.NewController(t))
	p.EXPECT().ListSubjects(gomock.Any(), "alice").Return([]mastery.Subject{
		{ID: "s1", Name: "Algorithms", Topics: []mastery.Topic{mastery.NewTopic("t1", "s1", "Graphs")}},
	}, nil)
	output := filepath.Join(t.TempDir(), "export.yaml")

	_, err := runCommand(t, p, "export", "--output", output)
	require.NoError(t, err)
	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(content), "name: Algorithms")
	assert.Contains(t, string(content), "status: NOT_STUDIED")
}

func TestDatabaseCommandsRejectServerFlag(t *testing.T) {
	for _, name := range []string{"migrate", "serve"} {
		t.Run(name, func(t *testing.T) {
			p := mock_planner.NewMockPlanner(gomock.NewController(t))
			_, err := runCommand(t, p, "--server", "http://localhost:8080", name)
			assert.ErrorIs(t, err, errServerFlag)
		})
	}
}
