package datasync

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/studyplan/internal/mastery"
	mock_planner "github.com/at-ishikawa/studyplan/internal/mocks/planner"
	"github.com/at-ishikawa/studyplan/internal/planner"
	"github.com/at-ishikawa/studyplan/internal/validation"
)

const owner = "alice"

func TestImporter_Import(t *testing.T) {
	syllabus := &Syllabus{Subjects: []SyllabusSubject{
		{Name: "Algorithms", Topics: []SyllabusTopic{{Name: "Graphs"}, {Name: "Heaps", Notes: "binary heap"}}},
		{Name: "Calculus", Topics: []SyllabusTopic{{Name: "Limits", Notes: "epsilon-delta"}}},
	}}
	existing := []mastery.Subject{
		{ID: "s1", Name: "Algorithms", Topics: []mastery.Topic{mastery.NewTopic("t1", "s1", "Graphs")}},
	}

	tests := []struct {
		name     string
		opts     ImportOptions
		setup    func(p *mock_planner.MockPlanner)
		want     *ImportResult
		wantLogs []string
	}{
		{
			name: "new subjects are created, existing ones skipped",
			setup: func(p *mock_planner.MockPlanner) {
				p.EXPECT().ListSubjects(gomock.Any(), owner).Return(existing, nil)
				p.EXPECT().ImportSubjects(gomock.Any(), owner, []mastery.Subject{
					{Name: "Calculus", Topics: []mastery.Topic{{Name: "Limits", Notes: "epsilon-delta"}}},
				}).Return(nil, nil)
			},
			want:     &ImportResult{SubjectsNew: 1, SubjectsSkipped: 1, TopicsNew: 1, TopicsSkipped: 2},
			wantLogs: []string{`[SKIP]  "Algorithms"`, `[NEW]  "Calculus" (1 topics)`},
		},
		{
			name: "update existing adds missing topics",
			opts: ImportOptions{UpdateExisting: true},
			setup: func(p *mock_planner.MockPlanner) {
				p.EXPECT().ListSubjects(gomock.Any(), owner).Return(existing, nil)
				p.EXPECT().AddTopic(gomock.Any(), owner, planner.TopicInput{SubjectID: "s1", Name: "Heaps", Notes: "binary heap"}).
					Return(mastery.NewTopic("t2", "s1", "Heaps"), nil)
				p.EXPECT().ImportSubjects(gomock.Any(), owner, gomock.Len(1)).Return(nil, nil)
			},
			want:     &ImportResult{SubjectsNew: 1, SubjectsSkipped: 1, TopicsNew: 2, TopicsSkipped: 1},
			wantLogs: []string{`[SKIP]  "Algorithms" / "Graphs"`, `[NEW]  "Algorithms" / "Heaps"`},
		},
		{
			name: "dry run writes nothing",
			opts: ImportOptions{DryRun: true, UpdateExisting: true},
			setup: func(p *mock_planner.MockPlanner) {
				p.EXPECT().ListSubjects(gomock.Any(), owner).Return(nil, nil)
			},
			want:     &ImportResult{SubjectsNew: 2, TopicsNew: 3},
			wantLogs: []string{`[NEW]  "Algorithms" (2 topics)`, `[NEW]  "Calculus" (1 topics)`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := mock_planner.NewMockPlanner(gomock.NewController(t))
			tt.setup(p)
			var out bytes.Buffer

			got, err := NewImporter(p, &out).Import(context.Background(), owner, syllabus, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			for _, line := range tt.wantLogs {
				assert.Contains(t, out.String(), line)
			}
		})
	}
}

func TestImporter_Import_Errors(t *testing.T) {
	t.Run("invalid syllabus", func(t *testing.T) {
		p := mock_planner.NewMockPlanner(gomock.NewController(t))
		syllabus := &Syllabus{Subjects: []SyllabusSubject{{Name: "Algorithms"}, {Name: "Algorithms"}}}

		_, err := NewImporter(p, &bytes.Buffer{}).Import(context.Background(), owner, syllabus, ImportOptions{})
		assert.ErrorIs(t, err, validation.ErrValidation)
	})

	t.Run("planner failure", func(t *testing.T) {
		p := mock_planner.NewMockPlanner(gomock.NewController(t))
		p.EXPECT().ListSubjects(gomock.Any(), owner).Return(nil, nil)
		p.EXPECT().ImportSubjects(gomock.Any(), owner, gomock.Any()).Return(nil, errors.New("db down"))
		syllabus := &Syllabus{Subjects: []SyllabusSubject{{Name: "Algorithms"}}}

		_, err := NewImporter(p, &bytes.Buffer{}).Import(context.Background(), owner, syllabus, ImportOptions{})
		assert.ErrorContains(t, err, "db down")
	})
}

func TestExporter_Export(t *testing.T) {
	p := mock_planner.NewMockPlanner(gomock.NewController(t))
	topic := mastery.NewTopic("t1", "s1", "Graphs")
	topic.Status = mastery.StatusStudying
	topic.QuestionsTotal = 4
	topic.QuestionsCorrect = 3
	p.EXPECT().ListSubjects(gomock.Any(), owner).Return([]mastery.Subject{
		{ID: "s1", Name: "Algorithms", Topics: []mastery.Topic{topic}},
		{ID: "s2", Name: "Calculus", Topics: []mastery.Topic{}},
	}, nil)

	got, err := NewExporter(p).Export(context.Background(), owner)
	require.NoError(t, err)
	assert.Equal(t, &Syllabus{Subjects: []SyllabusSubject{
		{Name: "Algorithms", Topics: []SyllabusTopic{
			{Name: "Graphs", Status: mastery.StatusStudying, QuestionsTotal: 4, QuestionsCorrect: 3},
		}},
		{Name: "Calculus", Topics: []SyllabusTopic{}},
	}}, got)
}
