package reminder

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/studyplan/internal/mastery"
	mock_planner "github.com/at-ishikawa/studyplan/internal/mocks/planner"
)

type recordingNotifier struct {
	notified map[string][]mastery.Topic
	err      error
}

func (n *recordingNotifier) Notify(_ context.Context, ownerID string, due []mastery.Topic) error {
	if n.notified == nil {
		n.notified = make(map[string][]mastery.Topic)
	}
	n.notified[ownerID] = due
	return n.err
}

func TestReminder_RunOnce(t *testing.T) {
	due := []mastery.Topic{{ID: "t1", Name: "Graphs", Status: mastery.StatusToReview}}

	testCases := []struct {
		name         string
		setup        func(p *mock_planner.MockPlanner)
		notifyErr    error
		wantNotified []string
		wantErr      bool
	}{
		{
			name: "notifies owners with due topics",
			setup: func(p *mock_planner.MockPlanner) {
				p.EXPECT().DueTopics(gomock.Any(), "alice").Return(due, nil)
				p.EXPECT().DueTopics(gomock.Any(), "bob").Return(nil, nil)
			},
			wantNotified: []string{"alice"},
		},
		{
			name: "keeps going after a failing owner",
			setup: func(p *mock_planner.MockPlanner) {
				p.EXPECT().DueTopics(gomock.Any(), "alice").Return(nil, errors.New("db down"))
				p.EXPECT().DueTopics(gomock.Any(), "bob").Return(due, nil)
			},
			wantNotified: []string{"bob"},
			wantErr:      true,
		},
		{
			name: "notifier error",
			setup: func(p *mock_planner.MockPlanner) {
				p.EXPECT().DueTopics(gomock.Any(), "alice").Return(due, nil)
				p.EXPECT().DueTopics(gomock.Any(), "bob").Return(due, nil)
			},
			notifyErr:    errors.New("unreachable"),
			wantNotified: []string{"alice", "bob"},
			wantErr:      true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := mock_planner.NewMockPlanner(gomock.NewController(t))
			tc.setup(p)
			notifier := &recordingNotifier{err: tc.notifyErr}
			r := New(p, notifier, []string{"alice", "bob"}, "07:30", time.UTC)

			err := r.RunOnce(context.Background())
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			var owners []string
			for owner := range notifier.notified {
				owners = append(owners, owner)
			}
			assert.ElementsMatch(t, tc.wantNotified, owners)
		})
	}
}

func TestReminder_Start(t *testing.T) {
	p := mock_planner.NewMockPlanner(gomock.NewController(t))
	r := New(p, &recordingNotifier{}, nil, "", time.UTC)

	require.NoError(t, r.Start(context.Background()))
	defer r.Stop()
	require.NotNil(t, r.job)
	assert.Equal(t, "00:00", r.job.ScheduledAtTime())
}

func TestReminder_StartInvalidTime(t *testing.T) {
	p := mock_planner.NewMockPlanner(gomock.NewController(t))
	r := New(p, &recordingNotifier{}, nil, "25:99", time.UTC)

	assert.Error(t, r.Start(context.Background()))
}

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := NewLogNotifier(slog.New(slog.NewTextHandler(&buf, nil)))

	err := n.Notify(context.Background(), "alice", []mastery.Topic{{Name: "Graphs"}, {Name: "Trees"}})
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "topics due for review")
	assert.Contains(t, out, "owner=alice")
	assert.Contains(t, out, "count=2")
}
