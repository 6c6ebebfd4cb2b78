package telemetry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/questx-lab/questkit/internal/host"
	"github.com/questx-lab/questkit/internal/repository"
	"github.com/questx-lab/questkit/mocks"
	"github.com/questx-lab/questkit/pkg/pubsub"
	"github.com/questx-lab/questkit/pkg/testutil"
	"github.com/questx-lab/questkit/pkg/xcontext"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type recordLogger struct {
	mutex sync.Mutex
	lines []string
}

func (l *recordLogger) record(level, msg string, a ...any) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.lines = append(l.lines, level+" "+fmt.Sprintf(msg, a...))
}

func (l *recordLogger) Debugf(msg string, a ...any) { l.record("DEBUG", msg, a...) }
func (l *recordLogger) Infof(msg string, a ...any)  { l.record("INFO", msg, a...) }
func (l *recordLogger) Warnf(msg string, a ...any)  { l.record("WARN", msg, a...) }
func (l *recordLogger) Errorf(msg string, a ...any) { l.record("ERROR", msg, a...) }

func (l *recordLogger) Lines() []string {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	return append([]string(nil), l.lines...)
}

var testEvent = host.TrackEvent{
	Event:      "Reward Claim Started",
	Properties: map[string]any{"reward_id": 1, "quest_id": 100},
}

func TestLogTracker(t *testing.T) {
	l := &recordLogger{}
	ctx := xcontext.WithLogger(context.Background(), l)
	tracker := NewLogTracker()

	tracker.TrackEvent(ctx, testEvent)
	tracker.LogError(ctx, "Cannot claim reward", &host.LogOptions{Tags: map[string]string{"quest_id": "100"}})
	tracker.LogError(ctx, "Cannot sync", nil)
	tracker.LogInfo(ctx, "Synced")

	require.Equal(t, []string{
		"INFO Track Reward Claim Started: map[quest_id:100 reward_id:1]",
		"ERROR Cannot claim reward tags=map[quest_id:100] extra=map[]",
		"ERROR Cannot sync",
		"INFO Synced",
	}, l.Lines())
}

func TestMulti(t *testing.T) {
	first, second := &mocks.Host{}, &mocks.Host{}
	for _, h := range []*mocks.Host{first, second} {
		h.On("TrackEvent", mock.Anything, testEvent).Return()
		h.On("LogError", mock.Anything, "failed", (*host.LogOptions)(nil)).Return()
		h.On("LogInfo", mock.Anything, "done").Return()
	}

	ctx := context.Background()
	tracker := Multi(first, second)
	tracker.TrackEvent(ctx, testEvent)
	tracker.LogError(ctx, "failed", nil)
	tracker.LogInfo(ctx, "done")

	first.AssertExpectations(t)
	second.AssertExpectations(t)
}

func TestKafkaTracker(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))

	var mutex sync.Mutex
	var published []*pubsub.Pack
	stopped := false
	publisher := &testutil.MockPublisher{
		PublishFunc: func(_ context.Context, topic string, pack *pubsub.Pack) error {
			require.Equal(t, "quest-tracking", topic)

			mutex.Lock()
			defer mutex.Unlock()
			published = append(published, pack)
			if len(published) == 2 {
				return errors.New("broker down")
			}
			return nil
		},
		StopFunc: func(context.Context) error {
			stopped = true
			return nil
		},
	}

	ctx := context.Background()
	tracker := NewKafkaTracker(publisher, "quest-tracking", clock)
	tracker.TrackEvent(ctx, testEvent)
	tracker.TrackEvent(ctx, host.TrackEvent{Event: "Reward Claim Success"})
	tracker.TrackEvent(ctx, host.TrackEvent{Event: "Reward Claim Error"})
	tracker.LogError(ctx, "ignored", nil)

	require.NoError(t, tracker.Stop(ctx))
	require.True(t, stopped)
	require.Len(t, published, 3)

	require.Equal(t, "Reward Claim Started", string(published[0].Key))
	var msg TrackedMessage
	require.NoError(t, json.Unmarshal(published[0].Msg, &msg))
	require.Equal(t, "Reward Claim Started", msg.Event)
	require.EqualValues(t, 100, msg.Properties["quest_id"])
	require.True(t, clock.Now().Equal(msg.Timestamp))

	require.Equal(t, "Reward Claim Error", string(published[2].Key))
}

func TestStoreTracker(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewTrackingEventRepository()
	clock := clockwork.NewFakeClockAt(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	tracker := NewStoreTracker(db, repo, clock)

	ctx := context.Background()
	tracker.TrackEvent(ctx, testEvent)
	tracker.TrackEvent(ctx, testEvent)
	tracker.LogInfo(ctx, "ignored")

	dbCtx := xcontext.WithDB(ctx, db)
	count, err := repo.Count(dbCtx, testEvent.Event)
	require.NoError(t, err)
	require.Equal(t, int64(2), count)

	events, err := repo.GetList(dbCtx, repository.TrackingEventFilter{Event: testEvent.Event})
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.NotEqual(t, events[0].ID, events[1].ID)
	require.EqualValues(t, 1, events[0].Properties["reward_id"])
}
