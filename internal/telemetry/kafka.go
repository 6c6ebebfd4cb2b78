package telemetry

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/questx-lab/questkit/internal/host"
	"github.com/questx-lab/questkit/pkg/pubsub"
	"github.com/questx-lab/questkit/pkg/xcontext"
)

const kafkaQueueSize = 1024

// TrackedMessage is the payload published for every tracked event.
type TrackedMessage struct {
	Event      string         `json:"event"`
	Properties map[string]any `json:"properties"`
	Timestamp  time.Time      `json:"timestamp"`
}

type queuedMessage struct {
	ctx  context.Context
	pack *pubsub.Pack
}

// KafkaTracker publishes tracked events to a topic. Events are queued and
// published in the background so that a slow broker never blocks the caller;
// events are dropped when the queue is full. Errors and info logs are not
// published.
type KafkaTracker struct {
	publisher pubsub.Publisher
	topic     string
	clock     clockwork.Clock

	queue    chan queuedMessage
	stopOnce sync.Once
	done     chan struct{}
}

func NewKafkaTracker(publisher pubsub.Publisher, topic string, clock clockwork.Clock) *KafkaTracker {
	t := &KafkaTracker{
		publisher: publisher,
		topic:     topic,
		clock:     clock,
		queue:     make(chan queuedMessage, kafkaQueueSize),
		done:      make(chan struct{}),
	}

	go t.run()
	return t
}

func (t *KafkaTracker) run() {
	defer close(t.done)
	for m := range t.queue {
		if err := t.publisher.Publish(m.ctx, t.topic, m.pack); err != nil {
			xcontext.Logger(m.ctx).Warnf("Cannot publish tracking event %s: %v", m.pack.Key, err)
		}
	}
}

func (t *KafkaTracker) TrackEvent(ctx context.Context, ev host.TrackEvent) {
	b, err := json.Marshal(TrackedMessage{
		Event:      ev.Event,
		Properties: ev.Properties,
		Timestamp:  t.clock.Now(),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot marshal tracking event %s: %v", ev.Event, err)
		return
	}

	m := queuedMessage{
		ctx:  context.WithoutCancel(ctx),
		pack: &pubsub.Pack{Key: []byte(ev.Event), Msg: b},
	}

	select {
	case t.queue <- m:
	default:
		xcontext.Logger(ctx).Warnf("Tracking queue is full, drop event %s", ev.Event)
	}
}

func (t *KafkaTracker) LogError(context.Context, string, *host.LogOptions) {}

func (t *KafkaTracker) LogInfo(context.Context, string) {}

// Stop publishes the queued events and closes the publisher. TrackEvent must
// not be called after Stop.
func (t *KafkaTracker) Stop(ctx context.Context) error {
	t.stopOnce.Do(func() { close(t.queue) })

	select {
	case <-t.done:
	case <-ctx.Done():
		return ctx.Err()
	}

	return t.publisher.Stop(ctx)
}
