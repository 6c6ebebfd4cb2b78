package telemetry

import (
	"context"

	"github.com/questx-lab/questkit/internal/host"
	"github.com/questx-lab/questkit/pkg/xcontext"
)

// LogTracker writes telemetry to the logger of the context.
type LogTracker struct{}

func NewLogTracker() *LogTracker {
	return &LogTracker{}
}

func (LogTracker) TrackEvent(ctx context.Context, ev host.TrackEvent) {
	xcontext.Logger(ctx).Infof("Track %s: %v", ev.Event, ev.Properties)
}

func (LogTracker) LogError(ctx context.Context, msg string, opts *host.LogOptions) {
	if opts == nil {
		xcontext.Logger(ctx).Errorf("%s", msg)
		return
	}

	xcontext.Logger(ctx).Errorf("%s tags=%v extra=%v", msg, opts.Tags, opts.Extra)
}

func (LogTracker) LogInfo(ctx context.Context, msg string) {
	xcontext.Logger(ctx).Infof("%s", msg)
}
