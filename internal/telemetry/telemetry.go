// Package telemetry provides host.Telemetry sinks: the logger, a kafka topic
// and a database table. Multi fans events out to several of them.
package telemetry

import (
	"context"

	"github.com/questx-lab/questkit/internal/host"
)

type multi []host.Telemetry

// Multi returns a telemetry which forwards every call to all trackers in
// order.
func Multi(trackers ...host.Telemetry) host.Telemetry {
	return multi(trackers)
}

func (m multi) TrackEvent(ctx context.Context, ev host.TrackEvent) {
	for _, t := range m {
		t.TrackEvent(ctx, ev)
	}
}

func (m multi) LogError(ctx context.Context, msg string, opts *host.LogOptions) {
	for _, t := range m {
		t.LogError(ctx, msg, opts)
	}
}

func (m multi) LogInfo(ctx context.Context, msg string) {
	for _, t := range m {
		t.LogInfo(ctx, msg)
	}
}
