package xcontext

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/questx-lab/questkit/config"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	ctx := context.Background()
	require.NotNil(t, Logger(ctx))
	require.Equal(t, config.Default(), Configs(ctx))
	require.WithinDuration(t, time.Now(), Clock(ctx).Now(), time.Second)
}

func TestWithValues(t *testing.T) {
	cfg := config.Default()
	cfg.Env = "test"

	clock := clockwork.NewFakeClockAt(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	ctx := WithConfigs(context.Background(), cfg)
	ctx = WithClock(ctx, clock)

	require.Equal(t, "test", Configs(ctx).Env)
	require.Equal(t, clock.Now(), Clock(ctx).Now())
}
