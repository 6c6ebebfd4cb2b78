package testutil

import (
	"context"

	"github.com/questx-lab/questkit/pkg/errorx"
	"github.com/questx-lab/questkit/pkg/pubsub"
)

type MockPublisher struct {
	PublishFunc func(context.Context, string, *pubsub.Pack) error
	StopFunc    func(context.Context) error
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, pack *pubsub.Pack) error {
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, topic, pack)
	}

	return errorx.New(errorx.NotImplemented, "Not implemented")
}

func (m *MockPublisher) Stop(ctx context.Context) error {
	if m.StopFunc != nil {
		return m.StopFunc(ctx)
	}

	return nil
}
