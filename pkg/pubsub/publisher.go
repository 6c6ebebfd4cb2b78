package pubsub

import "context"

// Pack is a message published to a topic. Key decides the partition of the
// message.
type Pack struct {
	Key []byte
	Msg []byte
}

type Publisher interface {
	Publish(context.Context, string, *Pack) error
	Stop(ctx context.Context) error
}
