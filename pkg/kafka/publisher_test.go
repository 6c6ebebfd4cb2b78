package kafka

import (
	"context"
	"errors"
	"testing"

	"github.com/Shopify/sarama"
	"github.com/Shopify/sarama/mocks"
	"github.com/questx-lab/questkit/pkg/pubsub"
	"github.com/stretchr/testify/require"
)

func TestPublisher_Publish(t *testing.T) {
	producer := mocks.NewSyncProducer(t, NewConfig("questkit"))
	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(m *sarama.ProducerMessage) error {
		if m.Topic != "tracking" {
			return errors.New("unexpected topic " + m.Topic)
		}

		key, err := m.Key.Encode()
		if err != nil {
			return err
		}
		if string(key) != "Claim Reward Started" {
			return errors.New("unexpected key " + string(key))
		}
		return nil
	})
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := NewPublisherWithProducer("questkit", nil, producer)
	ctx := context.Background()

	require.NoError(t, p.Publish(ctx, "tracking", &pubsub.Pack{
		Key: []byte("Claim Reward Started"),
		Msg: []byte(`{}`),
	}))

	err := p.Publish(ctx, "tracking", &pubsub.Pack{Msg: []byte(`{}`)})
	require.ErrorIs(t, err, sarama.ErrOutOfBrokers)

	require.NoError(t, p.Stop(ctx))
}
