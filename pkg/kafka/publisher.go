package kafka

import (
	"context"
	"fmt"

	"github.com/questx-lab/questkit/pkg/pubsub"

	"github.com/Shopify/sarama"
)

type publisher struct {
	clientID    string
	brokerAddrs []string
	producer    sarama.SyncProducer
}

func NewPublisher(
	clientID string,
	brokerAddrs []string,
) (pubsub.Publisher, error) {
	producer, err := sarama.NewSyncProducer(brokerAddrs, NewConfig(clientID))
	if err != nil {
		return nil, err
	}

	return NewPublisherWithProducer(clientID, brokerAddrs, producer), nil
}

// NewPublisherWithProducer wraps an existing producer, the producer must be
// configured with NewConfig.
func NewPublisherWithProducer(
	clientID string,
	brokerAddrs []string,
	producer sarama.SyncProducer,
) pubsub.Publisher {
	return &publisher{
		clientID:    clientID,
		brokerAddrs: brokerAddrs,
		producer:    producer,
	}
}

func NewConfig(clientID string) *sarama.Config {
	config := sarama.NewConfig()
	config.ClientID = clientID
	config.Producer.Return.Successes = true
	return config
}

func (p *publisher) Stop(ctx context.Context) error {
	return p.producer.Close()
}

func (p *publisher) Publish(ctx context.Context, topic string, msg *pubsub.Pack) error {
	m := &sarama.ProducerMessage{
		Topic: topic,
		Value: sarama.ByteEncoder(msg.Msg),
		Key:   sarama.ByteEncoder(msg.Key),
	}
	if _, _, err := p.producer.SendMessage(m); err != nil {
		return fmt.Errorf("p.producer.SendMessage: %w", err)
	}
	return nil
}
