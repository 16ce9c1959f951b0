package events

import (
	"context"
	"errors"
	"fmt"

	"github.com/apache/pulsar-client-go/pulsar"
	"github.com/rs/zerolog/log"
)

type PulsarPublisher struct {
	client   pulsar.Client
	producer pulsar.Producer
}

// NewPulsarPublisher initializes the Pulsar client and producer.
func NewPulsarPublisher(pulsarURL, topic string) (*PulsarPublisher, error) {
	client, err := pulsar.NewClient(pulsar.ClientOptions{URL: pulsarURL})
	if err != nil {
		return nil, fmt.Errorf("could not create Pulsar client: %w", err)
	}

	producer, err := client.CreateProducer(pulsar.ProducerOptions{Topic: topic})
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("could not create Pulsar producer: %w", err)
	}

	return &PulsarPublisher{client: client, producer: producer}, nil
}

// Notify publishes an event keyed by asset so one asset's events stay ordered.
func (p *PulsarPublisher) Notify(ctx context.Context, event AssetEvent) error {
	payload, err := encode(event)
	if err != nil {
		return err
	}

	_, err = p.producer.Send(ctx, &pulsar.ProducerMessage{
		Key:     event.AssetID.String(),
		Payload: payload,
	})
	if err != nil {
		return fmt.Errorf("could not send event to Pulsar: %w", err)
	}

	log.Debug().Str("event_type", string(event.Type)).Str("asset_id", event.AssetID.String()).Msg("Event sent to Pulsar")
	return nil
}

// Close cleans up the Pulsar producer and client.
func (p *PulsarPublisher) Close() {
	p.producer.Close()
	p.client.Close()
}

type PulsarConsumer struct {
	client   pulsar.Client
	consumer pulsar.Consumer
}

// NewPulsarConsumer initializes the Pulsar client and a shared subscription
// that dead-letters a message after three failed deliveries.
func NewPulsarConsumer(pulsarURL, topic, subscription string) (*PulsarConsumer, error) {
	client, err := pulsar.NewClient(pulsar.ClientOptions{URL: pulsarURL})
	if err != nil {
		return nil, fmt.Errorf("could not create Pulsar client: %w", err)
	}

	consumer, err := client.Subscribe(pulsar.ConsumerOptions{
		Topic:            topic,
		SubscriptionName: subscription,
		Type:             pulsar.Shared,
		DLQ: &pulsar.DLQPolicy{
			MaxDeliveries:   3,
			DeadLetterTopic: topic + "-dlq",
		},
	})
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("could not create Pulsar consumer: %w", err)
	}

	return &PulsarConsumer{client: client, consumer: consumer}, nil
}

// Run receives messages until ctx is done. Messages that cannot be decoded
// are acknowledged and dropped; handler failures are negatively acknowledged.
func (c *PulsarConsumer) Run(ctx context.Context, handle Handler) error {
	for {
		msg, err := c.consumer.Receive(ctx)
		if err != nil {
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			log.Error().Err(err).Msg("Error receiving message")
			continue
		}

		event, err := decode(msg.Payload())
		if err != nil {
			log.Error().Err(err).Str("message_id", msg.ID().String()).Msg("Dropping malformed event")
			c.consumer.Ack(msg)
			continue
		}

		if err := handle(ctx, event); err != nil {
			log.Error().Err(err).Str("event_id", event.ID.String()).Msg("Failed to handle event")
			c.consumer.Nack(msg)
			continue
		}
		c.consumer.Ack(msg)
	}
}

// Close cleans up the Pulsar consumer and client.
func (c *PulsarConsumer) Close() {
	c.consumer.Close()
	c.client.Close()
}
