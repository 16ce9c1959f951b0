package events

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	kafka "github.com/segmentio/kafka-go"
)

// messageWriter is the subset of *kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer messageWriter
}

// NewKafkaPublisher creates a publisher that hashes events onto partitions by asset id.
func NewKafkaPublisher(brokers []string, topic string) (*KafkaPublisher, error) {
	if len(brokers) == 0 || topic == "" {
		return nil, errors.New("kafka brokers and topic are required")
	}
	return &KafkaPublisher{writer: &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.Hash{},
	}}, nil
}

func (p *KafkaPublisher) Notify(ctx context.Context, event AssetEvent) error {
	payload, err := encode(event)
	if err != nil {
		return err
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.AssetID.String()),
		Value: payload,
	})
	if err != nil {
		return fmt.Errorf("could not send event to Kafka: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() {
	if err := p.writer.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close Kafka writer")
	}
}

// messageReader is the subset of *kafka.Reader the consumer needs.
type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaConsumer struct {
	reader messageReader
}

func NewKafkaConsumer(brokers []string, topic, groupID string) *KafkaConsumer {
	return &KafkaConsumer{reader: kafka.NewReader(kafka.ReaderConfig{
		Brokers: brokers,
		Topic:   topic,
		GroupID: groupID,
	})}
}

// Run fetches messages until ctx is done. Offsets are committed after the
// handler returns, whether or not it succeeded, so a poison message cannot
// block the partition.
func (c *KafkaConsumer) Run(ctx context.Context, handle Handler) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("failed to fetch message: %w", err)
		}

		event, err := decode(msg.Value)
		if err != nil {
			log.Error().Err(err).Int64("offset", msg.Offset).Msg("Dropping malformed event")
		} else if err := handle(ctx, event); err != nil {
			log.Error().Err(err).Str("event_id", event.ID.String()).Msg("Failed to handle event")
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			log.Error().Err(err).Int64("offset", msg.Offset).Msg("Failed to commit offset")
		}
	}
}

func (c *KafkaConsumer) Close() {
	if err := c.reader.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close Kafka reader")
	}
}
