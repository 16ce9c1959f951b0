package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/internal/appconfig"
	"github.com/google/uuid"
)

// EventType names a change in an asset's lifecycle.
type EventType string

const (
	AssetCreated    EventType = "asset.created"
	AssetUpdated    EventType = "asset.updated"
	AssetAssigned   EventType = "asset.assigned"
	AssetUnassigned EventType = "asset.unassigned"
	AssetDisposed   EventType = "asset.disposed"
)

// AssetEvent is published whenever an asset changes.
type AssetEvent struct {
	ID        uuid.UUID  `json:"id"`
	Type      EventType  `json:"type"`
	AssetID   uuid.UUID  `json:"asset_id"`
	Sticker   string     `json:"sticker"`
	ActorID   uuid.UUID  `json:"actor_id"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	ProjectID *uuid.UUID `json:"project_id,omitempty"`
	Timestamp int64      `json:"timestamp"`
}

// NewAssetEvent stamps a new event with an id and the current time.
func NewAssetEvent(t EventType, assetID uuid.UUID, sticker string, actor uuid.UUID) AssetEvent {
	return AssetEvent{
		ID:        uuid.New(),
		Type:      t,
		AssetID:   assetID,
		Sticker:   sticker,
		ActorID:   actor,
		Timestamp: time.Now().UTC().Unix(),
	}
}

// Notifier publishes asset events to a broker.
type Notifier interface {
	Notify(ctx context.Context, event AssetEvent) error
	Close()
}

// Handler processes one consumed event.
type Handler func(ctx context.Context, event AssetEvent) error

// Consumer delivers events to a handler until the context is cancelled.
type Consumer interface {
	Run(ctx context.Context, handle Handler) error
	Close()
}

// NoopNotifier drops every event. It is used when no broker is configured.
type NoopNotifier struct{}

func (NoopNotifier) Notify(context.Context, AssetEvent) error { return nil }
func (NoopNotifier) Close()                                   {}

func encode(event AssetEvent) ([]byte, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("could not serialize event payload: %w", err)
	}
	return payload, nil
}

func decode(payload []byte) (AssetEvent, error) {
	var event AssetEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return AssetEvent{}, fmt.Errorf("could not deserialize event payload: %w", err)
	}
	return event, nil
}

// NewNotifier builds the publisher for the configured broker.
func NewNotifier(cfg appconfig.EventsConfig) (Notifier, error) {
	switch cfg.Broker {
	case "pulsar":
		return NewPulsarPublisher(cfg.Pulsar.URL, cfg.Pulsar.TopicProducer)
	case "kafka":
		return NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	case "", "none":
		return NoopNotifier{}, nil
	}
	return nil, fmt.Errorf("unknown event broker %q", cfg.Broker)
}

// NewConsumer builds the subscriber for the configured broker.
func NewConsumer(cfg appconfig.EventsConfig) (Consumer, error) {
	switch cfg.Broker {
	case "pulsar":
		return NewPulsarConsumer(cfg.Pulsar.URL, cfg.Pulsar.TopicConsumer, cfg.Pulsar.Subscription)
	case "kafka":
		return NewKafkaConsumer(cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Kafka.GroupID), nil
	}
	return nil, fmt.Errorf("event broker %q cannot be consumed", cfg.Broker)
}
