package event

import (
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/mozzabt/portfolio/internal/config"
	"github.com/mozzabt/portfolio/internal/domain/portfolio"
)

func NewOverrideEventsReader(cfg config.Config) *kafka.Reader {
	topic := cfg.Kafka.Topic
	if topic == "" {
		topic = TopicOverrideEvents
	}
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    topic,
		GroupID:  cfg.Kafka.GroupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
}

// DecodeOverrideEvent parses one message value produced by PublishOverrideEvent.
func DecodeOverrideEvent(value []byte) (portfolio.OverrideEvent, error) {
	var ev portfolio.OverrideEvent
	if err := json.Unmarshal(value, &ev); err != nil {
		return ev, fmt.Errorf("unmarshal override event: %w", err)
	}
	if ev.EventType == "" {
		return ev, fmt.Errorf("override event without event_type")
	}
	return ev, nil
}
