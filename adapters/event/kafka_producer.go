package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/mozzabt/portfolio/internal/config"
	"github.com/mozzabt/portfolio/internal/domain/portfolio"
	"github.com/mozzabt/portfolio/pkg/logger"
)

const TopicOverrideEvents = "override.events"

type KafkaProducerClient struct {
	OverrideEventsWriter *kafka.Writer
	logger               logger.Logger
}

func NewKafkaProducerClient(cfg config.Config, log logger.Logger) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	topic := cfg.Kafka.Topic
	if topic == "" {
		topic = TopicOverrideEvents
	}

	// Keyed by slot so all events of one slot land on one partition, in order.
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.Hash{},
	}

	log.Info("Initialize Kafka producer successfully.", zap.String("topic", topic), zap.Strings("brokers", brokers))

	return &KafkaProducerClient{OverrideEventsWriter: writer, logger: log}, nil
}

func (c *KafkaProducerClient) PublishOverrideEvent(ctx context.Context, ev portfolio.OverrideEvent) error {
	value, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal override event: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(ev.Slot),
		Value: value,
	}
	if err := c.OverrideEventsWriter.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write override event: %w", err)
	}
	c.logger.Debug("Published override event", zap.String("event_type", ev.EventType), zap.String("event_id", ev.EventID.String()))
	return nil
}

func (c *KafkaProducerClient) Close() {
	if c.OverrideEventsWriter != nil {
		if err := c.OverrideEventsWriter.Close(); err != nil {
			c.logger.Error("Failed to close Kafka producer", err)
			return
		}
	}
	c.logger.Info("Closed Kafka producer")
}
