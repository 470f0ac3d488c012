package events

import (
	"context"

	"go.uber.org/zap"

	"github.com/grandstay/service-hotel/pkg/kafka"
)

// Source is the CloudEvents source of every event this service produces.
const Source = "service-hotel"

// eventWriter is the part of kafka.Producer the publisher needs.
type eventWriter interface {
	PublishEvent(ctx context.Context, topic string, ce kafka.CloudEvent) error
}

// KafkaPublisher wraps domain payloads in CloudEvents and writes them to Kafka.
type KafkaPublisher struct {
	writer eventWriter
	logger *zap.Logger
}

// NewKafkaPublisher creates a KafkaPublisher over producer.
func NewKafkaPublisher(producer *kafka.Producer, logger *zap.Logger) *KafkaPublisher {
	return &KafkaPublisher{writer: producer, logger: logger}
}

// Publish sends data as eventType on topic.
func (p *KafkaPublisher) Publish(ctx context.Context, topic, eventType string, data interface{}) error {
	ce, err := kafka.NewCloudEvent(Source, eventType, data)
	if err != nil {
		return err
	}
	return p.writer.PublishEvent(ctx, topic, ce)
}

// NopPublisher discards events. It backs the service when no brokers are configured.
type NopPublisher struct {
	logger *zap.Logger
}

// NewNopPublisher creates a NopPublisher.
func NewNopPublisher(logger *zap.Logger) *NopPublisher {
	return &NopPublisher{logger: logger}
}

func (p *NopPublisher) Publish(_ context.Context, topic, eventType string, _ interface{}) error {
	p.logger.Debug("event dropped, no broker configured",
		zap.String("topic", topic),
		zap.String("type", eventType),
	)
	return nil
}
