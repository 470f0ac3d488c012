// Package events connects the hotel services to Kafka.
package events

import (
	"context"
	"errors"
	"strings"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/grandstay/service-hotel/pkg/domain"
	"github.com/grandstay/service-hotel/pkg/events"
	"github.com/grandstay/service-hotel/pkg/kafka"
)

// StayEventHandler completes bookings when the front desk checks a guest out.
type StayEventHandler interface {
	HandleStayCheckedOut(ctx context.Context, event events.StayCheckedOutEvent) error
}

// StayEventConsumer listens to front-desk stay events.
type StayEventConsumer struct {
	consumer *kafka.Consumer
	handler  StayEventHandler
	logger   *zap.Logger
}

// NewStayEventConsumer creates a new consumer for stay events.
func NewStayEventConsumer(
	brokers []string,
	groupID string,
	handler StayEventHandler,
	logger *zap.Logger,
	opts ...kafka.ConsumerOption,
) *StayEventConsumer {
	consumer := kafka.NewConsumer(brokers, groupID, events.TopicStayEvents, logger, opts...)
	return &StayEventConsumer{
		consumer: consumer,
		handler:  handler,
		logger:   logger,
	}
}

// Start begins consuming stay events. It blocks until the context is cancelled.
func (c *StayEventConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

// handleMessage routes incoming Kafka messages to the appropriate handler.
func (c *StayEventConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	cloudEvent, err := kafka.ParseCloudEvent(msg.Value)
	if err != nil {
		c.logger.Error("failed to parse cloud event from stay topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return kafka.Permanent(err)
	}

	c.logger.Info("received stay event",
		zap.String("type", cloudEvent.Type),
		zap.String("id", cloudEvent.ID),
	)

	switch {
	case strings.EqualFold(cloudEvent.Type, events.StayCheckedOut):
		return c.handleCheckedOut(ctx, cloudEvent)

	default:
		c.logger.Debug("ignoring unhandled stay event type",
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}
}

func (c *StayEventConsumer) handleCheckedOut(ctx context.Context, ce kafka.CloudEvent) error {
	var event events.StayCheckedOutEvent
	if err := ce.ParseData(&event); err != nil {
		c.logger.Error("failed to parse StayCheckedOutEvent data", zap.Error(err))
		return kafka.Permanent(err)
	}
	return classify(c.handler.HandleStayCheckedOut(ctx, event))
}

// classify marks business rejections as permanent. Version conflicts and
// infrastructure failures stay retryable.
func classify(err error) error {
	var domErr *domain.DomainError
	if errors.As(err, &domErr) && domErr.Code != domain.CodeConflict {
		return kafka.Permanent(err)
	}
	return err
}

// Close closes the underlying Kafka consumer.
func (c *StayEventConsumer) Close() error {
	return c.consumer.Close()
}
