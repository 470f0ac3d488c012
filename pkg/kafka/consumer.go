package kafka

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// HandlerFunc processes one message.
type HandlerFunc func(ctx context.Context, msg kafkago.Message) error

// MessageWriter receives messages that could not be processed.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
}

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks err as not worth retrying. The consumer skips the message.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// IsPermanent reports whether err was marked with Permanent.
func IsPermanent(err error) bool {
	var p *permanentError
	return errors.As(err, &p)
}

// ConsumerOption configures a Consumer.
type ConsumerOption func(*Consumer)

// WithRetryBackOff sets the retry schedule for failed messages.
func WithRetryBackOff(newBackOff func() backoff.BackOff) ConsumerOption {
	return func(c *Consumer) { c.newBackOff = newBackOff }
}

// WithDeadLetter forwards messages that exhausted their retries to topic.
func WithDeadLetter(w MessageWriter, topic string) ConsumerOption {
	return func(c *Consumer) {
		c.deadLetter = w
		c.deadLetterTopic = topic
	}
}

// Consumer reads a single topic as part of a consumer group.
type Consumer struct {
	reader          *kafkago.Reader
	logger          *zap.Logger
	newBackOff      func() backoff.BackOff
	deadLetter      MessageWriter
	deadLetterTopic string
}

// NewConsumer creates a Consumer for topic.
func NewConsumer(brokers []string, groupID, topic string, logger *zap.Logger, opts ...ConsumerOption) *Consumer {
	c := &Consumer{
		reader: kafkago.NewReader(kafkago.ReaderConfig{
			Brokers:  brokers,
			GroupID:  groupID,
			Topic:    topic,
			MinBytes: 1,
			MaxBytes: 10e6,
		}),
		logger:     logger,
		newBackOff: defaultBackOff,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func defaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 30 * time.Second
	b.MaxElapsedTime = 2 * time.Minute
	return b
}

// Consume blocks, dispatching messages to handle until ctx is cancelled.
// Offsets are committed only once a message is handled, skipped as permanent,
// or dead-lettered. A message that can be none of these stops the consumer
// uncommitted so it is redelivered on restart.
func (c *Consumer) Consume(ctx context.Context, handle HandlerFunc) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("fetch message: %w", err)
		}

		if err := c.process(ctx, msg, handle); err != nil {
			return err
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			return fmt.Errorf("commit offset %d: %w", msg.Offset, err)
		}
	}
}

// process runs handle with retries. A nil return means the offset may be committed.
func (c *Consumer) process(ctx context.Context, msg kafkago.Message, handle HandlerFunc) error {
	attempts := 0
	err := backoff.RetryNotify(func() error {
		attempts++
		err := handle(ctx, msg)
		if IsPermanent(err) {
			return backoff.Permanent(err)
		}
		return err
	}, backoff.WithContext(c.newBackOff(), ctx), func(err error, wait time.Duration) {
		c.logger.Warn("message handling failed, retrying",
			zap.String("topic", msg.Topic),
			zap.Int64("offset", msg.Offset),
			zap.Int("attempt", attempts),
			zap.Duration("retry_in", wait),
			zap.Error(err),
		)
	})
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	fields := []zap.Field{
		zap.String("topic", msg.Topic),
		zap.Int("partition", msg.Partition),
		zap.Int64("offset", msg.Offset),
		zap.Int("attempts", attempts),
		zap.Error(err),
	}
	if IsPermanent(err) {
		c.logger.Error("message rejected, skipping", fields...)
		return nil
	}
	if c.deadLetter == nil {
		c.logger.Error("message handling failed, stopping consumer", fields...)
		return fmt.Errorf("handle offset %d: %w", msg.Offset, err)
	}

	dead := kafkago.Message{
		Topic: c.deadLetterTopic,
		Key:   msg.Key,
		Value: msg.Value,
		Headers: append(append([]kafkago.Header{}, msg.Headers...),
			kafkago.Header{Key: "dlq_source_topic", Value: []byte(msg.Topic)},
			kafkago.Header{Key: "dlq_error", Value: []byte(err.Error())},
		),
	}
	if werr := c.deadLetter.WriteMessages(ctx, dead); werr != nil {
		c.logger.Error("dead-letter write failed, stopping consumer", append(fields, zap.NamedError("dlq_error", werr))...)
		return fmt.Errorf("dead-letter offset %d: %w", msg.Offset, werr)
	}
	c.logger.Error("message dead-lettered", append(fields, zap.String("dlq_topic", c.deadLetterTopic))...)
	return nil
}

// Close closes the underlying reader.
func (c *Consumer) Close() error {
	return c.reader.Close()
}
