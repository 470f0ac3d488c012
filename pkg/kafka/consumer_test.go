package kafka

import (
	"context"
	"errors"
	"testing"

	"github.com/cenkalti/backoff/v4"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingWriter struct {
	msgs []kafkago.Message
	err  error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func testConsumer(retries uint64, opts ...ConsumerOption) *Consumer {
	c := &Consumer{
		logger: zap.NewNop(),
		newBackOff: func() backoff.BackOff {
			return backoff.WithMaxRetries(&backoff.ZeroBackOff{}, retries)
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// failing returns a handler that fails the first n calls.
func failing(n int, err error) (HandlerFunc, *int) {
	calls := 0
	return func(context.Context, kafkago.Message) error {
		calls++
		if calls <= n {
			return err
		}
		return nil
	}, &calls
}

var testMsg = kafkago.Message{Topic: "hotel.stay.events", Offset: 42, Value: []byte(`{"id":"1"}`)}

func TestProcess_RetriesTransientFailures(t *testing.T) {
	handle, calls := failing(2, errors.New("connection refused"))

	err := testConsumer(3).process(context.Background(), testMsg, handle)
	require.NoError(t, err)
	assert.Equal(t, 3, *calls)
}

func TestProcess_SkipsPermanentFailures(t *testing.T) {
	handle, calls := failing(10, Permanent(errors.New("malformed")))

	err := testConsumer(3).process(context.Background(), testMsg, handle)
	require.NoError(t, err)
	assert.Equal(t, 1, *calls)
}

func TestProcess_StopsUncommittedWithoutDeadLetter(t *testing.T) {
	handle, calls := failing(10, assert.AnError)

	err := testConsumer(2).process(context.Background(), testMsg, handle)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, 3, *calls)
}

func TestProcess_DeadLettersExhaustedMessages(t *testing.T) {
	handle, _ := failing(10, assert.AnError)
	dlq := &recordingWriter{}

	err := testConsumer(1, WithDeadLetter(dlq, "hotel.stay.events.dlq")).process(context.Background(), testMsg, handle)
	require.NoError(t, err)
	require.Len(t, dlq.msgs, 1)

	dead := dlq.msgs[0]
	assert.Equal(t, "hotel.stay.events.dlq", dead.Topic)
	assert.Equal(t, testMsg.Value, dead.Value)
	headers := map[string]string{}
	for _, h := range dead.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, "hotel.stay.events", headers["dlq_source_topic"])
	assert.Equal(t, assert.AnError.Error(), headers["dlq_error"])
}

func TestProcess_FailedDeadLetterWriteStopsConsumer(t *testing.T) {
	handle, _ := failing(10, assert.AnError)
	dlq := &recordingWriter{err: errors.New("broker down")}

	err := testConsumer(0, WithDeadLetter(dlq, "dlq")).process(context.Background(), testMsg, handle)
	assert.ErrorContains(t, err, "broker down")
}

func TestProcess_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	handle, _ := failing(10, assert.AnError)

	err := testConsumer(5).process(ctx, testMsg, handle)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPermanent(t *testing.T) {
	assert.NoError(t, Permanent(nil))

	err := Permanent(assert.AnError)
	assert.True(t, IsPermanent(err))
	assert.ErrorIs(t, err, assert.AnError)
	assert.False(t, IsPermanent(assert.AnError))
}
