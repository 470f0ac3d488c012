package application

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/grandstay/service-hotel/internal/domain/booking"
	"github.com/grandstay/service-hotel/internal/domain/catalog"
)

// Transactor runs fn in one transaction carried by the context.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher publishes a domain event payload to a topic.
type EventPublisher interface {
	Publish(ctx context.Context, topic, eventType string, data interface{}) error
}

// RoomTypeCache stores the active room type listing. A nil cache disables caching.
type RoomTypeCache interface {
	Get(ctx context.Context, limit int) ([]catalog.RoomType, bool)
	Set(ctx context.Context, limit int, types []catalog.RoomType)
	Invalidate(ctx context.Context)
}

// Clock supplies the current instant and the hotel's calendar date.
type Clock interface {
	Now() time.Time
	Today() time.Time
}

// SystemClock reads the wall clock. Today is evaluated in Location.
type SystemClock struct {
	Location *time.Location
}

func (c SystemClock) Now() time.Time { return time.Now().UTC() }

func (c SystemClock) Today() time.Time {
	loc := c.Location
	if loc == nil {
		loc = time.UTC
	}
	return booking.DateOf(time.Now().In(loc))
}

// publish sends an event after the write committed. Failures are logged and swallowed.
func publish(ctx context.Context, publisher EventPublisher, logger *zap.Logger, topic, eventType string, data interface{}) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, topic, eventType, data); err != nil {
		logger.Error("failed to publish event",
			zap.String("topic", topic),
			zap.String("type", eventType),
			zap.Error(err),
		)
	}
}
