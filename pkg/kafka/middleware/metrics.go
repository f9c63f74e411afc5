package kafka_middleware

import (
	"context"

	"skincare/pkg/kafka"
)

// PublishObserver records the outcome of every publish attempt.
type PublishObserver interface {
	ObserveEvent(eventType string, err error)
}

// MetricsProducerMiddleware reports each publish to observer by event type
func MetricsProducerMiddleware(observer PublishObserver) kafka.ProducerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next func(ctx context.Context, msg kafka.Message) error) error {
		err := next(ctx, msg)
		observer.ObserveEvent(msg.GetEventType(), err)
		return err
	}
}
