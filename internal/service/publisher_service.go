package service

import (
	"context"

	"notekeeper-be/internal/pkg/logger"
	"notekeeper-be/pkg/events"
)

// IPublisherService sends domain events to the broker.
type IPublisherService interface {
	Publish(ctx context.Context, event events.Event) error
}

type noopPublisher struct{}

// NewNoopPublisher is used when no broker is configured.
func NewNoopPublisher() IPublisherService {
	return noopPublisher{}
}

func (noopPublisher) Publish(context.Context, events.Event) error {
	return nil
}

// publishEvent sends event after a committed mutation. The mutation already
// succeeded, so a broker failure is only logged.
func publishEvent(ctx context.Context, publisher IPublisherService, log logger.ILogger, event events.Event) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, event); err != nil {
		log.Warn("EVENT", "Failed to publish domain event", map[string]interface{}{
			"type":  event.EventType(),
			"error": err.Error(),
		})
	}
}
