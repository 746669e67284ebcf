package service

import (
	"context"

	"notekeeper-be/internal/pkg/logger"
	"notekeeper-be/pkg/events"
	"notekeeper-be/pkg/nats"
)

// IActivityService consumes domain events from the broker.
type IActivityService interface {
	Start(ctx context.Context) error
}

type activityService struct {
	subscriber *nats.Subscriber
	logger     logger.ILogger
}

func NewActivityService(subscriber *nats.Subscriber, log logger.ILogger) IActivityService {
	return &activityService{subscriber: subscriber, logger: log}
}

func (s *activityService) Start(ctx context.Context) error {
	return s.subscriber.Subscribe(ctx, nats.Subject(">"), "notekeeper-activity", s.Handle)
}

// Handle writes one activity line per domain event.
func (s *activityService) Handle(ctx context.Context, event events.Event) error {
	details := map[string]interface{}{
		"type":        event.EventType(),
		"occurred_at": event.Timestamp(),
	}
	for k, v := range event.Payload() {
		details[k] = v
	}
	s.logger.Info("ACTIVITY", "Domain event received", details)
	return nil
}
