package changeset

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Topic carries committed store change batches.
const Topic = "store.changes"

// Publisher is what a unit of work calls after a successful commit.
type Publisher interface {
	Publish(ctx context.Context, batch Batch) error
}

// Handler consumes one batch.
type Handler func(ctx context.Context, batch Batch) error

// Bus is an in-process change channel. Publish blocks until every subscriber
// acknowledged the batch, so a committed mutation returns only after all
// observers reconciled.
type Bus struct {
	pubSub *gochannel.GoChannel
	topic  string
}

func NewBus(logger watermill.LoggerAdapter) *Bus {
	if logger == nil {
		logger = watermill.NewStdLogger(false, false)
	}
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{BlockPublishUntilSubscriberAck: true},
		logger,
	)
	return &Bus{pubSub: pubSub, topic: Topic}
}

func (b *Bus) Publish(ctx context.Context, batch Batch) error {
	if len(batch.Changes) == 0 {
		return nil
	}
	if batch.Id == "" {
		batch.Id = watermill.NewUUID()
	}

	payload, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("marshal change batch: %w", err)
	}

	msg := message.NewMessage(batch.Id, payload)
	msg.SetContext(ctx)
	return b.pubSub.Publish(b.topic, msg)
}

// Subscribe delivers every batch to handler until ctx is done. Handler
// errors are logged and the batch is still acknowledged; observers recover by
// re-fetching instead of having the batch redelivered.
func (b *Bus) Subscribe(ctx context.Context, handler Handler) error {
	messages, err := b.pubSub.Subscribe(ctx, b.topic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			var batch Batch
			if err := json.Unmarshal(msg.Payload, &batch); err != nil {
				log.Printf("[ERROR] Failed to unmarshal change batch %s: %v", msg.UUID, err)
				msg.Ack()
				continue
			}
			if err := handler(msg.Context(), batch); err != nil {
				log.Printf("[WARN] Change batch %s handler failed: %v", batch.Id, err)
			}
			msg.Ack()
		}
	}()

	return nil
}

func (b *Bus) Close() error {
	return b.pubSub.Close()
}
