package unitofwork

import (
	"context"
	"log"
	"time"

	"notekeeper-be/pkg/changeset"
)

// ChangeTracker is the publishing half of a unit of work, shared by the gorm
// and memory backends.
type ChangeTracker struct {
	publisher changeset.Publisher
	recorder  changeset.Recorder
	inTx      bool
	ctx       context.Context
}

func NewChangeTracker(ctx context.Context, publisher changeset.Publisher) *ChangeTracker {
	return &ChangeTracker{publisher: publisher, ctx: ctx}
}

// Record implements contract.ChangeRecorder.
func (t *ChangeTracker) Record(change changeset.Change) {
	if t.inTx {
		t.recorder.Record(change)
		return
	}
	t.publish([]changeset.Change{change})
}

// Open starts buffering changes for a transaction.
func (t *ChangeTracker) Open(ctx context.Context) {
	t.inTx = true
	t.ctx = ctx
}

// Flush publishes what the committed transaction recorded.
func (t *ChangeTracker) Flush() {
	t.inTx = false
	t.publish(t.recorder.Drain())
}

// Discard forgets what the rolled back transaction recorded.
func (t *ChangeTracker) Discard() {
	t.inTx = false
	t.recorder.Discard()
}

func (t *ChangeTracker) publish(changes []changeset.Change) {
	if t.publisher == nil || len(changes) == 0 {
		return
	}
	ctx := t.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	batch := changeset.Batch{Changes: changes, CommittedAt: time.Now()}
	// The data is already saved; a lost notification only delays observers
	// until their next refresh.
	if err := t.publisher.Publish(ctx, batch); err != nil {
		log.Printf("[WARN] Failed to publish change batch: %v", err)
	}
}
