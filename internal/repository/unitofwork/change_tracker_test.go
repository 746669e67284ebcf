package unitofwork

import (
	"context"
	"testing"

	"notekeeper-be/pkg/changeset"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type capturePublisher struct {
	batches []changeset.Batch
}

func (p *capturePublisher) Publish(_ context.Context, b changeset.Batch) error {
	p.batches = append(p.batches, b)
	return nil
}

func TestChangeTracker_BuffersInsideTransaction(t *testing.T) {
	pub := &capturePublisher{}
	tr := NewChangeTracker(context.Background(), pub)

	tr.Open(context.Background())
	tr.Record(changeset.Change{Kind: changeset.Inserted, Id: uuid.New()})
	tr.Record(changeset.Change{Kind: changeset.Inserted, Id: uuid.New()})
	assert.Empty(t, pub.batches)

	tr.Flush()
	assert.Len(t, pub.batches, 1)
	assert.Len(t, pub.batches[0].Changes, 2)
}

func TestChangeTracker_DiscardOnRollback(t *testing.T) {
	pub := &capturePublisher{}
	tr := NewChangeTracker(context.Background(), pub)

	tr.Open(context.Background())
	tr.Record(changeset.Change{Kind: changeset.Deleted, Id: uuid.New()})
	tr.Discard()

	assert.Empty(t, pub.batches)
}

func TestChangeTracker_AutocommitPublishesImmediately(t *testing.T) {
	pub := &capturePublisher{}
	tr := NewChangeTracker(context.Background(), pub)

	tr.Record(changeset.Change{Kind: changeset.Updated, Id: uuid.New()})

	assert.Len(t, pub.batches, 1)
}
