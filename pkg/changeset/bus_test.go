package changeset

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_PublishWaitsForSubscriber(t *testing.T) {
	bus := NewBus(nil)
	defer bus.Close()

	var mu sync.Mutex
	var got []Batch
	require.NoError(t, bus.Subscribe(context.Background(), func(_ context.Context, b Batch) error {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, b)
		return nil
	}))

	id := uuid.New()
	err := bus.Publish(context.Background(), Batch{
		Changes:     []Change{{Kind: Inserted, Entity: EntityNotebook, Id: id, NotebookId: id}},
		CommittedAt: time.Now(),
	})
	require.NoError(t, err)

	// Publish returned, so the handler already ran.
	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 1)
	assert.NotEmpty(t, got[0].Id)
	assert.Equal(t, id, got[0].Changes[0].Id)
}

func TestBus_EmptyBatchIsDropped(t *testing.T) {
	bus := NewBus(nil)
	defer bus.Close()

	called := false
	require.NoError(t, bus.Subscribe(context.Background(), func(_ context.Context, b Batch) error {
		called = true
		return nil
	}))

	require.NoError(t, bus.Publish(context.Background(), Batch{}))
	assert.False(t, called)
}

func TestRecorder_DrainAndDiscard(t *testing.T) {
	var r Recorder
	r.Record(Change{Kind: Inserted})
	r.Record(Change{Kind: Deleted})

	assert.Len(t, r.Drain(), 2)
	assert.Empty(t, r.Drain())

	r.Record(Change{Kind: Updated})
	r.Discard()
	assert.Empty(t, r.Drain())
}
