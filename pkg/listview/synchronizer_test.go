package listview

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"notekeeper-be/pkg/changeset"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	mu    sync.Mutex
	items []uuid.UUID
	err   error
}

func (s *fakeSource) set(items ...uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = items
}

func (s *fakeSource) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *fakeSource) Query(context.Context, Scope) ([]uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return append([]uuid.UUID{}, s.items...), nil
}

type recorder struct {
	mu      sync.Mutex
	calls   []string
	patches []Patch
	closed  int
}

func (r *recorder) BeginUpdates(*View) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, "begin")
}

func (r *recorder) Apply(_ *View, p Patch) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, string(p.Op))
	r.patches = append(r.patches, p)
}

func (r *recorder) EndUpdates(*View) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, "end")
}

func (r *recorder) ViewClosed(*View) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed++
}

func notebookInserted(id uuid.UUID) changeset.Batch {
	return changeset.Batch{Changes: []changeset.Change{{Kind: changeset.Inserted, Entity: changeset.EntityNotebook, Id: id}}}
}

func TestSynchronizer_ReconcilesAffectedView(t *testing.T) {
	ctx := context.Background()
	p := ids(2)
	src := &fakeSource{}
	src.set(p[1])

	s := NewSynchronizer(src, Config{})
	v, err := s.Open(ctx, AllNotebooks())
	require.NoError(t, err)
	rec := &recorder{}
	v.Observe(rec)

	src.set(p[0], p[1])
	require.NoError(t, s.HandleBatch(ctx, notebookInserted(p[0])))

	assert.Equal(t, []uuid.UUID{p[0], p[1]}, v.Items())
	assert.Equal(t, []string{"begin", "insert", "end"}, rec.calls)
	assert.Equal(t, 0, rec.patches[0].To)
}

func TestSynchronizer_SkipsUnaffectedView(t *testing.T) {
	ctx := context.Background()
	x := uuid.New()
	src := &fakeSource{}
	s := NewSynchronizer(src, Config{})
	v, err := s.Open(ctx, NotesOf(x, true))
	require.NoError(t, err)
	rec := &recorder{}
	v.Observe(rec)

	src.set(uuid.New())
	require.NoError(t, s.HandleBatch(ctx, notebookInserted(uuid.New())))

	assert.Empty(t, v.Items())
	assert.Empty(t, rec.calls)
}

func TestSynchronizer_QueryFailureKeepsSequence(t *testing.T) {
	ctx := context.Background()
	p := ids(2)
	src := &fakeSource{}
	src.set(p[0])

	var reported []string
	s := NewSynchronizer(src, Config{OnError: func(id string, _ error) { reported = append(reported, id) }})
	v, err := s.Open(ctx, AllNotebooks())
	require.NoError(t, err)

	src.fail(errors.New("connection reset"))
	err = s.HandleBatch(ctx, notebookInserted(p[1]))
	assert.ErrorIs(t, err, ErrQuery)
	assert.Equal(t, []uuid.UUID{p[0]}, v.Items())
	assert.Equal(t, []string{v.Id()}, reported)

	src.fail(nil)
	src.set(p[0], p[1])
	require.NoError(t, s.Refresh(ctx, v.Id()))
	assert.Equal(t, []uuid.UUID{p[0], p[1]}, v.Items())
}

func TestSynchronizer_OpenFailure(t *testing.T) {
	src := &fakeSource{}
	src.fail(errors.New("down"))
	s := NewSynchronizer(src, Config{})

	_, err := s.Open(context.Background(), AllNotebooks())
	assert.ErrorIs(t, err, ErrQuery)
	assert.Zero(t, s.Len())
}

func TestSynchronizer_CloseNotifiesObservers(t *testing.T) {
	rec := &recorder{}
	s := NewSynchronizer(&fakeSource{}, Config{Observers: []Observer{rec}})
	v, err := s.Open(context.Background(), AllNotebooks())
	require.NoError(t, err)

	require.NoError(t, s.Close(v.Id()))
	assert.True(t, v.Closed())
	assert.Equal(t, 1, rec.closed)
	assert.ErrorIs(t, s.Close(v.Id()), ErrViewNotFound)
}

func TestSynchronizer_IdleViewsExpire(t *testing.T) {
	s := NewSynchronizer(&fakeSource{}, Config{IdleTTL: 20 * time.Millisecond})
	v, err := s.Open(context.Background(), AllNotebooks())
	require.NoError(t, err)

	assert.Eventually(t, func() bool { return v.Closed() }, time.Second, 10*time.Millisecond)
	_, found := s.Get(v.Id())
	assert.False(t, found)
}

func TestSynchronizer_DeliveriesKeepViewOpen(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{}
	s := NewSynchronizer(src, Config{IdleTTL: 60 * time.Millisecond})
	v, err := s.Open(ctx, AllNotebooks())
	require.NoError(t, err)
	rec := &recorder{}
	v.Observe(rec)

	var rows []uuid.UUID
	for i := 0; i < 10; i++ {
		id := uuid.New()
		rows = append([]uuid.UUID{id}, rows...)
		src.set(rows...)
		require.NoError(t, s.HandleBatch(ctx, notebookInserted(id)))
		time.Sleep(20 * time.Millisecond)
	}

	assert.False(t, v.Closed())
	assert.Equal(t, 0, rec.closed)
	assert.Equal(t, 1, s.Len())
	assert.Len(t, v.Items(), 10)
}

func TestSynchronizer_TouchKeepsStreamedViewOpen(t *testing.T) {
	s := NewSynchronizer(&fakeSource{}, Config{IdleTTL: 60 * time.Millisecond})
	v, err := s.Open(context.Background(), AllNotebooks())
	require.NoError(t, err)

	for i := 0; i < 6; i++ {
		time.Sleep(20 * time.Millisecond)
		require.True(t, s.Touch(v.Id()))
	}
	assert.False(t, v.Closed())

	assert.Eventually(t, func() bool { return v.Closed() }, time.Second, 10*time.Millisecond)
	assert.False(t, s.Touch(v.Id()))
}

func TestSynchronizer_ClosedViewIsNotRevived(t *testing.T) {
	s := NewSynchronizer(&fakeSource{}, Config{IdleTTL: time.Minute})
	v, err := s.Open(context.Background(), AllNotebooks())
	require.NoError(t, err)

	require.NoError(t, s.Close(v.Id()))
	assert.False(t, s.touch(v))
	assert.False(t, s.Touch(v.Id()))
	_, found := s.Get(v.Id())
	assert.False(t, found)
	assert.Equal(t, 0, s.Len())
}

func TestSynchronizer_FollowsBus(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := changeset.NewBus(nil)
	defer bus.Close()

	p := ids(1)
	src := &fakeSource{}
	s := NewSynchronizer(src, Config{})
	require.NoError(t, s.Start(ctx, bus))
	v, err := s.Open(ctx, AllNotebooks())
	require.NoError(t, err)

	src.set(p[0])
	require.NoError(t, bus.Publish(ctx, notebookInserted(p[0])))

	// Publish returns once the synchronizer acknowledged.
	assert.Equal(t, []uuid.UUID{p[0]}, v.Items())
}
