package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"notekeeper-be/internal/pkg/logger"
	"notekeeper-be/internal/repository/memory"
	"notekeeper-be/pkg/changeset"
	"notekeeper-be/pkg/clock"
	"notekeeper-be/pkg/events"
	"notekeeper-be/pkg/listview"
)

type harness struct {
	db        *memory.Database
	bus       *changeset.Bus
	sync      *listview.Synchronizer
	events    *capturePublisher
	notices   INoticeService
	drafts    *DraftStore
	notebooks INotebookService
	notes     INoteService
	views     IViewService
	close     func()
}

func newHarness() *harness {
	ctx, cancel := context.WithCancel(context.Background())
	log := logger.NewNopLogger()

	db := memory.NewDatabase()
	bus := changeset.NewBus(logger.NewWatermillAdapter(log))
	factory := memory.NewRepositoryFactory(db, bus)
	clk := clock.NewMonotonic()

	synchronizer := listview.NewSynchronizer(NewListViewSource(factory), listview.Config{})
	if err := synchronizer.Start(ctx, bus); err != nil {
		panic(err)
	}

	pub := &capturePublisher{}
	notices := NewNoticeService(10, log)
	drafts := NewDraftStore(time.Hour)

	return &harness{
		db:        db,
		bus:       bus,
		sync:      synchronizer,
		events:    pub,
		notices:   notices,
		drafts:    drafts,
		notebooks: NewNotebookService(factory, pub, notices, clk, log),
		notes:     NewNoteService(factory, pub, notices, drafts, clk, true, log),
		views:     NewViewService(synchronizer, factory, true),
		close: func() {
			cancel()
			_ = bus.Close()
		},
	}
}

func setup(t *testing.T) *harness {
	t.Helper()
	h := newHarness()
	t.Cleanup(h.close)
	return h
}

type capturePublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *capturePublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *capturePublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.EventType()
	}
	return out
}

type patchRecorder struct {
	mu      sync.Mutex
	batches [][]listview.Patch
	current []listview.Patch
}

func (r *patchRecorder) BeginUpdates(*listview.View) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = nil
}

func (r *patchRecorder) Apply(_ *listview.View, p listview.Patch) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = append(r.current, p)
}

func (r *patchRecorder) EndUpdates(*listview.View) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches = append(r.batches, r.current)
}

func (r *patchRecorder) last() []listview.Patch {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.batches) == 0 {
		return nil
	}
	return r.batches[len(r.batches)-1]
}
