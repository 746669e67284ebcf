package listview

import (
	"context"
	"errors"
	"time"

	"notekeeper-be/pkg/changeset"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("notekeeper-be/pkg/listview")

// Source runs the scoped query behind a view.
type Source interface {
	Query(ctx context.Context, scope Scope) ([]uuid.UUID, error)
}

// Subscriber delivers committed change batches.
type Subscriber interface {
	Subscribe(ctx context.Context, handler changeset.Handler) error
}

type Config struct {
	// IdleTTL closes views not touched for this long. Zero keeps views open
	// until closed explicitly.
	IdleTTL time.Duration
	// Observers are attached to every view.
	Observers []Observer
	// OnError is called for reconciliations that fail.
	OnError func(viewId string, err error)
}

// Synchronizer keeps every open view equal to its scoped query by
// reconciling affected views after each committed batch.
type Synchronizer struct {
	source    Source
	views     *cache.Cache
	observers []Observer
	onError   func(viewId string, err error)
}

func NewSynchronizer(source Source, cfg Config) *Synchronizer {
	ttl, cleanup := cache.NoExpiration, time.Duration(0)
	if cfg.IdleTTL > 0 {
		ttl, cleanup = cfg.IdleTTL, cfg.IdleTTL/2
	}

	s := &Synchronizer{
		source:    source,
		views:     cache.New(ttl, cleanup),
		observers: cfg.Observers,
		onError:   cfg.OnError,
	}
	s.views.OnEvicted(func(_ string, x interface{}) {
		s.closed(x.(*View))
	})
	return s
}

// Start subscribes to committed batches.
func (s *Synchronizer) Start(ctx context.Context, sub Subscriber) error {
	return sub.Subscribe(ctx, s.HandleBatch)
}

// Open registers a view and performs its initial fetch.
func (s *Synchronizer) Open(ctx context.Context, scope Scope) (*View, error) {
	v := newView(uuid.NewString(), scope)

	// Registered before the fetch so a batch committed meanwhile queues
	// behind it instead of being missed.
	v.reconciling.Lock()
	s.views.Set(v.id, v, cache.DefaultExpiration)
	items, err := s.source.Query(ctx, scope)
	if err != nil {
		v.reconciling.Unlock()
		s.views.Delete(v.id)
		return nil, &QueryError{ViewId: v.id, Err: err}
	}
	v.replace(items)
	v.reconciling.Unlock()
	return v, nil
}

// Get returns an open view and extends its idle deadline.
func (s *Synchronizer) Get(id string) (*View, bool) {
	x, found := s.views.Get(id)
	if !found {
		return nil, false
	}
	v := x.(*View)
	if !s.touch(v) {
		return nil, false
	}
	return v, true
}

// Touch extends the idle deadline of an open view. Patch streams call it
// while a client is connected.
func (s *Synchronizer) Touch(id string) bool {
	x, found := s.views.Get(id)
	if !found {
		return false
	}
	return s.touch(x.(*View))
}

// Replace fails once the view left the registry, so a view closed or evicted
// concurrently is never put back.
func (s *Synchronizer) touch(v *View) bool {
	if v.Closed() {
		return false
	}
	return s.views.Replace(v.id, v, cache.DefaultExpiration) == nil
}

func (s *Synchronizer) Close(id string) error {
	if _, found := s.views.Get(id); !found {
		return ErrViewNotFound
	}
	s.views.Delete(id)
	return nil
}

// CloseAll closes every open view.
func (s *Synchronizer) CloseAll() {
	for id := range s.views.Items() {
		s.views.Delete(id)
	}
}

func (s *Synchronizer) Len() int {
	return s.views.ItemCount()
}

// Refresh re-fetches a view from scratch and reloads every row it keeps.
func (s *Synchronizer) Refresh(ctx context.Context, id string) error {
	v, found := s.Get(id)
	if !found {
		return ErrViewNotFound
	}
	return s.reconcile(ctx, v, nil, true)
}

// HandleBatch reconciles every view the batch can affect.
func (s *Synchronizer) HandleBatch(ctx context.Context, batch changeset.Batch) error {
	var errs []error
	for _, item := range s.views.Items() {
		v := item.Object.(*View)
		hit, updated := v.scope.affected(batch.Changes)
		if !hit {
			continue
		}
		if err := s.reconcile(ctx, v, updated, false); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *Synchronizer) reconcile(ctx context.Context, v *View, updated map[uuid.UUID]struct{}, reloadAll bool) error {
	v.reconciling.Lock()
	defer v.reconciling.Unlock()

	if v.Closed() {
		return nil
	}

	ctx, span := tracer.Start(ctx, "listview.reconcile", trace.WithAttributes(
		attribute.String("view.id", v.id),
		attribute.Bool("view.reload_all", reloadAll),
	))
	defer span.End()

	next, err := s.source.Query(ctx, v.scope)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "query failed")
		qerr := &QueryError{ViewId: v.id, Err: err}
		if s.onError != nil {
			s.onError(v.id, qerr)
		}
		return qerr
	}

	// A view that keeps receiving batches is in use.
	s.touch(v)

	if reloadAll {
		updated = make(map[uuid.UUID]struct{}, len(next))
		for _, id := range next {
			updated[id] = struct{}{}
		}
	}

	patches := Diff(v.Items(), next, updated)
	span.SetAttributes(attribute.Int("view.rows", len(next)), attribute.Int("view.patches", len(patches)))
	v.replace(next)
	if len(patches) == 0 {
		return nil
	}

	observers := append(append([]Observer{}, s.observers...), v.snapshotObservers()...)
	deliver(v, observers, patches)
	return nil
}

func (s *Synchronizer) closed(v *View) {
	if !v.close() {
		return
	}
	observers := append(append([]Observer{}, s.observers...), v.snapshotObservers()...)
	for _, o := range observers {
		if c, ok := o.(ClosingObserver); ok {
			c.ViewClosed(v)
		}
	}
}
