package listview

import (
	"sync"

	"github.com/google/uuid"
)

// Observer receives every reconciled batch of a view, bracketed by
// BeginUpdates and EndUpdates.
type Observer interface {
	BeginUpdates(v *View)
	Apply(v *View, p Patch)
	EndUpdates(v *View)
}

// ClosingObserver is told when a view goes away.
type ClosingObserver interface {
	Observer
	ViewClosed(v *View)
}

// View is an ordered list of ids kept equal to the result of its scoped query.
type View struct {
	id    string
	scope Scope

	// reconciling serializes fetch+diff+notify for the view.
	reconciling sync.Mutex

	mu        sync.RWMutex
	items     []uuid.UUID
	observers map[int]Observer
	nextObs   int
	closed    bool
}

func newView(id string, scope Scope) *View {
	return &View{id: id, scope: scope, observers: make(map[int]Observer)}
}

func (v *View) Id() string {
	return v.id
}

func (v *View) Scope() Scope {
	return v.scope
}

// Items returns a copy of the current sequence.
func (v *View) Items() []uuid.UUID {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]uuid.UUID, len(v.items))
	copy(out, v.items)
	return out
}

func (v *View) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.items)
}

func (v *View) Closed() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.closed
}

// Observe attaches o to this view only. The returned func detaches it.
func (v *View) Observe(o Observer) func() {
	v.mu.Lock()
	defer v.mu.Unlock()
	key := v.nextObs
	v.nextObs++
	v.observers[key] = o
	return func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		delete(v.observers, key)
	}
}

func (v *View) snapshotObservers() []Observer {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]Observer, 0, len(v.observers))
	for _, o := range v.observers {
		out = append(out, o)
	}
	return out
}

func (v *View) replace(items []uuid.UUID) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.items = items
}

// close marks the view closed and reports whether it was open.
func (v *View) close() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return false
	}
	v.closed = true
	return true
}

func deliver(v *View, observers []Observer, patches []Patch) {
	for _, o := range observers {
		o.BeginUpdates(v)
		for _, p := range patches {
			o.Apply(v, p)
		}
		o.EndUpdates(v)
	}
}
