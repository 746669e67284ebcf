package changeset

import (
	"time"

	"github.com/google/uuid"
)

// Kind is what happened to a record.
type Kind string

const (
	Inserted Kind = "inserted"
	Updated  Kind = "updated"
	Deleted  Kind = "deleted"
)

// Entity names the record kind a change refers to.
type Entity string

const (
	EntityNotebook Entity = "notebook"
	EntityNote     Entity = "note"
)

// Change describes one committed mutation. NotebookId is the owning notebook
// for notes and the notebook itself for notebooks.
type Change struct {
	Kind       Kind      `json:"kind"`
	Entity     Entity    `json:"entity"`
	Id         uuid.UUID `json:"id"`
	NotebookId uuid.UUID `json:"notebook_id"`
}

// Batch groups the changes of one save so observers can apply them as a
// single visual update.
type Batch struct {
	Id          string    `json:"id"`
	Changes     []Change  `json:"changes"`
	CommittedAt time.Time `json:"committed_at"`
}

// Recorder buffers changes made inside a unit of work until it commits.
type Recorder struct {
	changes []Change
}

func (r *Recorder) Record(c Change) {
	r.changes = append(r.changes, c)
}

// Drain returns the buffered changes and resets the recorder.
func (r *Recorder) Drain() []Change {
	out := r.changes
	r.changes = nil
	return out
}

// Discard drops everything recorded so far (rollback).
func (r *Recorder) Discard() {
	r.changes = nil
}
