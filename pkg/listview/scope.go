package listview

import (
	"notekeeper-be/pkg/changeset"

	"github.com/google/uuid"
)

// Scope selects what a view lists: every notebook when NotebookId is nil,
// otherwise the notes of that notebook.
type Scope struct {
	NotebookId *uuid.UUID `json:"notebook_id,omitempty"`
	Descending bool       `json:"descending"`
}

func AllNotebooks() Scope {
	return Scope{Descending: true}
}

func NotesOf(notebookId uuid.UUID, descending bool) Scope {
	return Scope{NotebookId: &notebookId, Descending: descending}
}

func (s Scope) ListsNotebooks() bool {
	return s.NotebookId == nil
}

// affected reports whether changes can alter what the scope lists and which
// listed ids need their row refreshed.
func (s Scope) affected(changes []changeset.Change) (bool, map[uuid.UUID]struct{}) {
	hit := false
	updated := make(map[uuid.UUID]struct{})

	for _, c := range changes {
		if s.ListsNotebooks() {
			switch c.Entity {
			case changeset.EntityNotebook:
				hit = true
				if c.Kind == changeset.Updated {
					updated[c.Id] = struct{}{}
				}
			case changeset.EntityNote:
				// The row shows a note count; text edits leave it alone.
				if c.Kind != changeset.Updated {
					hit = true
					updated[c.NotebookId] = struct{}{}
				}
			}
			continue
		}

		switch c.Entity {
		case changeset.EntityNote:
			if c.NotebookId == *s.NotebookId {
				hit = true
				if c.Kind == changeset.Updated {
					updated[c.Id] = struct{}{}
				}
			}
		case changeset.EntityNotebook:
			if c.Id == *s.NotebookId && c.Kind == changeset.Deleted {
				hit = true
			}
		}
	}
	return hit, updated
}
