package specification

import "github.com/google/uuid"

// ScopedQuery builds the query behind an ordered list view: notes of one
// notebook when notebookID is set, every notebook otherwise, sorted by
// creation time. The id tie-break keeps the order total.
func ScopedQuery(notebookID *uuid.UUID, desc bool) []Specification {
	specs := make([]Specification, 0, 3)
	if notebookID != nil {
		specs = append(specs, ByNotebookID{NotebookID: *notebookID})
	}
	return append(specs,
		OrderBy{Field: "created_at", Desc: desc},
		OrderBy{Field: "id", Desc: desc},
	)
}
