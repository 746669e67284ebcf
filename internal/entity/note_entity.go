package entity

import (
	"time"

	"github.com/google/uuid"
)

// DefaultNoteText is the placeholder a freshly created note carries.
const DefaultNoteText = "New Note"

type Note struct {
	Id         uuid.UUID
	Text       string
	NotebookId uuid.UUID
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

func (n *Note) Field(column string) any {
	switch column {
	case "id":
		return n.Id
	case "text":
		return n.Text
	case "notebook_id":
		return n.NotebookId
	case "created_at":
		return n.CreatedAt
	case "updated_at":
		return n.UpdatedAt
	}
	return nil
}
