package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateNotebookRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

type CreateNotebookResponse struct {
	Id uuid.UUID `json:"id"`
}

type UpdateNotebookRequest struct {
	Id   uuid.UUID
	Name string `json:"name" validate:"required,max=255"`
}

type UpdateNotebookResponse struct {
	Id uuid.UUID `json:"id"`
}

// NotebookRow is what a notebook cell in a list displays.
type NotebookRow struct {
	Id        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	NoteCount int64      `json:"note_count"`
	Pages     string     `json:"pages"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}
