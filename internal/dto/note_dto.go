package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateNoteResponse struct {
	Id uuid.UUID `json:"id"`
}

type NoteResponse struct {
	Id         uuid.UUID  `json:"id"`
	Text       string     `json:"text"`
	NotebookId uuid.UUID  `json:"notebook_id"`
	Draft      *string    `json:"draft,omitempty"` // unsaved text kept after a failed update
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at"`
}

type UpdateNoteRequest struct {
	Id   uuid.UUID
	Text string `json:"text"`
}

type UpdateNoteResponse struct {
	Id    uuid.UUID `json:"id"`
	Draft *string   `json:"draft,omitempty"`
}

type ListNotesRequest struct {
	NotebookId uuid.UUID
	Order      string `query:"order" validate:"omitempty,oneof=newest oldest"`
}
