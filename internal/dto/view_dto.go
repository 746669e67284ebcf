package dto

import (
	"github.com/google/uuid"
)

type OpenViewRequest struct {
	NotebookId *uuid.UUID `json:"notebook_id"`
	Order      string     `json:"order" validate:"omitempty,oneof=newest oldest"`
}

type ViewResponse struct {
	Id         string      `json:"id"`
	NotebookId *uuid.UUID  `json:"notebook_id,omitempty"`
	Descending bool        `json:"descending"`
	Items      []uuid.UUID `json:"items"`
}
