package dto

import (
	"time"

	"github.com/google/uuid"
)

type NoticeResponse struct {
	Id         uuid.UUID `json:"id"`
	Operation  string    `json:"operation"`
	Message    string    `json:"message"`
	Cause      string    `json:"cause,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
