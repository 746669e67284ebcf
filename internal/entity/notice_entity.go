package entity

import (
	"time"

	"github.com/google/uuid"
)

// Notice is a user-facing failure report produced when the store could not
// persist a mutation.
type Notice struct {
	Id         uuid.UUID
	Operation  string
	Message    string
	Cause      string
	OccurredAt time.Time
}
