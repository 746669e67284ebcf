// internal\entity\notebook_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type Notebook struct {
	Id        uuid.UUID
	Name      string
	CreatedAt time.Time // stamped once by the service, never rewritten
	UpdatedAt *time.Time
}

// Field exposes column values to in-memory specifications.
func (n *Notebook) Field(column string) any {
	switch column {
	case "id":
		return n.Id
	case "name":
		return n.Name
	case "created_at":
		return n.CreatedAt
	case "updated_at":
		return n.UpdatedAt
	}
	return nil
}
