package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByNotebookID struct {
	NotebookID uuid.UUID
}

func (s ByNotebookID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("notebook_id = ?", s.NotebookID)
}

func (s ByNotebookID) Match(r Record) bool {
	return r.Field("notebook_id") == s.NotebookID
}

type ByNotebookIDs struct {
	NotebookIDs []uuid.UUID
}

func (s ByNotebookIDs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("notebook_id IN ?", s.NotebookIDs)
}

func (s ByNotebookIDs) Match(r Record) bool {
	id, _ := r.Field("notebook_id").(uuid.UUID)
	for _, candidate := range s.NotebookIDs {
		if candidate == id {
			return true
		}
	}
	return false
}
