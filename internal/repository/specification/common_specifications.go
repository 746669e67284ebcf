package specification

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByID filters by ID
type ByID struct {
	ID uuid.UUID
}

func (s ByID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id = ?", s.ID)
}

func (s ByID) Match(r Record) bool {
	return r.Field("id") == s.ID
}

// ByIDs filters by a list of IDs
type ByIDs struct {
	IDs []uuid.UUID
}

func (s ByIDs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id IN ?", s.IDs)
}

func (s ByIDs) Match(r Record) bool {
	id, _ := r.Field("id").(uuid.UUID)
	for _, candidate := range s.IDs {
		if candidate == id {
			return true
		}
	}
	return false
}

// OrderBy applies ordering
type OrderBy struct {
	Field string
	Desc  bool
}

func (s OrderBy) Apply(db *gorm.DB) *gorm.DB {
	direction := "ASC"
	if s.Desc {
		direction = "DESC"
	}
	return db.Order(fmt.Sprintf("%s %s", s.Field, direction))
}

func (s OrderBy) Match(Record) bool {
	return true
}

func (s OrderBy) Compare(a, b Record) int {
	c := compareValues(a.Field(s.Field), b.Field(s.Field))
	if s.Desc {
		return -c
	}
	return c
}

// FilterBy Generic Filter
type FilterBy struct {
	Field string
	Value interface{}
}

func (s FilterBy) Apply(db *gorm.DB) *gorm.DB {
	query := fmt.Sprintf("%s = ?", s.Field)
	return db.Where(query, s.Value)
}

func (s FilterBy) Match(r Record) bool {
	return r.Field(s.Field) == s.Value
}

func Filter(field string, value interface{}) Specification {
	return FilterBy{Field: field, Value: value}
}

func compareValues(a, b any) int {
	switch av := a.(type) {
	case time.Time:
		bv, _ := b.(time.Time)
		return av.Compare(bv)
	case uuid.UUID:
		bv, _ := b.(uuid.UUID)
		return bytes.Compare(av[:], bv[:])
	case string:
		bv, _ := b.(string)
		return strings.Compare(av, bv)
	case int64:
		bv, _ := b.(int64)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
	}
	return 0
}
