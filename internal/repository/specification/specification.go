package specification

import "gorm.io/gorm"

// Specification defines the interface for query specifications.
// Apply narrows a gorm query; Match evaluates the same condition against an
// in-memory record so both store backends share one query vocabulary.
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
	Match(r Record) bool
}

// Record is a row the memory store can evaluate specifications against.
type Record interface {
	Field(column string) any
}

// Ordering is implemented by specifications that sort rather than filter.
type Ordering interface {
	Compare(a, b Record) int
}
