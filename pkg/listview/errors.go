package listview

import (
	"errors"
	"fmt"
)

var (
	ErrViewNotFound = errors.New("list view not found")
	ErrQuery        = errors.New("list view query failed")
)

// QueryError is returned when a view could not be re-fetched. The view keeps
// its previous sequence.
type QueryError struct {
	ViewId string
	Err    error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("view %s: %v: %v", e.ViewId, ErrQuery, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

func (e *QueryError) Is(target error) bool {
	return target == ErrQuery
}
