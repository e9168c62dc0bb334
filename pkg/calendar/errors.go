package calendar

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEventNotFound is returned when the targeted event id does not exist.
// Retrying a not-found is never useful; callers surface it as-is.
var ErrEventNotFound = errors.New("event not found")

// ValidationError reports malformed or missing required fields. It is raised
// locally, before any write reaches the store.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid event: %s", strings.Join(e.Fields, ", "))
}

// PersistenceError wraps a store-layer failure (connectivity, constraint
// violation, authorization). Local state is left unchanged when it occurs.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
