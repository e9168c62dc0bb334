package resource

import "errors"

// Resource is a schedulable entity (an employee) events are assigned to.
// Deleting a resource cascades to its events; a resource owns them.
type Resource struct {
	Id    string
	Name  string
	Role  string
	Color string
}

var ErrResourceNotFound = errors.New("resource not found")
