package storage

import (
	"errors"
	"fmt"

	"github.com/akyairhashvil/sprintsync/internal/identity"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrUnknownKind = errors.New("no backend registered for user kind")
)

// Resource names used in OpError.
const (
	ResourceSprint   = "sprint"
	ResourceTask     = "task"
	ResourceProgress = "progress"
)

// OpError records which backend operation failed and on what.
type OpError struct {
	Backend  identity.Kind
	Op       string
	Resource string
	ID       string
	Err      error
}

func (e *OpError) Error() string {
	if e == nil {
		return ""
	}
	if e.ID != "" {
		return fmt.Sprintf("%s: %s %s %s: %v", e.Backend, e.Op, e.Resource, e.ID, e.Err)
	}
	return fmt.Sprintf("%s: %s %s: %v", e.Backend, e.Op, e.Resource, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

// WrapErr returns nil for a nil err, otherwise an *OpError.
func WrapErr(backend identity.Kind, resource, op, id string, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Backend: backend, Op: op, Resource: resource, ID: id, Err: err}
}
