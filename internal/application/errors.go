package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNotFound       = errors.New("not found")
	ErrAlreadyExists  = errors.New("already exists")
	ErrCycleDetected  = errors.New("cycle detected")
	ErrHasChildren    = errors.New("has children")
	ErrInvalidRequest = errors.New("invalid request")
	ErrStorage        = errors.New("storage failure")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidRequest
}

// NodeNotFoundError reports a node id that does not exist
type NodeNotFoundError struct {
	ID string
}

func (e *NodeNotFoundError) Error() string {
	return fmt.Sprintf("node %s not found", e.ID)
}

func (e *NodeNotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// RelationshipError represents a rejected parent -> child edge
type RelationshipError struct {
	ParentID string
	ChildID  string
	Err      error // ErrAlreadyExists or ErrCycleDetected
}

func (e *RelationshipError) Error() string {
	return fmt.Sprintf("cannot link %s -> %s: %v", e.ParentID, e.ChildID, e.Err)
}

func (e *RelationshipError) Unwrap() error {
	return e.Err
}

// HasChildrenError rejects a non-cascading delete of a node with children
type HasChildrenError struct {
	ID         string
	ChildCount int
}

func (e *HasChildrenError) Error() string {
	return fmt.Sprintf("cannot delete %s: it has %d child node(s), delete with cascade", e.ID, e.ChildCount)
}

func (e *HasChildrenError) Is(target error) bool {
	return target == ErrHasChildren
}

// StorageError wraps any failure of the underlying store. No partial
// mutation is left behind, so the operation is safe to retry.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

// WrapStorage wraps err as a StorageError unless it already is an
// application error (not found, validation, ...) or nil.
func WrapStorage(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsDomainError(err) || errors.Is(err, ErrStorage) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

// IsDomainError reports whether err belongs to the logic/validation taxonomy
// rather than being an infrastructure failure.
func IsDomainError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrAlreadyExists) ||
		errors.Is(err, ErrCycleDetected) ||
		errors.Is(err, ErrHasChildren) ||
		errors.Is(err, ErrInvalidRequest)
}
