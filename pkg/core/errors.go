package core

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrShapeMismatch     = errors.New("array shape mismatch")
	ErrKeyNotFound       = errors.New("property key not found")
	ErrInvalidKey        = errors.New("invalid property key")
	ErrDisjointDomain    = errors.New("objects do not share a project")
	ErrConflictingDomain = errors.New("locations already claimed by a sibling object")
	ErrModelNotFound     = errors.New("model not found")
	ErrIndexRange        = errors.New("index out of range")
	ErrModelCycle        = errors.New("model dependencies form a cycle")
	ErrCorruptCheckpoint = errors.New("corrupt checkpoint")
)

// DataError provides structured error information for data-model operations.
type DataError struct {
	Op     string // Operation that failed (e.g., "Set", "MapPores")
	Object string // Owning object name (if applicable)
	Key    string // Property key (for store operations)
	Cause  error  // Underlying error
}

// Error implements the error interface.
func (e *DataError) Error() string {
	switch {
	case e.Object != "" && e.Key != "":
		return fmt.Sprintf("%s %s[%s]: %v", e.Op, e.Object, e.Key, e.Cause)
	case e.Key != "":
		return fmt.Sprintf("%s [%s]: %v", e.Op, e.Key, e.Cause)
	case e.Object != "":
		return fmt.Sprintf("%s %s: %v", e.Op, e.Object, e.Cause)
	default:
		return fmt.Sprintf("%s: %v", e.Op, e.Cause)
	}
}

// Unwrap returns the underlying cause for error chain support.
func (e *DataError) Unwrap() error {
	return e.Cause
}

// ModelExecutionError is returned when a regeneration pass fails. It carries
// the property whose model raised and aborts the remainder of the pass.
type ModelExecutionError struct {
	Prop  string
	Model string
	Cause error
}

// Error implements the error interface.
func (e *ModelExecutionError) Error() string {
	return fmt.Sprintf("model %q for property %q failed: %v", e.Model, e.Prop, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *ModelExecutionError) Unwrap() error {
	return e.Cause
}

// ShapeMismatchError creates a shape violation error for a store write.
func ShapeMismatchError(op, object, key string, want, got int) error {
	return &DataError{
		Op:     op,
		Object: object,
		Key:    key,
		Cause:  fmt.Errorf("%w: want %d elements, got %d", ErrShapeMismatch, want, got),
	}
}

// KeyNotFoundError creates a lookup miss error.
func KeyNotFoundError(op, object, key string) error {
	return &DataError{Op: op, Object: object, Key: key, Cause: ErrKeyNotFound}
}

// DisjointDomainError creates a cross-project mapping error.
func DisjointDomainError(op, src, dst string) error {
	return &DataError{
		Op:    op,
		Cause: fmt.Errorf("%w: %s and %s", ErrDisjointDomain, src, dst),
	}
}
