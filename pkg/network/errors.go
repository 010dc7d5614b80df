package network

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrUnknownLabel   = errors.New("unknown label")
	ErrLengthMismatch = errors.New("length mismatch")
	ErrInvalidThroat  = errors.New("invalid throat endpoints")
	ErrIndexRange     = errors.New("index out of range")
)

// TopologyError provides structured error information for topology operations.
type TopologyError struct {
	Op     string // Operation that failed (e.g., "Pores", "AddThroats")
	Entity string // Entity kind ("pore", "throat", "label")
	Label  string // Label name (for label operations)
	Cause  error  // Underlying error
}

// Error implements the error interface.
func (e *TopologyError) Error() string {
	if e.Label != "" {
		return fmt.Sprintf("%s %s %q: %v", e.Op, e.Entity, e.Label, e.Cause)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Entity, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *TopologyError) Unwrap() error {
	return e.Cause
}

// UnknownLabelError creates an unknown label error for the given entity kind.
func UnknownLabelError(op, entity, label string) error {
	return &TopologyError{Op: op, Entity: entity, Label: label, Cause: ErrUnknownLabel}
}

// LengthMismatchError creates a mask length error.
func LengthMismatchError(op, entity string, want, got int) error {
	return &TopologyError{
		Op:     op,
		Entity: entity,
		Cause:  fmt.Errorf("%w: want %d elements, got %d", ErrLengthMismatch, want, got),
	}
}
