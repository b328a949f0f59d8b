package graph

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrNodeNotFound = errors.New("node not found")
	ErrInvariant    = errors.New("graph invariant violated")
)

// GraphError provides structured error information for graph operations.
type GraphError struct {
	Op      string // Operation that failed (e.g., "neighbors", "override")
	ID      NodeID // Node ID (if applicable)
	Field   string // Attribute name (for override operations)
	Cause   error  // Underlying error
	Context string // Additional context
}

// Error implements the error interface.
func (e *GraphError) Error() string {
	if e.ID != 0 {
		if e.Field != "" {
			return fmt.Sprintf("%s node %d (field %s): %v", e.Op, e.ID, e.Field, e.Cause)
		}
		return fmt.Sprintf("%s node %d: %v", e.Op, e.ID, e.Cause)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s (field %s): %v", e.Op, e.Field, e.Cause)
	}
	if e.Context != "" {
		return fmt.Sprintf("%s (%s): %v", e.Op, e.Context, e.Cause)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *GraphError) Unwrap() error {
	return e.Cause
}

// ErrorBuilder provides a fluent interface for building GraphErrors.
type ErrorBuilder struct {
	err GraphError
}

// NewError creates a new error builder with the given operation.
func NewError(op string) *ErrorBuilder {
	return &ErrorBuilder{err: GraphError{Op: op}}
}

// Node sets the node ID.
func (b *ErrorBuilder) Node(id NodeID) *ErrorBuilder {
	b.err.ID = id
	return b
}

// Field sets the attribute name.
func (b *ErrorBuilder) Field(name string) *ErrorBuilder {
	b.err.Field = name
	return b
}

// Context sets additional context information.
func (b *ErrorBuilder) Context(ctx string) *ErrorBuilder {
	b.err.Context = ctx
	return b
}

// Cause sets the underlying error cause.
func (b *ErrorBuilder) Cause(err error) *ErrorBuilder {
	b.err.Cause = err
	return b
}

// Err returns the error as an error interface.
func (b *ErrorBuilder) Err() error {
	return &b.err
}

// NodeNotFoundError creates a node not found error.
func NodeNotFoundError(op string, id NodeID) error {
	return NewError(op).Node(id).Cause(ErrNodeNotFound).Err()
}

// IsNotFound returns true if the error is a node not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNodeNotFound)
}
