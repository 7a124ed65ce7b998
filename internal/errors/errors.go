// Package errors defines the error kinds surfaced by the catalog engine.
// Every kind is recoverable: the caller retries load or export with corrected input.
package errors

import (
	"errors"
	"fmt"
)

// Re-exported so callers need a single errors import.
var (
	New = errors.New
	Is  = errors.Is
	As  = errors.As
)

var (
	// ErrSchemaShape: neither a NEW_CATALOG nor an UPDATE_CATALOG/NEW course list was found.
	ErrSchemaShape = errors.New("unknown catalog shape")

	// ErrParse: the raw text is not well-formed.
	ErrParse = errors.New("malformed document")

	// ErrNoChanges signals that a differential export would be empty. Not a defect.
	ErrNoChanges = errors.New("no changes")

	// ErrInvalidSequenceNumber: export sequence number missing or not positive.
	ErrInvalidSequenceNumber = errors.New("invalid sequence number")

	// ErrNotFound: no record with the requested id.
	ErrNotFound = errors.New("not found")

	// ErrNoCatalog: an operation needs a loaded catalog.
	ErrNoCatalog = errors.New("no catalog loaded")

	// ErrFullExportDisabled: full catalog deliveries are switched off.
	ErrFullExportDisabled = errors.New("full export is disabled, use the differential export")
)

// ParseError wraps a decoder failure with the line it occurred on.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error at line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("parse error: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is implements errors.Is support
func (e *ParseError) Is(target error) bool { return target == ErrParse }

// SchemaShapeError reports the root element that did not carry a known course list.
type SchemaShapeError struct {
	Root string
}

func (e *SchemaShapeError) Error() string {
	if e.Root == "" {
		return "unknown catalog shape: empty document"
	}
	return fmt.Sprintf("unknown catalog shape: <%s> has neither NEW_CATALOG/SERVICE nor UPDATE_CATALOG/NEW/SERVICE", e.Root)
}

// Is implements errors.Is support
func (e *SchemaShapeError) Is(target error) bool { return target == ErrSchemaShape }

// NotFoundError represents an error when a resource is not found
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}
