package followthemoney

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Standard sentinel errors for the two failure classes of the package.
var (
	// ErrInvalidModel indicates a broken schema definition. It is raised
	// while a model is loaded and aborts the load of the whole schema set.
	ErrInvalidModel = errors.New("followthemoney: invalid model")

	// ErrInvalidData indicates that user-supplied entity data failed
	// validation against a schema.
	ErrInvalidData = errors.New("followthemoney: invalid data")
)

// ModelError represents a schema definition error: an unresolvable extends
// target, a cyclic hierarchy, a dangling featured/required/caption or edge
// endpoint reference, or an unnamed reverse declaration.
type ModelError struct {
	Schema    string // Schema on which the error was detected
	Reference string // Offending reference (property or schema name), if any
	Message   string
	Cause     error
}

// Error implements the error interface.
func (e *ModelError) Error() string {
	var b strings.Builder
	b.WriteString("followthemoney: model error")
	if e.Schema != "" {
		b.WriteString(" on schema ")
		b.WriteString(e.Schema)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Reference != "" {
		fmt.Fprintf(&b, " %q", e.Reference)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *ModelError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for ModelError.
// This allows errors.Is(err, ErrInvalidModel) to return true.
func (e *ModelError) Is(target error) bool {
	return target == ErrInvalidModel
}

// NewModelError creates a new ModelError.
func NewModelError(schema, reference, message string) *ModelError {
	return &ModelError{
		Schema:    schema,
		Reference: reference,
		Message:   message,
	}
}

// IsModelError reports whether the error is a ModelError.
func IsModelError(err error) bool {
	if err == nil {
		return false
	}
	var e *ModelError
	return errors.As(err, &e) || errors.Is(err, ErrInvalidModel)
}

// ValidationError represents an aggregated entity validation failure. It
// carries one message per offending property; validation never stops at the
// first failing property.
type ValidationError struct {
	Schema     string            // Schema the data was validated against
	Properties map[string]string // Property name to error message
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "followthemoney: entity validation failed for schema %s", e.Schema)
	names := make([]string, 0, len(e.Properties))
	for name := range e.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&b, "\n  %s: %s", name, e.Properties[name])
	}
	return b.String()
}

// Is reports whether the target matches the sentinel error for
// ValidationError. This allows errors.Is(err, ErrInvalidData) to return true.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidData
}

// NewValidationError creates a new ValidationError with the per-property
// error mapping.
func NewValidationError(schema string, properties map[string]string) *ValidationError {
	return &ValidationError{Schema: schema, Properties: properties}
}

// IsValidationError reports whether the error is a ValidationError.
func IsValidationError(err error) bool {
	if err == nil {
		return false
	}
	var e *ValidationError
	return errors.As(err, &e) || errors.Is(err, ErrInvalidData)
}
