package models

import (
	"errors"
	"fmt"
)

// ErrorType represents different categories of errors
type ErrorType int

const (
	ErrSchemaViolation ErrorType = iota
	ErrPolicyViolation
	ErrMissingRequiredField
	ErrMissingCollaboratorFile
	ErrStanzaParse
	ErrTemplate
	ErrFileOp
	ErrInvalidConfig
)

// String returns the string representation of ErrorType
func (e ErrorType) String() string {
	switch e {
	case ErrSchemaViolation:
		return "SchemaViolation"
	case ErrPolicyViolation:
		return "PolicyViolation"
	case ErrMissingRequiredField:
		return "MissingRequiredField"
	case ErrMissingCollaboratorFile:
		return "MissingCollaboratorFile"
	case ErrStanzaParse:
		return "StanzaParse"
	case ErrTemplate:
		return "Template"
	case ErrFileOp:
		return "FileOp"
	case ErrInvalidConfig:
		return "InvalidConfig"
	default:
		return "Unknown"
	}
}

// Structural reports whether errors of this type describe broken packaging
// metadata rather than an environment problem.
func (e ErrorType) Structural() bool {
	switch e {
	case ErrSchemaViolation, ErrPolicyViolation, ErrMissingRequiredField,
		ErrMissingCollaboratorFile, ErrStanzaParse, ErrTemplate:
		return true
	}
	return false
}

// HelperError represents an error raised while aggregating plugin metadata
type HelperError struct {
	Type   ErrorType
	Plugin string
	Field  string
	Err    error
}

// Error implements the error interface
func (e *HelperError) Error() string {
	switch {
	case e.Plugin != "" && e.Field != "":
		return fmt.Sprintf("[%s] %s (%s): %v", e.Type, e.Plugin, e.Field, e.Err)
	case e.Plugin != "":
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Plugin, e.Err)
	case e.Field != "":
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Field, e.Err)
	}
	return fmt.Sprintf("[%s] %v", e.Type, e.Err)
}

// Unwrap returns the wrapped error
func (e *HelperError) Unwrap() error {
	return e.Err
}

// NewError builds a HelperError from a format string
func NewError(t ErrorType, plugin, field, format string, args ...interface{}) *HelperError {
	return &HelperError{
		Type:   t,
		Plugin: plugin,
		Field:  field,
		Err:    fmt.Errorf(format, args...),
	}
}

// ErrorTypeOf extracts the ErrorType from err. ok is false when err does not
// wrap a HelperError.
func ErrorTypeOf(err error) (t ErrorType, ok bool) {
	var herr *HelperError
	if errors.As(err, &herr) {
		return herr.Type, true
	}
	return 0, false
}

// IsStructural reports whether err wraps a structural HelperError
func IsStructural(err error) bool {
	t, ok := ErrorTypeOf(err)
	return ok && t.Structural()
}
