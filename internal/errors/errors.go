package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the category of an application error.
type ErrorType string

const (
	// ErrTypeSchema marks a malformed input batch: a required column is
	// missing or a cell has the wrong type. The whole batch is rejected.
	ErrTypeSchema ErrorType = "INPUT_SCHEMA"
	// ErrTypeEmptyInput marks a dataset with zero data rows.
	ErrTypeEmptyInput ErrorType = "EMPTY_INPUT"
	// ErrTypeDegenerateBaseline marks a dataset whose mean before-value
	// is zero, leaving the error percentage undefined.
	ErrTypeDegenerateBaseline ErrorType = "DEGENERATE_BASELINE"

	ErrTypeParsing    ErrorType = "PARSING"
	ErrTypeStorage    ErrorType = "STORAGE"
	ErrTypeValidation ErrorType = "VALIDATION"
	ErrTypeNotFound   ErrorType = "NOT_FOUND"
	ErrTypeConfig     ErrorType = "CONFIG"
)

// AppError represents an application-specific error with a category,
// an optional cause, and free-form context for diagnostics.
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to reach the cause.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds a context entry to the error.
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error.
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewSchemaError creates an input schema error identifying the offending
// row (zero-based data row index) and column.
func NewSchemaError(message string, row int, column string) *AppError {
	return NewAppError(ErrTypeSchema, message, nil).
		WithContext("row", row).
		WithContext("column", column)
}

// NewMissingColumnError creates a schema error for an absent required column.
func NewMissingColumnError(column string) *AppError {
	return NewAppError(ErrTypeSchema, fmt.Sprintf("required column %q not found", column), nil).
		WithContext("column", column)
}

// NewEmptyInputError creates an empty input error.
func NewEmptyInputError() *AppError {
	return NewAppError(ErrTypeEmptyInput, "dataset contains no data rows", nil)
}

// NewDegenerateBaselineError creates a degenerate baseline error.
func NewDegenerateBaselineError() *AppError {
	return NewAppError(ErrTypeDegenerateBaseline,
		"mean of ace_before is zero, average error percentage is undefined", nil)
}

// NewParsingError creates a parsing error.
func NewParsingError(message string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, message, cause)
}

// NewStorageError creates a storage error.
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewValidationError creates a validation error.
func NewValidationError(message string) *AppError {
	return NewAppError(ErrTypeValidation, message, nil)
}

// NewNotFoundError creates a not found error for a named resource.
func NewNotFoundError(resource string) *AppError {
	return NewAppError(ErrTypeNotFound, fmt.Sprintf("%s not found", resource), nil)
}

// NewConfigError creates a configuration error.
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// IsType reports whether err is (or wraps) an AppError of the given type.
func IsType(err error, errType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errType
	}
	return false
}
