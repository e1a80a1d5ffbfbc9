package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeMissingInput ErrorType = "MISSING_INPUT"
	ErrTypeSchema       ErrorType = "SCHEMA"
	ErrTypeExtraction   ErrorType = "EXTRACTION"
	ErrTypeEmptySubset  ErrorType = "EMPTY_SUBSET"
	ErrTypeEmptyResult  ErrorType = "EMPTY_RESULT"
	ErrTypeDataAccess   ErrorType = "DATA_ACCESS"
	ErrTypeParsing      ErrorType = "PARSING"
	ErrTypeStorage      ErrorType = "STORAGE"
	ErrTypeValidation   ErrorType = "VALIDATION"
	ErrTypeConfig       ErrorType = "CONFIG"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// TypeOf returns the ErrorType of the first AppError in err's chain, or ""
// when the chain holds none.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type
	}
	return ""
}

// IsType reports whether err's chain holds an AppError of the given type.
func IsType(err error, errType ErrorType) bool {
	var appErr *AppError
	for err != nil {
		if !stderrors.As(err, &appErr) {
			return false
		}
		if appErr.Type == errType {
			return true
		}
		err = appErr.Cause
	}
	return false
}

// NewMissingInputError reports a required input file that does not exist.
func NewMissingInputError(path string, cause error) *AppError {
	return NewAppError(ErrTypeMissingInput, fmt.Sprintf("input file %s not found", path), cause).
		WithContext("path", path)
}

// NewSchemaError reports a table missing required columns.
func NewSchemaError(missing []string) *AppError {
	return NewAppError(ErrTypeSchema, fmt.Sprintf("missing required columns: %v", missing), nil).
		WithContext("missing_columns", missing)
}

// NewExtractionError wraps the failure of one species' extraction.
func NewExtractionError(species string, cause error) *AppError {
	return NewAppError(ErrTypeExtraction, fmt.Sprintf("extraction failed for %s", species), cause).
		WithContext("species", species)
}

// NewEmptySubsetError reports that a chart or statistic has no input rows.
func NewEmptySubsetError(message string) *AppError {
	return NewAppError(ErrTypeEmptySubset, message, nil)
}

// NewEmptyResultError reports that no species produced data.
func NewEmptyResultError(message string) *AppError {
	return NewAppError(ErrTypeEmptyResult, message, nil)
}

// NewDataAccessError reports a workbook that could not be opened or read.
func NewDataAccessError(message string, cause error) *AppError {
	return NewAppError(ErrTypeDataAccess, message, cause)
}

// NewParsingError creates a parsing-related error
func NewParsingError(message string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, message, cause)
}

// NewStorageError creates a storage-related error
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewAppValidationError creates a validation error for AppError type
func NewAppValidationError(message string, cause error) *AppError {
	return NewAppError(ErrTypeValidation, message, cause)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}
