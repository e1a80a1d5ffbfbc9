package errors

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorType_Constants(t *testing.T) {
	tests := []struct {
		name     string
		errType  ErrorType
		expected string
	}{
		{name: "missing input", errType: ErrTypeMissingInput, expected: "MISSING_INPUT"},
		{name: "schema", errType: ErrTypeSchema, expected: "SCHEMA"},
		{name: "extraction", errType: ErrTypeExtraction, expected: "EXTRACTION"},
		{name: "empty subset", errType: ErrTypeEmptySubset, expected: "EMPTY_SUBSET"},
		{name: "empty result", errType: ErrTypeEmptyResult, expected: "EMPTY_RESULT"},
		{name: "data access", errType: ErrTypeDataAccess, expected: "DATA_ACCESS"},
		{name: "config", errType: ErrTypeConfig, expected: "CONFIG"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(tt.errType))
		})
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name        string
		appError    *AppError
		wantMessage string
	}{
		{
			name:        "error without cause",
			appError:    NewEmptySubsetError("no rows for amino acid Q"),
			wantMessage: "[EMPTY_SUBSET] no rows for amino acid Q",
		},
		{
			name:        "error with cause",
			appError:    NewDataAccessError("failed to open workbook", fmt.Errorf("zip: not a valid zip file")),
			wantMessage: "[DATA_ACCESS] failed to open workbook: zip: not a valid zip file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMessage, tt.appError.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	err := NewMissingInputError("human_raw.xlsx", os.ErrNotExist)

	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Equal(t, "human_raw.xlsx", err.Context["path"])
}

func TestTypeOf(t *testing.T) {
	wrapped := fmt.Errorf("loading table: %w", NewSchemaError([]string{"Species"}))

	assert.Equal(t, ErrTypeSchema, TypeOf(wrapped))
	assert.Equal(t, ErrorType(""), TypeOf(errors.New("plain")))
	assert.Equal(t, ErrorType(""), TypeOf(nil))
}

func TestIsType(t *testing.T) {
	inner := NewMissingInputError("mouse_raw.xlsx", os.ErrNotExist)
	outer := NewExtractionError("Mouse", inner)
	wrapped := fmt.Errorf("species loop: %w", outer)

	assert.True(t, IsType(wrapped, ErrTypeExtraction))
	assert.True(t, IsType(wrapped, ErrTypeMissingInput))
	assert.False(t, IsType(wrapped, ErrTypeSchema))
	assert.False(t, IsType(errors.New("plain"), ErrTypeSchema))
}

func TestNewSchemaError(t *testing.T) {
	err := NewSchemaError([]string{"Fraction", "Species"})

	require.NotNil(t, err)
	assert.Equal(t, ErrTypeSchema, err.Type)
	assert.Contains(t, err.Error(), "Fraction")
	assert.Equal(t, []string{"Fraction", "Species"}, err.Context["missing_columns"])
}

func TestAppError_WithContext(t *testing.T) {
	err := &AppError{Type: ErrTypeStorage, Message: "write failed"}

	err.WithContext("path", "out.csv").WithContext("rows", 3)

	assert.Equal(t, "out.csv", err.Context["path"])
	assert.Equal(t, 3, err.Context["rows"])
}
