// Package validation provides input checks for loaded sources: required
// header columns, row widths and non-empty inputs.
package validation

import (
	"fmt"

	"github.com/paveg/medalprep/internal/errors"
)

// Validator interface for input validation
type Validator interface {
	Validate() error
}

// ColumnProvider interface for types that provide column information
type ColumnProvider interface {
	HasColumn(name string) bool
	Columns() []string
	Len() int
}

// ColumnValidator validates column existence
type ColumnValidator struct {
	src     ColumnProvider
	columns []string
	op      string
}

// NewColumnValidator creates a validator for required columns
func NewColumnValidator(src ColumnProvider, op string, columns ...string) *ColumnValidator {
	return &ColumnValidator{
		src:     src,
		columns: columns,
		op:      op,
	}
}

// Validate checks if all columns exist in the source
func (v *ColumnValidator) Validate() error {
	for _, column := range v.columns {
		if !v.src.HasColumn(column) {
			return errors.NewColumnNotFoundError(v.op, column)
		}
	}
	return nil
}

// WidthValidator checks that a row carries no more cells than the header.
type WidthValidator struct {
	header int
	row    []string
	line   int
	op     string
}

// NewWidthValidator creates a validator for one data row.
func NewWidthValidator(header int, row []string, line int, op string) *WidthValidator {
	return &WidthValidator{
		header: header,
		row:    row,
		line:   line,
		op:     op,
	}
}

// Validate checks the row width. Short rows are allowed; missing cells read as empty.
func (v *WidthValidator) Validate() error {
	if len(v.row) > v.header {
		message := fmt.Sprintf("row %d: expected at most %d cells, got %d", v.line, v.header, len(v.row))
		return errors.NewValidationError(v.op, "", message)
	}
	return nil
}

// NotEmptyValidator validates that a source has at least one data row
type NotEmptyValidator struct {
	src ColumnProvider
	op  string
}

// NewNotEmptyValidator creates a validator for empty source checks
func NewNotEmptyValidator(src ColumnProvider, op string) *NotEmptyValidator {
	return &NotEmptyValidator{
		src: src,
		op:  op,
	}
}

// Validate checks if the source is empty
func (v *NotEmptyValidator) Validate() error {
	if v.src.Len() == 0 {
		return &errors.PipelineError{
			Op:      v.op,
			Message: errors.ErrEmptyInput.Message,
		}
	}
	return nil
}

// CompoundValidator combines multiple validators
type CompoundValidator struct {
	validators []Validator
}

// NewCompoundValidator creates a validator that checks multiple conditions
func NewCompoundValidator(validators ...Validator) *CompoundValidator {
	return &CompoundValidator{
		validators: validators,
	}
}

// Validate runs all validators and returns the first error encountered
func (v *CompoundValidator) Validate() error {
	for _, validator := range v.validators {
		if err := validator.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ValidateColumns is a convenience function for column validation
func ValidateColumns(src ColumnProvider, op string, columns ...string) error {
	return NewColumnValidator(src, op, columns...).Validate()
}

// ValidateWidth is a convenience function for row width validation
func ValidateWidth(header int, row []string, line int, op string) error {
	return NewWidthValidator(header, row, line, op).Validate()
}

// ValidateNotEmpty is a convenience function for empty source validation
func ValidateNotEmpty(src ColumnProvider, op string) error {
	return NewNotEmptyValidator(src, op).Validate()
}
