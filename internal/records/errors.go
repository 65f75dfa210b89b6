// Package records normalizes raw learning rows into canonical LearningRecords.
package records

import "fmt"

// ErrorKind classifies normalization failures.
type ErrorKind string

// Normalization error kinds.
const (
	KindMissingRequiredField ErrorKind = "missing_required_field"
	KindUnparseableValue     ErrorKind = "unparseable_value"
	KindInvalidRange         ErrorKind = "invalid_range"
	KindUnknownSkillCategory ErrorKind = "unknown_skill_category"
)

// NormalizationError describes why one raw row could not be normalized.
// Line identifies the row in its source file; Field names the offending column.
type NormalizationError struct {
	Line    int       `json:"line"`
	Field   string    `json:"field"`
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
	Cause   error     `json:"-"`
}

func (e *NormalizationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s: %s (%s)", e.Line, e.Field, e.Message, e.Kind)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Field, e.Message, e.Kind)
}

func (e *NormalizationError) Unwrap() error {
	return e.Cause
}

func missingField(line int, field string) *NormalizationError {
	return &NormalizationError{
		Line:    line,
		Field:   field,
		Kind:    KindMissingRequiredField,
		Message: "required field is missing",
	}
}

func unparseable(line int, field, value string, cause error) *NormalizationError {
	return &NormalizationError{
		Line:    line,
		Field:   field,
		Kind:    KindUnparseableValue,
		Message: fmt.Sprintf("cannot parse %q", value),
		Cause:   cause,
	}
}

func negative(line int, field string, value float64) *NormalizationError {
	return &NormalizationError{
		Line:    line,
		Field:   field,
		Kind:    KindInvalidRange,
		Message: fmt.Sprintf("must be non-negative, got %v", value),
	}
}
