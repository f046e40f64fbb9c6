package form

import (
	"fmt"
	"strings"
)

const (
	CodeMissingField    = "MISSING_FIELD"
	CodeInvalidNumber   = "INVALID_NUMBER"
	CodeInvalidDate     = "INVALID_DATE"
	CodeInvalidChoice   = "INVALID_CHOICE"
	CodeInvalidDuration = "INVALID_DURATION"
	CodeInvalidValue    = "INVALID_VALUE"
	CodeValueClamped    = "VALUE_CLAMPED"
)

// FieldError describes one rejected input field.
type FieldError struct {
	Field   string
	Code    string
	Message string
}

func (e *FieldError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Errorf builds a FieldError with a formatted message.
func Errorf(field, code, format string, args ...any) *FieldError {
	return &FieldError{Field: field, Code: code, Message: fmt.Sprintf(format, args...)}
}

// ValidationError collects every field error found while parsing one set of
// inputs.
type ValidationError struct {
	Errors []*FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Error()
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// Adjustment records a value that was clamped or snapped into range.
type Adjustment struct {
	Field string
	From  float64
	To    float64
}

func (a Adjustment) String() string {
	return fmt.Sprintf("%s adjusted from %s to %s", a.Field, FormatFloat(a.From), FormatFloat(a.To))
}
