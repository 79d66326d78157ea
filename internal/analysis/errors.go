package analysis

import (
	"fmt"
	"strings"
)

// FieldError is a single schema violation at a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ParseError reports that model output could not be accepted as a Result,
// either because it is not JSON or because it fails schema validation.
type ParseError struct {
	Message string
	Fields  []FieldError
	Cause   error
}

func (e *ParseError) Error() string {
	if len(e.Fields) > 0 {
		var sb strings.Builder
		sb.WriteString(e.Message)
		sb.WriteString(":")
		for _, f := range e.Fields {
			sb.WriteString(fmt.Sprintf(" %s: %s;", f.Field, f.Message))
		}
		return strings.TrimSuffix(sb.String(), ";")
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
