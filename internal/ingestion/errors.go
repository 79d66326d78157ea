package ingestion

import "fmt"

// EncodeError represents a failed read or conversion of an uploaded file.
type EncodeError struct {
	Kind    FileKind
	Message string
	Cause   error
}

func (e *EncodeError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "failed to read file"
	}
	if e.Kind != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Kind)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *EncodeError) Unwrap() error {
	return e.Cause
}
