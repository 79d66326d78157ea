package backend

import "fmt"

// BackendError represents a failed Gemini call or an unusable request.
type BackendError struct {
	Model   string
	Message string
	Cause   error
}

func (e *BackendError) Error() string {
	msg := e.Message
	if e.Model != "" {
		msg = fmt.Sprintf("%s (model %s)", msg, e.Model)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *BackendError) Unwrap() error {
	return e.Cause
}
