package gateway

import "fmt"

// GatewayError represents a failed backend call: a non-success response with
// the backend's own error message, or a transport-level failure with a cause.
type GatewayError struct {
	Message string
	Status  int
	Cause   error
}

func (e *GatewayError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *GatewayError) Unwrap() error {
	return e.Cause
}
