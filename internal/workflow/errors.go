package workflow

import "fmt"

// RequestError reports a request that is missing or has conflicting fields.
type RequestError struct {
	Message string
	Cause   error
}

func (e *RequestError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid request: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid request: %s", e.Message)
}

func (e *RequestError) Unwrap() error {
	return e.Cause
}
