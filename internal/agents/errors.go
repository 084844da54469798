package agents

import "fmt"

// APICallError wraps a failure talking to the LLM provider.
type APICallError struct {
	Agent   string
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: API call failed: %s: %v", e.Agent, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: API call failed: %s", e.Agent, e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// OutputError reports model output that could not be parsed or failed
// validation. Raw holds the offending response.
type OutputError struct {
	Agent   string
	Message string
	Raw     string
	Cause   error
}

func (e *OutputError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: invalid output: %s: %v", e.Agent, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: invalid output: %s", e.Agent, e.Message)
}

func (e *OutputError) Unwrap() error {
	return e.Cause
}
