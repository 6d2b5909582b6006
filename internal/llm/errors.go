package llm

import "fmt"

// ConfigError means the client cannot be used because a credential or model is not configured.
// It is an expected condition, not a failure.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("llm not configured: %s", e.Message)
}

// UnavailableError covers network failures, timeouts, cancellations and non-2xx responses.
type UnavailableError struct {
	Message    string
	StatusCode int
	Cause      error
}

func (e *UnavailableError) Error() string {
	msg := "llm unavailable: " + e.Message
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *UnavailableError) Unwrap() error {
	return e.Cause
}

// MalformedResponseError means the endpoint answered but no usable text could be read from the payload.
type MalformedResponseError struct {
	Message string
	Cause   error
}

func (e *MalformedResponseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed llm response: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("malformed llm response: %s", e.Message)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Cause
}
