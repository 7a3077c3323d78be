package payments

import (
	"errors"
	"fmt"
)

var ErrPayeezyGatewayNotConfigured = errors.New("payeezy gateway not configured")

// ConfigurationError reports a missing or invalid gateway setting.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("payeezy: invalid configuration: %s %s", e.Field, e.Reason)
}

// ValidationError reports caller input rejected before anything is sent.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("payeezy: invalid %s: %s", e.Field, e.Reason)
}

// TransportError is returned when the provider answers with a non-2xx status.
type TransportError struct {
	StatusCode int
	Body       []byte
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("payeezy: http error status=%d", e.StatusCode)
}

// SerializationError wraps a provider body that could not be decoded, or a
// payload that could not be encoded.
type SerializationError struct {
	Err error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("payeezy: serialization failed: %v", e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }
