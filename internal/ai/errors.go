package ai

import (
	"errors"
	"net/http"
)

// genericGatewayMessage is used when the upstream error carries no message.
const genericGatewayMessage = "failed to communicate with the generation service"

// GatewayError reports a transport failure or a non-success HTTP status.
// StatusCode is 0 for transport failures.
type GatewayError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *GatewayError) Error() string {
	if e.Message == "" {
		return genericGatewayMessage
	}
	return e.Message
}

func (e *GatewayError) Unwrap() error { return e.Err }

// Transient reports whether retrying the same call could succeed.
func (e *GatewayError) Transient() bool {
	return e.StatusCode == 0 ||
		e.StatusCode == http.StatusTooManyRequests ||
		e.StatusCode >= http.StatusInternalServerError
}

// EmptyResponseError is returned when a successful response carries no usable text.
type EmptyResponseError struct{}

func (*EmptyResponseError) Error() string { return "the generation service returned an empty response" }

// ErrEmptyResponse is the shared EmptyResponseError value; match it with errors.Is.
var ErrEmptyResponse error = &EmptyResponseError{}

// IsTransient reports whether err is a GatewayError worth retrying.
func IsTransient(err error) bool {
	var gerr *GatewayError
	return errors.As(err, &gerr) && gerr.Transient()
}
