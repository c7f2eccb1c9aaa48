// internal/bridge/errors.go
package bridge

import (
	"fmt"
	"net/http"
)

// Kind classifies a per-request failure. Nothing carrying one of these
// kinds is ever allowed to terminate the process; transports convert them
// to an error response and keep serving.
type Kind string

const (
	KindMalformedRequest Kind = "malformed_request"
	KindUnknownMethod    Kind = "unknown_method"
	KindInvalidParams    Kind = "invalid_params"
	KindUpstreamError    Kind = "upstream_error"
	KindUpstreamTimeout  Kind = "upstream_timeout"
)

// Error is the bridge's request-scoped error. Param is set for
// invalid-parameter failures so the response can name the offender.
type Error struct {
	Kind    Kind
	Message string
	Param   string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// HTTPStatus maps the failure kind to the REST surface's status code.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindMalformedRequest, KindUnknownMethod, KindInvalidParams:
		return http.StatusBadRequest
	case KindUpstreamTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func MalformedRequest(message string) *Error {
	return &Error{Kind: KindMalformedRequest, Message: message}
}

func UnknownMethod(name string) *Error {
	return &Error{Kind: KindUnknownMethod, Message: fmt.Sprintf("Unknown method: %s", name)}
}

func InvalidParams(param, message string) *Error {
	return &Error{Kind: KindInvalidParams, Param: param, Message: fmt.Sprintf("parameter %q: %s", param, message)}
}

func UpstreamError(err error) *Error {
	return &Error{Kind: KindUpstreamError, Message: "upstream request failed", Err: err}
}

func UpstreamTimeout(err error) *Error {
	return &Error{Kind: KindUpstreamTimeout, Message: "upstream request timed out", Err: err}
}
