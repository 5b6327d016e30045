package dataapi

import (
	"errors"
	"fmt"
	"net/url"
)

// StatusError is returned when the remote API answered with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       []byte
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("Request failed with status code %d", e.StatusCode)
}

// NoResponseError is returned when the request was dispatched but no response
// was received: connection failures, DNS errors, timeouts, cancellation.
type NoResponseError struct {
	Err error
}

// Error implements the error interface. The *url.Error wrapper added by
// net/http is dropped so the message is the transport's own.
func (e *NoResponseError) Error() string {
	if e.Err == nil {
		return "no response received"
	}

	urlErr := &url.Error{}
	if errors.As(e.Err, &urlErr) && urlErr.Err != nil {
		return urlErr.Err.Error()
	}

	return e.Err.Error()
}

// Unwrap returns the underlying transport error.
func (e *NoResponseError) Unwrap() error {
	return e.Err
}

// RequestError is returned when a request could not be built or dispatched,
// or when a successful response could not be decoded.
type RequestError struct {
	Err error
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	if e.Err == nil {
		return "request could not be sent"
	}

	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *RequestError) Unwrap() error {
	return e.Err
}

// Static errors for err113 compliance.
var (
	ErrNotJSONObject   = errors.New("request does not encode to a JSON object")
	ErrEmptyErrorValue = errors.New("unknown error")
)

// IsStatus reports whether err is a StatusError with the given status code.
func IsStatus(err error, statusCode int) bool {
	statusErr := &StatusError{}
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == statusCode
	}

	return false
}

// IsNoResponse reports whether err is a NoResponseError.
func IsNoResponse(err error) bool {
	noResp := &NoResponseError{}

	return errors.As(err, &noResp)
}
