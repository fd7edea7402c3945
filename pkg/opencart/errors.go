package opencart

import (
	"errors"
	"fmt"
)

// Error taxonomy. Every error returned by the client wraps one of these.
var (
	// ErrInvalidCredentials is returned when Login is called with the wrong
	// number of arguments or with an empty key, username or password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidArgument is returned when a required parameter is empty or a
	// polymorphic argument has an unsupported type.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnknownVersion is returned when a URL is built for an API version
	// outside the known states.
	ErrUnknownVersion = errors.New("unknown OpenCart version")

	// ErrTransport is returned for network and I/O failures. HTTP error
	// statuses are not transport failures.
	ErrTransport = errors.New("transport failure")

	// ErrLoginRejected is returned by helpers that treat a rejected login as
	// fatal. Client.Login itself reports rejection through LoginResult.
	ErrLoginRejected = errors.New("login rejected")
)

// Configuration errors.
var (
	ErrConfigRequired  = errors.New("config is required")
	ErrBaseURLRequired = errors.New("base URL is required")
)

// ArgumentError names the parameter that failed validation.
type ArgumentError struct {
	Op     string
	Param  string
	Reason string
}

// Error implements the error interface.
func (e *ArgumentError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "cannot be empty"
	}

	if e.Op == "" {
		return fmt.Sprintf("%s %s", e.Param, reason)
	}

	return fmt.Sprintf("%s: %s %s", e.Op, e.Param, reason)
}

// Unwrap returns ErrInvalidArgument.
func (e *ArgumentError) Unwrap() error {
	return ErrInvalidArgument
}

// NewArgumentError returns an ArgumentError for an empty required parameter.
func NewArgumentError(op, param string) *ArgumentError {
	return &ArgumentError{Op: op, Param: param}
}

// TransportError wraps a failure to complete a round trip.
type TransportError struct {
	Op  string
	URL string
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

// Unwrap exposes both ErrTransport and the underlying cause.
func (e *TransportError) Unwrap() []error {
	return []error{ErrTransport, e.Err}
}

// IsInvalidArgument reports whether err is a validation failure.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

// IsInvalidCredentials reports whether err comes from credential validation.
func IsInvalidCredentials(err error) bool {
	return errors.Is(err, ErrInvalidCredentials)
}

// IsTransport reports whether err is a network or I/O failure.
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}

// Param returns the offending parameter name of an ArgumentError, or "".
func Param(err error) string {
	argErr := &ArgumentError{}
	if errors.As(err, &argErr) {
		return argErr.Param
	}

	return ""
}
