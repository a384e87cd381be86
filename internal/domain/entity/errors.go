package entity

import (
	"errors"
	"fmt"
)

var (
	ErrAuthentication      = errors.New("authentication failed")
	ErrMalformedCompletion = errors.New("malformed completion")
	ErrTransport           = errors.New("transport failure")
)

type AuthenticationError struct {
	Service string
	Err     error
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Service, ErrAuthentication, e.Err)
}

func (e *AuthenticationError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrAuthentication}
	}
	return []error{ErrAuthentication, e.Err}
}

// MalformedCompletionError means the completion service produced text that
// does not decode into a SearchResult.
type MalformedCompletionError struct {
	Raw string
	Err error
}

func (e *MalformedCompletionError) Error() string {
	return fmt.Sprintf("%s: %v", ErrMalformedCompletion, e.Err)
}

func (e *MalformedCompletionError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrMalformedCompletion}
	}
	return []error{ErrMalformedCompletion, e.Err}
}

type TransportError struct {
	Service    string
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: unexpected status %d: %s", e.Service, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s: %v", e.Service, e.Err)
}

func (e *TransportError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrTransport}
	}
	return []error{ErrTransport, e.Err}
}
