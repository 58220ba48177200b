package client

import (
	"fmt"
	"net/http"
)

// Error is a failure reported by the API through its envelope.
type Error struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return http.StatusText(e.StatusCode)
	}
	return e.Message
}

func (e *Error) IsNotFound() bool     { return e.StatusCode == http.StatusNotFound }
func (e *Error) IsConflict() bool     { return e.StatusCode == http.StatusConflict }
func (e *Error) IsUnauthorized() bool { return e.StatusCode == http.StatusUnauthorized }
func (e *Error) IsValidation() bool   { return e.StatusCode == http.StatusBadRequest }

// TransportError covers failures where no envelope came back: the network
// call failed or the server answered with something unreadable.
type TransportError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: server responded %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
