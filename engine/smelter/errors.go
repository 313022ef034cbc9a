package smelter

import (
	"errors"
	"fmt"
)

// Package errors.
var (
	// ErrEventsClosed is returned by EventStream.Next after Close.
	ErrEventsClosed = errors.New("smelter: event stream closed")

	// ErrNilScene is returned when a nil scene node is encoded.
	ErrNilScene = errors.New("smelter: nil scene node")
)

// APIError is a structured error response from the server.
type APIError struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int

	// Code is the server error code ("MALFORMED_REQUEST", ...). Empty
	// when the body was not a structured error.
	Code string

	// Message is the human-readable message from the server.
	Message string
}

// Error implements error.
func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("smelter: %s (%s, HTTP %d)", e.Message, e.Code, e.StatusCode)
	}
	return fmt.Sprintf("smelter: server returned HTTP %d", e.StatusCode)
}
