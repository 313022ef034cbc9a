package resource

import "errors"

// Package errors for resource registries.
var (
	// ErrAlreadyRegistered is returned when an id is registered twice.
	ErrAlreadyRegistered = errors.New("resource: id already registered")

	// ErrNotRegistered is returned when unregistering an unknown id.
	ErrNotRegistered = errors.New("resource: id not registered")

	// ErrEmptyData is returned when registering an empty payload.
	ErrEmptyData = errors.New("resource: empty data")
)
