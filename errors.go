package vidmix

import "errors"

// Package errors for the top-level mixer.
var (
	// ErrOutputExists is returned when registering an output id twice.
	ErrOutputExists = errors.New("vidmix: output already registered")

	// ErrOutputNotFound is returned for operations on an unknown output.
	ErrOutputNotFound = errors.New("vidmix: output not found")

	// ErrInvalidResolution is returned when width or height is not positive.
	ErrInvalidResolution = errors.New("vidmix: invalid resolution")

	// ErrNoEngine is returned when no rendering engine is available.
	ErrNoEngine = errors.New("vidmix: no rendering engine available")

	// ErrUnknownEngine is returned when an engine name is not registered.
	ErrUnknownEngine = errors.New("vidmix: unknown engine name")
)
