package output

import "errors"

// Package errors for output drivers.
var (
	// ErrDriverClosed is returned by operations on a closed driver.
	ErrDriverClosed = errors.New("output: driver closed")
)
