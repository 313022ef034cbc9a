package engine

import (
	"context"

	"github.com/vidmix/vidmix/scene"
)

// Resolution is the pixel size of an output.
type Resolution struct {
	Width  int
	Height int
}

// Engine applies compiled scenes as the desired state of outputs.
//
// PushScene is idempotent per call: the engine replaces the output's
// current scene with the given snapshot. Failures are transport-level and
// must be retried by the caller with a fresh snapshot, never by vidmix
// internally.
type Engine interface {
	// PushScene hands a compiled scene to the engine as the new desired
	// state for the output.
	PushScene(ctx context.Context, outputID string, res Resolution, root scene.Compiled) error
}

// Closer is an optional interface for engines holding external resources.
type Closer interface {
	Close() error
}
