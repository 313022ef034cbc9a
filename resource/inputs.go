package resource

import (
	"fmt"

	"github.com/vidmix/vidmix/internal/logx"
	"github.com/vidmix/vidmix/timectx"
)

// Input is a registered media input. Registration usually involves the
// rendering engine (opening a port, probing a file), so the typical path
// is RegisterAsync with a fetch that talks to the engine.
type Input struct {
	// VideoDurationMs and AudioDurationMs are the probed track durations
	// in milliseconds, 0 when unknown or unbounded (live sources).
	VideoDurationMs int64
	AudioDurationMs int64
}

// InputRegistry registers media inputs by id.
type InputRegistry struct {
	reg *Registry[*Input]
}

// NewInputRegistry creates an empty input registry.
func NewInputRegistry() *InputRegistry {
	return &InputRegistry{reg: NewRegistry[*Input]()}
}

// Inputs is the process-wide input registry.
var Inputs = NewInputRegistry()

// Register stores a probed input under id.
func (r *InputRegistry) Register(id string, in *Input) (*Input, error) {
	if in == nil {
		in = &Input{}
	}
	if err := r.reg.Register(id, in); err != nil {
		return nil, err
	}
	logx.Logger().Info("resource: input registered",
		"input", id, "videoDurationMs", in.VideoDurationMs, "audioDurationMs", in.AudioDurationMs)
	return in, nil
}

// RegisterAsync probes and registers an input off the caller's goroutine,
// holding a blocking task on tc while in flight (offline contexts only).
// settle receives the outcome; it may be nil.
func (r *InputRegistry) RegisterAsync(tc timectx.TimeContext, id string, probe func() (*Input, error), settle func(*Input, error)) {
	guardAsync(tc, func() {
		in, err := probe()
		if err != nil {
			if settle != nil {
				settle(nil, fmt.Errorf("resource: registering input %q: %w", id, err))
			}
			return
		}
		in, err = r.Register(id, in)
		if settle != nil {
			settle(in, err)
		}
	})
}

// Unregister removes an input.
func (r *InputRegistry) Unregister(id string) error { return r.reg.Unregister(id) }

// Lookup returns a registered input.
func (r *InputRegistry) Lookup(id string) (*Input, bool) { return r.reg.Lookup(id) }

// IDs returns all registered input ids.
func (r *InputRegistry) IDs() []string { return r.reg.IDs() }
