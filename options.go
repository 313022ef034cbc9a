package vidmix

import (
	"github.com/vidmix/vidmix/engine"
	"github.com/vidmix/vidmix/scene"
)

// Mode selects the timing discipline of an output.
type Mode uint8

// Timing modes.
const (
	// ModeLive tracks the wall clock; it can never be paused.
	ModeLive Mode = iota
	// ModeOffline advances a deterministic virtual clock gated by the
	// blocking-task barrier.
	ModeOffline
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeLive:
		return "live"
	case ModeOffline:
		return "offline"
	default:
		return "unknown"
	}
}

// MixerOption configures a Mixer during creation.
type MixerOption func(*mixerOptions)

// mixerOptions holds optional configuration for Mixer creation.
type mixerOptions struct {
	builders *scene.BuilderRegistry
}

func defaultMixerOptions() mixerOptions {
	return mixerOptions{
		builders: nil, // DefaultBuilders if nil
	}
}

// WithBuilders sets the component builder registry shared by all outputs.
// Without it, the built-in component kinds are used.
func WithBuilders(reg *scene.BuilderRegistry) MixerOption {
	return func(o *mixerOptions) {
		o.builders = reg
	}
}

// OutputOption configures an output during registration.
//
// Example:
//
//	out, err := mx.RegisterOutput("output_1",
//	    vidmix.WithResolution(1280, 720),
//	    vidmix.WithMode(vidmix.ModeOffline),
//	    vidmix.WithEngine(engine.NewMemory()),
//	)
type OutputOption func(*outputOptions)

// outputOptions holds optional configuration for output registration.
type outputOptions struct {
	res        engine.Resolution
	mode       Mode
	eng        engine.Engine
	engineName string
}

func defaultOutputOptions() outputOptions {
	return outputOptions{
		res:  engine.Resolution{Width: 1920, Height: 1080},
		mode: ModeLive,
	}
}

// WithResolution sets the output resolution in pixels.
func WithResolution(width, height int) OutputOption {
	return func(o *outputOptions) {
		o.res = engine.Resolution{Width: width, Height: height}
	}
}

// WithMode selects the output's timing discipline. The default is
// ModeLive.
func WithMode(m Mode) OutputOption {
	return func(o *outputOptions) {
		o.mode = m
	}
}

// WithEngine sets a rendering engine instance for the output.
// Use this for dependency injection of custom engines.
func WithEngine(e engine.Engine) OutputOption {
	return func(o *outputOptions) {
		o.eng = e
	}
}

// WithEngineName selects a rendering engine from the registry by name.
func WithEngineName(name string) OutputOption {
	return func(o *outputOptions) {
		o.engineName = name
	}
}
