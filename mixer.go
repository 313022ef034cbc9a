package vidmix

import (
	"sync"
	"time"

	"github.com/vidmix/vidmix/engine"
	"github.com/vidmix/vidmix/internal/logx"
	"github.com/vidmix/vidmix/output"
	"github.com/vidmix/vidmix/reconcile"
	"github.com/vidmix/vidmix/scene"
	"github.com/vidmix/vidmix/timectx"
)

// Output is one registered composition output: a declarative tree commit
// surface on top of its driver.
type Output struct {
	*output.Driver

	mode    Mode
	runtime *reconcile.Runtime
}

// Mode returns the output's timing discipline.
func (o *Output) Mode() Mode { return o.mode }

// Render commits a new component tree description for this output.
// Commits must come from a single goroutine per output.
func (o *Output) Render(root reconcile.Child) {
	o.runtime.Render(root)
}

// Mixer manages the outputs of one composition instance. Each output owns
// a time context matching its mode, a scene compiler, and a driver that
// hands compiled snapshots to the rendering engine.
//
// Mixer is safe for concurrent use.
type Mixer struct {
	mu       sync.Mutex
	outputs  map[string]*Output
	builders *scene.BuilderRegistry
	started  bool
	epoch    time.Time
}

// NewMixer creates a mixer with no outputs.
func NewMixer(opts ...MixerOption) *Mixer {
	cfg := defaultMixerOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	builders := cfg.builders
	if builders == nil {
		builders = scene.DefaultBuilders()
	}
	return &Mixer{
		outputs:  make(map[string]*Output),
		builders: builders,
	}
}

// RegisterOutput creates an output with its own time context and scene
// compiler. A live output registered after Start has its clock anchored
// immediately.
func (m *Mixer) RegisterOutput(id string, opts ...OutputOption) (*Output, error) {
	cfg := defaultOutputOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.res.Width <= 0 || cfg.res.Height <= 0 {
		return nil, ErrInvalidResolution
	}

	eng := cfg.eng
	if eng == nil && cfg.engineName != "" {
		eng = engine.Get(cfg.engineName)
		if eng == nil {
			return nil, ErrUnknownEngine
		}
	}
	if eng == nil {
		eng = engine.Default()
	}
	if eng == nil {
		return nil, ErrNoEngine
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.outputs[id]; ok {
		return nil, ErrOutputExists
	}

	var tc timectx.TimeContext
	switch cfg.mode {
	case ModeOffline:
		tc = timectx.NewOffline()
	default:
		live := timectx.NewLive()
		if m.started {
			live.InitClock(m.epoch)
		}
		tc = live
	}

	drv := output.NewDriver(id, cfg.res, tc, eng, m.builders)
	out := &Output{Driver: drv, mode: cfg.mode, runtime: reconcile.NewRuntime(drv.Host())}
	m.outputs[id] = out

	logx.Logger().Info("vidmix: output registered",
		"output", id, "mode", cfg.mode.String(),
		"width", cfg.res.Width, "height", cfg.res.Height)
	return out, nil
}

// UnregisterOutput tears an output down: its time context is closed (all
// pending scheduled timestamps removed, timers cancelled) and the compiler
// stopped.
func (m *Mixer) UnregisterOutput(id string) error {
	m.mu.Lock()
	out, ok := m.outputs[id]
	if ok {
		delete(m.outputs, id)
	}
	m.mu.Unlock()

	if !ok {
		return ErrOutputNotFound
	}
	out.Close()
	logx.Logger().Info("vidmix: output unregistered", "output", id)
	return nil
}

// Output returns a registered output.
func (m *Mixer) Output(id string) (*Output, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out, ok := m.outputs[id]
	return out, ok
}

// OutputIDs returns the ids of all registered outputs.
func (m *Mixer) OutputIDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.outputs))
	for id := range m.outputs {
		ids = append(ids, id)
	}
	return ids
}

// Start anchors the clocks of all live outputs at the given epoch.
// Outputs registered later are anchored at the same epoch. Offline
// outputs are unaffected; their virtual clocks advance on their own
// events.
func (m *Mixer) Start(epoch time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started = true
	m.epoch = epoch
	for _, out := range m.outputs {
		if live, ok := out.TimeContext().(*timectx.Live); ok {
			live.InitClock(epoch)
		}
	}
}

// Close unregisters every output.
func (m *Mixer) Close() {
	m.mu.Lock()
	outputs := m.outputs
	m.outputs = make(map[string]*Output)
	m.mu.Unlock()

	for _, out := range outputs {
		out.Close()
	}
}
