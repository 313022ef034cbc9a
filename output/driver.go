package output

import (
	"context"
	"sync"

	"github.com/vidmix/vidmix/engine"
	"github.com/vidmix/vidmix/internal/logx"
	"github.com/vidmix/vidmix/scene"
	"github.com/vidmix/vidmix/timectx"
)

// Driver owns one time context and one scene compiler for a single
// output. It reacts to two signals: the compiler's "scene possibly
// changed" callback after every commit, and the time context's change
// notifications. On either, unless an offline context is still blocked,
// the driver compiles the current tree and hands the snapshot to the
// engine; offline drivers then jump the virtual clock to the next point
// of interest, live drivers rely on timers already armed.
//
// The driver is deliberately thin: all tree and clock state lives in the
// compiler and the time context.
type Driver struct {
	id       string
	res      engine.Resolution
	tc       timectx.TimeContext
	eng      engine.Engine
	compiler *scene.Compiler
	unsub    func()

	mu      sync.Mutex
	lastErr error
	closed  bool
}

// NewDriver wires a driver for one output. reg may be nil to use the
// built-in component builders.
func NewDriver(id string, res engine.Resolution, tc timectx.TimeContext, eng engine.Engine, reg *scene.BuilderRegistry) *Driver {
	d := &Driver{id: id, res: res, tc: tc, eng: eng}
	d.compiler = scene.NewCompiler(reg, d.sync)
	d.unsub = tc.Subscribe(d.sync)
	return d
}

// ID returns the output identifier.
func (d *Driver) ID() string { return d.id }

// Resolution returns the output resolution.
func (d *Driver) Resolution() engine.Resolution { return d.res }

// TimeContext returns the driver's time context.
func (d *Driver) TimeContext() timectx.TimeContext { return d.tc }

// Host returns the tree-diffing backend an external runtime drives to
// commit trees for this output.
func (d *Driver) Host() scene.Host { return d.compiler }

// Compiler returns the driver's scene compiler.
func (d *Driver) Compiler() *scene.Compiler { return d.compiler }

// sync runs on every commit and every time-context notification.
func (d *Driver) sync() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.mu.Unlock()

	if blocker, ok := d.tc.(timectx.Blocker); ok && blocker.IsBlocked() {
		// Offline and blocked: the unblock signal will re-run sync.
		return
	}

	root := d.compiler.Scene()
	err := d.eng.PushScene(context.Background(), d.id, d.res, root)

	d.mu.Lock()
	d.lastErr = err
	d.mu.Unlock()
	if err != nil {
		logx.Logger().Warn("output: scene push failed", "output", d.id, "err", err)
	}

	// Offline: jump to the next point of interest. The jump notifies
	// subscribers (including this driver), so an offline render runs as a
	// synchronous cascade until the clock reaches infinity. The push error
	// does not stop the cascade; the next jump retries with a fresh
	// snapshot.
	if offline, ok := d.tc.(*timectx.Offline); ok {
		offline.SetNextTimestamp()
	}
}

// Flush compiles the current tree and pushes it synchronously, returning
// the hand-off outcome. Unlike the internal sync path it never advances
// the clock.
func (d *Driver) Flush(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return ErrDriverClosed
	}
	d.mu.Unlock()

	err := d.eng.PushScene(ctx, d.id, d.res, d.compiler.Scene())

	d.mu.Lock()
	d.lastErr = err
	d.mu.Unlock()
	return err
}

// Err returns the outcome of the most recent scene hand-off, nil after a
// successful push.
func (d *Driver) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastErr
}

// Close tears the driver down: the subscription is dropped, the compiler
// stopped and the time context closed (pending timestamps removed, timers
// cancelled).
func (d *Driver) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	d.mu.Unlock()

	d.unsub()
	d.compiler.Stop()
	d.tc.Close()
}
