package timectx

import (
	"sync"

	"github.com/vidmix/vidmix/internal/logx"
)

// Offline is the deterministic, event-driven virtual clock used for
// offline rendering.
//
// The clock starts at 0 and only moves when SetNextTimestamp is called:
// it jumps straight to the smallest registered timestamp strictly greater
// than the current one, instead of simulating every intermediate
// millisecond. While the blocking-task barrier reports outstanding work,
// callers must not advance the clock (see [Offline.IsBlocked]); this is
// what gives offline rendering bit-for-bit determinism regardless of how
// long asynchronous setup takes.
//
// Offline implements [TimeContext] and [Blocker].
type Offline struct {
	mu        sync.Mutex
	current   int64
	scheduled map[*Timestamp]struct{}
	closed    bool

	barrier *Barrier
	subs    subscriberSet
}

// NewOffline creates an offline time context with the clock at 0.
func NewOffline() *Offline {
	o := &Offline{
		scheduled: make(map[*Timestamp]struct{}),
	}
	// The draining Done call notifies change subscribers directly, so the
	// transition cannot be lost between "last task finishes" and "driver
	// checks IsBlocked".
	o.barrier = NewBarrier(func() {
		logx.Logger().Debug("timectx: offline context unblocked")
		o.subs.notify()
	})
	return o
}

// TimestampMs returns the current virtual timestamp in milliseconds.
func (o *Offline) TimestampMs() int64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.current
}

// GetSnapshot returns the current virtual timestamp, like TimestampMs.
func (o *Offline) GetSnapshot() int64 { return o.TimestampMs() }

// AddTimestamp registers a point of interest as a candidate for the next
// virtual-clock jump.
func (o *Offline) AddTimestamp(ts *Timestamp) {
	if ts == nil {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	o.scheduled[ts] = struct{}{}
}

// RemoveTimestamp drops a registered point. Removing a non-member is a
// no-op.
func (o *Offline) RemoveTimestamp(ts *Timestamp) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.scheduled, ts)
}

// Subscribe registers a change callback, fired after every clock jump and
// after every blocked-to-unblocked transition. Returns the unsubscribe
// function.
func (o *Offline) Subscribe(fn func()) func() {
	return o.subs.subscribe(fn)
}

// IsBlocked reports whether any blocking task is outstanding. While true,
// the virtual clock must not be advanced.
func (o *Offline) IsBlocked() bool { return o.barrier.IsBlocked() }

// NewBlockingTask registers one outstanding asynchronous prerequisite with
// the barrier.
func (o *Offline) NewBlockingTask() *BlockingTask {
	return o.barrier.NewBlockingTask()
}

// Barrier exposes the underlying blocking-task barrier.
func (o *Offline) Barrier() *Barrier { return o.barrier }

// SetNextTimestamp advances the clock to the smallest registered timestamp
// strictly greater than the current one, or to [TimestampInfinity] if none
// exists. The new value is returned.
//
// While any blocking task is outstanding the call is refused: the clock
// stays put and nothing fires. The unblock transition re-notifies
// subscribers, so a refused advance is retried by whoever drives the
// clock.
//
// When the clock actually moves, every registered change subscriber is
// invoked synchronously, in registration order, against a snapshot of the
// subscriber list taken before the firing pass begins. A repeated call
// with the clock already at infinity changes nothing and fires nothing.
func (o *Offline) SetNextTimestamp() int64 {
	if o.barrier.IsBlocked() {
		logx.Logger().Debug("timectx: clock advance refused while blocked")
		return o.TimestampMs()
	}

	o.mu.Lock()
	next := TimestampInfinity
	for ts := range o.scheduled {
		if ts.AtMs > o.current && ts.AtMs < next {
			next = ts.AtMs
		}
	}
	changed := next != o.current
	prev := o.current
	o.current = next
	o.mu.Unlock()

	if !changed {
		return next
	}
	if next == TimestampInfinity {
		logx.Logger().Debug("timectx: offline clock exhausted", "fromMs", prev)
	} else {
		logx.Logger().Debug("timectx: offline clock jump", "fromMs", prev, "toMs", next)
	}
	o.subs.notify()
	return next
}

// Close tears the context down: all pending timestamps are removed and
// subscribers dropped.
func (o *Offline) Close() {
	o.mu.Lock()
	o.closed = true
	o.scheduled = make(map[*Timestamp]struct{})
	o.mu.Unlock()
	o.subs.clear()
}

var (
	_ TimeContext = (*Offline)(nil)
	_ Blocker     = (*Offline)(nil)
)
