package timectx

import (
	"sync"
	"time"

	"github.com/vidmix/vidmix/internal/logx"
)

// liveTimerSlack is added to every armed timer so a wake-up never lands
// strictly on or before its boundary due to clock or timer jitter.
const liveTimerSlack = 100 * time.Millisecond

// Live is the wall-clock driven time context used for live rendering.
//
// The clock reports 0 until InitClock anchors it; afterwards TimestampMs is
// the real time elapsed since the anchor. Points of interest arm real
// timers. There is no blocking/barrier concept here: real time cannot be
// paused, so a prerequisite that is not ready delays that component's
// content, not the clock.
//
// Live implements [TimeContext].
type Live struct {
	mu      sync.Mutex
	started bool
	start   time.Time
	timers  map[*Timestamp]*time.Timer
	closed  bool

	// now is the clock source, replaceable in tests.
	now func() time.Time

	subs subscriberSet
}

// NewLive creates a live time context with the clock not yet started.
func NewLive() *Live {
	return &Live{
		timers: make(map[*Timestamp]*time.Timer),
		now:    time.Now,
	}
}

// InitClock anchors the clock at the given epoch. Before this call
// TimestampMs returns 0.
func (l *Live) InitClock(epoch time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.started = true
	l.start = epoch
	logx.Logger().Info("timectx: live clock started", "epoch", epoch)
}

// TimestampMs returns the milliseconds elapsed since the clock anchor, or
// 0 if the clock has not been started.
func (l *Live) TimestampMs() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.timestampMsLocked()
}

func (l *Live) timestampMsLocked() int64 {
	if !l.started {
		return 0
	}
	return l.now().Sub(l.start).Milliseconds()
}

// GetSnapshot returns the current timestamp, like TimestampMs.
func (l *Live) GetSnapshot() int64 { return l.TimestampMs() }

// AddTimestamp arms a real timer that fires the change subscribers once
// wall-clock time reaches the point (plus a fixed safety margin). A point
// already in the past is silently ignored.
func (l *Live) AddTimestamp(ts *Timestamp) {
	if ts == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}

	left := ts.AtMs - l.timestampMsLocked()
	if left < 0 {
		// Already happened.
		logx.Logger().Debug("timectx: live timestamp in the past", "atMs", ts.AtMs, "owner", ts.Owner)
		return
	}

	d := time.Duration(left)*time.Millisecond + liveTimerSlack
	l.timers[ts] = time.AfterFunc(d, func() { l.fire(ts) })
	logx.Logger().Debug("timectx: live timer armed", "atMs", ts.AtMs, "in", d, "owner", ts.Owner)
}

// fire runs on the timer goroutine when a scheduled point is reached.
func (l *Live) fire(ts *Timestamp) {
	l.mu.Lock()
	if _, ok := l.timers[ts]; !ok {
		// Removed or closed after the timer was queued.
		l.mu.Unlock()
		return
	}
	delete(l.timers, ts)
	l.mu.Unlock()

	l.subs.notify()
}

// RemoveTimestamp cancels the timer armed for the point. If the timer
// already fired, or the point was never armed, this is a no-op.
func (l *Live) RemoveTimestamp(ts *Timestamp) {
	l.mu.Lock()
	defer l.mu.Unlock()
	t, ok := l.timers[ts]
	if !ok {
		return
	}
	t.Stop()
	delete(l.timers, ts)
}

// Subscribe registers a change callback, fired whenever an armed timer
// reaches its point. Returns the unsubscribe function.
func (l *Live) Subscribe(fn func()) func() {
	return l.subs.subscribe(fn)
}

// Close tears the context down: every armed timer is cancelled and
// subscribers dropped.
func (l *Live) Close() {
	l.mu.Lock()
	l.closed = true
	for ts, t := range l.timers {
		t.Stop()
		delete(l.timers, ts)
	}
	l.mu.Unlock()
	l.subs.clear()
}

var _ TimeContext = (*Live)(nil)
