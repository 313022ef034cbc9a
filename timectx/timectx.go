package timectx

import (
	"math"
	"sync"
)

// TimestampInfinity is the sentinel returned by [Offline.SetNextTimestamp]
// when no scheduled timestamp remains. In offline mode it signals "no more
// events, rendering complete".
const TimestampInfinity int64 = math.MaxInt64

// Timestamp is a scheduled point of interest on a context's clock.
//
// A Timestamp is created by whatever needs to be woken once real or virtual
// time reaches AtMs: the end of a transition, the end of a timed slide.
// Timestamps are tracked by handle identity, so the same *Timestamp passed
// to AddTimestamp must be passed to RemoveTimestamp.
type Timestamp struct {
	// AtMs is the point on the context clock, in milliseconds.
	AtMs int64

	// Owner optionally names the component that scheduled the point.
	// It is used only for diagnostics.
	Owner string
}

// TimeContext is the capability surface shared by the offline and live
// timing variants.
//
// All methods are safe for concurrent use. Change subscribers are invoked
// synchronously from the goroutine that triggered the change (the caller of
// SetNextTimestamp for offline contexts, the timer goroutine for live ones),
// against a snapshot of the subscriber list taken before the firing pass
// begins. A subscriber that subscribes or unsubscribes in reaction to a
// notification does not affect the pass currently firing.
type TimeContext interface {
	// TimestampMs returns the current timestamp in milliseconds.
	TimestampMs() int64

	// AddTimestamp registers a point of interest. Offline contexts record
	// it as a candidate for the next virtual-clock jump; live contexts arm
	// a real timer for it.
	AddTimestamp(ts *Timestamp)

	// RemoveTimestamp drops a previously registered point. Removing a
	// point that is not registered (or whose timer already fired) is a
	// no-op.
	RemoveTimestamp(ts *Timestamp)

	// Subscribe registers a change callback and returns its unsubscribe
	// function. Matches the pull-based external-store contract together
	// with GetSnapshot.
	Subscribe(fn func()) (unsubscribe func())

	// GetSnapshot returns the current timestamp, like TimestampMs.
	// It exists so the Subscribe/GetSnapshot pair reads as the standard
	// external-store pattern at call sites.
	GetSnapshot() int64

	// Close tears the context down: pending timestamps are dropped and,
	// for live contexts, all armed timers are cancelled.
	Close()
}

// Blocker is the additional capability of offline contexts: asynchronous
// setup paths open a blocking task before starting and close it when
// settled, gating virtual-clock advancement in between.
//
// Live contexts intentionally do not implement Blocker.
type Blocker interface {
	// NewBlockingTask registers one outstanding asynchronous prerequisite.
	NewBlockingTask() *BlockingTask

	// IsBlocked reports whether any blocking task is still outstanding.
	IsBlocked() bool
}

// subscriberSet is a minimal publish/subscribe primitive over an ordered
// set of callbacks. Notification fires against a snapshot taken before the
// pass begins, in subscriber-registration order.
type subscriberSet struct {
	mu    sync.Mutex
	next  uint64
	order []uint64
	fns   map[uint64]func()
}

// subscribe appends fn to the set and returns its unsubscribe closure.
// Unsubscribing twice is harmless.
func (s *subscriberSet) subscribe(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fns == nil {
		s.fns = make(map[uint64]func())
	}
	id := s.next
	s.next++
	s.order = append(s.order, id)
	s.fns[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.fns[id]; !ok {
			return
		}
		delete(s.fns, id)
		for i, v := range s.order {
			if v == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
}

// notify invokes every subscriber registered at the time of the call.
// Subscribers added or removed by a firing callback are picked up on the
// next pass, not the current one.
func (s *subscriberSet) notify() {
	s.mu.Lock()
	snapshot := make([]func(), 0, len(s.order))
	for _, id := range s.order {
		if fn, ok := s.fns[id]; ok {
			snapshot = append(snapshot, fn)
		}
	}
	s.mu.Unlock()

	for _, fn := range snapshot {
		fn()
	}
}

// clear drops all subscribers. Used on Close.
func (s *subscriberSet) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = nil
	s.fns = nil
}
