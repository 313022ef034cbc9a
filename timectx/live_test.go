package timectx

import (
	"sync"
	"testing"
	"time"
)

// fakeClock is a manually advanced clock source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1700000000, 0)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestLiveZeroBeforeInit(t *testing.T) {
	l := NewLive()
	defer l.Close()

	if got := l.TimestampMs(); got != 0 {
		t.Errorf("expected 0 before InitClock, got %d", got)
	}
}

func TestLiveTimestampTracksClock(t *testing.T) {
	clk := newFakeClock()
	l := NewLive()
	l.now = clk.Now
	defer l.Close()

	l.InitClock(clk.Now())
	if got := l.TimestampMs(); got != 0 {
		t.Errorf("expected 0 at the anchor, got %d", got)
	}

	clk.Advance(250 * time.Millisecond)
	if got := l.TimestampMs(); got != 250 {
		t.Errorf("expected 250, got %d", got)
	}
}

func TestLiveTimerNotifiesSubscribers(t *testing.T) {
	l := NewLive()
	defer l.Close()

	l.InitClock(time.Now())

	notified := make(chan struct{}, 1)
	unsub := l.Subscribe(func() { notified <- struct{}{} })
	defer unsub()

	// Short real timer; the armed duration includes the safety slack.
	l.AddTimestamp(&Timestamp{AtMs: 1})

	select {
	case <-notified:
	case <-time.After(2 * time.Second):
		t.Fatal("timer never notified subscribers")
	}
}

func TestLiveIgnoresPastPoints(t *testing.T) {
	clk := newFakeClock()
	l := NewLive()
	l.now = clk.Now
	defer l.Close()

	l.InitClock(clk.Now())
	clk.Advance(time.Second)

	notified := 0
	unsub := l.Subscribe(func() { notified++ })
	defer unsub()

	l.AddTimestamp(&Timestamp{AtMs: 500})

	// Nothing was armed, so nothing can fire.
	time.Sleep(150 * time.Millisecond)
	if notified != 0 {
		t.Errorf("expected no notification for a past point, got %d", notified)
	}
}

func TestLiveRemoveCancelsTimer(t *testing.T) {
	l := NewLive()
	defer l.Close()

	l.InitClock(time.Now())

	notified := make(chan struct{}, 1)
	unsub := l.Subscribe(func() { notified <- struct{}{} })
	defer unsub()

	ts := &Timestamp{AtMs: 10}
	l.AddTimestamp(ts)
	l.RemoveTimestamp(ts)

	select {
	case <-notified:
		t.Fatal("cancelled timer still notified")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestLiveCloseCancelsTimers(t *testing.T) {
	l := NewLive()
	l.InitClock(time.Now())

	notified := make(chan struct{}, 1)
	l.Subscribe(func() { notified <- struct{}{} })

	l.AddTimestamp(&Timestamp{AtMs: 10})
	l.Close()

	select {
	case <-notified:
		t.Fatal("timer fired after Close")
	case <-time.After(300 * time.Millisecond):
	}

	// Post-close registration is ignored.
	l.AddTimestamp(&Timestamp{AtMs: 20})
}
