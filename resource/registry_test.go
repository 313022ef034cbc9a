package resource

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"testing"

	"github.com/vidmix/vidmix/timectx"
)

func TestRegistryRegisterLookup(t *testing.T) {
	r := NewRegistry[int]()

	if err := r.Register("a", 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.Register("a", 2); !errors.Is(err, ErrAlreadyRegistered) {
		t.Errorf("expected ErrAlreadyRegistered, got %v", err)
	}

	v, ok := r.Lookup("a")
	if !ok || v != 1 {
		t.Errorf("expected first registration kept, got %d (ok=%v)", v, ok)
	}
	if r.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", r.Len())
	}
}

func TestRegistryUnregister(t *testing.T) {
	r := NewRegistry[string]()
	r.Register("a", "x")

	if err := r.Unregister("a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.Unregister("a"); !errors.Is(err, ErrNotRegistered) {
		t.Errorf("expected ErrNotRegistered, got %v", err)
	}
	if _, ok := r.Lookup("a"); ok {
		t.Error("expected entry removed")
	}
}

func TestGuardAsyncBlocksOfflineContext(t *testing.T) {
	tc := timectx.NewOffline()
	defer tc.Close()

	started := make(chan struct{})
	release := make(chan struct{})
	unblocked := make(chan struct{}, 1)
	tc.Subscribe(func() { unblocked <- struct{}{} })

	guardAsync(tc, func() {
		close(started)
		<-release
	})

	<-started
	if !tc.IsBlocked() {
		t.Fatal("expected offline context blocked while work is in flight")
	}

	close(release)
	<-unblocked
	if tc.IsBlocked() {
		t.Error("expected context unblocked after the work settled")
	}
}

func TestGuardAsyncLiveContextRunsUnguarded(t *testing.T) {
	tc := timectx.NewLive()
	defer tc.Close()

	done := make(chan struct{})
	guardAsync(tc, func() { close(done) })
	<-done
}

// pngBytes encodes a tiny valid PNG for probing tests.
func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encoding test image: %v", err)
	}
	return buf.Bytes()
}

func TestImageRegisterProbesHeader(t *testing.T) {
	r := NewImageRegistry()

	img, err := r.Register("logo", pngBytes(t, 12, 34))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if img.Width != 12 || img.Height != 34 {
		t.Errorf("expected probed 12x34, got %dx%d", img.Width, img.Height)
	}
	if img.Format != "png" {
		t.Errorf("expected format png, got %q", img.Format)
	}

	got, ok := r.Lookup("logo")
	if !ok || got != img {
		t.Error("expected registered image retrievable")
	}
}

func TestImageRegisterRejectsBadData(t *testing.T) {
	r := NewImageRegistry()

	if _, err := r.Register("empty", nil); !errors.Is(err, ErrEmptyData) {
		t.Errorf("expected ErrEmptyData, got %v", err)
	}
	if _, err := r.Register("garbage", []byte("not an image")); err == nil {
		t.Error("expected probe failure for garbage data")
	}
}

func TestImageRegisterDuplicateID(t *testing.T) {
	r := NewImageRegistry()
	data := pngBytes(t, 1, 1)

	if _, err := r.Register("x", data); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := r.Register("x", data); !errors.Is(err, ErrAlreadyRegistered) {
		t.Errorf("expected ErrAlreadyRegistered, got %v", err)
	}
}

func TestImageRegisterAsyncSettles(t *testing.T) {
	r := NewImageRegistry()
	tc := timectx.NewOffline()
	defer tc.Close()

	settled := make(chan error, 1)
	r.RegisterAsync(tc, "async", func() ([]byte, error) {
		return pngBytes(t, 2, 2), nil
	}, func(_ *Image, err error) {
		settled <- err
	})

	if err := <-settled; err != nil {
		t.Fatalf("unexpected settle error: %v", err)
	}
	if _, ok := r.Lookup("async"); !ok {
		t.Error("expected async registration to land")
	}
}

func TestImageRegisterAsyncFetchFailureReleasesBarrier(t *testing.T) {
	r := NewImageRegistry()
	tc := timectx.NewOffline()
	defer tc.Close()

	unblocked := make(chan struct{}, 1)
	tc.Subscribe(func() { unblocked <- struct{}{} })

	fetchErr := errors.New("network down")
	settled := make(chan error, 1)
	r.RegisterAsync(tc, "broken", func() ([]byte, error) {
		return nil, fetchErr
	}, func(_ *Image, err error) {
		settled <- err
	})

	if err := <-settled; !errors.Is(err, fetchErr) {
		t.Errorf("expected fetch error surfaced, got %v", err)
	}
	// The barrier releases even on failure.
	<-unblocked
	if tc.IsBlocked() {
		t.Error("expected barrier released after failed registration")
	}
}

func TestInputRegister(t *testing.T) {
	r := NewInputRegistry()

	in, err := r.Register("cam", &Input{VideoDurationMs: 5000, AudioDurationMs: 4800})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.VideoDurationMs != 5000 || in.AudioDurationMs != 4800 {
		t.Errorf("expected probed durations kept, got %+v", in)
	}

	// nil input registers with unknown durations.
	live, err := r.Register("live", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if live.VideoDurationMs != 0 || live.AudioDurationMs != 0 {
		t.Errorf("expected zero durations for nil input, got %+v", live)
	}
}

func TestShaderRegisterRejectsEmptySource(t *testing.T) {
	r := NewShaderRegistry()
	if _, err := r.Register("empty", ""); !errors.Is(err, ErrEmptyData) {
		t.Errorf("expected ErrEmptyData, got %v", err)
	}
}
