package vidmix

import (
	"errors"
	"testing"
	"time"

	"github.com/vidmix/vidmix/engine"
	"github.com/vidmix/vidmix/reconcile"
	"github.com/vidmix/vidmix/scene"
	"github.com/vidmix/vidmix/timectx"
)

func TestRegisterOutputDefaults(t *testing.T) {
	m := NewMixer()
	defer m.Close()

	out, err := m.RegisterOutput("main")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Mode() != ModeLive {
		t.Errorf("expected live mode by default, got %v", out.Mode())
	}
	if res := out.Resolution(); res.Width != 1920 || res.Height != 1080 {
		t.Errorf("expected 1920x1080 default, got %+v", res)
	}
	if _, ok := out.TimeContext().(*timectx.Live); !ok {
		t.Errorf("expected live time context, got %T", out.TimeContext())
	}
}

func TestRegisterOutputDuplicate(t *testing.T) {
	m := NewMixer()
	defer m.Close()

	if _, err := m.RegisterOutput("main"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := m.RegisterOutput("main"); !errors.Is(err, ErrOutputExists) {
		t.Errorf("expected ErrOutputExists, got %v", err)
	}
}

func TestRegisterOutputInvalidResolution(t *testing.T) {
	m := NewMixer()
	defer m.Close()

	if _, err := m.RegisterOutput("bad", WithResolution(0, 720)); !errors.Is(err, ErrInvalidResolution) {
		t.Errorf("expected ErrInvalidResolution, got %v", err)
	}
	if _, err := m.RegisterOutput("bad", WithResolution(1280, -1)); !errors.Is(err, ErrInvalidResolution) {
		t.Errorf("expected ErrInvalidResolution, got %v", err)
	}
}

func TestRegisterOutputUnknownEngine(t *testing.T) {
	m := NewMixer()
	defer m.Close()

	if _, err := m.RegisterOutput("x", WithEngineName("bogus")); !errors.Is(err, ErrUnknownEngine) {
		t.Errorf("expected ErrUnknownEngine, got %v", err)
	}
}

func TestRegisterOutputOfflineMode(t *testing.T) {
	m := NewMixer()
	defer m.Close()

	out, err := m.RegisterOutput("offline", WithMode(ModeOffline), WithEngine(engine.NewMemory()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Mode() != ModeOffline {
		t.Errorf("expected offline mode, got %v", out.Mode())
	}
	if _, ok := out.TimeContext().(*timectx.Offline); !ok {
		t.Errorf("expected offline time context, got %T", out.TimeContext())
	}
}

func TestUnregisterOutput(t *testing.T) {
	m := NewMixer()
	defer m.Close()

	m.RegisterOutput("a")
	if err := m.UnregisterOutput("a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := m.UnregisterOutput("a"); !errors.Is(err, ErrOutputNotFound) {
		t.Errorf("expected ErrOutputNotFound, got %v", err)
	}
	if _, ok := m.Output("a"); ok {
		t.Error("expected output removed")
	}
}

func TestOutputIDs(t *testing.T) {
	m := NewMixer()
	defer m.Close()

	m.RegisterOutput("a")
	m.RegisterOutput("b")

	ids := m.OutputIDs()
	if len(ids) != 2 {
		t.Errorf("expected 2 ids, got %v", ids)
	}
}

func TestStartAnchorsLiveClocks(t *testing.T) {
	m := NewMixer()
	defer m.Close()

	before, _ := m.RegisterOutput("before")

	epoch := time.Now().Add(-2 * time.Second)
	m.Start(epoch)

	if got := before.TimeContext().TimestampMs(); got < 2000 {
		t.Errorf("expected clock anchored at the epoch, got %d", got)
	}

	// A live output registered after Start uses the same epoch.
	after, _ := m.RegisterOutput("after")
	if got := after.TimeContext().TimestampMs(); got < 2000 {
		t.Errorf("expected late output anchored too, got %d", got)
	}
}

func TestRenderThroughMixer(t *testing.T) {
	mem := engine.NewMemory()
	m := NewMixer()
	defer m.Close()

	out, err := m.RegisterOutput("main", WithMode(ModeOffline), WithEngine(mem))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out.Render(reconcile.Elem(reconcile.New(scene.TypeView, scene.ViewProps{ID: "root"},
		reconcile.Elem(reconcile.New(scene.TypeText, scene.TextProps{}, reconcile.Text("hello"))),
	)))

	last, ok := mem.Last("main")
	if !ok {
		t.Fatal("expected a pushed scene")
	}
	view, ok := last.Root.(*scene.ViewNode)
	if !ok || view.ID != "root" {
		t.Fatalf("expected committed root, got %+v", last.Root)
	}
	txt, ok := view.Children[0].(*scene.TextNode)
	if !ok || txt.Text != "hello" {
		t.Errorf("expected text child, got %+v", view.Children[0])
	}
}

func TestMixerCustomBuilders(t *testing.T) {
	reg := scene.DefaultBuilders()
	reg.Register("Solid", func(props any, _ []scene.Resolved) scene.Compiled {
		c, _ := props.(scene.RGBA)
		return &scene.ViewNode{Background: c}
	})

	mem := engine.NewMemory()
	m := NewMixer(WithBuilders(reg))
	defer m.Close()

	out, _ := m.RegisterOutput("main", WithEngine(mem))
	out.Render(reconcile.Elem(reconcile.New("Solid", scene.RGBA{B: 255, A: 255})))

	last, _ := mem.Last("main")
	view, ok := last.Root.(*scene.ViewNode)
	if !ok || view.Background.B != 255 {
		t.Errorf("expected custom component compiled, got %+v", last.Root)
	}
}

func TestModeString(t *testing.T) {
	if ModeLive.String() != "live" || ModeOffline.String() != "offline" {
		t.Error("unexpected mode names")
	}
	if Mode(9).String() != "unknown" {
		t.Error("expected unknown for out-of-range mode")
	}
}
