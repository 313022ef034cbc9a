package resource

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/text/language"

	"github.com/vidmix/vidmix/internal/logx"
)

// warnCounter counts warn-level records.
type warnCounter struct {
	mu    sync.Mutex
	warns int
}

func (h *warnCounter) Enabled(_ context.Context, l slog.Level) bool {
	return l >= slog.LevelWarn
}

func (h *warnCounter) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if r.Level >= slog.LevelWarn {
		h.warns++
	}
	return nil
}

func (h *warnCounter) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *warnCounter) WithGroup(string) slog.Handler      { return h }

func (h *warnCounter) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.warns
}

func TestFontRegisterParsesPayload(t *testing.T) {
	r := NewFontRegistry()

	f, err := r.Register("go", goregular.TTF, "en-US")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Family == "" {
		t.Error("expected a family name from the font tables")
	}
	if f.Parsed() == nil {
		t.Error("expected the parsed font retained")
	}
	if f.Language != language.MustParse("en-US") {
		t.Errorf("expected normalized language en-US, got %v", f.Language)
	}

	got, ok := r.Lookup("go")
	if !ok || got != f {
		t.Error("expected registered font retrievable")
	}
}

func TestFontRegisterNoLanguageHint(t *testing.T) {
	r := NewFontRegistry()

	f, err := r.Register("go", goregular.TTF, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Language != language.Und {
		t.Errorf("expected Und without a hint, got %v", f.Language)
	}
}

func TestFontRegisterMalformedLanguageDropped(t *testing.T) {
	h := &warnCounter{}
	logx.Set(slog.New(h))
	defer logx.Set(nil)

	r := NewFontRegistry()

	// A bad hint is advisory; the registration itself succeeds.
	f, err := r.Register("go", goregular.TTF, "!!not a tag!!")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Language != language.Und {
		t.Errorf("expected malformed hint dropped to Und, got %v", f.Language)
	}
	if h.count() != 1 {
		t.Errorf("expected exactly one warning for the dropped hint, got %d", h.count())
	}
}

func TestFontRegisterSharesParseByContent(t *testing.T) {
	r := NewFontRegistry()

	a, err := r.Register("a", goregular.TTF, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := r.Register("b", goregular.TTF, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Parsed() != b.Parsed() {
		t.Error("expected the same payload to parse once and be shared")
	}
}

func TestFontRegisterRejectsGarbage(t *testing.T) {
	r := NewFontRegistry()

	if _, err := r.Register("empty", nil, ""); !errors.Is(err, ErrEmptyData) {
		t.Errorf("expected ErrEmptyData, got %v", err)
	}

	garbage := []byte("definitely not a font")
	first, err := r.Register("a", garbage, "")
	if first != nil || err == nil {
		t.Fatalf("expected parse failure, got %v", err)
	}
	if errors.Unwrap(err) == nil {
		t.Errorf("expected the parse cause wrapped, got %v", err)
	}

	// The same payload fails again with the same cause; the cached parse
	// attempt must not swallow the error.
	second, err2 := r.Register("b", garbage, "")
	if second != nil || err2 == nil {
		t.Fatalf("expected repeated parse failure, got %v", err2)
	}
	if errors.Unwrap(err2) == nil {
		t.Errorf("expected the cached failure to keep its cause, got %v", err2)
	}
	if !errors.Is(err2, errors.Unwrap(err)) {
		t.Errorf("expected both failures to share the cause, got %v and %v", err, err2)
	}
}
