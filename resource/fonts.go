package resource

import (
	"bytes"
	"fmt"

	"github.com/go-text/typesetting/font"
	"golang.org/x/text/language"

	"github.com/vidmix/vidmix/cache"
	"github.com/vidmix/vidmix/internal/logx"
	"github.com/vidmix/vidmix/timectx"
)

// Font is a registered font resource.
type Font struct {
	// Family is the family name extracted from the font tables.
	Family string

	// Language is the normalized language hint given at registration,
	// language.Und when none was given.
	Language language.Tag

	// Data is the raw TTF/OTF payload.
	Data []byte

	parsed *font.Font
}

// Parsed returns the parsed font. font.Font is read-only and safe for
// concurrent use.
func (f *Font) Parsed() *font.Font { return f.parsed }

// parsedFont caches one parse attempt by content hash, error included,
// so repeated registrations of the same bad payload keep their cause.
type parsedFont struct {
	font *font.Font
	err  error
}

// FontRegistry registers fonts by id. Parsed fonts are cached by content
// hash, so registering the same payload under several ids parses once.
type FontRegistry struct {
	reg    *Registry[*Font]
	parsed *cache.Sharded[uint64, parsedFont]
}

// NewFontRegistry creates an empty font registry.
func NewFontRegistry() *FontRegistry {
	return &FontRegistry{
		reg:    NewRegistry[*Font](),
		parsed: cache.NewSharded[uint64, parsedFont](0, cache.Uint64Hasher),
	}
}

// Fonts is the process-wide font registry.
var Fonts = NewFontRegistry()

// Register parses data (TTF or OTF) and stores the font under id.
// lang is an optional BCP 47 language hint ("en-US"); pass "" for none.
func (r *FontRegistry) Register(id string, data []byte, lang string) (*Font, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}

	key := cache.BytesHasher(data)
	p := r.parsed.GetOrCreate(key, func() parsedFont {
		face, err := font.ParseTTF(bytes.NewReader(data))
		if err != nil {
			return parsedFont{err: err}
		}
		return parsedFont{font: face.Font}
	})
	if p.err != nil {
		return nil, fmt.Errorf("resource: parsing font %q: %w", id, p.err)
	}
	parsed := p.font

	tag := language.Und
	if lang != "" {
		t, err := language.Parse(lang)
		if err != nil {
			logx.Logger().Warn("resource: ignoring malformed font language", "font", id, "language", lang)
		} else {
			tag = t
		}
	}

	f := &Font{
		Family:   parsed.Describe().Family,
		Language: tag,
		Data:     data,
		parsed:   parsed,
	}
	if err := r.reg.Register(id, f); err != nil {
		return nil, err
	}
	logx.Logger().Info("resource: font registered", "font", id, "family", f.Family)
	return f, nil
}

// RegisterAsync fetches and registers a font off the caller's goroutine,
// holding a blocking task on tc while in flight (offline contexts only).
// settle receives the outcome; it may be nil.
func (r *FontRegistry) RegisterAsync(tc timectx.TimeContext, id string, lang string, fetch func() ([]byte, error), settle func(*Font, error)) {
	guardAsync(tc, func() {
		data, err := fetch()
		if err != nil {
			if settle != nil {
				settle(nil, fmt.Errorf("resource: fetching font %q: %w", id, err))
			}
			return
		}
		f, err := r.Register(id, data, lang)
		if settle != nil {
			settle(f, err)
		}
	})
}

// Unregister removes a font.
func (r *FontRegistry) Unregister(id string) error { return r.reg.Unregister(id) }

// Lookup returns a registered font.
func (r *FontRegistry) Lookup(id string) (*Font, bool) { return r.reg.Lookup(id) }

// IDs returns all registered font ids.
func (r *FontRegistry) IDs() []string { return r.reg.IDs() }
