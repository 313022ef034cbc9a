package resource

import (
	"bytes"
	"fmt"
	"image"

	// Probe support for the formats compositions commonly reference.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/vidmix/vidmix/cache"
	"github.com/vidmix/vidmix/internal/logx"
	"github.com/vidmix/vidmix/timectx"
)

// Image is a registered image resource. The pixel data is not decoded
// here; the rendering engine does that. Registration only probes the
// header so components can lay the image out before the engine has it.
type Image struct {
	// Width and Height are the probed pixel dimensions.
	Width  int
	Height int

	// Format is the probed format name ("png", "jpeg", "webp", ...).
	Format string

	// Data is the raw encoded payload.
	Data []byte
}

// probedConfig caches one header probe by content hash.
type probedConfig struct {
	config image.Config
	format string
	err    error
}

// ImageRegistry registers images by id.
type ImageRegistry struct {
	reg    *Registry[*Image]
	probes *cache.Sharded[uint64, probedConfig]
}

// NewImageRegistry creates an empty image registry.
func NewImageRegistry() *ImageRegistry {
	return &ImageRegistry{
		reg:    NewRegistry[*Image](),
		probes: cache.NewSharded[uint64, probedConfig](0, cache.Uint64Hasher),
	}
}

// Images is the process-wide image registry.
var Images = NewImageRegistry()

// Register probes data and stores the image under id.
func (r *ImageRegistry) Register(id string, data []byte) (*Image, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}

	key := cache.BytesHasher(data)
	probe := r.probes.GetOrCreate(key, func() probedConfig {
		cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
		return probedConfig{config: cfg, format: format, err: err}
	})
	if probe.err != nil {
		return nil, fmt.Errorf("resource: probing image %q: %w", id, probe.err)
	}

	img := &Image{
		Width:  probe.config.Width,
		Height: probe.config.Height,
		Format: probe.format,
		Data:   data,
	}
	if err := r.reg.Register(id, img); err != nil {
		return nil, err
	}
	logx.Logger().Info("resource: image registered",
		"image", id, "format", img.Format, "width", img.Width, "height", img.Height)
	return img, nil
}

// RegisterAsync fetches and registers an image off the caller's
// goroutine, holding a blocking task on tc while in flight (offline
// contexts only). settle receives the outcome; it may be nil.
func (r *ImageRegistry) RegisterAsync(tc timectx.TimeContext, id string, fetch func() ([]byte, error), settle func(*Image, error)) {
	guardAsync(tc, func() {
		data, err := fetch()
		if err != nil {
			if settle != nil {
				settle(nil, fmt.Errorf("resource: fetching image %q: %w", id, err))
			}
			return
		}
		img, err := r.Register(id, data)
		if settle != nil {
			settle(img, err)
		}
	})
}

// Unregister removes an image.
func (r *ImageRegistry) Unregister(id string) error { return r.reg.Unregister(id) }

// Lookup returns a registered image.
func (r *ImageRegistry) Lookup(id string) (*Image, bool) { return r.reg.Lookup(id) }

// IDs returns all registered image ids.
func (r *ImageRegistry) IDs() []string { return r.reg.IDs() }
