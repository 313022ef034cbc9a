package scene

import (
	"sync"

	"github.com/vidmix/vidmix/internal/logx"
)

// Component type names resolved by [DefaultBuilders].
const (
	TypeView        = "View"
	TypeRescaler    = "Rescaler"
	TypeText        = "Text"
	TypeImage       = "Image"
	TypeInputStream = "InputStream"
	TypeShader      = "Shader"
	TypeTiles       = "Tiles"
	TypeWebView     = "WebView"
)

// BuilderRegistry maps component type names to their builders. It is safe
// for concurrent use.
type BuilderRegistry struct {
	mu       sync.RWMutex
	builders map[string]Builder
}

// NewBuilderRegistry creates an empty registry.
func NewBuilderRegistry() *BuilderRegistry {
	return &BuilderRegistry{builders: make(map[string]Builder)}
}

// Register adds or replaces the builder for a component type.
func (r *BuilderRegistry) Register(typ string, b Builder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.builders[typ] = b
}

// Builder returns the builder for a component type.
func (r *BuilderRegistry) Builder(typ string) (Builder, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.builders[typ]
	return b, ok
}

// Types returns the registered component type names.
func (r *BuilderRegistry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	types := make([]string, 0, len(r.builders))
	for typ := range r.builders {
		types = append(types, typ)
	}
	return types
}

// DefaultBuilders returns a registry pre-populated with the built-in
// component kinds.
func DefaultBuilders() *BuilderRegistry {
	r := NewBuilderRegistry()
	r.Register(TypeView, ViewBuilder)
	r.Register(TypeRescaler, RescalerBuilder)
	r.Register(TypeText, TextBuilder)
	r.Register(TypeImage, ImageBuilder)
	r.Register(TypeInputStream, InputStreamBuilder)
	r.Register(TypeShader, ShaderBuilder)
	r.Register(TypeTiles, TilesBuilder)
	r.Register(TypeWebView, WebViewBuilder)
	return r
}

// Props for the built-in component kinds.
type (
	// ViewProps configures a container view.
	ViewProps struct {
		ID         string
		Direction  Direction
		Background RGBA
	}

	// RescalerProps configures a rescaler.
	RescalerProps struct {
		ID   string
		Mode RescaleMode
	}

	// TextProps configures a text run; the content comes from the node's
	// text children.
	TextProps struct {
		ID         string
		FontFamily string
		FontSizePx float64
		Color      RGBA
	}

	// ImageProps references a registered image.
	ImageProps struct {
		ID      string
		ImageID string
	}

	// InputStreamProps references a registered media input.
	InputStreamProps struct {
		ID      string
		InputID string
	}

	// ShaderProps configures a shader node.
	ShaderProps struct {
		ID       string
		ShaderID string
		Params   []ShaderParam
		Width    int
		Height   int
	}

	// TilesProps configures a tiled layout.
	TilesProps struct {
		ID         string
		Background RGBA
		Margin     float64
		Padding    float64
	}

	// WebViewProps references a registered web-renderer instance.
	WebViewProps struct {
		ID         string
		InstanceID string
	}
)

// structuralChildren collects the compiled scene nodes from a grouped
// child list, warning about stray text runs: raw text is only meaningful
// under a Text component.
func structuralChildren(typ string, children []Resolved) []Compiled {
	kids := make([]Compiled, 0, len(children))
	for _, c := range children {
		if c.IsText() {
			logx.Logger().Warn("scene: raw text child ignored outside Text", "parent", typ, "text", c.Text)
			continue
		}
		kids = append(kids, c.Scene)
	}
	return kids
}

// ViewBuilder compiles a container view.
func ViewBuilder(props any, children []Resolved) Compiled {
	p, _ := props.(ViewProps)
	return &ViewNode{
		ID:         p.ID,
		Direction:  p.Direction,
		Background: p.Background,
		Children:   structuralChildren(TypeView, children),
	}
}

// RescalerBuilder compiles a rescaler around its first structural child.
func RescalerBuilder(props any, children []Resolved) Compiled {
	p, _ := props.(RescalerProps)
	node := &RescalerNode{ID: p.ID, Mode: p.Mode}
	kids := structuralChildren(TypeRescaler, children)
	if len(kids) > 0 {
		node.Child = kids[0]
		if len(kids) > 1 {
			logx.Logger().Warn("scene: rescaler keeps only its first child", "dropped", len(kids)-1)
		}
	}
	return node
}

// TextBuilder compiles a text run. The grouping pass guarantees the
// content arrives as at most one string.
func TextBuilder(props any, children []Resolved) Compiled {
	p, _ := props.(TextProps)
	var content string
	for _, c := range children {
		if c.IsText() {
			content = c.Text
			break
		}
	}
	return &TextNode{
		ID:         p.ID,
		Text:       content,
		FontFamily: p.FontFamily,
		FontSizePx: p.FontSizePx,
		Color:      p.Color,
	}
}

// ImageBuilder compiles an image reference.
func ImageBuilder(props any, _ []Resolved) Compiled {
	p, _ := props.(ImageProps)
	return &ImageNode{ID: p.ID, ImageID: p.ImageID}
}

// InputStreamBuilder compiles a media-input reference.
func InputStreamBuilder(props any, _ []Resolved) Compiled {
	p, _ := props.(InputStreamProps)
	return &InputStreamNode{ID: p.ID, InputID: p.InputID}
}

// ShaderBuilder compiles a shader node.
func ShaderBuilder(props any, children []Resolved) Compiled {
	p, _ := props.(ShaderProps)
	return &ShaderNode{
		ID:       p.ID,
		ShaderID: p.ShaderID,
		Params:   p.Params,
		Width:    p.Width,
		Height:   p.Height,
		Children: structuralChildren(TypeShader, children),
	}
}

// TilesBuilder compiles a tiled layout.
func TilesBuilder(props any, children []Resolved) Compiled {
	p, _ := props.(TilesProps)
	return &TilesNode{
		ID:         p.ID,
		Background: p.Background,
		Margin:     p.Margin,
		Padding:    p.Padding,
		Children:   structuralChildren(TypeTiles, children),
	}
}

// WebViewBuilder compiles an embedded web view.
func WebViewBuilder(props any, children []Resolved) Compiled {
	p, _ := props.(WebViewProps)
	return &WebViewNode{
		ID:         p.ID,
		InstanceID: p.InstanceID,
		Children:   structuralChildren(TypeWebView, children),
	}
}
