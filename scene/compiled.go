package scene

// Kind discriminates the node kinds of a compiled scene graph.
type Kind uint8

// Scene-graph node kinds.
const (
	// KindView is a plain container laying out children in a row or column.
	KindView Kind = iota
	// KindRescaler resizes its single child to its own bounds.
	KindRescaler
	// KindText is a styled text run.
	KindText
	// KindImage references a registered image resource.
	KindImage
	// KindInputStream references a registered media input.
	KindInputStream
	// KindShader renders its children through a registered shader.
	KindShader
	// KindTiles lays children out in an automatic tiled grid.
	KindTiles
	// KindWebView embeds a registered web-renderer instance.
	KindWebView
)

// String returns the kind name as used in scene serializations.
func (k Kind) String() string {
	switch k {
	case KindView:
		return "view"
	case KindRescaler:
		return "rescaler"
	case KindText:
		return "text"
	case KindImage:
		return "image"
	case KindInputStream:
		return "input_stream"
	case KindShader:
		return "shader"
	case KindTiles:
		return "tiles"
	case KindWebView:
		return "web_view"
	default:
		return "unknown"
	}
}

// Compiled is one node of the immutable, renderer-neutral scene graph
// handed to the rendering engine. Implementations are plain data structs;
// once built they must not be modified.
type Compiled interface {
	// Kind returns the node-kind discriminator.
	Kind() Kind
}

// RGBA is a color in the scene graph, 8 bits per channel.
type RGBA struct {
	R, G, B, A uint8
}

// Direction selects the layout axis of a view.
type Direction uint8

// Layout directions.
const (
	DirectionRow Direction = iota
	DirectionColumn
)

// RescaleMode selects how a rescaler fits its child.
type RescaleMode uint8

// Rescale modes.
const (
	// RescaleFit scales the child to fit inside the bounds, preserving
	// aspect ratio.
	RescaleFit RescaleMode = iota
	// RescaleFill scales the child to cover the bounds, cropping overflow.
	RescaleFill
)

// ViewNode is a container node.
type ViewNode struct {
	ID         string
	Direction  Direction
	Background RGBA
	Children   []Compiled
}

// Kind implements Compiled.
func (*ViewNode) Kind() Kind { return KindView }

// RescalerNode resizes a single child.
type RescalerNode struct {
	ID    string
	Mode  RescaleMode
	Child Compiled
}

// Kind implements Compiled.
func (*RescalerNode) Kind() Kind { return KindRescaler }

// TextNode is a styled text run. Content is always exactly one string;
// the compiler's grouping pass guarantees a text-bearing node never sees a
// fragmented sequence.
type TextNode struct {
	ID         string
	Text       string
	FontFamily string
	FontSizePx float64
	Color      RGBA
}

// Kind implements Compiled.
func (*TextNode) Kind() Kind { return KindText }

// ImageNode references an image registered with the rendering engine.
type ImageNode struct {
	ID      string
	ImageID string
}

// Kind implements Compiled.
func (*ImageNode) Kind() Kind { return KindImage }

// InputStreamNode references a registered media input.
type InputStreamNode struct {
	ID      string
	InputID string
}

// Kind implements Compiled.
func (*InputStreamNode) Kind() Kind { return KindInputStream }

// ShaderParam is one named parameter passed to a shader node.
type ShaderParam struct {
	Name  string
	Value any
}

// ShaderNode renders its children through a registered shader.
type ShaderNode struct {
	ID       string
	ShaderID string
	Params   []ShaderParam
	Width    int
	Height   int
	Children []Compiled
}

// Kind implements Compiled.
func (*ShaderNode) Kind() Kind { return KindShader }

// TilesNode lays children out in an automatic tiled grid.
type TilesNode struct {
	ID         string
	Background RGBA
	Margin     float64
	Padding    float64
	Children   []Compiled
}

// Kind implements Compiled.
func (*TilesNode) Kind() Kind { return KindTiles }

// WebViewNode embeds a registered web-renderer instance.
type WebViewNode struct {
	ID         string
	InstanceID string
	Children   []Compiled
}

// Kind implements Compiled.
func (*WebViewNode) Kind() Kind { return KindWebView }
