package smelter

import (
	"encoding/json"
	"fmt"

	"github.com/vidmix/vidmix/scene"
)

// component is the wire form of one scene-graph node. Field presence
// depends on Type; omitempty keeps each kind's payload minimal.
type component struct {
	Type            string         `json:"type"`
	ID              string         `json:"id,omitempty"`
	Children        []*component   `json:"children,omitempty"`
	Child           *component     `json:"child,omitempty"`
	Direction       string         `json:"direction,omitempty"`
	BackgroundColor string         `json:"background_color,omitempty"`
	Mode            string         `json:"mode,omitempty"`
	Text            *string        `json:"text,omitempty"`
	FontSize        float64        `json:"font_size,omitempty"`
	FontFamily      string         `json:"font_family,omitempty"`
	Color           string         `json:"color,omitempty"`
	ImageID         string         `json:"image_id,omitempty"`
	InputID         string         `json:"input_id,omitempty"`
	ShaderID        string         `json:"shader_id,omitempty"`
	ShaderParam     map[string]any `json:"shader_param,omitempty"`
	Resolution      *wireRes       `json:"resolution,omitempty"`
	Margin          float64        `json:"margin,omitempty"`
	Padding         float64        `json:"padding,omitempty"`
	InstanceID      string         `json:"instance_id,omitempty"`
}

type wireRes struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// hexColor formats a color as "#RRGGBBAA".
func hexColor(c scene.RGBA) string {
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

func encodeChildren(nodes []scene.Compiled) ([]*component, error) {
	if len(nodes) == 0 {
		return nil, nil
	}
	out := make([]*component, 0, len(nodes))
	for _, n := range nodes {
		c, err := encodeComponent(n)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// encodeComponent converts one compiled node to its wire form.
func encodeComponent(node scene.Compiled) (*component, error) {
	if node == nil {
		return nil, ErrNilScene
	}
	switch n := node.(type) {
	case *scene.ViewNode:
		children, err := encodeChildren(n.Children)
		if err != nil {
			return nil, err
		}
		dir := "row"
		if n.Direction == scene.DirectionColumn {
			dir = "column"
		}
		return &component{
			Type:            "view",
			ID:              n.ID,
			Direction:       dir,
			BackgroundColor: hexColor(n.Background),
			Children:        children,
		}, nil

	case *scene.RescalerNode:
		c := &component{Type: "rescaler", ID: n.ID}
		switch n.Mode {
		case scene.RescaleFill:
			c.Mode = "fill"
		default:
			c.Mode = "fit"
		}
		if n.Child != nil {
			child, err := encodeComponent(n.Child)
			if err != nil {
				return nil, err
			}
			c.Child = child
		}
		return c, nil

	case *scene.TextNode:
		text := n.Text
		return &component{
			Type:       "text",
			ID:         n.ID,
			Text:       &text,
			FontSize:   n.FontSizePx,
			FontFamily: n.FontFamily,
			Color:      hexColor(n.Color),
		}, nil

	case *scene.ImageNode:
		return &component{Type: "image", ID: n.ID, ImageID: n.ImageID}, nil

	case *scene.InputStreamNode:
		return &component{Type: "input_stream", ID: n.ID, InputID: n.InputID}, nil

	case *scene.ShaderNode:
		children, err := encodeChildren(n.Children)
		if err != nil {
			return nil, err
		}
		c := &component{
			Type:       "shader",
			ID:         n.ID,
			ShaderID:   n.ShaderID,
			Children:   children,
			Resolution: &wireRes{Width: n.Width, Height: n.Height},
		}
		if len(n.Params) > 0 {
			c.ShaderParam = make(map[string]any, len(n.Params))
			for _, p := range n.Params {
				c.ShaderParam[p.Name] = p.Value
			}
		}
		return c, nil

	case *scene.TilesNode:
		children, err := encodeChildren(n.Children)
		if err != nil {
			return nil, err
		}
		return &component{
			Type:            "tiles",
			ID:              n.ID,
			BackgroundColor: hexColor(n.Background),
			Margin:          n.Margin,
			Padding:         n.Padding,
			Children:        children,
		}, nil

	case *scene.WebViewNode:
		children, err := encodeChildren(n.Children)
		if err != nil {
			return nil, err
		}
		return &component{
			Type:       "web_view",
			ID:         n.ID,
			InstanceID: n.InstanceID,
			Children:   children,
		}, nil

	default:
		return nil, fmt.Errorf("smelter: cannot encode scene node kind %q", node.Kind())
	}
}

// EncodeScene serializes a compiled scene graph to its wire form.
func EncodeScene(root scene.Compiled) (json.RawMessage, error) {
	c, err := encodeComponent(root)
	if err != nil {
		return nil, err
	}
	return json.Marshal(c)
}
