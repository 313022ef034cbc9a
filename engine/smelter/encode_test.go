package smelter

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/vidmix/vidmix/scene"
)

func decode(t *testing.T, raw json.RawMessage) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("decoding wire form: %v", err)
	}
	return m
}

func TestEncodeView(t *testing.T) {
	raw, err := EncodeScene(&scene.ViewNode{
		ID:         "root",
		Direction:  scene.DirectionColumn,
		Background: scene.RGBA{R: 255, A: 255},
		Children:   []scene.Compiled{&scene.ImageNode{ImageID: "logo"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m := decode(t, raw)
	if m["type"] != "view" || m["id"] != "root" {
		t.Errorf("unexpected header: %v", m)
	}
	if m["direction"] != "column" {
		t.Errorf("expected column direction, got %v", m["direction"])
	}
	if m["background_color"] != "#FF0000FF" {
		t.Errorf("expected hex color, got %v", m["background_color"])
	}
	children := m["children"].([]any)
	if len(children) != 1 {
		t.Fatalf("expected 1 child, got %d", len(children))
	}
	child := children[0].(map[string]any)
	if child["type"] != "image" || child["image_id"] != "logo" {
		t.Errorf("unexpected child: %v", child)
	}
}

func TestEncodeRescaler(t *testing.T) {
	raw, err := EncodeScene(&scene.RescalerNode{
		Mode:  scene.RescaleFill,
		Child: &scene.InputStreamNode{InputID: "cam"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m := decode(t, raw)
	if m["type"] != "rescaler" || m["mode"] != "fill" {
		t.Errorf("unexpected rescaler: %v", m)
	}
	child := m["child"].(map[string]any)
	if child["type"] != "input_stream" || child["input_id"] != "cam" {
		t.Errorf("unexpected child: %v", child)
	}
}

func TestEncodeText(t *testing.T) {
	raw, err := EncodeScene(&scene.TextNode{
		Text:       "",
		FontFamily: "Inter",
		FontSizePx: 32,
		Color:      scene.RGBA{R: 1, G: 2, B: 3, A: 4},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m := decode(t, raw)
	if m["type"] != "text" {
		t.Errorf("unexpected type: %v", m["type"])
	}
	// Empty text must still travel; a text component without content is
	// different from one with the field missing.
	if v, ok := m["text"]; !ok || v != "" {
		t.Errorf("expected empty text field present, got %v (ok=%v)", v, ok)
	}
	if m["font_family"] != "Inter" || m["font_size"] != float64(32) {
		t.Errorf("unexpected styling: %v", m)
	}
	if m["color"] != "#01020304" {
		t.Errorf("expected hex color, got %v", m["color"])
	}
}

func TestEncodeShader(t *testing.T) {
	raw, err := EncodeScene(&scene.ShaderNode{
		ShaderID: "blur",
		Params:   []scene.ShaderParam{{Name: "radius", Value: 4}},
		Width:    640,
		Height:   360,
		Children: []scene.Compiled{&scene.InputStreamNode{InputID: "cam"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m := decode(t, raw)
	if m["shader_id"] != "blur" {
		t.Errorf("unexpected shader: %v", m)
	}
	res := m["resolution"].(map[string]any)
	if res["width"] != float64(640) || res["height"] != float64(360) {
		t.Errorf("unexpected resolution: %v", res)
	}
	params := m["shader_param"].(map[string]any)
	if params["radius"] != float64(4) {
		t.Errorf("unexpected params: %v", params)
	}
}

func TestEncodeTilesAndWebView(t *testing.T) {
	raw, err := EncodeScene(&scene.TilesNode{
		Margin:   8,
		Children: []scene.Compiled{&scene.WebViewNode{InstanceID: "overlay"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m := decode(t, raw)
	if m["type"] != "tiles" || m["margin"] != float64(8) {
		t.Errorf("unexpected tiles: %v", m)
	}
	child := m["children"].([]any)[0].(map[string]any)
	if child["type"] != "web_view" || child["instance_id"] != "overlay" {
		t.Errorf("unexpected web view: %v", child)
	}
}

func TestEncodeNilScene(t *testing.T) {
	if _, err := EncodeScene(nil); !errors.Is(err, ErrNilScene) {
		t.Errorf("expected ErrNilScene for a nil root, got %v", err)
	}

	// A nil entry nested in a child list fails the same way, it must not
	// panic partway through the tree.
	_, err := EncodeScene(&scene.ViewNode{Children: []scene.Compiled{nil}})
	if !errors.Is(err, ErrNilScene) {
		t.Errorf("expected ErrNilScene for a nil child, got %v", err)
	}
}

func TestHexColor(t *testing.T) {
	if got := hexColor(scene.RGBA{}); got != "#00000000" {
		t.Errorf("expected #00000000, got %q", got)
	}
	if got := hexColor(scene.RGBA{R: 255, G: 255, B: 255, A: 255}); got != "#FFFFFFFF" {
		t.Errorf("expected #FFFFFFFF, got %q", got)
	}
}
