package smelter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/vidmix/vidmix/engine"
	"github.com/vidmix/vidmix/internal/logx"
	"github.com/vidmix/vidmix/scene"
)

// Client talks to a Smelter server. It is safe for concurrent use.
type Client struct {
	cfg config
}

// New creates a client. Without options it targets DefaultBaseURL.
func New(opts ...Option) *Client {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Client{cfg: cfg}
}

// RegisterEngine makes cli available to outputs under the "smelter"
// engine name, replacing any earlier registration.
func RegisterEngine(cli *Client) {
	engine.Register(engine.NameSmelter, func() engine.Engine { return cli })
}

// BaseURL returns the configured server base URL.
func (c *Client) BaseURL() string { return c.cfg.baseURL }

// PushScene implements engine.Engine. The resolution is fixed when the
// output is registered, so only the scene graph travels here.
func (c *Client) PushScene(ctx context.Context, outputID string, _ engine.Resolution, root scene.Compiled) error {
	raw, err := EncodeScene(root)
	if err != nil {
		return err
	}
	req := UpdateOutputRequest{Video: &VideoScene{Root: raw}}
	return c.do(ctx, http.MethodPost, "/api/output/"+url.PathEscape(outputID)+"/update", req, nil)
}

// UpdateOutput sends a full update request, including audio and
// scheduling fields PushScene does not expose.
func (c *Client) UpdateOutput(ctx context.Context, outputID string, req UpdateOutputRequest) error {
	return c.do(ctx, http.MethodPost, "/api/output/"+url.PathEscape(outputID)+"/update", req, nil)
}

// RegisterInput registers a media input. spec is the server's input
// specification ("type": "rtp_stream", "mp4", ...), marshaled as given.
func (c *Client) RegisterInput(ctx context.Context, id string, spec any) (*RegisterResponse, error) {
	return c.register(ctx, "/api/input/"+url.PathEscape(id)+"/register", spec)
}

// UnregisterInput removes a registered input.
func (c *Client) UnregisterInput(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/api/input/"+url.PathEscape(id)+"/unregister", struct{}{}, nil)
}

// RegisterOutput registers an output stream or file.
func (c *Client) RegisterOutput(ctx context.Context, id string, spec any) (*RegisterResponse, error) {
	return c.register(ctx, "/api/output/"+url.PathEscape(id)+"/register", spec)
}

// UnregisterOutput removes a registered output.
func (c *Client) UnregisterOutput(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/api/output/"+url.PathEscape(id)+"/unregister", struct{}{}, nil)
}

// RequestKeyframe asks the encoder of an output for an IDR frame.
func (c *Client) RequestKeyframe(ctx context.Context, outputID string) error {
	return c.do(ctx, http.MethodPost, "/api/output/"+url.PathEscape(outputID)+"/request_keyframe", struct{}{}, nil)
}

// RegisterImage registers an image renderer resource.
func (c *Client) RegisterImage(ctx context.Context, id string, spec any) error {
	return c.do(ctx, http.MethodPost, "/api/image/"+url.PathEscape(id)+"/register", spec, nil)
}

// UnregisterImage removes a registered image.
func (c *Client) UnregisterImage(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/api/image/"+url.PathEscape(id)+"/unregister", struct{}{}, nil)
}

// RegisterShader registers a shader from WGSL source.
func (c *Client) RegisterShader(ctx context.Context, id string, wgslSource string) error {
	body := struct {
		Source string `json:"source"`
	}{Source: wgslSource}
	return c.do(ctx, http.MethodPost, "/api/shader/"+url.PathEscape(id)+"/register", body, nil)
}

// UnregisterShader removes a registered shader.
func (c *Client) UnregisterShader(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/api/shader/"+url.PathEscape(id)+"/unregister", struct{}{}, nil)
}

// RegisterWebRenderer registers a web-renderer instance.
func (c *Client) RegisterWebRenderer(ctx context.Context, id string, spec any) error {
	return c.do(ctx, http.MethodPost, "/api/web-renderer/"+url.PathEscape(id)+"/register", spec, nil)
}

// UnregisterWebRenderer removes a registered web-renderer instance.
func (c *Client) UnregisterWebRenderer(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/api/web-renderer/"+url.PathEscape(id)+"/unregister", struct{}{}, nil)
}

// RegisterFont uploads a font file (TTF or OTF).
func (c *Client) RegisterFont(ctx context.Context, fontData []byte) error {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("font_file", "font.ttf")
	if err != nil {
		return fmt.Errorf("smelter: building font upload: %w", err)
	}
	if _, err := part.Write(fontData); err != nil {
		return fmt.Errorf("smelter: building font upload: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smelter: building font upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.baseURL+"/api/font/register", &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return c.send(req, nil)
}

// Start begins processing the pipeline. Before Start the server accepts
// registrations but renders nothing.
func (c *Client) Start(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/start", struct{}{}, nil)
}

// Reset drops all registered inputs, outputs and renderers and returns
// the server to its pre-Start state.
func (c *Client) Reset(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/reset", struct{}{}, nil)
}

// Status reports the registered inputs and outputs.
func (c *Client) Status(ctx context.Context) (*Status, error) {
	var st Status
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.baseURL+"/status", nil)
	if err != nil {
		return nil, err
	}
	if err := c.send(req, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

func (c *Client) register(ctx context.Context, path string, spec any) (*RegisterResponse, error) {
	var resp RegisterResponse
	if err := c.do(ctx, http.MethodPost, path, spec, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) do(ctx context.Context, method, path string, reqBody any, respOut any) error {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("smelter: encoding request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.cfg.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.send(req, respOut)
}

func (c *Client) send(req *http.Request, respOut any) error {
	if c.cfg.bearer != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.bearer)
	}
	resp, err := c.cfg.http.Do(req)
	if err != nil {
		return fmt.Errorf("smelter: %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("smelter: reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var eb errorBody
		if json.Unmarshal(body, &eb) == nil {
			apiErr.Code = eb.ErrorCode
			apiErr.Message = eb.Message
		}
		logx.Logger().Warn("smelter: request failed",
			"method", req.Method, "path", req.URL.Path, "status", resp.StatusCode, "code", apiErr.Code)
		return apiErr
	}

	if respOut != nil && len(body) > 0 {
		if err := json.Unmarshal(body, respOut); err != nil {
			return fmt.Errorf("smelter: decoding response: %w", err)
		}
	}
	return nil
}

var _ engine.Engine = (*Client)(nil)
