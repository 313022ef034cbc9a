package smelter

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// DefaultBaseURL is the address a locally started server listens on.
const DefaultBaseURL = "http://127.0.0.1:8081"

type config struct {
	baseURL string
	http    *http.Client
	dialer  *websocket.Dialer
	bearer  string
}

func defaultConfig() config {
	return config{
		baseURL: DefaultBaseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		dialer:  websocket.DefaultDialer,
	}
}

// Option configures a Client.
type Option func(*config)

// WithBaseURL sets the server base URL, without a trailing slash.
func WithBaseURL(url string) Option {
	return func(c *config) { c.baseURL = url }
}

// WithHTTPClient sets the HTTP client used for API requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *config) { c.http = hc }
}

// WithDialer sets the websocket dialer used for the event stream.
func WithDialer(d *websocket.Dialer) Option {
	return func(c *config) { c.dialer = d }
}

// WithBearerToken sets a bearer token sent with every request.
func WithBearerToken(token string) Option {
	return func(c *config) { c.bearer = token }
}
