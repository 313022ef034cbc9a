package smelter

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/vidmix/vidmix/internal/logx"
)

// EventStream is a live websocket connection to the server's /ws
// endpoint. Next and Close may be called from different goroutines.
type EventStream struct {
	conn *websocket.Conn

	mu     sync.Mutex
	closed bool
}

// Events connects to the server event stream. The context bounds the
// dial only; close the stream to stop receiving.
func (c *Client) Events(ctx context.Context) (*EventStream, error) {
	wsURL := strings.Replace(c.cfg.baseURL, "http", "ws", 1) + "/ws"

	var header http.Header
	if c.cfg.bearer != "" {
		header = http.Header{"Authorization": {"Bearer " + c.cfg.bearer}}
	}
	conn, resp, err := c.cfg.dialer.DialContext(ctx, wsURL, header)
	if err != nil {
		if resp != nil {
			return nil, &APIError{StatusCode: resp.StatusCode, Message: "websocket dial rejected"}
		}
		return nil, err
	}
	logx.Logger().Debug("smelter: event stream connected", "url", wsURL)
	return &EventStream{conn: conn}, nil
}

// Next blocks until the next event arrives. It returns ErrEventsClosed
// after Close, and the underlying read error when the connection drops.
func (s *EventStream) Next() (Event, error) {
	for {
		var ev Event
		if err := s.conn.ReadJSON(&ev); err != nil {
			s.mu.Lock()
			closed := s.closed
			s.mu.Unlock()
			if closed {
				return Event{}, ErrEventsClosed
			}
			return Event{}, err
		}
		// The server pings with non-event frames; skip anything untyped.
		if ev.Type == "" {
			continue
		}
		return ev, nil
	}
}

// Close closes the connection. It is safe to call more than once.
func (s *EventStream) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()
	return s.conn.Close()
}
