package engine

import (
	"context"
	"sync"

	"github.com/vidmix/vidmix/scene"
)

// Memory is an in-process engine that records the last scene pushed per
// output. It backs tests and offline golden runs; nothing is rasterized.
//
// Memory is safe for concurrent use.
type Memory struct {
	mu     sync.Mutex
	scenes map[string]PushedScene
	pushes []PushedScene

	// FailWith, when non-nil, is returned by every PushScene call.
	// Tests use it to exercise hand-off failure paths.
	FailWith error
}

// PushedScene is one recorded hand-off.
type PushedScene struct {
	OutputID   string
	Resolution Resolution
	Root       scene.Compiled
}

// NewMemory creates an empty recording engine.
func NewMemory() *Memory {
	return &Memory{scenes: make(map[string]PushedScene)}
}

// PushScene implements Engine.
func (m *Memory) PushScene(_ context.Context, outputID string, res Resolution, root scene.Compiled) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}
	p := PushedScene{OutputID: outputID, Resolution: res, Root: root}
	m.scenes[outputID] = p
	m.pushes = append(m.pushes, p)
	return nil
}

// Last returns the last scene pushed for an output.
func (m *Memory) Last(outputID string) (PushedScene, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.scenes[outputID]
	return p, ok
}

// Pushes returns every recorded hand-off in order.
func (m *Memory) Pushes() []PushedScene {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]PushedScene, len(m.pushes))
	copy(out, m.pushes)
	return out
}

// PushCount returns the number of recorded hand-offs.
func (m *Memory) PushCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pushes)
}

var _ Engine = (*Memory)(nil)
