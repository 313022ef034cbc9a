package resource

import (
	"sync"

	"github.com/vidmix/vidmix/timectx"
)

// Registry is a generic id-keyed resource registry. It is safe for
// concurrent use.
type Registry[T any] struct {
	mu      sync.RWMutex
	entries map[string]T
}

// NewRegistry creates an empty registry.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{entries: make(map[string]T)}
}

// Register stores a resource under id. Registering an id twice fails with
// ErrAlreadyRegistered.
func (r *Registry[T]) Register(id string, v T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[id]; ok {
		return ErrAlreadyRegistered
	}
	r.entries[id] = v
	return nil
}

// Unregister removes a resource. Unknown ids fail with ErrNotRegistered.
func (r *Registry[T]) Unregister(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[id]; !ok {
		return ErrNotRegistered
	}
	delete(r.entries, id)
	return nil
}

// Lookup returns the resource registered under id.
func (r *Registry[T]) Lookup(id string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.entries[id]
	return v, ok
}

// IDs returns all registered ids.
func (r *Registry[T]) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	return ids
}

// Len returns the number of registered resources.
func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// guardAsync runs fn on its own goroutine. When tc is an offline context
// (implements timectx.Blocker), a blocking task is held for the duration
// of fn, so the virtual clock cannot advance past work still in flight.
// The task is released whether fn succeeds or fails.
func guardAsync(tc timectx.TimeContext, fn func()) {
	var task *timectx.BlockingTask
	if b, ok := tc.(timectx.Blocker); ok {
		task = b.NewBlockingTask()
	}
	go func() {
		defer task.Done()
		fn()
	}()
}
