package engine

import (
	"sync"
)

// Engine names known to the built-in registry.
const (
	// NameMemory is the in-process recording engine.
	NameMemory = "memory"
	// NameSmelter is the Smelter compositor-server client
	// (engine/smelter registers it).
	NameSmelter = "smelter"
)

// Factory creates a new engine instance.
type Factory func() Engine

// registry holds registered engines.
var (
	registryMu sync.RWMutex
	engines    = make(map[string]Factory)
	// Priority order for engine selection (first available wins).
	// A real compositor beats the in-process recorder.
	enginePriority = []string{NameSmelter, NameMemory}
)

// Register makes a factory selectable under name. A second Register with
// the same name replaces the first, which lets tests swap in a fake
// without touching the default wiring. The in-process recorder registers
// itself on package load; the Smelter client registers explicitly.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	engines[name] = factory
}

// Unregister drops a name from the registry. Removing a name that was
// never registered is a no-op.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(engines, name)
}

// Available lists the currently registered engine names, in no
// particular order.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(engines))
	for name := range engines {
		names = append(names, name)
	}
	return names
}

// IsRegistered reports whether a factory is bound to name.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := engines[name]
	return ok
}

// Get builds a fresh engine instance for name, or nil when the name is
// unknown.
func Get(name string) Engine {
	registryMu.RLock()
	defer registryMu.RUnlock()

	factory, ok := engines[name]
	if !ok {
		return nil
	}
	return factory()
}

// Default walks the priority order and returns the first engine that can
// be built, then falls back to any registered factory. Nil means nothing
// is registered at all.
func Default() Engine {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for _, name := range enginePriority {
		if factory, ok := engines[name]; ok {
			if e := factory(); e != nil {
				return e
			}
		}
	}

	// Nothing from the priority list; take whatever is registered.
	for _, factory := range engines {
		if e := factory(); e != nil {
			return e
		}
	}

	return nil
}

// MustDefault returns the default engine or panics.
func MustDefault() Engine {
	e := Default()
	if e == nil {
		panic("engine: no engine available")
	}
	return e
}

func init() {
	Register(NameMemory, func() Engine { return NewMemory() })
}
