// Package vidmix is the core of a declarative video/audio composition
// toolkit. A caller describes a composition as a component tree; vidmix
// compiles that tree into an immutable, renderer-neutral scene graph and
// decides when each new snapshot is handed to a rendering engine.
//
// # Overview
//
// Two timing disciplines are supported. Offline outputs advance a
// deterministic virtual clock that jumps straight to the next scheduled
// point of interest and never moves while asynchronous setup (font
// fetches, media probes) is still outstanding. Live outputs track the wall
// clock and can never be paused; content that is not ready yet simply
// renders its fallback until it is.
//
// # Quick Start
//
//	import "github.com/vidmix/vidmix"
//
//	mx := vidmix.NewMixer()
//	defer mx.Close()
//
//	out, err := mx.RegisterOutput("output_1",
//	    vidmix.WithResolution(1920, 1080),
//	    vidmix.WithMode(vidmix.ModeLive),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	mx.Start(time.Now())
//	_ = out
//
// # Architecture
//
// The library is organized into:
//   - timectx: offline and live time contexts plus the blocking-task barrier
//   - scene: persistent component tree, compiled scene graph, host contract
//   - reconcile: minimal declarative tree-diffing runtime
//   - output: per-output driver gluing a time context to a scene compiler
//   - engine: rendering engine interface, registry, and adapters
//   - resource: process-wide font/image/shader/input registries
//
// The actual pixel compositing lives behind the engine.Engine interface;
// vidmix ships an in-memory engine for tests and a client for a
// Smelter-style compositor server (engine/smelter).
package vidmix
