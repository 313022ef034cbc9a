// Package resource holds the process-wide registries for resources a
// composition references by id: fonts, images, shaders, and media inputs.
//
// Registration is explicit: callers register under an id and components
// reference that id in the scene graph; there is no implicit discovery.
// Each registry has a RegisterAsync variant that runs the fetch-and-parse
// work on its own goroutine while holding a blocking task on the output's
// time context. Offline outputs therefore never finalize a frame that
// depends on a resource still in flight; live outputs are unaffected (the
// live context does not implement the blocking capability).
//
// A registration that fails still releases its blocking task; the error
// travels through the settle callback, never through the barrier.
package resource
