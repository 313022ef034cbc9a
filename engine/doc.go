// Package engine defines the rendering-engine contract of vidmix and a
// name-keyed registry of engine factories.
//
// An Engine receives immutable scene-graph snapshots as the desired state
// of an output; the pixel compositing behind that contract is out of
// vidmix's scope. The package ships [Memory], an in-process engine that
// records snapshots (used in tests and offline golden runs); package
// engine/smelter provides a client for a Smelter-style compositor server.
package engine
