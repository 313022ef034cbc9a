// Package scene maintains the component tree of a vidmix output and
// compiles it into an immutable, renderer-neutral scene graph.
//
// The tree is persistent: updating a node never mutates it in place, a
// clone is produced instead, and a clone that does not touch the children
// shares the original child slice. Only the path from a changed node to
// the root is reallocated, so a concurrent reader always observes either
// the fully-old or the fully-new snapshot.
//
// The [Compiler] does not diff trees itself. It implements [Host], the
// fixed fifteen-operation backend contract of an external declarative
// tree-diffing runtime (package reconcile ships a minimal one). Every
// committed tree is compiled on demand by [Compiler.Scene]: children are
// resolved bottom-up, runs of consecutive text children are concatenated,
// and each node's Builder turns props plus grouped children into one
// [Compiled] scene-graph node.
package scene
