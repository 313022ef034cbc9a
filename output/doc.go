// Package output glues one time context and one scene compiler together
// per registered output and decides when a fresh scene snapshot is handed
// to the rendering engine.
package output
