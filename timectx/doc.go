// Package timectx provides the two timing disciplines that drive vidmix
// outputs: a deterministic, event-driven virtual clock for offline
// rendering and a wall-clock driven context for live rendering.
//
// Both variants implement [TimeContext]: components schedule points of
// interest with AddTimestamp, read the current timestamp with TimestampMs,
// and observe changes through the pull-based GetSnapshot/Subscribe pair.
//
// The offline variant additionally carries a [Barrier] of blocking tasks.
// While any task is outstanding the virtual clock refuses to advance, which
// is what makes offline rendering frame-accurate: every resource a frame
// depends on is fully resolved before the frame is finalized. The live
// variant has no such gate; real time cannot be paused, so content whose
// prerequisites are missing renders a fallback and updates once ready.
package timectx
