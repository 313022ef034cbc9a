// Package smelter is an HTTP client for a Smelter rendering server.
//
// The client implements engine.Engine, so outputs can push compiled
// scene graphs straight to a running server:
//
//	cli := smelter.New(smelter.WithBaseURL("http://127.0.0.1:8081"))
//	smelter.RegisterEngine(cli)
//
// Beyond scene updates the client covers the rest of the server API:
// input/output/image/shader/web-renderer registration, font upload,
// pipeline start and reset, keyframe requests, and the websocket event
// stream (see Client.Events).
package smelter
