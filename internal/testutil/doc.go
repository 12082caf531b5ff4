// Package testutil provides shared test helpers for overlook.
//
// # Frames
//
// Frames is a manual FrameRequester. Callbacks queue up until the test calls
// Fire, which simulates one display refresh:
//
//	frames := testutil.NewFrames()
//	a := animator.Initialize(frames, 0, draw)
//	a.Update(1, false)
//	frames.Fire()
//
// # Recorder
//
// Recorder collects messages sent to a dispatch function so tests can assert
// on what reached the update loop.
//
// # Contexts
//
// ContextWithTimeout returns a context bounded by the test deadline, for
// tests that run a real UI loop.
package testutil
