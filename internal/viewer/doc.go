package viewer

// Package viewer implements the controller that owns the current frame and
// the reload configuration. It drives the fetch/decode cycle, the auto-reload
// timer, aspect correction, and saving, and pushes every change to the UI
// through a single update callback.
