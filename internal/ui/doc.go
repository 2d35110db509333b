package ui

// Package ui contains the Fyne-based desktop user interface: the frame canvas,
// the aspect/reload/save controls, and the status line. It renders controller
// snapshots and forwards user actions back to the controller.
