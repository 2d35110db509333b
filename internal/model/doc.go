package model

// Package model defines domain data structures used across the app: the
// current still frame and the viewer state enum. Structures are designed for
// direct use by the controller and explicit state transitions.
