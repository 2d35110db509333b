package platform

// Package platform contains OS integration glue: filesystem helpers and
// revealing saved stills in the system file manager.
