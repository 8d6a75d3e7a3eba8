package client

import "errors"

var (
	// ErrServerNotRunning is returned when nothing is listening at the
	// server address or socket.
	ErrServerNotRunning = errors.New("server not running")

	// ErrPermissionDenied is returned when the unix socket cannot be opened.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNotFound is returned when 404 is returned from the server
	ErrNotFound = errors.New("404 not found")
)
