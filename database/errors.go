package database

import "errors"

var (
	// ErrNotConnected is returned when an operation is attempted before a
	// store connection has been established.
	ErrNotConnected = errors.New("database: not connected")

	// ErrNotFound is returned when a lookup matches no document.
	ErrNotFound = errors.New("database: document not found")
)
