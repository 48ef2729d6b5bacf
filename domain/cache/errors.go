package cache

import "errors"

// Errors returned by result cache backends. A miss is not an error: Get
// reports it through its found flag.
var (
	// ErrInvalidKey is returned for an empty result key.
	ErrInvalidKey = errors.New("invalid cache key")

	// ErrConnectionFailed is returned when a remote or on-disk backend
	// cannot be reached.
	ErrConnectionFailed = errors.New("cache connection failed")

	// ErrOperationTimeout is returned when a backend call outlives its context.
	ErrOperationTimeout = errors.New("cache operation timeout")
)
