package job

import "errors"

// Domain errors for file jobs.
var (
	// ErrJobNotFound is returned when a job does not exist.
	ErrJobNotFound = errors.New("job not found")

	// ErrInvalidJobID is returned for an empty job ID.
	ErrInvalidJobID = errors.New("invalid job ID")

	// ErrJobExists is returned when saving a job whose ID is taken.
	ErrJobExists = errors.New("job already exists")

	// ErrInvalidFile is returned when a file fails the type or size checks.
	ErrInvalidFile = errors.New("invalid file")

	// ErrUnknownOperation is returned for an operation other than merge, split or convert.
	ErrUnknownOperation = errors.New("unknown job operation")

	// ErrJobNotReady is returned when downloading a job that is not done.
	ErrJobNotReady = errors.New("job not ready")

	// ErrJobTerminal is returned when cancelling a finished job.
	ErrJobTerminal = errors.New("job already finished")
)
