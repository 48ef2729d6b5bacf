package job

import "context"

// Store persists jobs. Implementations must return copies so callers
// cannot mutate stored state.
type Store interface {
	// Save persists a new job.
	Save(ctx context.Context, j *Job) error

	// Get retrieves a job by ID.
	Get(ctx context.Context, id string) (*Job, error)

	// Update replaces an existing job.
	Update(ctx context.Context, j *Job) error

	// List returns all jobs, oldest first.
	List(ctx context.Context) ([]*Job, error)

	// Delete removes a job.
	Delete(ctx context.Context, id string) error
}
