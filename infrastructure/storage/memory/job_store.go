package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/felixgeelhaar/calc-go/domain/job"
)

// JobStore is an in-memory implementation of job.Store. Jobs are cloned on
// the way in and out so artifact bytes are never shared with callers.
type JobStore struct {
	jobs map[string]*job.Job
	mu   sync.RWMutex
}

// NewJobStore creates a new in-memory job store.
func NewJobStore() *JobStore {
	return &JobStore{
		jobs: make(map[string]*job.Job),
	}
}

// Save persists a new job.
func (s *JobStore) Save(ctx context.Context, j *job.Job) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if j == nil || j.ID == "" {
		return job.ErrInvalidJobID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[j.ID]; exists {
		return job.ErrJobExists
	}
	s.jobs[j.ID] = j.Clone()
	return nil
}

// Get retrieves a job by ID.
func (s *JobStore) Get(ctx context.Context, id string) (*job.Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, job.ErrInvalidJobID
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	j, ok := s.jobs[id]
	if !ok {
		return nil, job.ErrJobNotFound
	}
	return j.Clone(), nil
}

// Update replaces an existing job.
func (s *JobStore) Update(ctx context.Context, j *job.Job) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if j == nil || j.ID == "" {
		return job.ErrInvalidJobID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[j.ID]; !exists {
		return job.ErrJobNotFound
	}
	s.jobs[j.ID] = j.Clone()
	return nil
}

// List returns all jobs ordered by creation time, then ID.
func (s *JobStore) List(ctx context.Context) ([]*job.Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	out := make([]*job.Job, 0, len(s.jobs))
	for _, j := range s.jobs {
		out = append(out, j.Clone())
	}
	s.mu.RUnlock()

	sort.Slice(out, func(a, b int) bool {
		if !out[a].CreatedAt.Equal(out[b].CreatedAt) {
			return out[a].CreatedAt.Before(out[b].CreatedAt)
		}
		return out[a].ID < out[b].ID
	})
	return out, nil
}

// Delete removes a job by ID.
func (s *JobStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if id == "" {
		return job.ErrInvalidJobID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[id]; !exists {
		return job.ErrJobNotFound
	}
	delete(s.jobs, id)
	return nil
}

var _ job.Store = (*JobStore)(nil)
