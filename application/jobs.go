package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/calc-go/domain/job"
	"github.com/felixgeelhaar/calc-go/infrastructure/logging"
	"github.com/felixgeelhaar/calc-go/infrastructure/statemachine"
	"github.com/felixgeelhaar/calc-go/infrastructure/storage/memory"
	"github.com/felixgeelhaar/calc-go/pack/pdf"
)

// ErrServiceClosed is returned by Submit after Close.
var ErrServiceClosed = errors.New("job service closed")

// JobConfig configures the job service.
type JobConfig struct {
	// Store persists job snapshots. Defaults to an in-memory store.
	Store job.Store

	// Provider produces artifacts. Defaults to the simulated provider.
	Provider pdf.Provider

	// TickInterval is the time between progress steps.
	TickInterval time.Duration

	// StepPercent is added to progress on every tick.
	StepPercent int

	// MaxFileSize is the per-file limit in bytes.
	MaxFileSize int64
}

// DefaultJobConfig returns a configuration with sensible defaults.
func DefaultJobConfig() JobConfig {
	return JobConfig{
		TickInterval: 200 * time.Millisecond,
		StepPercent:  10,
		MaxFileSize:  pdf.DefaultMaxFileSize,
	}
}

// JobService runs simulated file jobs. Each job advances on its own ticker
// goroutine bound to a context that Cancel and Close end.
type JobService struct {
	store    job.Store
	provider pdf.Provider
	cfg      JobConfig

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.Mutex
	active map[string]*activeJob
	closed bool
}

type activeJob struct {
	lc      *statemachine.Lifecycle
	cancel  context.CancelFunc
	persist sync.Mutex
}

// NewJobService creates a job service.
func NewJobService(cfg JobConfig) *JobService {
	def := DefaultJobConfig()
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = def.TickInterval
	}
	if cfg.StepPercent <= 0 {
		cfg.StepPercent = def.StepPercent
	}
	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = def.MaxFileSize
	}
	if cfg.Store == nil {
		cfg.Store = memory.NewJobStore()
	}
	if cfg.Provider == nil {
		cfg.Provider = pdf.NewSimulatedProvider()
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &JobService{
		store:    cfg.Store,
		provider: cfg.Provider,
		cfg:      cfg,
		ctx:      ctx,
		cancel:   cancel,
		active:   make(map[string]*activeJob),
	}
}

// Submit validates the files, stores a pending job and starts it.
func (s *JobService) Submit(ctx context.Context, op job.Operation, files []job.FileRef, target string) (*job.Job, error) {
	if err := job.Validate(op, files, target, s.cfg.MaxFileSize); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	j := &job.Job{
		ID:        uuid.NewString(),
		Operation: op,
		Files:     append([]job.FileRef(nil), files...),
		Target:    target,
		CreatedAt: now,
		UpdatedAt: now,
	}

	lc, err := statemachine.NewLifecycle(j)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrServiceClosed
	}

	if err := s.store.Save(ctx, lc.Job()); err != nil {
		return nil, fmt.Errorf("save job: %w", err)
	}

	runCtx, cancel := context.WithCancel(s.ctx)
	a := &activeJob{lc: lc, cancel: cancel}
	s.active[j.ID] = a

	s.wg.Add(1)
	go s.run(runCtx, j.ID, a)

	logging.Info().
		Add(logging.JobID(j.ID)).
		Add(logging.Operation(string(op))).
		Add(logging.Int("files", len(files))).
		Msg("job submitted")

	return lc.Job(), nil
}

func (s *JobService) run(ctx context.Context, id string, a *activeJob) {
	defer s.wg.Done()
	defer func() {
		a.cancel()
		s.mu.Lock()
		delete(s.active, id)
		s.mu.Unlock()
	}()

	if err := a.lc.Start(); err != nil {
		return
	}
	s.persist(a)

	ticker := time.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if a.lc.Cancel() == nil {
				s.persist(a)
				logging.Info().Add(logging.JobID(id)).Msg("job cancelled")
			}
			return

		case <-ticker.C:
			progress := a.lc.Job().Progress + s.cfg.StepPercent
			if err := a.lc.Progress(progress); err != nil {
				// Cancelled between ticks.
				return
			}
			s.persist(a)
			if progress < 100 {
				continue
			}
			s.finish(ctx, id, a)
			return
		}
	}
}

func (s *JobService) finish(ctx context.Context, id string, a *activeJob) {
	artifact, err := pdf.Run(ctx, s.provider, a.lc.Job())
	if err != nil {
		if a.lc.Fail(err.Error()) == nil {
			s.persist(a)
			logging.Warn().Add(logging.JobID(id)).Add(logging.ErrorField(err)).Msg("job failed")
		}
		return
	}
	if a.lc.Complete(artifact) == nil {
		s.persist(a)
		logging.Info().Add(logging.JobID(id)).Add(logging.Str("artifact", artifact.Name)).Msg("job done")
	}
}

// persist writes the latest snapshot. The snapshot is taken under the
// job's lock so the last write always reflects the newest state.
func (s *JobService) persist(a *activeJob) {
	a.persist.Lock()
	defer a.persist.Unlock()

	j := a.lc.Job()
	if err := s.store.Update(context.Background(), j); err != nil {
		logging.Error().Add(logging.JobID(j.ID)).Add(logging.ErrorField(err)).Msg("failed to persist job")
	}
}

// Get returns a job by ID.
func (s *JobService) Get(ctx context.Context, id string) (*job.Job, error) {
	return s.store.Get(ctx, id)
}

// List returns all jobs, oldest first.
func (s *JobService) List(ctx context.Context) ([]*job.Job, error) {
	return s.store.List(ctx)
}

// Cancel stops a pending or running job. Finished jobs return
// job.ErrJobTerminal.
func (s *JobService) Cancel(ctx context.Context, id string) (*job.Job, error) {
	s.mu.Lock()
	a, ok := s.active[id]
	s.mu.Unlock()

	if !ok {
		j, err := s.store.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if j.Status.Terminal() {
			return nil, fmt.Errorf("%w: %s is %s", job.ErrJobTerminal, id, j.Status)
		}
		return nil, fmt.Errorf("%w: %s", job.ErrJobNotFound, id)
	}

	if err := a.lc.Cancel(); err != nil {
		return nil, err
	}
	a.cancel()
	s.persist(a)
	return a.lc.Job(), nil
}

// Download returns the artifact of a done job.
func (s *JobService) Download(ctx context.Context, id string) (*job.Artifact, error) {
	j, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if j.Status != job.StatusDone || j.Artifact == nil {
		return nil, fmt.Errorf("%w: %s is %s", job.ErrJobNotReady, id, j.Status)
	}
	return j.Artifact, nil
}

// Close cancels running jobs and waits for their goroutines to exit.
func (s *JobService) Close(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
