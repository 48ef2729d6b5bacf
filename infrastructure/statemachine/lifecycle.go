package statemachine

import (
	"errors"
	"fmt"
	"sync"

	"github.com/felixgeelhaar/statekit"

	"github.com/felixgeelhaar/calc-go/domain/job"
)

// ErrInvalidTransition is returned when an event is not accepted in the
// current state or its guard fails.
var ErrInvalidTransition = errors.New("invalid job transition")

// Lifecycle owns one job and moves it through the statechart. It is safe
// for concurrent use.
type Lifecycle struct {
	mu     sync.Mutex
	interp *statekit.Interpreter[*Context]
	ctx    *Context
}

// NewLifecycle starts a machine for j in the pending state.
func NewLifecycle(j *job.Job) (*Lifecycle, error) {
	machine, err := NewJobMachine()
	if err != nil {
		return nil, fmt.Errorf("failed to build job machine: %w", err)
	}

	c := &Context{Job: j}
	interp := statekit.NewInterpreter(machine)
	interp.UpdateContext(func(cc **Context) {
		*cc = c
	})
	interp.Start()
	j.Status = job.Status(interp.State().Value)

	return &Lifecycle{interp: interp, ctx: c}, nil
}

// Status returns the current job status.
func (l *Lifecycle) Status() job.Status {
	l.mu.Lock()
	defer l.mu.Unlock()
	return job.Status(l.interp.State().Value)
}

// Job returns a copy of the job.
func (l *Lifecycle) Job() *job.Job {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ctx.Job.Clone()
}

// Terminal reports whether the job reached a final state.
func (l *Lifecycle) Terminal() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.interp.Done()
}

// Start moves a pending job to running.
func (l *Lifecycle) Start() error {
	return l.send(EventStart, nil)
}

// Progress records progress on a running job.
func (l *Lifecycle) Progress(percent int) error {
	return l.send(EventProgress, percent)
}

// Complete finishes a running job whose progress reached 100.
func (l *Lifecycle) Complete(a *job.Artifact) error {
	return l.send(EventComplete, a)
}

// Fail marks the job failed with reason.
func (l *Lifecycle) Fail(reason string) error {
	return l.send(EventFail, reason)
}

// Cancel cancels a pending or running job. Cancelling a finished job
// returns job.ErrJobTerminal.
func (l *Lifecycle) Cancel() error {
	return l.send(EventCancel, nil)
}

func (l *Lifecycle) send(t statekit.EventType, payload any) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	from := job.Status(l.interp.State().Value)
	if from.Terminal() {
		return fmt.Errorf("%w: %s is %s", job.ErrJobTerminal, l.ctx.Job.ID, from)
	}
	if !allowed[from][t] {
		return fmt.Errorf("%w: %s in %s", ErrInvalidTransition, t, from)
	}

	l.interp.Send(statekit.Event{Type: t, Payload: payload})
	l.ctx.Job.Status = job.Status(l.interp.State().Value)

	if want := statusForEvent(t); !l.interp.Matches(statekit.StateID(want)) {
		return fmt.Errorf("%w: %s rejected in %s", ErrInvalidTransition, t, from)
	}
	return nil
}
