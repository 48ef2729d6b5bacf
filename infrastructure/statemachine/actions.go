package statemachine

import (
	"time"

	"github.com/felixgeelhaar/statekit"

	"github.com/felixgeelhaar/calc-go/domain/job"
)

// Actions receive a pointer to the context. Since the context is *Context,
// actions receive **Context.

// statusForEvent is the state an event leads to when it is accepted.
func statusForEvent(t statekit.EventType) job.Status {
	switch t {
	case EventStart, EventProgress:
		return job.StatusRunning
	case EventComplete:
		return job.StatusDone
	case EventFail:
		return job.StatusFailed
	case EventCancel:
		return job.StatusCancelled
	default:
		return ""
	}
}

func syncStatus(ctx **Context, event statekit.Event) {
	if ctx == nil || *ctx == nil || (*ctx).Job == nil {
		return
	}
	j := (*ctx).Job
	if s := statusForEvent(event.Type); s != "" {
		j.Status = s
	} else if j.Status == "" {
		j.Status = job.StatusPending
	}
	j.UpdatedAt = time.Now().UTC()
}

// recordProgress never lowers progress and clamps it to 100.
func recordProgress(ctx **Context, event statekit.Event) {
	if ctx == nil || *ctx == nil || (*ctx).Job == nil {
		return
	}
	p, ok := event.Payload.(int)
	if !ok {
		return
	}
	j := (*ctx).Job
	if p > 100 {
		p = 100
	}
	if p > j.Progress {
		j.Progress = p
	}
}

func recordFailure(ctx **Context, event statekit.Event) {
	if ctx == nil || *ctx == nil || (*ctx).Job == nil {
		return
	}
	if reason, ok := event.Payload.(string); ok {
		(*ctx).Job.Error = reason
	}
}

func attachArtifact(ctx **Context, event statekit.Event) {
	if ctx == nil || *ctx == nil || (*ctx).Job == nil {
		return
	}
	if a, ok := event.Payload.(*job.Artifact); ok {
		(*ctx).Job.Artifact = a
	}
	(*ctx).Job.Progress = 100
}
