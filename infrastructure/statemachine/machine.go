// Package statemachine drives the job lifecycle with statekit.
package statemachine

import (
	"github.com/felixgeelhaar/statekit"

	"github.com/felixgeelhaar/calc-go/domain/job"
)

// Context carries the job through the state machine.
type Context struct {
	Job *job.Job
}

// State IDs as StateID type for statekit.
const (
	statePending   statekit.StateID = statekit.StateID(job.StatusPending)
	stateRunning   statekit.StateID = statekit.StateID(job.StatusRunning)
	stateDone      statekit.StateID = statekit.StateID(job.StatusDone)
	stateFailed    statekit.StateID = statekit.StateID(job.StatusFailed)
	stateCancelled statekit.StateID = statekit.StateID(job.StatusCancelled)
)

// Events accepted by the job machine.
const (
	EventStart    statekit.EventType = "START"
	EventProgress statekit.EventType = "PROGRESS"
	EventComplete statekit.EventType = "COMPLETE"
	EventFail     statekit.EventType = "FAIL"
	EventCancel   statekit.EventType = "CANCEL"
)

// allowed lists the events each non-final state handles. Events outside
// this table are rejected before reaching the interpreter.
var allowed = map[job.Status]map[statekit.EventType]bool{
	job.StatusPending: {EventStart: true, EventFail: true, EventCancel: true},
	job.StatusRunning: {EventProgress: true, EventComplete: true, EventFail: true, EventCancel: true},
}

// NewJobMachine creates the job statechart:
//
//	pending --START--> running --COMPLETE[progress>=100]--> done
//	pending|running --FAIL--> failed
//	pending|running --CANCEL--> cancelled
//	running --PROGRESS--> running
func NewJobMachine() (*statekit.MachineConfig[*Context], error) {
	return statekit.NewMachine[*Context]("job").
		WithInitial(statePending).
		WithContext(&Context{}).
		WithAction("syncStatus", syncStatus).
		WithAction("recordProgress", recordProgress).
		WithAction("recordFailure", recordFailure).
		WithAction("attachArtifact", attachArtifact).
		WithGuard("progressComplete", guardProgressComplete).
		State(statePending).
			OnEntry("syncStatus").
			On(EventStart).Target(stateRunning).
			On(EventFail).Target(stateFailed).Do("recordFailure").
			On(EventCancel).Target(stateCancelled).
			Done().
		State(stateRunning).
			OnEntry("syncStatus").
			On(EventProgress).Target(stateRunning).Do("recordProgress").
			On(EventComplete).Target(stateDone).Guard("progressComplete").Do("attachArtifact").
			On(EventFail).Target(stateFailed).Do("recordFailure").
			On(EventCancel).Target(stateCancelled).
			Done().
		State(stateDone).
			Final().
			OnEntry("syncStatus").
			Done().
		State(stateFailed).
			Final().
			OnEntry("syncStatus").
			Done().
		State(stateCancelled).
			Final().
			OnEntry("syncStatus").
			Done().
		Build()
}
