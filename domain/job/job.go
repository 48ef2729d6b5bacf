// Package job models the simulated file operations: a job accepts PDF
// files, advances a progress counter on a timer, and yields a placeholder
// artifact once done.
package job

import (
	"time"
)

// Operation is the kind of file job.
type Operation string

// Operations.
const (
	OpMerge   Operation = "merge"
	OpSplit   Operation = "split"
	OpConvert Operation = "convert"
)

// Valid reports whether op is a known operation.
func (op Operation) Valid() bool {
	switch op {
	case OpMerge, OpSplit, OpConvert:
		return true
	}
	return false
}

// Status is the lifecycle state of a job.
type Status string

// Statuses.
const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusDone      Status = "done"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// Terminal reports whether no further transition is possible.
func (s Status) Terminal() bool {
	return s == StatusDone || s == StatusFailed || s == StatusCancelled
}

// FileRef describes one uploaded file. Contents are never read.
type FileRef struct {
	Name     string `json:"name"`
	MIMEType string `json:"mime_type,omitempty"`
	Size     int64  `json:"size"`
}

// Artifact is the downloadable output of a finished job.
type Artifact struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Size        int    `json:"size"`
	Data        []byte `json:"-"`
}

// Job is one simulated file operation.
type Job struct {
	ID        string    `json:"id"`
	Operation Operation `json:"operation"`
	Files     []FileRef `json:"files"`
	// Target is the output format of a convert job.
	Target    string    `json:"target,omitempty"`
	Status    Status    `json:"status"`
	Progress  int       `json:"progress"`
	Error     string    `json:"error,omitempty"`
	Artifact  *Artifact `json:"artifact,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Clone returns a deep copy safe to hand to callers.
func (j *Job) Clone() *Job {
	c := *j
	c.Files = append([]FileRef(nil), j.Files...)
	if j.Artifact != nil {
		a := *j.Artifact
		a.Data = append([]byte(nil), j.Artifact.Data...)
		c.Artifact = &a
	}
	return &c
}
