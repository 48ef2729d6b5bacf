// Package pdf provides the simulated PDF operations behind file jobs and a
// formula that checks a file list before a job is submitted.
package pdf

import (
	"context"
	"errors"

	"github.com/felixgeelhaar/calc-go/domain/job"
)

// Common errors for PDF operations.
var (
	ErrProviderNotConfigured = errors.New("pdf provider not configured")
	ErrNoFiles               = errors.New("no files given")
)

// Provider produces the artifact of a file job.
type Provider interface {
	// Name returns the provider identifier.
	Name() string

	// Merge combines files into one document.
	Merge(ctx context.Context, req MergeRequest) (*job.Artifact, error)

	// Split breaks a document into pages.
	Split(ctx context.Context, req SplitRequest) (*job.Artifact, error)

	// Convert renders a document in another format.
	Convert(ctx context.Context, req ConvertRequest) (*job.Artifact, error)
}

// MergeRequest lists the files to merge in order.
type MergeRequest struct {
	Files []job.FileRef `json:"files"`
}

// SplitRequest names the file to split.
type SplitRequest struct {
	File job.FileRef `json:"file"`
}

// ConvertRequest names the file and the target format.
type ConvertRequest struct {
	File   job.FileRef `json:"file"`
	Target string      `json:"target"`
}

// Run dispatches a job to the matching provider operation.
func Run(ctx context.Context, p Provider, j *job.Job) (*job.Artifact, error) {
	if p == nil {
		return nil, ErrProviderNotConfigured
	}
	if len(j.Files) == 0 {
		return nil, ErrNoFiles
	}
	switch j.Operation {
	case job.OpMerge:
		return p.Merge(ctx, MergeRequest{Files: j.Files})
	case job.OpSplit:
		return p.Split(ctx, SplitRequest{File: j.Files[0]})
	case job.OpConvert:
		return p.Convert(ctx, ConvertRequest{File: j.Files[0], Target: j.Target})
	default:
		return nil, job.ErrUnknownOperation
	}
}
