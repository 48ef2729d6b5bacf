package application_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/felixgeelhaar/calc-go/application"
	"github.com/felixgeelhaar/calc-go/domain/job"
	"github.com/felixgeelhaar/calc-go/pack/pdf"
)

func newJobService(t *testing.T, tick time.Duration, provider pdf.Provider) *application.JobService {
	t.Helper()
	s := application.NewJobService(application.JobConfig{
		TickInterval: tick,
		StepPercent:  10,
		Provider:     provider,
	})
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.Close(ctx)
	})
	return s
}

func waitFor(t *testing.T, s *application.JobService, id string, want job.Status) *job.Job {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		j, err := s.Get(context.Background(), id)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if j.Status == want {
			return j
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("job %s never reached %s", id, want)
	return nil
}

var onePDF = []job.FileRef{{Name: "report.pdf", MIMEType: "application/pdf", Size: 1024}}

func TestJobService_RunsToDone(t *testing.T) {
	t.Parallel()

	s := newJobService(t, time.Millisecond, nil)
	ctx := context.Background()

	j, err := s.Submit(ctx, job.OpMerge, []job.FileRef{{Name: "a.pdf", Size: 1}, {Name: "b.pdf", Size: 2}}, "")
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if j.ID == "" || j.Status != job.StatusPending {
		t.Errorf("submitted job = %+v", j)
	}

	done := waitFor(t, s, j.ID, job.StatusDone)
	if done.Progress != 100 {
		t.Errorf("progress = %d, want 100", done.Progress)
	}

	a, err := s.Download(ctx, j.ID)
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	if a.Name != "merged.pdf" || !strings.Contains(string(a.Data), "a.pdf, b.pdf") {
		t.Errorf("artifact = %s %q", a.Name, a.Data)
	}

	if _, err := s.Cancel(ctx, j.ID); !errors.Is(err, job.ErrJobTerminal) {
		t.Errorf("Cancel(done) error = %v, want ErrJobTerminal", err)
	}
}

func TestJobService_SubmitValidation(t *testing.T) {
	t.Parallel()

	s := newJobService(t, time.Millisecond, nil)
	ctx := context.Background()

	tests := []struct {
		name    string
		op      job.Operation
		files   []job.FileRef
		target  string
		wantErr error
	}{
		{"merge one file", job.OpMerge, onePDF, "", job.ErrInvalidFile},
		{"split two files", job.OpSplit, append(onePDF, onePDF...), "", job.ErrInvalidFile},
		{"not a pdf", job.OpSplit, []job.FileRef{{Name: "a.png", MIMEType: "image/png", Size: 1}}, "", job.ErrInvalidFile},
		{"too large", job.OpSplit, []job.FileRef{{Name: "a.pdf", Size: 51 << 20}}, "", job.ErrInvalidFile},
		{"bad target", job.OpConvert, onePDF, "gif", job.ErrInvalidFile},
		{"unknown op", "rotate", onePDF, "", job.ErrUnknownOperation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := s.Submit(ctx, tt.op, tt.files, tt.target); !errors.Is(err, tt.wantErr) {
				t.Errorf("Submit() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	jobs, _ := s.List(ctx)
	if len(jobs) != 0 {
		t.Errorf("rejected submissions stored %d jobs", len(jobs))
	}
}

func TestJobService_Cancel(t *testing.T) {
	t.Parallel()

	s := newJobService(t, time.Hour, nil)
	ctx := context.Background()

	j, err := s.Submit(ctx, job.OpSplit, onePDF, "")
	if err != nil {
		t.Fatal(err)
	}
	waitFor(t, s, j.ID, job.StatusRunning)

	cancelled, err := s.Cancel(ctx, j.ID)
	if err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}
	if cancelled.Status != job.StatusCancelled {
		t.Errorf("status = %s, want cancelled", cancelled.Status)
	}
	waitFor(t, s, j.ID, job.StatusCancelled)

	if _, err := s.Download(ctx, j.ID); !errors.Is(err, job.ErrJobNotReady) {
		t.Errorf("Download(cancelled) error = %v, want ErrJobNotReady", err)
	}
	if _, err := s.Cancel(ctx, "missing"); !errors.Is(err, job.ErrJobNotFound) {
		t.Errorf("Cancel(missing) error = %v", err)
	}
}

func TestJobService_DownloadBeforeDone(t *testing.T) {
	t.Parallel()

	s := newJobService(t, time.Hour, nil)
	ctx := context.Background()

	j, _ := s.Submit(ctx, job.OpConvert, onePDF, "txt")
	if _, err := s.Download(ctx, j.ID); !errors.Is(err, job.ErrJobNotReady) {
		t.Errorf("Download(running) error = %v, want ErrJobNotReady", err)
	}
}

type failingProvider struct{ *pdf.SimulatedProvider }

func (failingProvider) Split(context.Context, pdf.SplitRequest) (*job.Artifact, error) {
	return nil, errors.New("disk full")
}

func TestJobService_ProviderFailure(t *testing.T) {
	t.Parallel()

	s := newJobService(t, time.Millisecond, failingProvider{pdf.NewSimulatedProvider()})

	j, err := s.Submit(context.Background(), job.OpSplit, onePDF, "")
	if err != nil {
		t.Fatal(err)
	}
	failed := waitFor(t, s, j.ID, job.StatusFailed)
	if failed.Error != "disk full" {
		t.Errorf("error = %q, want disk full", failed.Error)
	}
}

func TestJobService_CloseCancelsRunningJobs(t *testing.T) {
	t.Parallel()

	s := application.NewJobService(application.JobConfig{TickInterval: time.Hour})
	ctx := context.Background()

	j, err := s.Submit(ctx, job.OpSplit, onePDF, "")
	if err != nil {
		t.Fatal(err)
	}

	closeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Close(closeCtx); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	got, _ := s.Get(ctx, j.ID)
	if got.Status != job.StatusCancelled {
		t.Errorf("status after Close = %s, want cancelled", got.Status)
	}
	if _, err := s.Submit(ctx, job.OpSplit, onePDF, ""); !errors.Is(err, application.ErrServiceClosed) {
		t.Errorf("Submit after Close error = %v", err)
	}
}
