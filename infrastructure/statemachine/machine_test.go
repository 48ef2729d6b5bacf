package statemachine

import (
	"errors"
	"sync"
	"testing"

	"github.com/felixgeelhaar/calc-go/domain/job"
)

func newJob() *job.Job {
	return &job.Job{ID: "job-1", Operation: job.OpSplit, Files: []job.FileRef{{Name: "a.pdf", Size: 1}}}
}

func TestNewJobMachine(t *testing.T) {
	t.Parallel()

	machine, err := NewJobMachine()
	if err != nil {
		t.Fatalf("NewJobMachine() error = %v", err)
	}
	if machine == nil {
		t.Fatal("NewJobMachine() returned nil machine")
	}
}

func TestLifecycle_HappyPath(t *testing.T) {
	t.Parallel()

	l, err := NewLifecycle(newJob())
	if err != nil {
		t.Fatal(err)
	}
	if l.Status() != job.StatusPending {
		t.Fatalf("initial status = %s, want pending", l.Status())
	}
	if l.Job().Status != job.StatusPending {
		t.Errorf("job status = %s, want pending", l.Job().Status)
	}

	if err := l.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if l.Job().Status != job.StatusRunning {
		t.Errorf("job status = %s, want running", l.Job().Status)
	}

	for p := 10; p <= 100; p += 10 {
		if err := l.Progress(p); err != nil {
			t.Fatalf("Progress(%d) error = %v", p, err)
		}
	}
	if got := l.Job().Progress; got != 100 {
		t.Errorf("progress = %d, want 100", got)
	}

	a := &job.Artifact{Name: "out.zip", ContentType: "application/zip", Data: []byte("zip")}
	if err := l.Complete(a); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	j := l.Job()
	if j.Status != job.StatusDone || j.Artifact == nil || j.Artifact.Name != "out.zip" {
		t.Errorf("job = %+v", j)
	}
	if !l.Terminal() {
		t.Error("done should be terminal")
	}
}

func TestLifecycle_CompleteGuardedByProgress(t *testing.T) {
	t.Parallel()

	l, _ := NewLifecycle(newJob())
	_ = l.Start()
	_ = l.Progress(60)

	if err := l.Complete(nil); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("Complete() at 60%% error = %v, want ErrInvalidTransition", err)
	}
	if l.Status() != job.StatusRunning {
		t.Errorf("status = %s, want running", l.Status())
	}
}

func TestLifecycle_ProgressIsMonotonic(t *testing.T) {
	t.Parallel()

	l, _ := NewLifecycle(newJob())
	_ = l.Start()
	_ = l.Progress(50)
	_ = l.Progress(30)
	_ = l.Progress(250)

	if got := l.Job().Progress; got != 100 {
		t.Errorf("progress = %d, want 100", got)
	}
}

func TestLifecycle_InvalidEvents(t *testing.T) {
	t.Parallel()

	l, _ := NewLifecycle(newJob())

	if err := l.Progress(10); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Progress while pending = %v, want ErrInvalidTransition", err)
	}
	if err := l.Complete(nil); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Complete while pending = %v, want ErrInvalidTransition", err)
	}
	if l.Status() != job.StatusPending {
		t.Errorf("status = %s, want pending", l.Status())
	}
}

func TestLifecycle_FailAndCancel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		start  bool
		act    func(*Lifecycle) error
		want   job.Status
		errMsg string
	}{
		{"cancel pending", false, (*Lifecycle).Cancel, job.StatusCancelled, ""},
		{"cancel running", true, (*Lifecycle).Cancel, job.StatusCancelled, ""},
		{"fail pending", false, func(l *Lifecycle) error { return l.Fail("bad file") }, job.StatusFailed, "bad file"},
		{"fail running", true, func(l *Lifecycle) error { return l.Fail("disk full") }, job.StatusFailed, "disk full"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			l, _ := NewLifecycle(newJob())
			if tt.start {
				_ = l.Start()
			}
			if err := tt.act(l); err != nil {
				t.Fatalf("transition error = %v", err)
			}
			j := l.Job()
			if j.Status != tt.want {
				t.Errorf("status = %s, want %s", j.Status, tt.want)
			}
			if j.Error != tt.errMsg {
				t.Errorf("error = %q, want %q", j.Error, tt.errMsg)
			}
		})
	}
}

func TestLifecycle_TerminalRejectsEverything(t *testing.T) {
	t.Parallel()

	l, _ := NewLifecycle(newJob())
	_ = l.Cancel()

	for name, act := range map[string]func() error{
		"start":  l.Start,
		"cancel": l.Cancel,
		"fail":   func() error { return l.Fail("x") },
	} {
		if err := act(); !errors.Is(err, job.ErrJobTerminal) {
			t.Errorf("%s after cancel = %v, want ErrJobTerminal", name, err)
		}
	}
}

func TestLifecycle_Concurrent(t *testing.T) {
	t.Parallel()

	l, _ := NewLifecycle(newJob())
	_ = l.Start()

	var wg sync.WaitGroup
	for i := 1; i <= 20; i++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			_ = l.Progress(p * 5)
		}(i)
	}
	wg.Wait()

	if got := l.Job().Progress; got != 100 {
		t.Errorf("progress = %d, want 100", got)
	}
}
