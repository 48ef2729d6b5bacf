package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/felixgeelhaar/calc-go/domain/job"
)

func newJob(id string, created time.Time) *job.Job {
	return &job.Job{
		ID:        id,
		Operation: job.OpMerge,
		Files:     []job.FileRef{{Name: "a.pdf", Size: 10}, {Name: "b.pdf", Size: 20}},
		Status:    job.StatusPending,
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func TestJobStore_SaveGet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewJobStore()

	j := newJob("j1", time.Now())
	if err := s.Save(ctx, j); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := s.Save(ctx, j); !errors.Is(err, job.ErrJobExists) {
		t.Errorf("duplicate Save() error = %v, want ErrJobExists", err)
	}
	if err := s.Save(ctx, &job.Job{}); !errors.Is(err, job.ErrInvalidJobID) {
		t.Errorf("Save(empty id) error = %v, want ErrInvalidJobID", err)
	}

	got, err := s.Get(ctx, "j1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Operation != job.OpMerge || len(got.Files) != 2 {
		t.Errorf("Get() = %+v", got)
	}
	if _, err := s.Get(ctx, "nope"); !errors.Is(err, job.ErrJobNotFound) {
		t.Errorf("Get(nope) error = %v, want ErrJobNotFound", err)
	}
}

func TestJobStore_IsolatesCallers(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewJobStore()

	j := newJob("j1", time.Now())
	j.Artifact = &job.Artifact{Name: "out.pdf", Data: []byte("pdf")}
	_ = s.Save(ctx, j)

	j.Status = job.StatusDone
	j.Artifact.Data[0] = 'X'

	got, _ := s.Get(ctx, "j1")
	if got.Status != job.StatusPending {
		t.Errorf("Status = %s, stored job was mutated", got.Status)
	}
	if string(got.Artifact.Data) != "pdf" {
		t.Errorf("Artifact.Data = %q, stored bytes were mutated", got.Artifact.Data)
	}
}

func TestJobStore_Update(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewJobStore()

	if err := s.Update(ctx, newJob("j1", time.Now())); !errors.Is(err, job.ErrJobNotFound) {
		t.Errorf("Update(missing) error = %v, want ErrJobNotFound", err)
	}

	j := newJob("j1", time.Now())
	_ = s.Save(ctx, j)
	j.Status = job.StatusRunning
	j.Progress = 40
	if err := s.Update(ctx, j); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	got, _ := s.Get(ctx, "j1")
	if got.Status != job.StatusRunning || got.Progress != 40 {
		t.Errorf("Get() after Update = %+v", got)
	}
}

func TestJobStore_ListOrder(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewJobStore()

	base := time.Unix(1_700_000_000, 0)
	_ = s.Save(ctx, newJob("late", base.Add(time.Minute)))
	_ = s.Save(ctx, newJob("b", base))
	_ = s.Save(ctx, newJob("a", base))

	jobs, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	want := []string{"a", "b", "late"}
	if len(jobs) != len(want) {
		t.Fatalf("List() returned %d jobs", len(jobs))
	}
	for i, id := range want {
		if jobs[i].ID != id {
			t.Errorf("List()[%d] = %s, want %s", i, jobs[i].ID, id)
		}
	}
}

func TestJobStore_Delete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewJobStore()

	_ = s.Save(ctx, newJob("j1", time.Now()))
	if err := s.Delete(ctx, "j1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := s.Delete(ctx, "j1"); !errors.Is(err, job.ErrJobNotFound) {
		t.Errorf("second Delete() error = %v, want ErrJobNotFound", err)
	}
}
