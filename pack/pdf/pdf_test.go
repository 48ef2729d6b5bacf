package pdf

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/felixgeelhaar/calc-go/domain/formula"
	"github.com/felixgeelhaar/calc-go/domain/job"
)

func TestNew(t *testing.T) {
	t.Parallel()

	p := New(PackConfig{})
	if p.Name != "pdf" {
		t.Errorf("Name = %s, want pdf", p.Name)
	}
	if _, ok := p.GetFormula("pdf_validate"); !ok {
		t.Error("pdf_validate missing")
	}
}

func TestValidateFormula(t *testing.T) {
	t.Parallel()

	f, _ := New(PackConfig{MaxFileSize: 1024}).GetFormula("pdf_validate")

	tests := []struct {
		name   string
		input  string
		status formula.Status
	}{
		{"merge ok", `{"operation":"merge","files":[{"name":"a.pdf","size":10},{"name":"b.pdf","size":20}]}`, formula.StatusOK},
		{"merge one file", `{"operation":"merge","files":[{"name":"a.pdf","size":10}]}`, formula.StatusInvalid},
		{"split not pdf", `{"operation":"split","files":[{"name":"a.txt","mime_type":"text/plain","size":10}]}`, formula.StatusInvalid},
		{"split by mime", `{"operation":"split","files":[{"name":"scan","mime_type":"application/pdf","size":10}]}`, formula.StatusOK},
		{"too large", `{"operation":"split","files":[{"name":"a.pdf","size":2048}]}`, formula.StatusInvalid},
		{"convert ok", `{"operation":"convert","target":"png","files":[{"name":"a.pdf","size":1}]}`, formula.StatusOK},
		{"convert bad target", `{"operation":"convert","target":"gif","files":[{"name":"a.pdf","size":1}]}`, formula.StatusInvalid},
		{"unknown op", `{"operation":"rotate","files":[{"name":"a.pdf","size":1}]}`, formula.StatusInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res, err := f.Evaluate(context.Background(), json.RawMessage(tt.input))
			if err != nil {
				t.Fatalf("Evaluate() error = %v", err)
			}
			if res.Status != tt.status {
				t.Errorf("status = %s (%s %v), want %s", res.Status, res.Reason, res.Violations, tt.status)
			}
		})
	}
}

func TestValidateFormula_HumanSizes(t *testing.T) {
	t.Parallel()

	f, _ := New(PackConfig{}).GetFormula("pdf_validate")
	res, _ := f.Evaluate(context.Background(), json.RawMessage(`{"operation":"split","files":[{"name":"a.pdf","size":60000000}]}`))
	if res.IsOK() || len(res.Violations) != 1 {
		t.Fatalf("result = %+v", res)
	}
	if msg := res.Violations[0].Message; !strings.Contains(msg, "57 MiB") || !strings.Contains(msg, "50 MiB") {
		t.Errorf("violation = %q, want humanized sizes", msg)
	}

	res, _ = f.Evaluate(context.Background(), json.RawMessage(`{"operation":"split","files":[{"name":"a.pdf","size":1536}]}`))
	var out validateOutput
	if err := res.Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.TotalHuman != "1.5 KiB" || out.Limit != "50 MiB" {
		t.Errorf("output = %+v", out)
	}
}

func TestRun(t *testing.T) {
	t.Parallel()

	p := NewSimulatedProvider()
	ctx := context.Background()

	tests := []struct {
		name        string
		job         *job.Job
		wantName    string
		contentType string
		contains    string
	}{
		{
			"merge",
			&job.Job{Operation: job.OpMerge, Files: []job.FileRef{{Name: "a.pdf"}, {Name: "b.pdf"}}},
			"merged.pdf", "application/pdf", "a.pdf, b.pdf",
		},
		{
			"split",
			&job.Job{Operation: job.OpSplit, Files: []job.FileRef{{Name: "report.pdf"}}},
			"report-pages.zip", "application/zip", "report.pdf",
		},
		{
			"convert",
			&job.Job{Operation: job.OpConvert, Target: "DOCX", Files: []job.FileRef{{Name: "cv.pdf"}}},
			"cv.docx", contentTypes["docx"], "docx conversion",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			a, err := Run(ctx, p, tt.job)
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if a.Name != tt.wantName || a.ContentType != tt.contentType {
				t.Errorf("artifact = %s (%s)", a.Name, a.ContentType)
			}
			if a.Size != len(a.Data) || !strings.Contains(string(a.Data), tt.contains) {
				t.Errorf("data = %q", a.Data)
			}
		})
	}
}

func TestRun_Errors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	one := []job.FileRef{{Name: "a.pdf"}}

	if _, err := Run(ctx, nil, &job.Job{Operation: job.OpSplit, Files: one}); !errors.Is(err, ErrProviderNotConfigured) {
		t.Errorf("nil provider error = %v", err)
	}
	if _, err := Run(ctx, NewSimulatedProvider(), &job.Job{Operation: job.OpSplit}); !errors.Is(err, ErrNoFiles) {
		t.Errorf("no files error = %v", err)
	}
	if _, err := Run(ctx, NewSimulatedProvider(), &job.Job{Operation: "rotate", Files: one}); !errors.Is(err, job.ErrUnknownOperation) {
		t.Errorf("unknown op error = %v", err)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := Run(cancelled, NewSimulatedProvider(), &job.Job{Operation: job.OpSplit, Files: one}); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled error = %v", err)
	}
}
