package pdf

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/felixgeelhaar/calc-go/domain/job"
)

// SimulatedProvider returns placeholder text instead of real documents.
type SimulatedProvider struct{}

// NewSimulatedProvider creates the placeholder provider.
func NewSimulatedProvider() *SimulatedProvider {
	return &SimulatedProvider{}
}

// Name returns the provider name.
func (p *SimulatedProvider) Name() string {
	return "simulated"
}

// Merge returns merged.pdf listing the inputs.
func (p *SimulatedProvider) Merge(ctx context.Context, req MergeRequest) (*job.Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(req.Files) == 0 {
		return nil, ErrNoFiles
	}
	names := make([]string, len(req.Files))
	for i, f := range req.Files {
		names[i] = f.Name
	}
	body := fmt.Sprintf("Placeholder merged document.\nSources: %s\n", strings.Join(names, ", "))
	return artifact("merged.pdf", "application/pdf", body), nil
}

// Split returns a zip-named placeholder for the pages of the file.
func (p *SimulatedProvider) Split(ctx context.Context, req SplitRequest) (*job.Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	body := fmt.Sprintf("Placeholder split archive.\nSource: %s\n", req.File.Name)
	return artifact(stem(req.File.Name)+"-pages.zip", "application/zip", body), nil
}

// Convert returns a placeholder in the target format.
func (p *SimulatedProvider) Convert(ctx context.Context, req ConvertRequest) (*job.Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	target := strings.ToLower(req.Target)
	ct, ok := contentTypes[target]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported convert target %q", job.ErrInvalidFile, req.Target)
	}
	body := fmt.Sprintf("Placeholder %s conversion.\nSource: %s\n", target, req.File.Name)
	return artifact(stem(req.File.Name)+"."+target, ct, body), nil
}

var contentTypes = map[string]string{
	"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"txt":  "text/plain",
	"jpg":  "image/jpeg",
	"png":  "image/png",
}

func artifact(name, contentType, body string) *job.Artifact {
	return &job.Artifact{
		Name:        name,
		ContentType: contentType,
		Size:        len(body),
		Data:        []byte(body),
	}
}

func stem(name string) string {
	base := filepath.Base(name)
	if s := strings.TrimSuffix(base, filepath.Ext(base)); s != "" {
		return s
	}
	return "document"
}

var _ Provider = (*SimulatedProvider)(nil)
