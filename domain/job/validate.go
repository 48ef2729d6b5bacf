package job

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
)

// ConvertTargets lists the formats a convert job accepts.
var ConvertTargets = []string{"docx", "txt", "jpg", "png"}

// Validate checks a request before a job is created: every file must be at
// most maxSize bytes and look like a PDF by MIME type or extension; merge
// takes two or more files, split and convert exactly one.
func Validate(op Operation, files []FileRef, target string, maxSize int64) error {
	if !op.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownOperation, op)
	}
	switch op {
	case OpMerge:
		if len(files) < 2 {
			return fmt.Errorf("%w: merge needs at least 2 files, got %d", ErrInvalidFile, len(files))
		}
	default:
		if len(files) != 1 {
			return fmt.Errorf("%w: %s needs exactly 1 file, got %d", ErrInvalidFile, op, len(files))
		}
	}
	for _, f := range files {
		if err := ValidateFile(f, maxSize); err != nil {
			return err
		}
	}
	if op == OpConvert {
		for _, t := range ConvertTargets {
			if strings.EqualFold(target, t) {
				return nil
			}
		}
		return fmt.Errorf("%w: unsupported convert target %q", ErrInvalidFile, target)
	}
	return nil
}

// ValidateFile checks one file's type and size.
func ValidateFile(f FileRef, maxSize int64) error {
	if strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("%w: file name is required", ErrInvalidFile)
	}
	if f.Size < 0 {
		return fmt.Errorf("%w: %s has a negative size", ErrInvalidFile, f.Name)
	}
	if maxSize > 0 && f.Size > maxSize {
		return fmt.Errorf("%w: %s is %s, limit is %s", ErrInvalidFile, f.Name,
			humanize.IBytes(uint64(f.Size)), humanize.IBytes(uint64(maxSize)))
	}
	if !IsPDF(f) {
		return fmt.Errorf("%w: %s is not a PDF", ErrInvalidFile, f.Name)
	}
	return nil
}

// IsPDF reports whether the MIME type or the file extension mentions pdf.
func IsPDF(f FileRef) bool {
	if strings.Contains(strings.ToLower(f.MIMEType), "pdf") {
		return true
	}
	return strings.Contains(strings.ToLower(filepath.Ext(f.Name)), "pdf")
}
