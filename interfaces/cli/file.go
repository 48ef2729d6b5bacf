package cli

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/calc-go/domain/job"
)

// fileOptions holds options shared by the file subcommands.
type fileOptions struct {
	output string
	target string
	quiet  bool
}

// newFileCmd creates the file command and its merge, split and convert
// subcommands.
func (a *App) newFileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "file",
		Short: "Run simulated PDF jobs",
		Long: `Run a simulated PDF job. Files are checked for type and size, progress is
reported until the job finishes, and the placeholder artifact is written to
the output directory. File contents are never read.`,
	}

	cmd.AddCommand(
		a.newFileOpCmd(job.OpMerge, "merge <file.pdf> <file.pdf>...", "Merge two or more PDF files", cobra.MinimumNArgs(2)),
		a.newFileOpCmd(job.OpSplit, "split <file.pdf>", "Split a PDF file into pages", cobra.ExactArgs(1)),
		a.newFileOpCmd(job.OpConvert, "convert <file.pdf>", "Convert a PDF file to another format", cobra.ExactArgs(1)),
	)

	return cmd
}

func (a *App) newFileOpCmd(op job.Operation, use, short string, args cobra.PositionalArgs) *cobra.Command {
	opts := &fileOptions{}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runFileJob(cmd.Context(), op, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", ".", "Directory for the artifact")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "Do not report progress")
	if op == job.OpConvert {
		cmd.Flags().StringVarP(&opts.target, "to", "t", "docx", "Target format (docx, txt, jpg, png)")
	}

	return cmd
}

// fileRef describes path without reading it.
func fileRef(path string) (job.FileRef, error) {
	info, err := os.Stat(path)
	if err != nil {
		return job.FileRef{}, fmt.Errorf("failed to access %s: %w", path, err)
	}
	if info.IsDir() {
		return job.FileRef{}, fmt.Errorf("%w: %s is a directory", job.ErrInvalidFile, path)
	}
	return job.FileRef{
		Name:     filepath.Base(path),
		MIMEType: mime.TypeByExtension(filepath.Ext(path)),
		Size:     info.Size(),
	}, nil
}

func (a *App) runFileJob(ctx context.Context, op job.Operation, paths []string, opts *fileOptions) error {
	files := make([]job.FileRef, 0, len(paths))
	for _, p := range paths {
		ref, err := fileRef(p)
		if err != nil {
			return err
		}
		files = append(files, ref)
	}

	rt, err := a.newRuntime(ctx, runtimeOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = rt.Close(context.Background()) }()

	j, err := rt.jobs.Submit(ctx, op, files, opts.target)
	if err != nil {
		return err
	}
	if !opts.quiet {
		var total int64
		for _, f := range files {
			total += f.Size
		}
		_, _ = fmt.Fprintf(a.stdout, "Job %s: %s %d file(s), %s\n", j.ID, op, len(files), humanize.IBytes(uint64(total)))
	}

	j, err = a.awaitJob(ctx, rt, j.ID, opts.quiet)
	if err != nil {
		return err
	}
	switch j.Status {
	case job.StatusFailed:
		return fmt.Errorf("job %s failed: %s", j.ID, j.Error)
	case job.StatusCancelled:
		return fmt.Errorf("job %s was cancelled", j.ID)
	}

	artifact, err := rt.jobs.Download(ctx, j.ID)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(opts.output, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	dest := filepath.Join(opts.output, artifact.Name)
	if err := os.WriteFile(dest, artifact.Data, 0o644); err != nil {
		return fmt.Errorf("failed to write artifact: %w", err)
	}
	_, _ = fmt.Fprintf(a.stdout, "Wrote %s (%s, %s)\n", dest, artifact.ContentType, humanize.IBytes(uint64(artifact.Size)))
	return nil
}

// awaitJob polls the job until it is terminal. Interrupting the command
// cancels the job.
func (a *App) awaitJob(ctx context.Context, rt *runtime, id string, quiet bool) (*job.Job, error) {
	interval := rt.cfg.Jobs.TickInterval.Duration() / 2
	if interval <= 0 {
		interval = 50 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := -1
	for {
		j, err := rt.jobs.Get(context.Background(), id)
		if err != nil {
			return nil, err
		}
		if !quiet && j.Progress != last {
			last = j.Progress
			_, _ = fmt.Fprintf(a.stdout, "  %3d%% %s\n", j.Progress, j.Status)
		}
		if j.Status.Terminal() {
			return j, nil
		}

		select {
		case <-ctx.Done():
			if _, err := rt.jobs.Cancel(context.Background(), id); err != nil && !errors.Is(err, job.ErrJobTerminal) {
				return nil, err
			}
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
