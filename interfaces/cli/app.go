// Package cli provides the calc command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	calc "github.com/felixgeelhaar/calc-go"
)

// Version information set at build time.
var (
	Version   = calc.Version
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// App represents the CLI application.
type App struct {
	root   *cobra.Command
	stdout io.Writer
	stderr io.Writer

	// Persistent flags.
	configPath string
	logLevel   string
}

// New creates a new CLI application.
func New() *App {
	app := &App{
		stdout: os.Stdout,
		stderr: os.Stderr,
	}

	app.root = &cobra.Command{
		Use:   "calc",
		Short: "Calculators and simulated PDF tools",
		Long: `calc evaluates single-purpose formulas: unit conversion, health, finance,
geometry, statistics, electrical and network calculators. Every formula takes
a JSON record and returns either named outputs with a summary, or the reason
the input was rejected.

The same formulas are served over HTTP (calc serve) and as MCP tools (calc mcp).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	app.root.PersistentFlags().StringVarP(&app.configPath, "config", "c", "", "Path to configuration file (YAML or JSON)")
	app.root.PersistentFlags().StringVar(&app.logLevel, "log-level", "", "Override the configured log level")

	app.root.AddCommand(
		app.newVersionCmd(),
		app.newListCmd(),
		app.newDescribeCmd(),
		app.newEvalCmd(),
		app.newExportCmd(),
		app.newConvertCmd(),
		app.newUnitsCmd(),
		app.newFileCmd(),
		app.newServeCmd(),
		app.newMCPCmd(),
		app.newValidateCmd(),
		app.newConfigCmd(),
	)

	return app
}

// WithOutput sets custom output writers.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	a.root.SetOut(stdout)
	a.root.SetErr(stderr)
	return a
}

// Execute runs the CLI application.
func (a *App) Execute(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return a.root.ExecuteContext(ctx)
}

// ExecuteWithArgs runs the CLI with specific arguments (useful for testing).
func (a *App) ExecuteWithArgs(ctx context.Context, args []string) error {
	a.root.SetArgs(args)
	return a.Execute(ctx)
}

// newVersionCmd creates the version command.
func (a *App) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(a.stdout, "calc version %s\n", Version)
			_, _ = fmt.Fprintf(a.stdout, "  Git commit: %s\n", GitCommit)
			_, _ = fmt.Fprintf(a.stdout, "  Build date: %s\n", BuildDate)
		},
	}
}
