package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	domainconfig "github.com/felixgeelhaar/calc-go/domain/config"
	infraconfig "github.com/felixgeelhaar/calc-go/infrastructure/config"
	"github.com/felixgeelhaar/calc-go/infrastructure/logging"
	"github.com/felixgeelhaar/calc-go/interfaces/httpapi"
)

// serveOptions holds options for the serve command.
type serveOptions struct {
	addr  string
	watch bool
}

// newServeCmd creates the serve command.
func (a *App) newServeCmd() *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Long: `Serve formulas, conversions and file jobs over HTTP.

Routes live under /api/v1; GET /health reports liveness. With --watch the
configuration file is reloaded on change, which updates the log level and
the number format without a restart.

Examples:
  calc serve --addr :8080
  calc serve -c calc.yaml --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "Listen address (overrides server.address)")
	cmd.Flags().BoolVar(&opts.watch, "watch", false, "Reload the configuration file when it changes")

	return cmd
}

func (a *App) serve(ctx context.Context, opts *serveOptions) error {
	rt, err := a.newRuntime(ctx, runtimeOptions{globals: true})
	if err != nil {
		return err
	}
	defer func() { _ = rt.Close(context.Background()) }()

	if opts.watch {
		if a.configPath == "" {
			return fmt.Errorf("--watch needs a configuration file (-c)")
		}
		if err := a.watchConfig(ctx, rt); err != nil {
			return err
		}
	}

	h := httpapi.NewHandler(rt.engine, rt.jobs, httpapi.WithMetrics(rt.telemetry.Snapshot))
	e := httpapi.NewServer(h, rt.cfg.Server)

	addr := rt.cfg.Server.Address
	if opts.addr != "" {
		addr = opts.addr
	}
	_, _ = fmt.Fprintf(a.stdout, "Serving %d formulas on %s\n", len(rt.engine.List("")), addr)
	return httpapi.Run(ctx, e, addr)
}

// watchConfig applies log level and format changes from the configuration
// file until ctx is done.
func (a *App) watchConfig(ctx context.Context, rt *runtime) error {
	w, err := infraconfig.NewWatcher(a.configPath, infraconfig.NewLoader(),
		infraconfig.WithErrorHandler(func(err error) {
			logging.Warn().Add(logging.Component("config")).Add(logging.ErrorField(err)).Msg("reload failed, keeping previous configuration")
		}),
	)
	if err != nil {
		return err
	}
	w.Subscribe(func(cfg *domainconfig.Config) { a.applyReload(ctx, rt, cfg) })

	go func() {
		if err := w.Run(ctx); err != nil {
			logging.Error().Add(logging.Component("config")).Add(logging.ErrorField(err)).Msg("config watcher stopped")
		}
	}()
	return nil
}

func (a *App) applyReload(ctx context.Context, rt *runtime, cfg *domainconfig.Config) {
	level := cfg.Logging.Level
	if a.logLevel != "" {
		level = a.logLevel
	}
	logging.SetLevel(level)

	f, err := formatterFor(cfg.Format)
	if err != nil {
		logging.Warn().Add(logging.Component("config")).Add(logging.ErrorField(err)).Msg("ignoring format change")
		return
	}
	current := rt.engine.Formatter()
	if f.Locale() != current.Locale() || f.Currency() != current.Currency() || f.Decimals() != current.Decimals() {
		rt.engine.SetFormatter(ctx, f)
	}
	logging.Info().
		Add(logging.Component("config")).
		Add(logging.Str("level", level)).
		Add(logging.Str("locale", f.Locale())).
		Msg("configuration reloaded")
}
