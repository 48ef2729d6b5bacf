package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/felixgeelhaar/calc-go/application"
	domainconfig "github.com/felixgeelhaar/calc-go/domain/config"
	"github.com/felixgeelhaar/calc-go/domain/format"
	infraconfig "github.com/felixgeelhaar/calc-go/infrastructure/config"
	"github.com/felixgeelhaar/calc-go/infrastructure/logging"
	"github.com/felixgeelhaar/calc-go/infrastructure/observability"
	infrapack "github.com/felixgeelhaar/calc-go/infrastructure/pack"
	"github.com/felixgeelhaar/calc-go/infrastructure/resilience"
	"github.com/felixgeelhaar/calc-go/infrastructure/storage"
	"github.com/felixgeelhaar/calc-go/infrastructure/storage/memory"
	"github.com/felixgeelhaar/calc-go/pack/catalog"
)

// runtime is everything a command needs to evaluate formulas and run jobs.
type runtime struct {
	cfg       *domainconfig.Config
	telemetry *observability.Provider
	packs     *infrapack.Registry
	formulas  *memory.FormulaRegistry
	installed []string
	engine    *application.Engine
	jobs      *application.JobService

	closers []func(context.Context) error
}

// runtimeOptions tunes what newRuntime sets up.
type runtimeOptions struct {
	// globals installs the telemetry providers process-wide.
	globals bool
}

// loadConfig reads the --config file, or the defaults when none is given,
// and applies the --log-level override.
func (a *App) loadConfig() (*domainconfig.Config, error) {
	cfg, err := infraconfig.NewLoader().LoadFile(a.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	return cfg, nil
}

// newRuntime wires configuration, logging, telemetry, cache, packs, engine
// and job service in that order.
func (a *App) newRuntime(ctx context.Context, opts runtimeOptions) (*runtime, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}
	return a.newRuntimeFrom(ctx, cfg, opts)
}

func (a *App) newRuntimeFrom(ctx context.Context, cfg *domainconfig.Config, opts runtimeOptions) (rt *runtime, err error) {
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: a.stderr,
	})

	rt = &runtime{cfg: cfg}
	defer func() {
		if err != nil {
			_ = rt.Close(ctx)
		}
	}()

	telemetryOpts := []observability.Option{
		observability.WithServiceVersion(Version),
		observability.WithWriter(a.stderr),
	}
	if !opts.globals {
		telemetryOpts = append(telemetryOpts, observability.WithoutGlobals())
	}
	rt.telemetry, err = observability.New(ctx, cfg.Telemetry, telemetryOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to set up telemetry: %w", err)
	}
	rt.closers = append(rt.closers, rt.telemetry.Shutdown)

	resultCache, closeCache, err := storage.OpenCache(ctx, cfg.Cache)
	if err != nil {
		return nil, err
	}
	rt.closers = append(rt.closers, func(context.Context) error { return closeCache() })

	rt.packs, err = infrapack.NewRegistry(catalog.Packs(catalog.Config{MaxFileSize: cfg.Jobs.MaxFileSize})...)
	if err != nil {
		return nil, err
	}
	rt.formulas = memory.NewFormulaRegistry()
	rt.installed, err = rt.packs.InstallSelected(cfg.Packs, rt.formulas)
	if err != nil {
		return nil, fmt.Errorf("failed to install packs: %w", err)
	}

	formatter, err := formatterFor(cfg.Format)
	if err != nil {
		return nil, err
	}

	rt.engine, err = application.New(
		application.WithRegistry(rt.formulas),
		application.WithExecutor(resilience.NewExecutor(resilience.ExecutorConfig{
			MaxConcurrent: cfg.Server.MaxConcurrent,
			Timeout:       cfg.Server.EvalTimeout.Duration(),
		})),
		application.WithCache(resultCache, cfg.Cache.TTL.Duration()),
		application.WithFormatter(formatter),
		application.WithTelemetry(rt.telemetry.Tracer(), rt.telemetry.Meter()),
	)
	if err != nil {
		return nil, err
	}

	rt.jobs = application.NewJobService(application.JobConfig{
		TickInterval: cfg.Jobs.TickInterval.Duration(),
		StepPercent:  cfg.Jobs.StepPercent,
		MaxFileSize:  cfg.Jobs.MaxFileSize,
	})
	rt.closers = append(rt.closers, rt.jobs.Close)

	logging.Debug().
		Add(logging.Component("cli")).
		Add(logging.Int("packs", len(rt.installed))).
		Add(logging.Str("cache", cfg.Cache.Backend)).
		Msg("runtime ready")

	return rt, nil
}

// Close releases resources in reverse order of acquisition.
func (rt *runtime) Close(ctx context.Context) error {
	var errs []error
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	rt.closers = nil
	return errors.Join(errs...)
}

func formatterFor(cfg domainconfig.FormatConfig) (*format.Formatter, error) {
	f, err := format.New(cfg.Locale, cfg.Currency, cfg.Decimals)
	if err != nil {
		return nil, fmt.Errorf("invalid format configuration: %w", err)
	}
	return f, nil
}
