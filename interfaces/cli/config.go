package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	infraconfig "github.com/felixgeelhaar/calc-go/infrastructure/config"
	infrapack "github.com/felixgeelhaar/calc-go/infrastructure/pack"
	"github.com/felixgeelhaar/calc-go/pack/catalog"
)

// validateOptions holds options for the validate command.
type validateOptions struct {
	strict bool
}

// newValidateCmd creates the validate command.
func (a *App) newValidateCmd() *cobra.Command {
	opts := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate [config-file]",
		Short: "Validate a configuration file",
		Long: `Validate a calc configuration file.

This command checks:
  - File format (YAML or JSON)
  - Field values and ranges
  - Pack names in packs.enabled
  - Locale and currency of the number format
  - Environment variable references (in strict mode)

Examples:
  calc validate calc.yaml
  calc validate -c calc.yaml --strict`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.configPath
			if len(args) == 1 {
				path = args[0]
			}
			return a.validateConfig(path, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Fail on missing environment variables")

	return cmd
}

func (a *App) validateConfig(path string, opts *validateOptions) error {
	if path == "" {
		return fmt.Errorf("configuration file path is required (argument or -c flag)")
	}

	cfg, err := infraconfig.NewLoader(infraconfig.WithStrictEnv(opts.strict)).LoadFile(path)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	packs, err := infrapack.NewRegistry(catalog.Packs(catalog.Config{MaxFileSize: cfg.Jobs.MaxFileSize})...)
	if err != nil {
		return err
	}
	selected, err := packs.Select(cfg.Packs)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	if _, err := formatterFor(cfg.Format); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	_, _ = fmt.Fprintf(a.stdout, "Configuration is valid: %s\n", path)
	_, _ = fmt.Fprintf(a.stdout, "  Packs: %d of %d\n", len(selected), packs.Len())
	_, _ = fmt.Fprintf(a.stdout, "  Cache: %s\n", cfg.Cache.Backend)
	_, _ = fmt.Fprintf(a.stdout, "  Format: %s %s, %d decimals\n", cfg.Format.Locale, cfg.Format.Currency, cfg.Format.Decimals)
	if cfg.Telemetry.Enabled {
		_, _ = fmt.Fprintf(a.stdout, "  Telemetry: %s\n", cfg.Telemetry.Exporter)
	}
	return nil
}

// newConfigCmd creates the config command.
func (a *App) newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "schema",
			Short: "Print the JSON schema of the configuration file",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				schema, err := infraconfig.SchemaJSON()
				if err != nil {
					return fmt.Errorf("failed to generate schema: %w", err)
				}
				_, _ = fmt.Fprintln(a.stdout, schema)
				return nil
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective configuration as YAML",
			Long: `Print the configuration after defaults, environment expansion and
CALC_* overrides have been applied.`,
			Args: cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := a.loadConfig()
				if err != nil {
					return err
				}
				enc := yaml.NewEncoder(a.stdout)
				enc.SetIndent(2)
				if err := enc.Encode(cfg); err != nil {
					return err
				}
				return enc.Close()
			},
		},
	)

	return cmd
}
