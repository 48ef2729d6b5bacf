package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/calc-go/application"
)

// errRejected is returned when a formula answers with an invalid result, so
// the process exits non-zero after the reason has been printed.
var errRejected = errors.New("input rejected")

// listOptions holds options for the list command.
type listOptions struct {
	category   string
	categories bool
	json       bool
}

// newListCmd creates the list command.
func (a *App) newListCmd() *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the available formulas",
		Long: `List every installed formula grouped by category.

Examples:
  # All formulas
  calc list

  # Only the finance pack
  calc list --category finance

  # Category names only
  calc list --categories`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.list(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.category, "category", "", "Only list formulas of this category")
	cmd.Flags().BoolVar(&opts.categories, "categories", false, "List category names only")
	cmd.Flags().BoolVar(&opts.json, "json", false, "Print JSON")

	return cmd
}

func (a *App) list(cmd *cobra.Command, opts *listOptions) error {
	rt, err := a.newRuntime(cmd.Context(), runtimeOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = rt.Close(cmd.Context()) }()

	if opts.categories {
		cats := rt.engine.Categories()
		if opts.json {
			return a.printJSON(cats)
		}
		for _, c := range cats {
			_, _ = fmt.Fprintln(a.stdout, c)
		}
		return nil
	}

	infos := rt.engine.List(opts.category)
	if opts.json {
		return a.printJSON(infos)
	}
	if len(infos) == 0 {
		_, _ = fmt.Fprintf(a.stdout, "No formulas found.\n")
		return nil
	}

	byCategory := map[string][]application.Info{}
	for _, info := range infos {
		byCategory[info.Category] = append(byCategory[info.Category], info)
	}
	for _, c := range rt.engine.Categories() {
		group := byCategory[c]
		if len(group) == 0 {
			continue
		}
		_, _ = fmt.Fprintf(a.stdout, "%s (%d)\n", c, len(group))
		for _, info := range group {
			_, _ = fmt.Fprintf(a.stdout, "  %-20s %s\n", info.Name, info.Title)
		}
	}
	return nil
}

// newDescribeCmd creates the describe command.
func (a *App) newDescribeCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "describe <formula>",
		Short: "Show a formula's inputs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := a.newRuntime(cmd.Context(), runtimeOptions{})
			if err != nil {
				return err
			}
			defer func() { _ = rt.Close(cmd.Context()) }()

			info, err := rt.engine.Describe(args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return a.printJSON(info)
			}
			a.printInfo(info)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the description and input schema as JSON")

	return cmd
}

func (a *App) printInfo(info application.Info) {
	_, _ = fmt.Fprintf(a.stdout, "%s (%s)\n", info.Title, info.Name)
	_, _ = fmt.Fprintf(a.stdout, "  Category: %s\n", info.Category)
	if info.Description != "" {
		_, _ = fmt.Fprintf(a.stdout, "  %s\n", info.Description)
	}
	if len(info.Annotations.Tags) > 0 {
		_, _ = fmt.Fprintf(a.stdout, "  Tags: %s\n", strings.Join(info.Annotations.Tags, ", "))
	}
	_, _ = fmt.Fprintf(a.stdout, "\nInputs:\n")
	for _, f := range info.Fields {
		_, _ = fmt.Fprintf(a.stdout, "  %-18s %-7s", f.Name, f.Kind)
		if f.Required {
			_, _ = fmt.Fprintf(a.stdout, " required")
		}
		if f.Description != "" {
			_, _ = fmt.Fprintf(a.stdout, "  %s", f.Description)
		}
		if len(f.Enum) > 0 {
			_, _ = fmt.Fprintf(a.stdout, " [%s]", strings.Join(f.Enum, "|"))
		}
		if f.Default != nil {
			_, _ = fmt.Fprintf(a.stdout, " (default %v)", f.Default)
		}
		_, _ = fmt.Fprintln(a.stdout)
	}
}

// inputOptions selects where formula input comes from.
type inputOptions struct {
	input string
	file  string
}

func (o *inputOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.input, "input", "i", "", "Input as a JSON object")
	cmd.Flags().StringVarP(&o.file, "file", "f", "", "Read the JSON input from a file (- for stdin)")
}

// readInput merges the JSON object from --input or --file with key=value
// pairs. Pair values that parse as JSON keep their type; anything else is
// passed as a string.
func (a *App) readInput(cmd *cobra.Command, opts *inputOptions, pairs []string) (json.RawMessage, error) {
	fields := map[string]any{}

	var raw []byte
	switch {
	case opts.input != "" && opts.file != "":
		return nil, errors.New("use either --input or --file, not both")
	case opts.input != "":
		raw = []byte(opts.input)
	case opts.file == "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		raw = data
	case opts.file != "":
		data, err := os.ReadFile(opts.file)
		if err != nil {
			return nil, fmt.Errorf("failed to read input file: %w", err)
		}
		raw = data
	}
	if len(strings.TrimSpace(string(raw))) > 0 {
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, fmt.Errorf("input must be a JSON object: %w", err)
		}
	}

	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("argument %q is not key=value", pair)
		}
		var v any
		if err := json.Unmarshal([]byte(value), &v); err != nil {
			v = value
		}
		fields[key] = v
	}

	return json.Marshal(fields)
}

// evalOptions holds options for the eval command.
type evalOptions struct {
	inputOptions
	json bool
}

// newEvalCmd creates the eval command.
func (a *App) newEvalCmd() *cobra.Command {
	opts := &evalOptions{}

	cmd := &cobra.Command{
		Use:   "eval <formula> [key=value...]",
		Short: "Evaluate a formula",
		Long: `Evaluate a formula and print its summary.

Input is a JSON object given with --input or --file, optionally extended or
overridden by key=value arguments.

Examples:
  calc eval bmi weight=70 height=170
  calc eval loan_payment -i '{"principal":200000,"annual_rate":6,"years":30}'
  echo '{"a":3,"b":4,"c":5}' | calc eval triangle -f - --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.eval(cmd, opts, args[0], args[1:])
		},
	}

	opts.inputOptions.register(cmd)
	cmd.Flags().BoolVar(&opts.json, "json", false, "Print the full result as JSON")

	return cmd
}

func (a *App) eval(cmd *cobra.Command, opts *evalOptions, name string, pairs []string) error {
	in, err := a.readInput(cmd, &opts.inputOptions, pairs)
	if err != nil {
		return err
	}

	rt, err := a.newRuntime(cmd.Context(), runtimeOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = rt.Close(cmd.Context()) }()

	info, err := rt.engine.Describe(name)
	if err != nil {
		return err
	}
	res, err := rt.engine.Evaluate(cmd.Context(), name, in, application.FromSource("cli"))
	if err != nil {
		return err
	}

	if opts.json {
		if err := a.printJSON(res); err != nil {
			return err
		}
	} else {
		_, _ = fmt.Fprintln(a.stdout, res.Text(info.Title))
	}
	if !res.IsOK() {
		return fmt.Errorf("%w: %s", errRejected, res.Reason)
	}
	return nil
}

// newExportCmd creates the export command.
func (a *App) newExportCmd() *cobra.Command {
	opts := &inputOptions{}

	cmd := &cobra.Command{
		Use:   "export <formula> [key=value...]",
		Short: "Print a result as clipboard text",
		Long: `Evaluate a formula and print the plain-text export: the formula title
followed by one "Label: Value" line per summary entry.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := a.readInput(cmd, opts, args[1:])
			if err != nil {
				return err
			}
			rt, err := a.newRuntime(cmd.Context(), runtimeOptions{})
			if err != nil {
				return err
			}
			defer func() { _ = rt.Close(cmd.Context()) }()

			text, err := rt.engine.Export(cmd.Context(), args[0], in, application.FromSource("cli"))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(a.stdout, text)
			return nil
		},
	}

	opts.register(cmd)

	return cmd
}

func (a *App) printJSON(v any) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
