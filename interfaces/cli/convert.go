package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/calc-go/domain/units"
)

// newConvertCmd creates the convert command.
func (a *App) newConvertCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "convert <kind> <value> <from> [to]",
		Short: "Convert a value between units",
		Long: `Convert a value from one unit to another of the same kind. Without a
target unit the value is converted into every unit of the kind.

Examples:
  calc convert length 1 in cm
  calc convert temperature 100 C F
  calc convert data 1.5 GiB`,
		Args: cobra.RangeArgs(3, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.ParseFloat(strings.TrimSpace(args[1]), 64)
			if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
				return fmt.Errorf("value %q is not a number", args[1])
			}

			rt, err := a.newRuntime(cmd.Context(), runtimeOptions{})
			if err != nil {
				return err
			}
			defer func() { _ = rt.Close(cmd.Context()) }()

			kind, from := args[0], args[2]
			f := rt.engine.Formatter()

			if len(args) == 4 {
				to := args[3]
				out, err := rt.engine.Convert(kind, value, from, to)
				if err != nil {
					return err
				}
				if asJSON {
					return a.printJSON(map[string]any{"kind": kind, "value": out, "from": from, "to": to})
				}
				_, _ = fmt.Fprintf(a.stdout, "%s %s = %s\n", f.Number(value), from, f.Unit(out, to))
				a.printDataSize(kind, value, from)
				return nil
			}

			all, err := rt.engine.ConvertAll(kind, value, from)
			if err != nil {
				return err
			}
			if asJSON {
				return a.printJSON(all)
			}
			for _, c := range all {
				_, _ = fmt.Fprintf(a.stdout, "  %-24s %s\n", c.Name, f.Unit(c.Value, c.Unit))
			}
			a.printDataSize(kind, value, from)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")

	return cmd
}

// printDataSize adds the humanized decimal and binary size for data kinds.
func (a *App) printDataSize(kind string, value float64, from string) {
	if units.Kind(kind) != units.Data {
		return
	}
	b, err := units.ToCanonical(units.Data, value, from)
	if err != nil || b < 0 || b >= 1<<63 {
		return
	}
	n := uint64(math.Round(b))
	_, _ = fmt.Fprintf(a.stdout, "  (%s, %s)\n", humanize.Bytes(n), humanize.IBytes(n))
}

// newUnitsCmd creates the units command.
func (a *App) newUnitsCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "units [kind]",
		Short: "List quantity kinds or the units of one kind",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return a.listKinds(asJSON)
			}
			return a.listUnits(units.Kind(args[0]), asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")

	return cmd
}

func (a *App) listKinds(asJSON bool) error {
	kinds := units.Kinds()
	if asJSON {
		return a.printJSON(kinds)
	}
	for _, k := range kinds {
		canonical, _ := units.Canonical(k)
		list, _ := units.Units(k)
		_, _ = fmt.Fprintf(a.stdout, "%-12s %2d units, canonical %s\n", k, len(list), canonical)
	}
	return nil
}

func (a *App) listUnits(kind units.Kind, asJSON bool) error {
	list, err := units.Units(kind)
	if err != nil {
		return err
	}
	if asJSON {
		return a.printJSON(list)
	}
	canonical, _ := units.Canonical(kind)
	for _, u := range list {
		_, _ = fmt.Fprintf(a.stdout, "  %-8s %-22s 1 = %s %s", u.Symbol, u.Name, humanize.FtoaWithDigits(u.Factor, 10), canonical)
		if u.Offset != 0 {
			_, _ = fmt.Fprintf(a.stdout, " + %s", humanize.FtoaWithDigits(u.Offset, 4))
		}
		if kind == units.Data && u.Factor >= 1 {
			_, _ = fmt.Fprintf(a.stdout, " (%s)", humanize.IBytes(uint64(u.Factor)))
		}
		if len(u.Aliases) > 0 {
			_, _ = fmt.Fprintf(a.stdout, "  aka %s", strings.Join(u.Aliases, ", "))
		}
		_, _ = fmt.Fprintln(a.stdout)
	}
	return nil
}
