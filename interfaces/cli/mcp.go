package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/calc-go/application"
	"github.com/felixgeelhaar/calc-go/domain/formula"
	"github.com/felixgeelhaar/calc-go/infrastructure/mcp"
)

// mcpOptions holds options for the mcp command.
type mcpOptions struct {
	transport string
	addr      string
}

// newMCPCmd creates the mcp command.
func (a *App) newMCPCmd() *cobra.Command {
	opts := &mcpOptions{}

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve formulas as MCP tools",
		Long: `Run a Model Context Protocol server that exposes every installed formula
as a tool, plus the calc_catalog tool that lists them with their input schemas.

Logs go to stderr, so the stdio transport stays clean.

Examples:
  calc mcp
  calc mcp --transport http --addr :8090`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serveMCP(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.transport, "transport", "stdio", "Transport: stdio or http")
	cmd.Flags().StringVar(&opts.addr, "addr", ":8090", "Listen address for the http transport")

	return cmd
}

// newMCPServer builds the MCP server on top of the runtime's engine.
func (rt *runtime) newMCPServer() *mcp.Server {
	return mcp.NewServer(mcp.ServerConfig{
		Name:         "calc",
		Version:      Version,
		Instructions: "Call calc_catalog to discover formulas, then call a formula tool with a JSON object of its inputs.",
		Registry:     rt.formulas,
		Evaluate: func(ctx context.Context, name string, in json.RawMessage) (formula.Result, error) {
			return rt.engine.Evaluate(ctx, name, in, application.FromSource("mcp"))
		},
	})
}

func (a *App) serveMCP(ctx context.Context, opts *mcpOptions) error {
	rt, err := a.newRuntime(ctx, runtimeOptions{globals: true})
	if err != nil {
		return err
	}
	defer func() { _ = rt.Close(context.Background()) }()

	srv := rt.newMCPServer()
	switch opts.transport {
	case "stdio":
		return srv.ServeStdio(ctx)
	case "http":
		_, _ = fmt.Fprintf(a.stderr, "Serving MCP on %s\n", opts.addr)
		return srv.ServeHTTP(ctx, opts.addr)
	default:
		return fmt.Errorf("unknown transport %q (want stdio or http)", opts.transport)
	}
}
