// Package mcp exposes calc formulas as Model Context Protocol tools using
// github.com/felixgeelhaar/mcp-go.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	mcpgo "github.com/felixgeelhaar/mcp-go"

	"github.com/felixgeelhaar/calc-go/domain/formula"
)

// CatalogTool is the tool that lists every formula.
const CatalogTool = "calc_catalog"

// ErrNoEvaluator is returned when a server has no evaluate function.
var ErrNoEvaluator = errors.New("mcp server has no evaluator")

// EvaluateFunc evaluates a formula by name.
type EvaluateFunc func(ctx context.Context, name string, input json.RawMessage) (formula.Result, error)

// ServerConfig configures a calc MCP server.
type ServerConfig struct {
	// Name is the server name.
	Name string

	// Version is the server version.
	Version string

	// Instructions provides usage instructions for clients.
	Instructions string

	// Registry holds the formulas to expose.
	Registry formula.Registry

	// Evaluate runs a formula, typically through the application engine.
	Evaluate EvaluateFunc
}

// Server wraps an MCP server that exposes formulas.
type Server struct {
	srv      *mcpgo.Server
	registry formula.Registry
	evaluate EvaluateFunc
}

// NewServer creates a server with one tool per registered formula plus
// the catalog tool.
func NewServer(cfg ServerConfig) *Server {
	if cfg.Name == "" {
		cfg.Name = "calc"
	}
	info := mcpgo.ServerInfo{
		Name:        cfg.Name,
		Version:     cfg.Version,
		Description: "Unit conversion, health, finance, geometry, statistics, electrical and network formulas",
		Capabilities: mcpgo.Capabilities{
			Tools: true,
		},
	}

	var opts []mcpgo.Option
	if cfg.Instructions != "" {
		opts = append(opts, mcpgo.WithInstructions(cfg.Instructions))
	}

	s := &Server{
		srv:      mcpgo.NewServer(info, opts...),
		registry: cfg.Registry,
		evaluate: cfg.Evaluate,
	}
	if s.evaluate == nil && cfg.Registry != nil {
		s.evaluate = func(ctx context.Context, name string, input json.RawMessage) (formula.Result, error) {
			f, ok := cfg.Registry.Get(name)
			if !ok {
				return formula.Result{}, fmt.Errorf("%w: %s", formula.ErrFormulaNotFound, name)
			}
			return f.Evaluate(ctx, input)
		}
	}

	s.srv.Tool(CatalogTool).
		Description("List the available formulas with their input schemas").
		Handler(s.catalog)

	if cfg.Registry != nil {
		for _, f := range cfg.Registry.List() {
			s.registerFormula(f)
		}
	}
	return s
}

func (s *Server) registerFormula(f formula.Formula) {
	name := f.Name()
	desc := f.Description()
	if schema := formula.Schema(f.Fields()); len(schema) > 0 {
		desc = fmt.Sprintf("%s\n\nInput schema: %s", desc, schema)
	}

	s.srv.Tool(name).
		Description(desc).
		Handler(func(ctx context.Context, input json.RawMessage) (string, error) {
			return s.Call(ctx, name, input)
		})
}

// toolResponse is what a formula tool returns: the result plus its
// clipboard rendering.
type toolResponse struct {
	formula.Result
	Text string `json:"text"`
}

// Call evaluates a formula the way its tool handler does. Invalid results
// are returned as data; only lookup and decoding failures are errors.
func (s *Server) Call(ctx context.Context, name string, input json.RawMessage) (string, error) {
	if s.evaluate == nil {
		return "", ErrNoEvaluator
	}
	res, err := s.evaluate(ctx, name, input)
	if err != nil {
		return "", err
	}

	title := name
	if s.registry != nil {
		if f, ok := s.registry.Get(name); ok {
			title = f.Title()
		}
	}

	out, err := json.Marshal(toolResponse{Result: res, Text: res.Text(title)})
	if err != nil {
		return "", fmt.Errorf("encode result: %w", err)
	}
	return string(out), nil
}

type catalogEntry struct {
	Name        string          `json:"name"`
	Title       string          `json:"title"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Schema      json.RawMessage `json:"schema"`
}

func (s *Server) catalog(_ context.Context, _ json.RawMessage) (string, error) {
	entries := []catalogEntry{}
	if s.registry != nil {
		for _, f := range s.registry.List() {
			entries = append(entries, catalogEntry{
				Name:        f.Name(),
				Title:       f.Title(),
				Category:    f.Category(),
				Description: f.Description(),
				Schema:      formula.Schema(f.Fields()),
			})
		}
	}
	out, err := json.Marshal(entries)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Catalog returns the catalog tool output.
func (s *Server) Catalog(ctx context.Context) (string, error) {
	return s.catalog(ctx, nil)
}

// Server returns the underlying mcp-go server.
func (s *Server) Server() *mcpgo.Server {
	return s.srv
}

// ServeStdio runs the server over stdin/stdout.
func (s *Server) ServeStdio(ctx context.Context, opts ...mcpgo.ServeOption) error {
	return mcpgo.ServeStdio(ctx, s.srv, opts...)
}

// ServeHTTP runs the server over HTTP with SSE.
func (s *Server) ServeHTTP(ctx context.Context, addr string, opts ...mcpgo.HTTPOption) error {
	return mcpgo.ServeHTTP(ctx, s.srv, addr, opts...)
}
