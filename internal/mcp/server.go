// Package mcp provides an MCP (Model Context Protocol) server for genograph.
package mcp

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/driftlab/genograph/internal/ratelimit"
	"github.com/driftlab/genograph/internal/store"
)

// Server wraps the MCP SDK server and provides genograph-specific tools.
type Server struct {
	server       *sdk.Server
	store        store.GeneStore
	root         string
	toolLimiters ratelimit.ToolLimiters
}

// Config holds server configuration.
type Config struct {
	Name    string // Server name (e.g., "genograph")
	Version string // Server version
	Root    string // Project root directory
}

// NewServer creates a new MCP server backed by the SQLite store under
// cfg.Root.
func NewServer(cfg *Config) (*Server, error) {
	geneStore, err := store.NewSQLiteStore(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to create gene store: %w", err)
	}

	mcpServer := sdk.NewServer(&sdk.Implementation{
		Name:    cfg.Name,
		Version: cfg.Version,
	}, &sdk.ServerOptions{})

	s := &Server{
		server:       mcpServer,
		store:        geneStore,
		root:         cfg.Root,
		toolLimiters: ratelimit.NewToolLimiters(),
	}

	if err := s.registerTools(); err != nil {
		geneStore.Close()
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}

	return s, nil
}

// Run starts the MCP server over stdio transport.
// This blocks until the client disconnects or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	err := s.server.Run(ctx, &sdk.StdioTransport{})

	s.store.Close()

	return err
}

// Close closes the server and releases resources.
func (s *Server) Close() error {
	return s.store.Close()
}

// registerTools registers all genograph MCP tools with the server.
func (s *Server) registerTools() error {
	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "genograph_resolve",
		Description: "Check whether a strain's genome satisfies the prerequisites for a target gene",
	}, s.handleResolve)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "genograph_acquire",
		Description: "Acquire a gene for a strain after verifying its prerequisites",
	}, s.handleAcquire)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "genograph_status",
		Description: "Get a strain's genome, resistance score, and threat classification",
	}, s.handleStatus)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "genograph_encode",
		Description: "Encode a phenotype trait sequence with a prefix code built from trait frequencies",
	}, s.handleEncode)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "genograph_decode",
		Description: "Decode a prefix-coded bit string back into a phenotype trait sequence",
	}, s.handleDecode)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "genograph_validate",
		Description: "Validate the gene catalog for dependency issues (dangling references, cycles, self-references)",
	}, s.handleValidate)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "genograph_graph",
		Description: "Render the gene dependency graph in DOT (Graphviz) or JSON format",
	}, s.handleGraph)

	return nil
}
