// Package mcp serves the projection engine as MCP (Model Context Protocol) tools.
package mcp

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"portfolio-projection/internal/logging"
	"portfolio-projection/internal/service"
)

// Server wraps the MCP SDK server.
type Server struct {
	server *sdk.Server
	svc    *service.Service
	logger *slog.Logger
}

// Config holds server configuration.
type Config struct {
	Name    string // Server name (e.g., "portfolio-projection")
	Version string
	Logger  *slog.Logger
}

// NewServer creates a new MCP server with the projection tools registered.
func NewServer(cfg *Config, svc *service.Service) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	mcpServer := sdk.NewServer(&sdk.Implementation{
		Name:    cfg.Name,
		Version: cfg.Version,
	}, &sdk.ServerOptions{})

	s := &Server{
		server: mcpServer,
		svc:    svc,
		logger: logger,
	}
	s.registerTools()
	return s
}

// Run serves over stdio until the client disconnects, ctx is cancelled
// or the process is interrupted.
func (s *Server) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return s.server.Run(ctx, &sdk.StdioTransport{})
}
