// Package server exposes a running switcher to agents over the Model Context
// Protocol and serves its metrics and health over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/mj1618/switcher/internal/model"
	"github.com/mj1618/switcher/internal/platform"
	"github.com/mj1618/switcher/internal/switcher"
	"github.com/mj1618/switcher/internal/version"
)

// Switcher is the part of the switcher loop the server drives.
type Switcher interface {
	State(ctx context.Context) (switcher.State, error)
	WindowListChanged(windows []model.Window) error
	Activate(window model.WindowID) error
	CloseWindow(window model.WindowID) error
}

// Config holds MCP server configuration.
type Config struct {
	Transport string        // stdio or streamable-http
	Port      int           // HTTP port for streamable-http
	CacheTTL  time.Duration // list_windows cache TTL (0 disables)
}

// Server wraps the MCP server with the switcher and a window cache.
type Server struct {
	sw        Switcher
	discovery platform.Discovery
	cache     *WindowCache
	clock     clockwork.Clock
	logger    *slog.Logger
	mcp       *mcpserver.MCPServer
}

// New creates an MCP server with all switcher tools registered. discovery
// may be nil, in which case list_windows and refresh report an error.
func New(sw Switcher, discovery platform.Discovery, cfg Config, clock clockwork.Clock, logger *slog.Logger) *Server {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		sw:        sw,
		discovery: discovery,
		clock:     clock,
		logger:    logger.With("component", "mcp"),
		mcp:       mcpserver.NewMCPServer("switcher", version.Version),
	}
	if discovery != nil {
		s.cache = NewWindowCache(discovery, cfg.CacheTTL, clock)
	}
	s.registerTools()
	return s
}

// Serve runs the configured transport until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, cfg Config) error {
	switch cfg.Transport {
	case "stdio":
		s.logger.Info("serving MCP on stdio")
		err := mcpserver.NewStdioServer(s.mcp).Listen(ctx, os.Stdin, os.Stdout)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		addr := fmt.Sprintf(":%d", cfg.Port)
		stop := context.AfterFunc(ctx, func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				s.logger.Warn("MCP HTTP shutdown failed", "error", err)
			}
		})
		defer stop()
		s.logger.Info("serving MCP over streamable HTTP", "addr", addr)
		if err := httpServer.Start(addr); err != nil && ctx.Err() == nil {
			return err
		}
		return nil
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

func (s *Server) registerTools() {
	// list_buttons
	s.mcp.AddTool(
		mcp.NewTool("list_buttons",
			mcp.WithDescription("List the switcher's buttons in display order, with the window each is bound to"),
		),
		s.handleListButtons,
	)

	// list_windows
	s.mcp.AddTool(
		mcp.NewTool("list_windows",
			mcp.WithDescription("List the switchable windows currently reported by the window system"),
		),
		s.handleListWindows,
	)

	// activate
	s.mcp.AddTool(
		mcp.NewTool("activate",
			mcp.WithDescription("Raise and focus a window"),
			mcp.WithString("window-id", mcp.Description("Window ID, decimal or 0x-prefixed hex"), mcp.Required()),
		),
		s.handleActivate,
	)

	// close
	s.mcp.AddTool(
		mcp.NewTool("close",
			mcp.WithDescription("Ask the window manager to close a window"),
			mcp.WithString("window-id", mcp.Description("Window ID, decimal or 0x-prefixed hex"), mcp.Required()),
		),
		s.handleClose,
	)

	// refresh
	s.mcp.AddTool(
		mcp.NewTool("refresh",
			mcp.WithDescription("Re-read the window list and feed it to the switcher"),
		),
		s.handleRefresh,
	)
}
