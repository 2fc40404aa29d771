package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/mj1618/switcher/internal/logging"
	"github.com/mj1618/switcher/internal/platform"
	"github.com/mj1618/switcher/internal/server"
	"github.com/mj1618/switcher/internal/switcher"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the switcher and expose it as an MCP server",
	Long: `Run the switcher against the live window system and start a Model Context
Protocol (MCP) server exposing its buttons and window requests as tools.

Supported transports:
  stdio             Standard I/O (default, for MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents)

With --metrics-addr (or SWITCHER_METRICS_ADDR) an HTTP listener also serves
Prometheus metrics on /metrics, health probes on /health/live and
/health/ready, and the current buttons on /buttons.

Examples:
  switcher serve
  switcher serve --transport streamable-http --port 8080
  switcher serve --metrics-addr :9090 --cache-ttl 0`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "stdio", "Transport: stdio, streamable-http")
	serveCmd.Flags().Int("port", 8080, "HTTP port for streamable-http transport")
	serveCmd.Flags().Int("cache-ttl", 500, "list_windows cache TTL in milliseconds (0 to disable)")
	serveCmd.Flags().String("metrics-addr", "", "Address for the metrics and health listener (default from SWITCHER_METRICS_ADDR)")
	serveCmd.Flags().Duration("delay", 0, "Debounce delay for new windows (default from SWITCHER_UPDATE_DELAY)")
}

func runServe(cmd *cobra.Command, args []string) error {
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")
	cacheTTLMs, _ := cmd.Flags().GetInt("cache-ttl")
	metricsAddr, _ := cmd.Flags().GetString("metrics-addr")
	delay, _ := cmd.Flags().GetDuration("delay")
	if metricsAddr == "" {
		metricsAddr = appConfig.MetricsAddr
	}

	cfg := server.Config{
		Transport: transport,
		Port:      port,
		CacheTTL:  time.Duration(cacheTTLMs) * time.Millisecond,
	}
	if cfg.Transport != "stdio" && cfg.Transport != "streamable-http" {
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := switcher.NewMetrics(reg)

	return runLive(cmd.Context(), switcher.Options{
		Delay:   delay,
		Metrics: metrics,
	}, func(ctx context.Context, sw *switcher.Switcher, p *platform.Provider) error {
		return serveAttached(ctx, sw, p.Discovery, cfg, metricsAddr, reg)
	})
}

// serveAttached runs the MCP server and, when metricsAddr is set, the
// metrics listener. A listener failure stops the MCP server and is returned.
func serveAttached(ctx context.Context, sw server.Switcher, discovery platform.Discovery, cfg server.Config, metricsAddr string, gatherer prometheus.Gatherer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	if metricsAddr != "" {
		httpServer := server.NewHTTPServer(sw, gatherer, nil, logging.Logger)
		g.Go(func() error {
			if err := httpServer.Start(metricsAddr); err != nil {
				return fmt.Errorf("metrics listener on %s: %w", metricsAddr, err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				logging.Logger.Warn("metrics listener shutdown failed", "error", err)
			}
			return nil
		})
	}
	g.Go(func() error {
		defer cancel()
		srv := server.New(sw, discovery, cfg, nil, logging.Logger)
		if err := srv.Serve(gctx, cfg); err != nil {
			return fmt.Errorf("mcp server: %w", err)
		}
		return nil
	})
	return g.Wait()
}
