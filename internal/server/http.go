package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/mj1618/switcher/internal/output"
	"github.com/mj1618/switcher/internal/switcher"
	"github.com/mj1618/switcher/internal/version"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// StateReader reads the switcher's current state.
type StateReader interface {
	State(ctx context.Context) (switcher.State, error)
}

// HTTPServer serves Prometheus metrics, health probes and a read-only view of
// the buttons.
type HTTPServer struct {
	echo      *echo.Echo
	sw        StateReader
	gatherer  prometheus.Gatherer
	clock     clockwork.Clock
	startTime time.Time
	logger    *slog.Logger
}

// NewHTTPServer creates the observability server. gatherer is usually the
// registry the switcher metrics were registered on.
func NewHTTPServer(sw StateReader, gatherer prometheus.Gatherer, clock clockwork.Clock, logger *slog.Logger) *HTTPServer {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	s := &HTTPServer{
		echo:      e,
		sw:        sw,
		gatherer:  gatherer,
		clock:     clock,
		startTime: clock.Now(),
		logger:    logger.With("component", "http"),
	}
	s.registerRoutes()
	return s
}

func (s *HTTPServer) registerRoutes() {
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/buttons", s.handleButtons)
}

// Handler returns the server's HTTP handler.
func (s *HTTPServer) Handler() http.Handler { return s.echo }

// Start listens on addr until Shutdown is called.
func (s *HTTPServer) Start(addr string) error {
	s.logger.Info("serving metrics", "addr", addr)
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *HTTPServer) handleLiveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":  "ok",
		"version": version.Version,
		"uptime":  s.clock.Since(s.startTime).Seconds(),
	})
}

func (s *HTTPServer) handleReadiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	if _, err := s.sw.State(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]any{
			"status":       "unhealthy",
			"failed_check": "switcher",
			"error":        err.Error(),
		})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
}

func (s *HTTPServer) handleButtons(c echo.Context) error {
	st, err := s.sw.State(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	}
	return c.JSON(http.StatusOK, output.ButtonsResult{
		TS:      s.clock.Now().UnixMilli(),
		Pending: st.Pending,
		Windows: st.PreviousCount,
		Buttons: st.Buttons,
	})
}
