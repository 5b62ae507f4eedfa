package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/workweave/workspace-mcp/internal/instrumentation"
)

const (
	// DefaultMetricsReadTimeout bounds reading request headers.
	DefaultMetricsReadTimeout = 10 * time.Second

	// DefaultMetricsWriteTimeout bounds writing the scrape response.
	DefaultMetricsWriteTimeout = 10 * time.Second

	// DefaultMetricsIdleTimeout bounds idle keep-alive connections.
	DefaultMetricsIdleTimeout = 60 * time.Second
)

// MetricsServer serves Prometheus metrics on a dedicated port, kept apart
// from the stdio channel the MCP protocol owns.
type MetricsServer struct {
	httpServer *http.Server
	addr       string
	logger     *slog.Logger
}

// NewMetricsServer creates a metrics server exposing the provider's /metrics
// endpoint plus a basic health check.
func NewMetricsServer(addr string, provider *instrumentation.Provider, logger *slog.Logger) (*MetricsServer, error) {
	if provider == nil || !provider.Enabled() {
		return nil, fmt.Errorf("instrumentation provider is required for the metrics server")
	}
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", provider.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return &MetricsServer{
		addr:   addr,
		logger: logger,
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: DefaultMetricsReadTimeout,
			WriteTimeout:      DefaultMetricsWriteTimeout,
			IdleTimeout:       DefaultMetricsIdleTimeout,
		},
	}, nil
}

// Start runs the metrics server. It blocks; run it in a goroutine for
// non-blocking operation.
func (s *MetricsServer) Start() error {
	s.logger.Info("starting metrics server", "addr", s.addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the metrics server.
func (s *MetricsServer) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down metrics server")
	return s.httpServer.Shutdown(ctx)
}

// Addr returns the configured listen address.
func (s *MetricsServer) Addr() string {
	return s.addr
}
