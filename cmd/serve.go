package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/workweave/workspace-mcp/internal/auth"
	"github.com/workweave/workspace-mcp/internal/config"
	"github.com/workweave/workspace-mcp/internal/instrumentation"
	"github.com/workweave/workspace-mcp/internal/logging"
	"github.com/workweave/workspace-mcp/internal/server"
	"github.com/workweave/workspace-mcp/internal/tools/auth_tools"
	"github.com/workweave/workspace-mcp/internal/tools/drive_tools"
	"github.com/workweave/workspace-mcp/internal/tools/gmail_tools"
)

func newServeCmd() *cobra.Command {
	var (
		debugMode      bool
		envFile        string
		metricsEnabled bool
		metricsAddr    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server on stdio",
		Long: `Start the Model Context Protocol (MCP) server exposing Gmail and Google
Drive tools over stdio.

Credentials come from the environment (optionally via a .env file):

  OAuth variant:
    GOOGLE_CLIENT_ID, GOOGLE_CLIENT_SECRET (required for the variant)
    GOOGLE_REFRESH_TOKEN (recommended; without it access stops working
    once the current token expires)
    GOOGLE_REDIRECT_URI (optional)

  Service account variant:
    GOOGLE_SERVICE_ACCOUNT_EMAIL, GOOGLE_PRIVATE_KEY

At least one variant must be complete or the server refuses to start.
When both are present the OAuth variant is preferred. With an OAuth
refresh token configured, a background timer renews the access token
every 30 minutes to keep the refresh token from going dormant.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(debugMode, envFile, metricsEnabled, metricsAddr, cmd.Flags().Changed("metrics-enabled"))
		},
	}

	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging. Can also use DEBUG env var.")
	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to a .env file to load (default: ./.env when present)")
	cmd.Flags().BoolVar(&metricsEnabled, "metrics-enabled", false, "Serve Prometheus metrics on a dedicated port. Can also use METRICS_ENABLED env var.")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Metrics server address (default: :9090). Can also use METRICS_ADDR env var.")

	return cmd
}

func runServe(debugMode bool, envFile string, metricsEnabled bool, metricsAddr string, metricsFlagSet bool) error {
	shutdownCtx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := config.LoadEnvFile(envFile); err != nil {
		return err
	}

	logger := logging.New(debugMode || os.Getenv("DEBUG") == "true")

	cfg, err := config.Load(logger)
	if err != nil {
		return err
	}
	if debugMode {
		cfg.Debug = true
	}
	if metricsFlagSet {
		cfg.MetricsEnabled = metricsEnabled
	}
	if metricsAddr != "" {
		cfg.MetricsAddr = metricsAddr
	}
	if cfg.ServerVersion == "" {
		cfg.ServerVersion = version
	}

	instrProvider, err := instrumentation.NewProvider(shutdownCtx, instrumentation.Config{
		ServiceName:    cfg.ServerName,
		ServiceVersion: cfg.ServerVersion,
		Enabled:        cfg.MetricsEnabled,
	})
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		if err := instrProvider.Shutdown(context.Background()); err != nil {
			logger.Warn("instrumentation shutdown failed", "error", err)
		}
	}()

	provider, oauthProvider, err := selectProvider(cfg, logger)
	if err != nil {
		return err
	}

	// The keepalive only makes sense for the OAuth variant, and only when a
	// refresh token exists to keep warm.
	var keepalive *auth.Keepalive
	if oauthProvider != nil && oauthProvider.HasRefreshToken() {
		keepalive = auth.NewKeepalive(oauthProvider, auth.DefaultKeepaliveInterval, logger)
		keepalive.OnResult(func(err error) {
			result := instrumentation.RefreshResultSuccess
			if err != nil {
				result = instrumentation.RefreshResultFailure
			}
			instrProvider.Metrics().RecordTokenRefresh(shutdownCtx, "oauth", result)
		})
		oauthProvider.AttachKeepalive(keepalive)
		keepalive.Start(shutdownCtx)
	}

	serverContext, err := server.NewServerContext(shutdownCtx, server.Options{
		Config:        cfg,
		Logger:        logger,
		Provider:      provider,
		OAuthProvider: oauthProvider,
		Keepalive:     keepalive,
		Metrics:       instrProvider.Metrics(),
	})
	if err != nil {
		return fmt.Errorf("failed to create server context: %w", err)
	}
	defer func() {
		if err := serverContext.Shutdown(); err != nil {
			logger.Warn("server context shutdown failed", "error", err)
		}
	}()

	var metricsServer *server.MetricsServer
	if cfg.MetricsEnabled {
		metricsServer, err = server.NewMetricsServer(cfg.MetricsAddr, instrProvider, logger)
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}
		go func() {
			if err := metricsServer.Start(); err != nil && err != http.ErrServerClosed {
				logger.Error("metrics server failed", "error", err)
			}
		}()
		defer func() {
			stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer stopCancel()
			if err := metricsServer.Shutdown(stopCtx); err != nil {
				logger.Warn("metrics server shutdown failed", "error", err)
			}
		}()
	}

	mcpSrv := mcpserver.NewMCPServer(cfg.ServerName, cfg.ServerVersion,
		mcpserver.WithToolCapabilities(true),
	)
	if err := registerAllTools(mcpSrv, serverContext); err != nil {
		return err
	}

	logger.Info("starting MCP server on stdio",
		"server", cfg.ServerName,
		"version", cfg.ServerVersion,
		"keepalive", keepalive != nil)

	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := mcpserver.ServeStdio(mcpSrv); err != nil {
			serverDone <- err
		}
	}()

	select {
	case <-shutdownCtx.Done():
		logger.Info("shutdown signal received")
		return nil
	case err := <-serverDone:
		if err != nil {
			return fmt.Errorf("server stopped with error: %w", err)
		}
		return nil
	}
}

// selectProvider picks the credential variant: OAuth when its client
// credentials are complete, otherwise the service account. Load already
// guaranteed at least one variant is usable.
func selectProvider(cfg *config.Config, logger *slog.Logger) (auth.Provider, *auth.OAuthProvider, error) {
	if cfg.OAuth.Usable() {
		oauthProvider, err := auth.NewOAuthProvider(cfg.OAuth, logger)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using OAuth credentials", "has_refresh_token", oauthProvider.HasRefreshToken())
		return oauthProvider, oauthProvider, nil
	}

	saProvider, err := auth.NewServiceAccountProvider(cfg.ServiceAccount, logger)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("using service account credentials", "email", cfg.ServiceAccount.Email)
	return saProvider, nil, nil
}

func registerAllTools(mcpSrv *mcpserver.MCPServer, sc *server.ServerContext) error {
	type toolRegistration struct {
		name     string
		register func() error
	}

	registrations := []toolRegistration{
		{
			name: "Auth",
			register: func() error {
				return auth_tools.RegisterAuthTools(mcpSrv, sc)
			},
		},
		{
			name: "Gmail",
			register: func() error {
				return gmail_tools.RegisterGmailTools(mcpSrv, sc)
			},
		},
		{
			name: "Drive",
			register: func() error {
				return drive_tools.RegisterDriveTools(mcpSrv, sc)
			},
		},
	}

	for _, reg := range registrations {
		if err := reg.register(); err != nil {
			return fmt.Errorf("failed to register %s tools: %w", reg.name, err)
		}
	}

	return nil
}
