package server

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/workweave/workspace-mcp/internal/auth"
	"github.com/workweave/workspace-mcp/internal/config"
	"github.com/workweave/workspace-mcp/internal/drive"
	"github.com/workweave/workspace-mcp/internal/gmail"
	"github.com/workweave/workspace-mcp/internal/instrumentation"
)

// ServerContext holds the context for the MCP server.
type ServerContext struct {
	ctx    context.Context
	cancel context.CancelFunc

	config   *config.Config
	logger   *slog.Logger
	provider auth.Provider

	// oauthProvider is set only when the OAuth credential variant is
	// active; the status and refresh tools read it directly.
	oauthProvider *auth.OAuthProvider

	keepalive *auth.Keepalive
	metrics   *instrumentation.Metrics

	mu          sync.RWMutex
	gmailClient *gmail.Client
	driveClient *drive.Client
	shutdown    bool
}

// Options configures a new ServerContext.
type Options struct {
	Config   *config.Config
	Logger   *slog.Logger
	Provider auth.Provider

	// OAuthProvider is the concrete provider when the OAuth variant is
	// active; nil for the service account variant.
	OAuthProvider *auth.OAuthProvider

	// Keepalive is the background token renewal loop, nil when not running.
	Keepalive *auth.Keepalive

	// Metrics records tool and API metrics; nil disables recording.
	Metrics *instrumentation.Metrics
}

// NewServerContext creates a new server context. Google clients are created
// lazily on first use so startup never depends on Google being reachable.
func NewServerContext(ctx context.Context, opts Options) (*ServerContext, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("config is required")
	}
	if opts.Provider == nil {
		return nil, fmt.Errorf("credential provider is required")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	shutdownCtx, cancel := context.WithCancel(ctx)

	return &ServerContext{
		ctx:           shutdownCtx,
		cancel:        cancel,
		config:        opts.Config,
		logger:        opts.Logger,
		provider:      opts.Provider,
		oauthProvider: opts.OAuthProvider,
		keepalive:     opts.Keepalive,
		metrics:       opts.Metrics,
	}, nil
}

// Context returns the server context.
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Config returns the resolved configuration.
func (sc *ServerContext) Config() *config.Config {
	return sc.config
}

// Logger returns the server logger.
func (sc *ServerContext) Logger() *slog.Logger {
	return sc.logger
}

// Provider returns the active credential provider.
func (sc *ServerContext) Provider() auth.Provider {
	return sc.provider
}

// OAuthProvider returns the OAuth provider when that credential variant is
// active, nil otherwise.
func (sc *ServerContext) OAuthProvider() *auth.OAuthProvider {
	return sc.oauthProvider
}

// Keepalive returns the background renewal loop, nil when not running.
func (sc *ServerContext) Keepalive() *auth.Keepalive {
	return sc.keepalive
}

// Metrics returns the metrics recorder. May be nil.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	return sc.metrics
}

// GmailClient returns the Gmail client, creating and caching it on first use.
func (sc *ServerContext) GmailClient() (*gmail.Client, error) {
	sc.mu.RLock()
	client := sc.gmailClient
	sc.mu.RUnlock()
	if client != nil {
		return client, nil
	}

	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.gmailClient != nil {
		return sc.gmailClient, nil
	}

	client, err := gmail.NewClient(sc.ctx, sc.provider, sc.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail client: %w", err)
	}
	sc.gmailClient = client
	return client, nil
}

// DriveClient returns the Drive client, creating and caching it on first use.
func (sc *ServerContext) DriveClient() (*drive.Client, error) {
	sc.mu.RLock()
	client := sc.driveClient
	sc.mu.RUnlock()
	if client != nil {
		return client, nil
	}

	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.driveClient != nil {
		return sc.driveClient, nil
	}

	client, err := drive.NewClient(sc.ctx, sc.provider, sc.config.MaxFileSize, sc.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create Drive client: %w", err)
	}
	sc.driveClient = client
	return client, nil
}

// IsShutdown returns whether the server has been shut down.
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown stops the keepalive loop and cancels the server context. Safe to
// call more than once.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}
	sc.shutdown = true

	if sc.keepalive != nil {
		sc.keepalive.Stop()
	}
	sc.cancel()
	return nil
}
