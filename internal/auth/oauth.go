package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/workweave/workspace-mcp/internal/config"
)

// OAuthProvider exchanges a stored refresh token for short-lived access
// tokens. It remembers the timestamp of the last successful exchange, which
// is the single mutable scalar shared with status queries.
type OAuthProvider struct {
	conf         *oauth2.Config
	refreshToken string
	logger       *slog.Logger

	// exchange performs the actual refresh-token exchange. Tests replace
	// it with a stub.
	exchange func(ctx context.Context) (*oauth2.Token, error)

	// now is stubbed in tests to control the clock.
	now func() time.Time

	mu          sync.RWMutex
	lastRefresh time.Time
	keepalive   *Keepalive
}

// NewOAuthProvider constructs the OAuth credential variant. Construction
// fails when the client id or secret is absent; a missing refresh token
// degrades the provider but is not fatal here (the caller decides whether
// to start a keepalive).
func NewOAuthProvider(creds config.OAuthCredentials, logger *slog.Logger) (*OAuthProvider, error) {
	if creds.ClientID == "" || creds.ClientSecret == "" {
		return nil, &config.ValidationError{Reason: "OAuth client id and client secret are required"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	p := &OAuthProvider{
		conf: &oauth2.Config{
			ClientID:     creds.ClientID,
			ClientSecret: creds.ClientSecret,
			RedirectURL:  creds.RedirectURI,
			Endpoint:     google.Endpoint,
			Scopes:       DefaultScopes,
		},
		refreshToken: creds.RefreshToken,
		logger:       logger,
		now:          time.Now,
	}
	p.exchange = p.exchangeRefreshToken

	if p.refreshToken == "" {
		logger.Warn("OAuth provider constructed without a refresh token; access will fail once the current token expires")
	}

	return p, nil
}

// HasRefreshToken reports whether a refresh credential was configured.
func (p *OAuthProvider) HasRefreshToken() bool {
	return p.refreshToken != ""
}

// AttachKeepalive records the maintenance timer handle so status queries can
// report whether it is running.
func (p *OAuthProvider) AttachKeepalive(k *Keepalive) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keepalive = k
}

// AcquireLease forces an access-token exchange using the stored refresh
// token. On success the provider's last-renewal timestamp is updated.
func (p *OAuthProvider) AcquireLease(ctx context.Context) (*Lease, error) {
	if p.refreshToken == "" {
		return nil, ErrMissingRefreshToken
	}

	token, err := p.exchange(ctx)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			return nil, &AuthorizationError{Variant: "oauth", Err: err}
		}
		return nil, fmt.Errorf("token exchange failed: %w", err)
	}

	acquiredAt := p.now()
	p.mu.Lock()
	p.lastRefresh = acquiredAt
	p.mu.Unlock()

	return &Lease{Token: token, AcquiredAt: acquiredAt}, nil
}

// exchangeRefreshToken performs a real exchange against the authorization
// server. Seeding the token source with only a refresh token guarantees an
// exchange rather than a cache hit.
func (p *OAuthProvider) exchangeRefreshToken(ctx context.Context) (*oauth2.Token, error) {
	src := p.conf.TokenSource(ctx, &oauth2.Token{RefreshToken: p.refreshToken})
	return src.Token()
}

// Status returns a point-in-time health snapshot. It performs no network
// call.
func (p *OAuthProvider) Status() HealthSnapshot {
	p.mu.RLock()
	lastRefresh := p.lastRefresh
	keepalive := p.keepalive
	p.mu.RUnlock()

	snapshot := HealthSnapshot{
		HasRefreshToken: p.refreshToken != "",
		LastRefresh:     lastRefresh,
	}
	if !lastRefresh.IsZero() {
		snapshot.MinutesSinceRefresh = p.now().Sub(lastRefresh).Minutes()
	}
	if keepalive != nil {
		snapshot.KeepaliveActive = keepalive.Active()
	}

	return snapshot
}

// ManualRefresh acquires a fresh lease and converts any failure into a
// structured negative result. It never returns an error: the operation is
// invoked interactively by an operator troubleshooting auth, and a thrown
// error there helps nobody.
func (p *OAuthProvider) ManualRefresh(ctx context.Context) RefreshResult {
	_, err := p.AcquireLease(ctx)

	p.mu.RLock()
	lastRefresh := p.lastRefresh
	p.mu.RUnlock()

	if err != nil {
		p.logger.Warn("manual token refresh failed", "error", err)
		return RefreshResult{
			Success:     false,
			LastRefresh: lastRefresh,
			Message:     fmt.Sprintf("token refresh failed: %v", err),
		}
	}

	return RefreshResult{
		Success:     true,
		LastRefresh: lastRefresh,
		Message:     "access token refreshed",
	}
}
