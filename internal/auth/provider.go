package auth

import (
	"context"
	"time"

	"golang.org/x/oauth2"
)

// Lease is a short-lived access token held in memory only. It is owned by
// the Provider that minted it and replaced wholesale on every acquisition;
// expiry is enforced by the remote authorization server, not by this process.
type Lease struct {
	Token      *oauth2.Token
	AcquiredAt time.Time
}

// Provider is the capability shared by both credential variants.
type Provider interface {
	// AcquireLease forces a fresh access-token exchange. The only
	// observable side effect of a successful call is an updated
	// last-renewal timestamp on providers that track one.
	AcquireLease(ctx context.Context) (*Lease, error)
}

// HealthSnapshot is a point-in-time projection of the OAuth provider's
// token state. It is computed on demand and never stored.
type HealthSnapshot struct {
	HasRefreshToken     bool      `json:"hasRefreshToken"`
	LastRefresh         time.Time `json:"lastRefresh,omitzero"`
	MinutesSinceRefresh float64   `json:"minutesSinceRefresh"`
	KeepaliveActive     bool      `json:"keepaliveActive"`
}

// RefreshResult is the outcome of a manual refresh. Failures are reported
// in the struct rather than as an error so the operation can be invoked
// interactively without ever raising.
type RefreshResult struct {
	Success     bool      `json:"success"`
	LastRefresh time.Time `json:"lastRefresh,omitzero"`
	Message     string    `json:"message"`
}

// providerTokenSource adapts a Provider to oauth2.TokenSource so the Google
// SDK clients can pull tokens through the provider.
type providerTokenSource struct {
	ctx      context.Context
	provider Provider
}

func (s *providerTokenSource) Token() (*oauth2.Token, error) {
	lease, err := s.provider.AcquireLease(s.ctx)
	if err != nil {
		return nil, err
	}
	return lease.Token, nil
}

// TokenSource returns an oauth2.TokenSource backed by the given provider.
// The source is wrapped in a ReuseTokenSource so API calls share one lease
// until it expires instead of forcing an exchange per request.
func TokenSource(ctx context.Context, p Provider) oauth2.TokenSource {
	return oauth2.ReuseTokenSource(nil, &providerTokenSource{ctx: ctx, provider: p})
}
