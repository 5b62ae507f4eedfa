package server

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/workweave/workspace-mcp/internal/auth"
	"github.com/workweave/workspace-mcp/internal/config"
)

type staticProvider struct{}

func (staticProvider) AcquireLease(context.Context) (*auth.Lease, error) {
	return &auth.Lease{
		Token:      &oauth2.Token{AccessToken: "tok", Expiry: time.Now().Add(time.Hour)},
		AcquiredAt: time.Now(),
	}, nil
}

func newTestContext(t *testing.T) *ServerContext {
	t.Helper()

	sc, err := NewServerContext(context.Background(), Options{
		Config:   &config.Config{ServerName: "test", MaxFileSize: config.DefaultMaxFileSize},
		Provider: staticProvider{},
	})
	require.NoError(t, err)
	return sc
}

func TestNewServerContextValidation(t *testing.T) {
	_, err := NewServerContext(context.Background(), Options{Provider: staticProvider{}})
	assert.Error(t, err)

	_, err = NewServerContext(context.Background(), Options{Config: &config.Config{}})
	assert.Error(t, err)
}

func TestServerContextLazyClients(t *testing.T) {
	sc := newTestContext(t)
	defer func() { _ = sc.Shutdown() }()

	gmailClient, err := sc.GmailClient()
	require.NoError(t, err)
	again, err := sc.GmailClient()
	require.NoError(t, err)
	assert.Same(t, gmailClient, again)

	driveClient, err := sc.DriveClient()
	require.NoError(t, err)
	again2, err := sc.DriveClient()
	require.NoError(t, err)
	assert.Same(t, driveClient, again2)
}

func TestServerContextShutdown(t *testing.T) {
	sc := newTestContext(t)

	assert.False(t, sc.IsShutdown())
	require.NoError(t, sc.Shutdown())
	assert.True(t, sc.IsShutdown())

	select {
	case <-sc.Context().Done():
	default:
		t.Fatal("context should be cancelled after shutdown")
	}

	// Repeat calls are no-ops.
	require.NoError(t, sc.Shutdown())
}

func TestServerContextAccessors(t *testing.T) {
	sc := newTestContext(t)
	defer func() { _ = sc.Shutdown() }()

	assert.NotNil(t, sc.Config())
	assert.NotNil(t, sc.Logger())
	assert.NotNil(t, sc.Provider())
	assert.Nil(t, sc.OAuthProvider())
	assert.Nil(t, sc.Keepalive())
	assert.Nil(t, sc.Metrics())
}
