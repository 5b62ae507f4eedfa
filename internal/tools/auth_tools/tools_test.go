package auth_tools

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workweave/workspace-mcp/internal/auth"
	"github.com/workweave/workspace-mcp/internal/config"
	"github.com/workweave/workspace-mcp/internal/server"
)

type failingProvider struct{}

func (failingProvider) AcquireLease(context.Context) (*auth.Lease, error) {
	return nil, errors.New("identity disabled")
}

func newOAuthContext(t *testing.T, refreshToken string) *server.ServerContext {
	t.Helper()

	provider, err := auth.NewOAuthProvider(config.OAuthCredentials{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURI:  config.DefaultRedirectURI,
		RefreshToken: refreshToken,
	}, nil)
	require.NoError(t, err)

	sc, err := server.NewServerContext(context.Background(), server.Options{
		Config:        &config.Config{ServerName: "test"},
		Provider:      provider,
		OAuthProvider: provider,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

func textContent(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()

	require.NotEmpty(t, result.Content)
	text, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok)
	return text.Text
}

func TestAuthStatusOAuthVariant(t *testing.T) {
	sc := newOAuthContext(t, "")

	result, err := handleAuthStatus(context.Background(), mcp.CallToolRequest{}, sc)
	require.NoError(t, err)
	require.False(t, result.IsError)

	var payload struct {
		Variant string               `json:"variant"`
		Status  *auth.HealthSnapshot `json:"status"`
	}
	require.NoError(t, json.Unmarshal([]byte(textContent(t, result)), &payload))

	assert.Equal(t, "oauth", payload.Variant)
	require.NotNil(t, payload.Status)
	assert.False(t, payload.Status.HasRefreshToken)
	assert.False(t, payload.Status.KeepaliveActive)
}

func TestAuthStatusServiceAccountVariant(t *testing.T) {
	sc, err := server.NewServerContext(context.Background(), server.Options{
		Config:   &config.Config{ServerName: "test"},
		Provider: failingProvider{},
	})
	require.NoError(t, err)
	defer func() { _ = sc.Shutdown() }()

	result, err := handleAuthStatus(context.Background(), mcp.CallToolRequest{}, sc)
	require.NoError(t, err)
	require.False(t, result.IsError)

	var payload struct {
		Variant string `json:"variant"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal([]byte(textContent(t, result)), &payload))
	assert.Equal(t, "service_account", payload.Variant)
	assert.NotEmpty(t, payload.Message)
}

func TestAuthRefreshNeverErrors(t *testing.T) {
	// OAuth variant without a refresh token: the exchange cannot succeed,
	// but the tool must report that as a structured result.
	sc := newOAuthContext(t, "")

	result, err := handleAuthRefresh(context.Background(), mcp.CallToolRequest{}, sc)
	require.NoError(t, err)
	require.False(t, result.IsError)

	var refresh auth.RefreshResult
	require.NoError(t, json.Unmarshal([]byte(textContent(t, result)), &refresh))
	assert.False(t, refresh.Success)
	assert.NotEmpty(t, refresh.Message)
}

func TestAuthRefreshServiceAccountFailure(t *testing.T) {
	sc, err := server.NewServerContext(context.Background(), server.Options{
		Config:   &config.Config{ServerName: "test"},
		Provider: failingProvider{},
	})
	require.NoError(t, err)
	defer func() { _ = sc.Shutdown() }()

	result, err := handleAuthRefresh(context.Background(), mcp.CallToolRequest{}, sc)
	require.NoError(t, err)
	require.False(t, result.IsError)

	var refresh auth.RefreshResult
	require.NoError(t, json.Unmarshal([]byte(textContent(t, result)), &refresh))
	assert.False(t, refresh.Success)
	assert.Contains(t, refresh.Message, "identity disabled")
}
