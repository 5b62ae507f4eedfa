package common

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/workweave/workspace-mcp/internal/auth"
	"github.com/workweave/workspace-mcp/internal/config"
	"github.com/workweave/workspace-mcp/internal/instrumentation"
	"github.com/workweave/workspace-mcp/internal/server"
)

type stubProvider struct{}

func (stubProvider) AcquireLease(context.Context) (*auth.Lease, error) {
	return &auth.Lease{
		Token:      &oauth2.Token{AccessToken: "tok", Expiry: time.Now().Add(time.Hour)},
		AcquiredAt: time.Now(),
	}, nil
}

func newServerContext(t *testing.T, metrics *instrumentation.Metrics) *server.ServerContext {
	t.Helper()

	sc, err := server.NewServerContext(context.Background(), server.Options{
		Config:   &config.Config{ServerName: "test"},
		Provider: stubProvider{},
		Metrics:  metrics,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

func TestInstrumentedToolHandlerWithoutMetrics(t *testing.T) {
	sc := newServerContext(t, nil)

	called := false
	wrapped := InstrumentedToolHandler("auth_status", sc, func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		called = true
		return mcp.NewToolResultText("ok"), nil
	})

	result, err := wrapped(context.Background(), mcp.CallToolRequest{})
	require.NoError(t, err)
	assert.True(t, called)
	assert.False(t, result.IsError)
}

func TestInstrumentedToolHandlerRecordsMetrics(t *testing.T) {
	provider, err := instrumentation.NewProvider(context.Background(), instrumentation.Config{
		ServiceName: "test",
		Enabled:     true,
	})
	require.NoError(t, err)
	defer func() { _ = provider.Shutdown(context.Background()) }()

	sc := newServerContext(t, provider.Metrics())

	wrapped := InstrumentedToolHandlerWithService("gmail_get_message", "gmail", "get", sc,
		func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultError("message not found"), nil
		})

	result, err := wrapped(context.Background(), mcp.CallToolRequest{})
	require.NoError(t, err)
	assert.True(t, result.IsError)

	rec := httptest.NewRecorder()
	provider.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	assert.Contains(t, body, "gmail_get_message")
	assert.Contains(t, body, `status="error"`)
}
