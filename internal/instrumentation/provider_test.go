package instrumentation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProviderDisabled(t *testing.T) {
	provider, err := NewProvider(context.Background(), Config{Enabled: false})
	require.NoError(t, err)

	assert.False(t, provider.Enabled())
	assert.Nil(t, provider.Handler())
	require.NotNil(t, provider.Metrics())

	// The no-op recorder must be safe to use.
	provider.Metrics().RecordToolInvocation(context.Background(), "drive_list_files", StatusSuccess, time.Millisecond)
	provider.Metrics().RecordTokenRefresh(context.Background(), "oauth", RefreshResultFailure)

	assert.NoError(t, provider.Shutdown(context.Background()))
}

func TestNewProviderEnabled(t *testing.T) {
	provider, err := NewProvider(context.Background(), Config{
		ServiceName:    "workspace-mcp-test",
		ServiceVersion: "0.0.1",
		Enabled:        true,
	})
	require.NoError(t, err)
	defer func() { _ = provider.Shutdown(context.Background()) }()

	assert.True(t, provider.Enabled())
	require.NotNil(t, provider.Handler())

	provider.Metrics().RecordToolInvocation(context.Background(), "gmail_send_message", StatusSuccess, 50*time.Millisecond)
	provider.Metrics().RecordGoogleAPIOperation(context.Background(), ServiceGmail, "send", StatusSuccess, 40*time.Millisecond)
	provider.Metrics().RecordTokenRefresh(context.Background(), "oauth", RefreshResultSuccess)

	rec := httptest.NewRecorder()
	provider.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "mcp_tool_invocations_total")
	assert.Contains(t, body, "google_api_operations_total")
	assert.Contains(t, body, "token_refresh_total")
}

func TestNilMetricsRecorderIsNoOp(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.RecordToolInvocation(context.Background(), "auth_status", StatusError, time.Second)
		m.RecordGoogleAPIOperation(context.Background(), ServiceDrive, "list", StatusError, time.Second)
		m.RecordTokenRefresh(context.Background(), "service_account", RefreshResultFailure)
	})
}
