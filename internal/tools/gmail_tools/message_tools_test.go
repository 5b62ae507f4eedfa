package gmail_tools

import (
	"context"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/workweave/workspace-mcp/internal/auth"
	"github.com/workweave/workspace-mcp/internal/config"
	"github.com/workweave/workspace-mcp/internal/server"
)

type stubProvider struct{}

func (stubProvider) AcquireLease(context.Context) (*auth.Lease, error) {
	return &auth.Lease{
		Token:      &oauth2.Token{AccessToken: "tok", Expiry: time.Now().Add(time.Hour)},
		AcquiredAt: time.Now(),
	}, nil
}

func newTestContext(t *testing.T) *server.ServerContext {
	t.Helper()

	sc, err := server.NewServerContext(context.Background(), server.Options{
		Config:   &config.Config{ServerName: "test"},
		Provider: stubProvider{},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

func requestWithArgs(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func errorText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()

	require.True(t, result.IsError)
	require.NotEmpty(t, result.Content)
	text, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok)
	return text.Text
}

func TestRegisterGmailTools(t *testing.T) {
	s := mcpserver.NewMCPServer("test", "0.0.1")
	require.NoError(t, RegisterGmailTools(s, newTestContext(t)))
}

func TestHandleGetMessageRequiresID(t *testing.T) {
	sc := newTestContext(t)

	result, err := handleGetMessage(context.Background(), requestWithArgs(map[string]interface{}{}), sc)
	require.NoError(t, err)
	assert.Contains(t, errorText(t, result), "messageId is required")
}

func TestHandleSendMessageValidation(t *testing.T) {
	sc := newTestContext(t)

	tests := []struct {
		name    string
		args    map[string]interface{}
		wantErr string
	}{
		{
			name:    "missing to",
			args:    map[string]interface{}{"subject": "S", "body": "B"},
			wantErr: "to is required",
		},
		{
			name:    "missing subject",
			args:    map[string]interface{}{"to": "a@b.com", "body": "B"},
			wantErr: "subject is required",
		},
		{
			name:    "missing body",
			args:    map[string]interface{}{"to": "a@b.com", "subject": "S"},
			wantErr: "body is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := handleSendMessage(context.Background(), requestWithArgs(tt.args), sc)
			require.NoError(t, err)
			assert.Contains(t, errorText(t, result), tt.wantErr)
		})
	}
}

func TestHandleMarkReadStateRequiresID(t *testing.T) {
	sc := newTestContext(t)

	result, err := handleMarkReadState(context.Background(), requestWithArgs(map[string]interface{}{}), sc, true)
	require.NoError(t, err)
	assert.Contains(t, errorText(t, result), "messageId is required")
}
