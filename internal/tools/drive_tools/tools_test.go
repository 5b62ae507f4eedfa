package drive_tools

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
		Config:   &config.Config{ServerName: "test", MaxFileSize: config.DefaultMaxFileSize},
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

func TestRegisterDriveTools(t *testing.T) {
	s := mcpserver.NewMCPServer("test", "0.0.1")
	require.NoError(t, RegisterDriveTools(s, newTestContext(t)))
}

func TestFileHandlersRequireFileID(t *testing.T) {
	sc := newTestContext(t)
	empty := requestWithArgs(map[string]interface{}{})

	handlers := map[string]func(context.Context, mcp.CallToolRequest, *server.ServerContext) (*mcp.CallToolResult, error){
		"get":              handleGetFile,
		"download":         handleDownloadFile,
		"copy":             handleCopyFile,
		"delete":           handleDeleteFile,
		"list_permissions": handleListPermissions,
		"list_comments":    handleListComments,
		"list_revisions":   handleListRevisions,
	}

	for name, handler := range handlers {
		t.Run(name, func(t *testing.T) {
			result, err := handler(context.Background(), empty, sc)
			require.NoError(t, err)
			assert.Contains(t, errorText(t, result), "fileId is required")
		})
	}
}

func TestHandleUploadFileValidation(t *testing.T) {
	sc := newTestContext(t)

	result, err := handleUploadFile(context.Background(), requestWithArgs(map[string]interface{}{
		"content": "hello",
	}), sc)
	require.NoError(t, err)
	assert.Contains(t, errorText(t, result), "name is required")

	result, err = handleUploadFile(context.Background(), requestWithArgs(map[string]interface{}{
		"name": "notes.txt",
	}), sc)
	require.NoError(t, err)
	assert.Contains(t, errorText(t, result), "content is required")

	result, err = handleUploadFile(context.Background(), requestWithArgs(map[string]interface{}{
		"name":     "notes.txt",
		"content":  "not valid base64!!!",
		"isBase64": true,
	}), sc)
	require.NoError(t, err)
	assert.Contains(t, errorText(t, result), "base64")
}

func TestHandleRenameFileValidation(t *testing.T) {
	sc := newTestContext(t)

	result, err := handleRenameFile(context.Background(), requestWithArgs(map[string]interface{}{
		"fileId": "f1",
	}), sc)
	require.NoError(t, err)
	assert.Contains(t, errorText(t, result), "name is required")
}

func TestHandleMoveFileValidation(t *testing.T) {
	sc := newTestContext(t)

	result, err := handleMoveFile(context.Background(), requestWithArgs(map[string]interface{}{
		"fileId": "f1",
	}), sc)
	require.NoError(t, err)
	assert.Contains(t, errorText(t, result), "addParents is required")
}

func TestHandleShareFileValidation(t *testing.T) {
	sc := newTestContext(t)

	tests := []struct {
		name    string
		args    map[string]interface{}
		wantErr string
	}{
		{
			name:    "missing type",
			args:    map[string]interface{}{"fileId": "f1", "role": "reader"},
			wantErr: "type is required",
		},
		{
			name:    "missing role",
			args:    map[string]interface{}{"fileId": "f1", "type": "user"},
			wantErr: "role is required",
		},
		{
			name:    "user without email",
			args:    map[string]interface{}{"fileId": "f1", "type": "user", "role": "reader"},
			wantErr: "emailAddress is required",
		},
		{
			name:    "domain without domain",
			args:    map[string]interface{}{"fileId": "f1", "type": "domain", "role": "reader"},
			wantErr: "domain is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := handleShareFile(context.Background(), requestWithArgs(tt.args), sc)
			require.NoError(t, err)
			assert.Contains(t, errorText(t, result), tt.wantErr)
		})
	}
}

func TestHandleCreateCommentValidation(t *testing.T) {
	sc := newTestContext(t)

	result, err := handleCreateComment(context.Background(), requestWithArgs(map[string]interface{}{
		"fileId": "f1",
	}), sc)
	require.NoError(t, err)
	assert.Contains(t, errorText(t, result), "content is required")
}
