package auth_tools

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/workweave/workspace-mcp/internal/auth"
	"github.com/workweave/workspace-mcp/internal/server"
	"github.com/workweave/workspace-mcp/internal/tools/common"
)

// RegisterAuthTools registers the credential status and refresh tools.
func RegisterAuthTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	statusTool := mcp.NewTool("auth_status",
		mcp.WithDescription("Report the current token health: refresh credential presence, last renewal time and keepalive state. Performs no network call."),
	)
	s.AddTool(statusTool, common.InstrumentedToolHandler("auth_status", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleAuthStatus(ctx, request, sc)
		}))

	refreshTool := mcp.NewTool("auth_refresh",
		mcp.WithDescription("Force an access token refresh and report the outcome. Failures are reported in the result, never as an exception."),
	)
	s.AddTool(refreshTool, common.InstrumentedToolHandler("auth_refresh", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleAuthRefresh(ctx, request, sc)
		}))

	return nil
}

type statusPayload struct {
	Variant string               `json:"variant"`
	Status  *auth.HealthSnapshot `json:"status,omitempty"`
	Message string               `json:"message,omitempty"`
}

func handleAuthStatus(_ context.Context, _ mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	payload := statusPayload{}

	if oauthProvider := sc.OAuthProvider(); oauthProvider != nil {
		snapshot := oauthProvider.Status()
		payload.Variant = "oauth"
		payload.Status = &snapshot
	} else {
		payload.Variant = "service_account"
		payload.Message = "service account credentials mint tokens on demand; there is no refresh state to report"
	}

	result, _ := json.MarshalIndent(payload, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleAuthRefresh(ctx context.Context, _ mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	var refresh auth.RefreshResult

	if oauthProvider := sc.OAuthProvider(); oauthProvider != nil {
		refresh = oauthProvider.ManualRefresh(ctx)
	} else {
		// The service account variant mints a token per call; a manual
		// refresh just proves the credentials still work.
		if _, err := sc.Provider().AcquireLease(ctx); err != nil {
			refresh = auth.RefreshResult{Success: false, Message: "token mint failed: " + err.Error()}
		} else {
			refresh = auth.RefreshResult{Success: true, Message: "access token minted"}
		}
	}

	result, _ := json.MarshalIndent(refresh, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}
