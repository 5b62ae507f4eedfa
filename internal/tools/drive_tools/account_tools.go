package drive_tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/workweave/workspace-mcp/internal/server"
	"github.com/workweave/workspace-mcp/internal/tools/common"
)

// registerAccountTools registers the account information tool.
func registerAccountTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	getAboutTool := mcp.NewTool("drive_get_about",
		mcp.WithDescription("Get information about the authenticated account and its storage quota"),
	)
	s.AddTool(getAboutTool, common.InstrumentedToolHandlerWithService("drive_get_about", "drive", "about", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetAbout(ctx, request, sc)
		}))

	return nil
}

func handleGetAbout(ctx context.Context, _ mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	client, err := sc.DriveClient()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	info, err := client.About(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get account info: %v", err)), nil
	}

	result, _ := json.MarshalIndent(info, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}
