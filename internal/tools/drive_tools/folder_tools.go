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

// registerFolderTools registers folder management tools.
func registerFolderTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	createFolderTool := mcp.NewTool("drive_create_folder",
		mcp.WithDescription("Create a folder in Google Drive"),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("The name of the folder"),
		),
		mcp.WithString("parentFolders",
			mcp.Description("Comma-separated list of parent folder IDs (default: the Drive root)"),
		),
	)
	s.AddTool(createFolderTool, common.InstrumentedToolHandlerWithService("drive_create_folder", "drive", "create", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCreateFolder(ctx, request, sc)
		}))

	return nil
}

func handleCreateFolder(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	name, ok := args["name"].(string)
	if !ok || name == "" {
		return mcp.NewToolResultError("name is required"), nil
	}

	var parents []string
	if parentsStr := common.StringArg(args, "parentFolders", ""); parentsStr != "" {
		parents = common.ParseCommaList(parentsStr)
	}

	client, err := sc.DriveClient()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	folder, err := client.CreateFolder(ctx, name, parents)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create folder: %v", err)), nil
	}

	result, _ := json.MarshalIndent(folder, "", "  ")
	return mcp.NewToolResultText(fmt.Sprintf("Folder created successfully:\n%s", string(result))), nil
}
