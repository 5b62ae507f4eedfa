package drive_tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/workweave/workspace-mcp/internal/drive"
	"github.com/workweave/workspace-mcp/internal/server"
	"github.com/workweave/workspace-mcp/internal/tools/common"
)

// registerShareTools registers permission management tools.
func registerShareTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	shareFileTool := mcp.NewTool("drive_share_file",
		mcp.WithDescription("Grant access to a file in Google Drive"),
		mcp.WithString("fileId",
			mcp.Required(),
			mcp.Description("The ID of the file to share"),
		),
		mcp.WithString("type",
			mcp.Required(),
			mcp.Description("The grantee type"),
			mcp.Enum("user", "group", "domain", "anyone"),
		),
		mcp.WithString("role",
			mcp.Required(),
			mcp.Description("The role to grant"),
			mcp.Enum("reader", "commenter", "writer", "fileOrganizer", "organizer", "owner"),
		),
		mcp.WithString("emailAddress",
			mcp.Description("Email address of the grantee (required for type 'user' or 'group')"),
		),
		mcp.WithString("domain",
			mcp.Description("Domain of the grantee (required for type 'domain')"),
		),
		mcp.WithBoolean("sendNotificationEmail",
			mcp.Description("Send a notification email to the grantee (default: false)"),
		),
		mcp.WithString("emailMessage",
			mcp.Description("Custom message to include in the notification email"),
		),
	)
	s.AddTool(shareFileTool, common.InstrumentedToolHandlerWithService("drive_share_file", "drive", "share", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleShareFile(ctx, request, sc)
		}))

	listPermissionsTool := mcp.NewTool("drive_list_permissions",
		mcp.WithDescription("List the permissions on a file in Google Drive"),
		mcp.WithString("fileId",
			mcp.Required(),
			mcp.Description("The ID of the file"),
		),
	)
	s.AddTool(listPermissionsTool, common.InstrumentedToolHandlerWithService("drive_list_permissions", "drive", "list_permissions", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListPermissions(ctx, request, sc)
		}))

	removePermissionTool := mcp.NewTool("drive_remove_permission",
		mcp.WithDescription("Remove a permission from a file in Google Drive"),
		mcp.WithString("fileId",
			mcp.Required(),
			mcp.Description("The ID of the file"),
		),
		mcp.WithString("permissionId",
			mcp.Required(),
			mcp.Description("The ID of the permission to remove"),
		),
	)
	s.AddTool(removePermissionTool, common.InstrumentedToolHandlerWithService("drive_remove_permission", "drive", "remove_permission", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleRemovePermission(ctx, request, sc)
		}))

	return nil
}

func handleShareFile(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	fileID, ok := args["fileId"].(string)
	if !ok || fileID == "" {
		return mcp.NewToolResultError("fileId is required"), nil
	}
	granteeType, ok := args["type"].(string)
	if !ok || granteeType == "" {
		return mcp.NewToolResultError("type is required"), nil
	}
	role, ok := args["role"].(string)
	if !ok || role == "" {
		return mcp.NewToolResultError("role is required"), nil
	}

	options := &drive.ShareOptions{
		Type:                  granteeType,
		Role:                  role,
		EmailAddress:          common.StringArg(args, "emailAddress", ""),
		Domain:                common.StringArg(args, "domain", ""),
		SendNotificationEmail: common.BoolArg(args, "sendNotificationEmail", false),
		EmailMessage:          common.StringArg(args, "emailMessage", ""),
	}

	switch granteeType {
	case "user", "group":
		if options.EmailAddress == "" {
			return mcp.NewToolResultError(fmt.Sprintf("emailAddress is required for type %q", granteeType)), nil
		}
	case "domain":
		if options.Domain == "" {
			return mcp.NewToolResultError("domain is required for type \"domain\""), nil
		}
	}

	client, err := sc.DriveClient()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	permission, err := client.ShareFile(ctx, fileID, options)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to share file: %v", err)), nil
	}

	result, _ := json.MarshalIndent(permission, "", "  ")
	return mcp.NewToolResultText(fmt.Sprintf("File shared successfully:\n%s", string(result))), nil
}

func handleListPermissions(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	fileID, ok := args["fileId"].(string)
	if !ok || fileID == "" {
		return mcp.NewToolResultError("fileId is required"), nil
	}

	client, err := sc.DriveClient()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	permissions, err := client.ListPermissions(ctx, fileID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list permissions: %v", err)), nil
	}

	response := map[string]interface{}{
		"permissions": permissions,
		"count":       len(permissions),
	}
	result, _ := json.MarshalIndent(response, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleRemovePermission(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	fileID, ok := args["fileId"].(string)
	if !ok || fileID == "" {
		return mcp.NewToolResultError("fileId is required"), nil
	}
	permissionID, ok := args["permissionId"].(string)
	if !ok || permissionID == "" {
		return mcp.NewToolResultError("permissionId is required"), nil
	}

	client, err := sc.DriveClient()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := client.RemovePermission(ctx, fileID, permissionID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to remove permission: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Permission %s removed from file %s", permissionID, fileID)), nil
}
