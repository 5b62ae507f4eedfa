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

// registerCommentTools registers comment and revision tools.
func registerCommentTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	listCommentsTool := mcp.NewTool("drive_list_comments",
		mcp.WithDescription("List the comments on a file in Google Drive"),
		mcp.WithString("fileId",
			mcp.Required(),
			mcp.Description("The ID of the file"),
		),
	)
	s.AddTool(listCommentsTool, common.InstrumentedToolHandlerWithService("drive_list_comments", "drive", "list_comments", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListComments(ctx, request, sc)
		}))

	createCommentTool := mcp.NewTool("drive_create_comment",
		mcp.WithDescription("Add a comment to a file in Google Drive"),
		mcp.WithString("fileId",
			mcp.Required(),
			mcp.Description("The ID of the file"),
		),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("The comment text"),
		),
	)
	s.AddTool(createCommentTool, common.InstrumentedToolHandlerWithService("drive_create_comment", "drive", "create_comment", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCreateComment(ctx, request, sc)
		}))

	listRevisionsTool := mcp.NewTool("drive_list_revisions",
		mcp.WithDescription("List the stored revisions of a file in Google Drive"),
		mcp.WithString("fileId",
			mcp.Required(),
			mcp.Description("The ID of the file"),
		),
	)
	s.AddTool(listRevisionsTool, common.InstrumentedToolHandlerWithService("drive_list_revisions", "drive", "list_revisions", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListRevisions(ctx, request, sc)
		}))

	return nil
}

func handleListComments(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	fileID, ok := args["fileId"].(string)
	if !ok || fileID == "" {
		return mcp.NewToolResultError("fileId is required"), nil
	}

	client, err := sc.DriveClient()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	comments, err := client.ListComments(ctx, fileID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list comments: %v", err)), nil
	}

	response := map[string]interface{}{
		"comments": comments,
		"count":    len(comments),
	}
	result, _ := json.MarshalIndent(response, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleCreateComment(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	fileID, ok := args["fileId"].(string)
	if !ok || fileID == "" {
		return mcp.NewToolResultError("fileId is required"), nil
	}
	content, ok := args["content"].(string)
	if !ok || content == "" {
		return mcp.NewToolResultError("content is required"), nil
	}

	client, err := sc.DriveClient()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	comment, err := client.CreateComment(ctx, fileID, content)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create comment: %v", err)), nil
	}

	result, _ := json.MarshalIndent(comment, "", "  ")
	return mcp.NewToolResultText(fmt.Sprintf("Comment created successfully:\n%s", string(result))), nil
}

func handleListRevisions(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	fileID, ok := args["fileId"].(string)
	if !ok || fileID == "" {
		return mcp.NewToolResultError("fileId is required"), nil
	}

	client, err := sc.DriveClient()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	revisions, err := client.ListRevisions(ctx, fileID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list revisions: %v", err)), nil
	}

	response := map[string]interface{}{
		"revisions": revisions,
		"count":     len(revisions),
	}
	result, _ := json.MarshalIndent(response, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}
