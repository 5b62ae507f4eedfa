package drive_tools

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/workweave/workspace-mcp/internal/drive"
	"github.com/workweave/workspace-mcp/internal/server"
	"github.com/workweave/workspace-mcp/internal/tools/common"
)

const defaultListResults = 100

// registerFileTools registers the file listing, transfer and mutation tools.
func registerFileTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	listFilesTool := mcp.NewTool("drive_list_files",
		mcp.WithDescription("List files in Google Drive, optionally restricted to a folder. Trashed files are always excluded."),
		mcp.WithString("folderId",
			mcp.Description("Restrict results to direct children of this folder (default: the configured default folder, if any)"),
		),
		mcp.WithNumber("maxResults",
			mcp.Description("Maximum number of files to return (default: 100, max: 1000)"),
		),
		mcp.WithString("orderBy",
			mcp.Description("Sort order (e.g. 'folder,modifiedTime desc,name')"),
		),
		mcp.WithString("pageToken",
			mcp.Description("Page token for retrieving the next page of results"),
		),
	)
	s.AddTool(listFilesTool, common.InstrumentedToolHandlerWithService("drive_list_files", "drive", "list", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListFiles(ctx, request, sc, false)
		}))

	searchFilesTool := mcp.NewTool("drive_search_files",
		mcp.WithDescription("Search Google Drive files by name, content or owner. Filters combine conjunctively; trashed files are always excluded."),
		mcp.WithString("nameContains",
			mcp.Description("Match files whose name contains this substring"),
		),
		mcp.WithString("fullText",
			mcp.Description("Match files whose indexed content contains this text"),
		),
		mcp.WithString("owner",
			mcp.Description("Match files owned by this email address"),
		),
		mcp.WithString("folderId",
			mcp.Description("Restrict results to direct children of this folder"),
		),
		mcp.WithNumber("maxResults",
			mcp.Description("Maximum number of files to return (default: 100, max: 1000)"),
		),
		mcp.WithString("pageToken",
			mcp.Description("Page token for retrieving the next page of results"),
		),
	)
	s.AddTool(searchFilesTool, common.InstrumentedToolHandlerWithService("drive_search_files", "drive", "search", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListFiles(ctx, request, sc, true)
		}))

	getFileTool := mcp.NewTool("drive_get_file",
		mcp.WithDescription("Get metadata for a file in Google Drive, including its permissions"),
		mcp.WithString("fileId",
			mcp.Required(),
			mcp.Description("The ID of the file to retrieve"),
		),
	)
	s.AddTool(getFileTool, common.InstrumentedToolHandlerWithService("drive_get_file", "drive", "get", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetFile(ctx, request, sc)
		}))

	downloadFileTool := mcp.NewTool("drive_download_file",
		mcp.WithDescription("Download a file's content. Native workspace documents are exported; word-processor documents default to OpenDocument text, spreadsheets to OpenDocument spreadsheet, presentations to OpenDocument presentation, drawings to PNG, anything else to PDF."),
		mcp.WithString("fileId",
			mcp.Required(),
			mcp.Description("The ID of the file to download"),
		),
		mcp.WithString("exportMimeType",
			mcp.Description("Export format for native workspace documents; ignored for regular files"),
		),
	)
	s.AddTool(downloadFileTool, common.InstrumentedToolHandlerWithService("drive_download_file", "drive", "download", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleDownloadFile(ctx, request, sc)
		}))

	uploadFileTool := mcp.NewTool("drive_upload_file",
		mcp.WithDescription("Upload a file to Google Drive"),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("The name of the file"),
		),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("The file content (base64-encoded when isBase64 is set, otherwise plain text)"),
		),
		mcp.WithString("mimeType",
			mcp.Description("The MIME type of the file (e.g. 'application/pdf', 'text/plain')"),
		),
		mcp.WithString("parentFolders",
			mcp.Description("Comma-separated list of parent folder IDs where the file should be placed"),
		),
		mcp.WithString("description",
			mcp.Description("A short description of the file"),
		),
		mcp.WithBoolean("isBase64",
			mcp.Description("Whether the content is base64-encoded (default: false)"),
		),
	)
	s.AddTool(uploadFileTool, common.InstrumentedToolHandlerWithService("drive_upload_file", "drive", "upload", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleUploadFile(ctx, request, sc)
		}))

	updateFileTool := mcp.NewTool("drive_update_file",
		mcp.WithDescription("Replace the content of an existing file in Google Drive"),
		mcp.WithString("fileId",
			mcp.Required(),
			mcp.Description("The ID of the file to update"),
		),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("The new file content (base64-encoded when isBase64 is set, otherwise plain text)"),
		),
		mcp.WithString("mimeType",
			mcp.Description("The MIME type of the new content"),
		),
		mcp.WithBoolean("isBase64",
			mcp.Description("Whether the content is base64-encoded (default: false)"),
		),
	)
	s.AddTool(updateFileTool, common.InstrumentedToolHandlerWithService("drive_update_file", "drive", "update", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleUpdateFile(ctx, request, sc)
		}))

	copyFileTool := mcp.NewTool("drive_copy_file",
		mcp.WithDescription("Copy a file in Google Drive"),
		mcp.WithString("fileId",
			mcp.Required(),
			mcp.Description("The ID of the file to copy"),
		),
		mcp.WithString("name",
			mcp.Description("Name for the copy (default: the source file's name prefixed with 'Copy of')"),
		),
	)
	s.AddTool(copyFileTool, common.InstrumentedToolHandlerWithService("drive_copy_file", "drive", "copy", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCopyFile(ctx, request, sc)
		}))

	renameFileTool := mcp.NewTool("drive_rename_file",
		mcp.WithDescription("Rename a file in Google Drive"),
		mcp.WithString("fileId",
			mcp.Required(),
			mcp.Description("The ID of the file to rename"),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("The new name for the file"),
		),
	)
	s.AddTool(renameFileTool, common.InstrumentedToolHandlerWithService("drive_rename_file", "drive", "rename", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleRenameFile(ctx, request, sc)
		}))

	moveFileTool := mcp.NewTool("drive_move_file",
		mcp.WithDescription("Move a file to different folder(s). When no folders to remove are given, all current parents are removed so the file is not left in two places."),
		mcp.WithString("fileId",
			mcp.Required(),
			mcp.Description("The ID of the file to move"),
		),
		mcp.WithString("addParents",
			mcp.Required(),
			mcp.Description("Comma-separated list of destination folder IDs"),
		),
		mcp.WithString("removeParents",
			mcp.Description("Comma-separated list of folder IDs to remove the file from (default: all current parents)"),
		),
	)
	s.AddTool(moveFileTool, common.InstrumentedToolHandlerWithService("drive_move_file", "drive", "move", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleMoveFile(ctx, request, sc)
		}))

	deleteFileTool := mcp.NewTool("drive_delete_file",
		mcp.WithDescription("Delete a file from Google Drive. Moves the file to the trash unless permanent deletion is requested."),
		mcp.WithString("fileId",
			mcp.Required(),
			mcp.Description("The ID of the file to delete"),
		),
		mcp.WithBoolean("permanent",
			mcp.Description("Permanently delete the file instead of moving it to the trash (default: false)"),
		),
	)
	s.AddTool(deleteFileTool, common.InstrumentedToolHandlerWithService("drive_delete_file", "drive", "delete", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleDeleteFile(ctx, request, sc)
		}))

	return nil
}

func handleListFiles(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext, search bool) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	options := &drive.ListOptions{
		FolderID:   common.StringArg(args, "folderId", ""),
		MaxResults: common.NumberArg(args, "maxResults", defaultListResults),
		PageToken:  common.StringArg(args, "pageToken", ""),
	}
	if search {
		options.NameContains = common.StringArg(args, "nameContains", "")
		options.FullText = common.StringArg(args, "fullText", "")
		options.Owner = common.StringArg(args, "owner", "")
	} else {
		options.OrderBy = common.StringArg(args, "orderBy", "")
		if options.FolderID == "" {
			options.FolderID = sc.Config().DefaultFolderID
		}
	}

	client, err := sc.DriveClient()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	files, nextPageToken, err := client.ListFiles(ctx, options)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list files: %v", err)), nil
	}

	response := map[string]interface{}{
		"files": files,
		"count": len(files),
	}
	if nextPageToken != "" {
		response["nextPageToken"] = nextPageToken
	}

	result, _ := json.MarshalIndent(response, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleGetFile(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	fileID, ok := args["fileId"].(string)
	if !ok || fileID == "" {
		return mcp.NewToolResultError("fileId is required"), nil
	}

	client, err := sc.DriveClient()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	fileInfo, err := client.GetFile(ctx, fileID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get file: %v", err)), nil
	}

	result, _ := json.MarshalIndent(fileInfo, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleDownloadFile(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	fileID, ok := args["fileId"].(string)
	if !ok || fileID == "" {
		return mcp.NewToolResultError("fileId is required"), nil
	}

	client, err := sc.DriveClient()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	download, err := client.DownloadFile(ctx, fileID, common.StringArg(args, "exportMimeType", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to download file: %v", err)), nil
	}

	response := map[string]interface{}{
		"name":     download.Name,
		"mimeType": download.MimeType,
		"size":     len(download.Content),
	}
	if download.Exported {
		response["exported"] = true
		response["exportMimeType"] = download.ExportMimeType
	}

	// Text payloads are returned inline; anything else is base64-encoded.
	if utf8.Valid(download.Content) {
		response["content"] = string(download.Content)
		response["encoding"] = "utf-8"
	} else {
		response["content"] = base64.StdEncoding.EncodeToString(download.Content)
		response["encoding"] = "base64"
	}

	result, _ := json.MarshalIndent(response, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func contentReader(args map[string]interface{}) (*strings.Reader, *mcp.CallToolResult) {
	contentStr, ok := args["content"].(string)
	if !ok || contentStr == "" {
		return nil, mcp.NewToolResultError("content is required")
	}

	if common.BoolArg(args, "isBase64", false) {
		decoded, err := base64.StdEncoding.DecodeString(contentStr)
		if err != nil {
			return nil, mcp.NewToolResultError(fmt.Sprintf("Failed to decode base64 content: %v", err))
		}
		return strings.NewReader(string(decoded)), nil
	}
	return strings.NewReader(contentStr), nil
}

func handleUploadFile(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	name, ok := args["name"].(string)
	if !ok || name == "" {
		return mcp.NewToolResultError("name is required"), nil
	}

	content, errResult := contentReader(args)
	if errResult != nil {
		return errResult, nil
	}

	options := &drive.UploadOptions{
		MimeType:    common.StringArg(args, "mimeType", ""),
		Description: common.StringArg(args, "description", ""),
	}
	if parents := common.StringArg(args, "parentFolders", ""); parents != "" {
		options.ParentFolders = common.ParseCommaList(parents)
	}

	client, err := sc.DriveClient()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	fileInfo, err := client.UploadFile(ctx, name, content, options)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to upload file: %v", err)), nil
	}

	result, _ := json.MarshalIndent(fileInfo, "", "  ")
	return mcp.NewToolResultText(fmt.Sprintf("File uploaded successfully:\n%s", string(result))), nil
}

func handleUpdateFile(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	fileID, ok := args["fileId"].(string)
	if !ok || fileID == "" {
		return mcp.NewToolResultError("fileId is required"), nil
	}

	content, errResult := contentReader(args)
	if errResult != nil {
		return errResult, nil
	}

	client, err := sc.DriveClient()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	fileInfo, err := client.UpdateFile(ctx, fileID, content, common.StringArg(args, "mimeType", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to update file: %v", err)), nil
	}

	result, _ := json.MarshalIndent(fileInfo, "", "  ")
	return mcp.NewToolResultText(fmt.Sprintf("File updated successfully:\n%s", string(result))), nil
}

func handleCopyFile(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	fileID, ok := args["fileId"].(string)
	if !ok || fileID == "" {
		return mcp.NewToolResultError("fileId is required"), nil
	}

	client, err := sc.DriveClient()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	fileInfo, err := client.CopyFile(ctx, fileID, common.StringArg(args, "name", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to copy file: %v", err)), nil
	}

	result, _ := json.MarshalIndent(fileInfo, "", "  ")
	return mcp.NewToolResultText(fmt.Sprintf("File copied successfully:\n%s", string(result))), nil
}

func handleRenameFile(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	fileID, ok := args["fileId"].(string)
	if !ok || fileID == "" {
		return mcp.NewToolResultError("fileId is required"), nil
	}
	name, ok := args["name"].(string)
	if !ok || name == "" {
		return mcp.NewToolResultError("name is required"), nil
	}

	client, err := sc.DriveClient()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	fileInfo, err := client.RenameFile(ctx, fileID, name)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to rename file: %v", err)), nil
	}

	result, _ := json.MarshalIndent(fileInfo, "", "  ")
	return mcp.NewToolResultText(fmt.Sprintf("File renamed successfully:\n%s", string(result))), nil
}

func handleMoveFile(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	fileID, ok := args["fileId"].(string)
	if !ok || fileID == "" {
		return mcp.NewToolResultError("fileId is required"), nil
	}
	addParentsStr, ok := args["addParents"].(string)
	if !ok || addParentsStr == "" {
		return mcp.NewToolResultError("addParents is required"), nil
	}

	options := &drive.MoveOptions{
		AddParents: common.ParseCommaList(addParentsStr),
	}
	if removeParents := common.StringArg(args, "removeParents", ""); removeParents != "" {
		options.RemoveParents = common.ParseCommaList(removeParents)
	}

	client, err := sc.DriveClient()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	fileInfo, err := client.MoveFile(ctx, fileID, options)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to move file: %v", err)), nil
	}

	result, _ := json.MarshalIndent(fileInfo, "", "  ")
	return mcp.NewToolResultText(fmt.Sprintf("File moved successfully:\n%s", string(result))), nil
}

func handleDeleteFile(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	fileID, ok := args["fileId"].(string)
	if !ok || fileID == "" {
		return mcp.NewToolResultError("fileId is required"), nil
	}
	permanent := common.BoolArg(args, "permanent", false)

	client, err := sc.DriveClient()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := client.DeleteFile(ctx, fileID, permanent); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to delete file: %v", err)), nil
	}

	if permanent {
		return mcp.NewToolResultText(fmt.Sprintf("File %s permanently deleted", fileID)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("File %s moved to trash", fileID)), nil
}
