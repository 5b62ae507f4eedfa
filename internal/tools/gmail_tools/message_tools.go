package gmail_tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/workweave/workspace-mcp/internal/gmail"
	"github.com/workweave/workspace-mcp/internal/server"
	"github.com/workweave/workspace-mcp/internal/tools/common"
)

const defaultListResults = 10

// registerMessageTools registers the message list/search/get/send/read-state
// tools.
func registerMessageTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	listTool := mcp.NewTool("gmail_list_messages",
		mcp.WithDescription("List recent Gmail messages with their common headers"),
		mcp.WithNumber("maxResults",
			mcp.Description("Maximum number of messages to return (default: 10, max: 100)"),
		),
	)
	s.AddTool(listTool, common.InstrumentedToolHandlerWithService("gmail_list_messages", "gmail", "list", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListMessages(ctx, request, sc, "")
		}))

	searchTool := mcp.NewTool("gmail_search_messages",
		mcp.WithDescription("Search Gmail messages using Gmail's query syntax (e.g. 'from:alice is:unread')"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search query in Gmail's query syntax"),
		),
		mcp.WithNumber("maxResults",
			mcp.Description("Maximum number of messages to return (default: 10, max: 100)"),
		),
	)
	s.AddTool(searchTool, common.InstrumentedToolHandlerWithService("gmail_search_messages", "gmail", "search", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			query, ok := args["query"].(string)
			if !ok || query == "" {
				return mcp.NewToolResultError("query is required"), nil
			}
			return handleListMessages(ctx, request, sc, query)
		}))

	getTool := mcp.NewTool("gmail_get_message",
		mcp.WithDescription("Get a Gmail message in full, including the extracted plain-text body"),
		mcp.WithString("messageId",
			mcp.Required(),
			mcp.Description("The ID of the message to retrieve"),
		),
	)
	s.AddTool(getTool, common.InstrumentedToolHandlerWithService("gmail_get_message", "gmail", "get", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetMessage(ctx, request, sc)
		}))

	sendTool := mcp.NewTool("gmail_send_message",
		mcp.WithDescription("Send an email through Gmail"),
		mcp.WithString("to",
			mcp.Required(),
			mcp.Description("Recipient email address(es), comma-separated for multiple recipients"),
		),
		mcp.WithString("subject",
			mcp.Required(),
			mcp.Description("Email subject"),
		),
		mcp.WithString("body",
			mcp.Required(),
			mcp.Description("Email body content (plain text)"),
		),
		mcp.WithString("cc",
			mcp.Description("CC email address(es), comma-separated for multiple recipients"),
		),
		mcp.WithString("from",
			mcp.Description("Sender address; omitted from the message when not set"),
		),
	)
	s.AddTool(sendTool, common.InstrumentedToolHandlerWithService("gmail_send_message", "gmail", "send", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleSendMessage(ctx, request, sc)
		}))

	markReadTool := mcp.NewTool("gmail_mark_read",
		mcp.WithDescription("Mark a Gmail message as read"),
		mcp.WithString("messageId",
			mcp.Required(),
			mcp.Description("The ID of the message to mark as read"),
		),
	)
	s.AddTool(markReadTool, common.InstrumentedToolHandlerWithService("gmail_mark_read", "gmail", "modify", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleMarkReadState(ctx, request, sc, true)
		}))

	markUnreadTool := mcp.NewTool("gmail_mark_unread",
		mcp.WithDescription("Mark a Gmail message as unread"),
		mcp.WithString("messageId",
			mcp.Required(),
			mcp.Description("The ID of the message to mark as unread"),
		),
	)
	s.AddTool(markUnreadTool, common.InstrumentedToolHandlerWithService("gmail_mark_unread", "gmail", "modify", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleMarkReadState(ctx, request, sc, false)
		}))

	return nil
}

func handleListMessages(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext, query string) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	maxResults := common.NumberArg(args, "maxResults", defaultListResults)

	client, err := sc.GmailClient()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	messages, err := client.ListMessages(ctx, query, int64(maxResults))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list messages: %v", err)), nil
	}

	response := map[string]interface{}{
		"messages": messages,
		"count":    len(messages),
	}
	result, _ := json.MarshalIndent(response, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleGetMessage(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	messageID, ok := args["messageId"].(string)
	if !ok || messageID == "" {
		return mcp.NewToolResultError("messageId is required"), nil
	}

	client, err := sc.GmailClient()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	message, err := client.GetMessage(ctx, messageID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get message: %v", err)), nil
	}

	result, _ := json.MarshalIndent(message, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleSendMessage(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	toStr, ok := args["to"].(string)
	if !ok || toStr == "" {
		return mcp.NewToolResultError("to is required"), nil
	}
	subject, ok := args["subject"].(string)
	if !ok || subject == "" {
		return mcp.NewToolResultError("subject is required"), nil
	}
	body, ok := args["body"].(string)
	if !ok || body == "" {
		return mcp.NewToolResultError("body is required"), nil
	}

	msg := &gmail.OutgoingMessage{
		From:    common.StringArg(args, "from", ""),
		To:      common.ParseCommaList(toStr),
		Cc:      common.ParseCommaList(common.StringArg(args, "cc", "")),
		Subject: subject,
		Body:    body,
	}

	client, err := sc.GmailClient()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	messageID, err := client.SendMessage(ctx, msg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to send message: %v", err)), nil
	}

	result := fmt.Sprintf("Message sent successfully!\nMessage ID: %s\nTo: %s\nSubject: %s",
		messageID, strings.Join(msg.To, ", "), subject)
	if len(msg.Cc) > 0 {
		result += fmt.Sprintf("\nCC: %s", strings.Join(msg.Cc, ", "))
	}
	return mcp.NewToolResultText(result), nil
}

func handleMarkReadState(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext, read bool) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	messageID, ok := args["messageId"].(string)
	if !ok || messageID == "" {
		return mcp.NewToolResultError("messageId is required"), nil
	}

	client, err := sc.GmailClient()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if read {
		err = client.MarkRead(ctx, messageID)
	} else {
		err = client.MarkUnread(ctx, messageID)
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to update read state: %v", err)), nil
	}

	state := "read"
	if !read {
		state = "unread"
	}
	return mcp.NewToolResultText(fmt.Sprintf("Message %s marked as %s", messageID, state)), nil
}
