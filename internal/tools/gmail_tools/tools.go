package gmail_tools

import (
	"fmt"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/workweave/workspace-mcp/internal/server"
)

// RegisterGmailTools registers all Gmail-related tools with the MCP server.
func RegisterGmailTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	if err := registerMessageTools(s, sc); err != nil {
		return fmt.Errorf("failed to register message tools: %w", err)
	}
	return nil
}
