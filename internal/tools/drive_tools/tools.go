package drive_tools

import (
	"fmt"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/workweave/workspace-mcp/internal/server"
)

// RegisterDriveTools registers all Google Drive-related tools with the MCP
// server.
func RegisterDriveTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	if err := registerFileTools(s, sc); err != nil {
		return fmt.Errorf("failed to register file tools: %w", err)
	}
	if err := registerFolderTools(s, sc); err != nil {
		return fmt.Errorf("failed to register folder tools: %w", err)
	}
	if err := registerShareTools(s, sc); err != nil {
		return fmt.Errorf("failed to register share tools: %w", err)
	}
	if err := registerCommentTools(s, sc); err != nil {
		return fmt.Errorf("failed to register comment tools: %w", err)
	}
	if err := registerAccountTools(s, sc); err != nil {
		return fmt.Errorf("failed to register account tools: %w", err)
	}
	return nil
}
