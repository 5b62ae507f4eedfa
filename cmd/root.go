package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the workspace-mcp application
var rootCmd = &cobra.Command{
	Use:   "workspace-mcp",
	Short: "MCP server exposing Gmail and Google Drive operations",
	Long: `workspace-mcp is a Model Context Protocol (MCP) server that exposes
Gmail and Google Drive operations as tools for AI assistants.

It authenticates with either an OAuth refresh token or a Google service
account and communicates over stdio: the protocol channel is stdout/stdin,
diagnostics go to stderr.`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "workspace-mcp version %s\n" .Version}}`)

	// If no subcommand is provided, serve by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())
}
