// Package cmd implements the CLI: the root command, the serve command that
// runs the MCP server over stdio, and the version command.
package cmd
