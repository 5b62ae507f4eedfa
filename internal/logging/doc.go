// Package logging configures structured logging for the server.
//
// All log output goes to stderr: stdout is the MCP protocol channel and must
// carry nothing but line-delimited JSON. Debug level is gated by the --debug
// flag or the DEBUG environment variable.
package logging
