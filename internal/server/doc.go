// Package server holds the process-wide state of the MCP server: the
// resolved configuration, the credential provider and its keepalive, the
// lazily constructed Google service clients and the metrics recorder.
package server
