// Package common holds helpers shared by the tool packages: argument
// parsing from the MCP request bag and the instrumented handler wrapper.
package common
