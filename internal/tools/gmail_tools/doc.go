// Package gmail_tools registers the Gmail message tools: list, search, get,
// send and read-state changes.
package gmail_tools
