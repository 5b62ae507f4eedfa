// Package drive_tools registers the Google Drive tools: file CRUD and
// transfer, folders, sharing, comments, revisions and account info.
package drive_tools
