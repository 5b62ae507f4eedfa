package auth

// DefaultScopes are the Google OAuth scopes required for the full tool
// surface. Both credential variants request the same set.
//
// The scopes provide access to:
//   - Gmail: read, modify, send (full mailbox scope)
//   - Google Drive: full access (files, folders, sharing, comments, revisions)
var DefaultScopes = []string{
	"https://mail.google.com/",
	"https://www.googleapis.com/auth/drive",
}
