package drive

import "strings"

const (
	// FolderMimeType is the MIME type for Google Drive folders.
	FolderMimeType = "application/vnd.google-apps.folder"

	// workspaceMimePrefix marks native workspace document types, which
	// have no direct byte representation and must be exported.
	workspaceMimePrefix = "application/vnd.google-apps."
)

// exportFormats maps workspace document types to their default export
// format. Document types export to the corresponding OpenDocument format;
// anything not listed falls back to PDF.
var exportFormats = map[string]string{
	"application/vnd.google-apps.document":     "application/vnd.oasis.opendocument.text",
	"application/vnd.google-apps.spreadsheet":  "application/x-vnd.oasis.opendocument.spreadsheet",
	"application/vnd.google-apps.presentation": "application/vnd.oasis.opendocument.presentation",
	"application/vnd.google-apps.drawing":      "image/png",
}

// IsWorkspaceMime reports whether the MIME type is a native workspace
// document type requiring export.
func IsWorkspaceMime(mimeType string) bool {
	return strings.HasPrefix(mimeType, workspaceMimePrefix)
}

// DefaultExportMime returns the default export format for a workspace
// document type.
func DefaultExportMime(sourceMime string) string {
	if target, ok := exportFormats[sourceMime]; ok {
		return target
	}
	return "application/pdf"
}
