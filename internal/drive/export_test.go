package drive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsWorkspaceMime(t *testing.T) {
	assert.True(t, IsWorkspaceMime("application/vnd.google-apps.document"))
	assert.True(t, IsWorkspaceMime("application/vnd.google-apps.folder"))
	assert.False(t, IsWorkspaceMime("application/pdf"))
	assert.False(t, IsWorkspaceMime("text/plain"))
	assert.False(t, IsWorkspaceMime(""))
}

func TestDefaultExportMime(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"application/vnd.google-apps.document", "application/vnd.oasis.opendocument.text"},
		{"application/vnd.google-apps.spreadsheet", "application/x-vnd.oasis.opendocument.spreadsheet"},
		{"application/vnd.google-apps.presentation", "application/vnd.oasis.opendocument.presentation"},
		{"application/vnd.google-apps.drawing", "image/png"},
		{"application/vnd.google-apps.form", "application/pdf"},
		{"application/vnd.google-apps.site", "application/pdf"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DefaultExportMime(tt.source), tt.source)
	}
}
