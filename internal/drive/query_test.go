package drive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildListQuery(t *testing.T) {
	tests := []struct {
		name string
		opts *ListOptions
		want string
	}{
		{
			name: "nil options",
			opts: nil,
			want: "trashed=false",
		},
		{
			name: "empty options",
			opts: &ListOptions{},
			want: "trashed=false",
		},
		{
			name: "folder only",
			opts: &ListOptions{FolderID: "folder123"},
			want: "trashed=false and 'folder123' in parents",
		},
		{
			name: "name filter only",
			opts: &ListOptions{NameContains: "report"},
			want: "trashed=false and name contains 'report'",
		},
		{
			name: "full text only",
			opts: &ListOptions{FullText: "quarterly budget"},
			want: "trashed=false and fullText contains 'quarterly budget'",
		},
		{
			name: "owner only",
			opts: &ListOptions{Owner: "alice@example.com"},
			want: "trashed=false and 'alice@example.com' in owners",
		},
		{
			name: "all filters combined",
			opts: &ListOptions{
				FolderID:     "f1",
				NameContains: "notes",
				FullText:     "agenda",
				Owner:        "bob@example.com",
			},
			want: "trashed=false and 'f1' in parents and name contains 'notes' and fullText contains 'agenda' and 'bob@example.com' in owners",
		},
		{
			name: "paging options add no clauses",
			opts: &ListOptions{MaxResults: 50, OrderBy: "name", PageToken: "tok"},
			want: "trashed=false",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildListQuery(tt.opts))
		})
	}
}

func TestBuildListQueryEscaping(t *testing.T) {
	got := BuildListQuery(&ListOptions{NameContains: "it's a plan"})
	assert.Equal(t, `trashed=false and name contains 'it\'s a plan'`, got)

	got = BuildListQuery(&ListOptions{NameContains: `back\slash`})
	assert.Equal(t, `trashed=false and name contains 'back\\slash'`, got)
}
