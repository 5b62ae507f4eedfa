package drive

import (
	"fmt"
	"strings"
)

// BuildListQuery renders the filter expression for a listing. Trashed files
// are always excluded; every other clause appears only when its parameter is
// set. Clauses are joined with "and" — absent parameters omit their clause
// rather than matching everything.
func BuildListQuery(opts *ListOptions) string {
	clauses := []string{"trashed=false"}

	if opts != nil {
		if opts.FolderID != "" {
			clauses = append(clauses, fmt.Sprintf("'%s' in parents", escapeQueryValue(opts.FolderID)))
		}
		if opts.NameContains != "" {
			clauses = append(clauses, fmt.Sprintf("name contains '%s'", escapeQueryValue(opts.NameContains)))
		}
		if opts.FullText != "" {
			clauses = append(clauses, fmt.Sprintf("fullText contains '%s'", escapeQueryValue(opts.FullText)))
		}
		if opts.Owner != "" {
			clauses = append(clauses, fmt.Sprintf("'%s' in owners", escapeQueryValue(opts.Owner)))
		}
	}

	return strings.Join(clauses, " and ")
}

// escapeQueryValue escapes backslashes and single quotes for the Drive query
// language, which delimits string literals with single quotes.
func escapeQueryValue(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}
