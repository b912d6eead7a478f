package domain

import "strings"

// BookRecord is one search result as returned by the bibliographic API
type BookRecord struct {
	Title   string
	Authors []string // nil when the API omitted author_name
	CoverID *int     // nil when the API omitted cover_i
}

// HasCover reports whether the record carries a cover image id
func (b BookRecord) HasCover() bool {
	return b.CoverID != nil
}

// AuthorLine joins the authors the way cards display them
func (b BookRecord) AuthorLine() string {
	return strings.Join(b.Authors, ", ")
}
