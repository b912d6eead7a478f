// Package links builds the outbound URLs shown on result cards.
package links

import (
	"fmt"
	"net/url"
	"strings"

	"booksearch/internal/domain"
)

// Builder turns a BookRecord into cover and link URLs
type Builder struct {
	CoversBase    string // e.g. https://covers.openlibrary.org
	GoodreadsBase string // e.g. https://www.goodreads.com/search
}

// NewBuilder trims trailing slashes so joins stay clean
func NewBuilder(coversBase, goodreadsBase string) Builder {
	return Builder{
		CoversBase:    strings.TrimRight(coversBase, "/"),
		GoodreadsBase: strings.TrimRight(goodreadsBase, "/"),
	}
}

// Cover returns the medium cover URL and false when the record has no cover id.
// No URL is ever built without an id.
func (b Builder) Cover(rec domain.BookRecord) (string, bool) {
	if !rec.HasCover() {
		return "", false
	}
	return fmt.Sprintf("%s/b/id/%d-M.jpg", b.CoversBase, *rec.CoverID), true
}

// Goodreads returns the third-party search URL for the record.
// Title and joined authors are query-escaped and joined by a literal "+".
func (b Builder) Goodreads(rec domain.BookRecord) string {
	return b.GoodreadsBase + "?utf8=✓&query=" +
		url.QueryEscape(rec.Title) + "+" + url.QueryEscape(rec.AuthorLine())
}
