package input

import (
	"booksearch/internal/ui/state"
)

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	State *state.AppState
}

// TotalItems returns the number of visible cards
func (c *ModelContext) TotalItems() int {
	if c.State.Searching {
		return 0
	}
	return c.State.VisibleCount
}

// CanLoadMore reports whether the load-more control is available
func (c *ModelContext) CanLoadMore() bool {
	return c.State.CanLoadMore()
}
