package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/textinput"

	"booksearch/internal/config"
	"booksearch/internal/domain"
	"booksearch/internal/ui/input/types"
	"booksearch/internal/ui/state"
	"booksearch/internal/ui/viewmodels"
	"booksearch/internal/ui/views"
)

// PrintResults writes the first window of records for term the way the
// results area shows them, for non-interactive use. A nil records slice
// with a non-nil err prints the same as no results.
func PrintResults(w io.Writer, cfg *config.Config, term string, records []domain.BookRecord, err error, width int) error {
	st := state.NewAppState(cfg.UISettings.PageSize)
	token, beginErr := st.BeginSearch(term)
	if beginErr != nil {
		return beginErr
	}
	if err != nil {
		st.FailSearch(token)
	} else {
		st.CompleteSearch(token, records)
	}

	vm := viewmodels.NewViewModel(st, cfg, textinput.New())
	vm.SetInputMode(types.ModeBrowse)
	vm.SetDimensions(width, views.DefaultHeight)

	vs := vm.BuildViewState()
	vs.ShowSelection = false
	// Show every row of the window, not just what fits a screen
	vs.Layout.VisibleRows = len(vs.Cards)

	_, werr := fmt.Fprintln(w, views.NewRenderer().RenderBody(vs))
	return werr
}
