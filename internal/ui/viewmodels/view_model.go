package viewmodels

import (
	"html"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/microcosm-cc/bluemonday"

	"booksearch/internal/config"
	"booksearch/internal/domain"
	"booksearch/internal/links"
	"booksearch/internal/ui/input/types"
	"booksearch/internal/ui/state"
	"booksearch/internal/ui/views"
)

// ViewModel transforms application state into view-ready data
type ViewModel struct {
	state            *state.AppState
	ui               config.UISettings
	links            links.Builder
	policy           *bluemonday.Policy
	width            int
	height           int
	spinner          string
	helpLine         string
	statusIsError    bool
	inputTransformer *InputTransformer
}

// NewViewModel creates a new view model
func NewViewModel(appState *state.AppState, cfg *config.Config, textInput textinput.Model) *ViewModel {
	return &ViewModel{
		state:            appState,
		ui:               cfg.UISettings,
		links:            links.NewBuilder(cfg.API.CoversURL, cfg.API.LinkURL),
		policy:           bluemonday.StrictPolicy(),
		inputTransformer: NewInputTransformer(textInput),
	}
}

// SetDimensions sets the current terminal dimensions
func (vm *ViewModel) SetDimensions(width, height int) {
	vm.width = width
	vm.height = height
}

// SetSpinner sets the current spinner frame
func (vm *ViewModel) SetSpinner(frame string) {
	vm.spinner = frame
}

// SetHelpLine sets the short help shown at the bottom
func (vm *ViewModel) SetHelpLine(line string) {
	vm.helpLine = line
}

// SetStatusError marks the status message as an error
func (vm *ViewModel) SetStatusError(isErr bool) {
	vm.statusIsError = isErr
}

// SetInputMode sets the current input mode
func (vm *ViewModel) SetInputMode(mode types.Mode) {
	vm.inputTransformer.SetMode(mode)
}

// UpdateTextInput updates the text input model
func (vm *ViewModel) UpdateTextInput(textInput textinput.Model) {
	vm.inputTransformer.textInput = textInput
}

// BuildCard converts one record into its display form
func (vm *ViewModel) BuildCard(rec domain.BookRecord) views.CardView {
	card := views.CardView{
		Title:   vm.Clean(rec.Title),
		Authors: vm.Clean(rec.AuthorLine()),
		LinkURL: vm.links.Goodreads(rec),
	}
	if cover, ok := vm.links.Cover(rec); ok {
		card.CoverURL = cover
	}
	return card
}

// Clean makes API text safe for the terminal: markup is stripped, entities
// decoded and control characters dropped
func (vm *ViewModel) Clean(s string) string {
	s = html.UnescapeString(vm.policy.Sanitize(s))
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return ' '
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

// BuildViewState creates a ViewState for rendering
func (vm *ViewModel) BuildViewState() views.ViewState {
	visible := vm.state.Visible()
	cards := make([]views.CardView, 0, len(visible))
	for _, rec := range visible {
		cards = append(cards, vm.BuildCard(rec))
	}

	return views.ViewState{
		Width:          vm.width,
		Height:         vm.height,
		QueryInput:     vm.inputTransformer.GetInputText(),
		QueryFocused:   vm.inputTransformer.Focused(),
		Searching:      vm.state.Searching,
		Spinner:        vm.spinner,
		Searched:       vm.state.Searched,
		Term:           vm.Clean(vm.state.LastSearchedTerm),
		Cards:          cards,
		SelectedIndex:  vm.state.SelectedIndex,
		ShowSelection:  !vm.inputTransformer.Focused(),
		ViewportOffset: vm.state.ViewportOffset,
		Layout:         views.ComputeLayout(vm.width, vm.height),
		ShowCoverURLs:  vm.ui.ShowCoverURLs,
		LoadingMore:    vm.state.LoadingMore,
		HasMore:        vm.state.HasMore(),
		Notice:         vm.state.Notice,
		StatusMessage:  vm.state.StatusMessage,
		StatusIsError:  vm.statusIsError,
		HelpLine:       vm.helpLine,
	}
}
