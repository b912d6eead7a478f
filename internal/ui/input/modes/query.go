package modes

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"booksearch/internal/ui/input/keys"
	"booksearch/internal/ui/input/types"
)

// QueryMode edits the search field. The field keeps its contents across
// focus changes; only a successful search clears it.
type QueryMode struct {
	keys      keys.KeyMap
	textInput *textinput.Model
}

func NewQueryMode(km keys.KeyMap, ti *textinput.Model) *QueryMode {
	return &QueryMode{keys: km, textInput: ti}
}

func (m *QueryMode) Name() string {
	return "query"
}

func (m *QueryMode) Enter(ctx types.Context) []types.Action {
	if m.textInput != nil {
		m.textInput.Focus()
		m.textInput.CursorEnd()
	}
	return nil
}

func (m *QueryMode) Exit(ctx types.Context) []types.Action {
	if m.textInput != nil {
		m.textInput.Blur()
	}
	return nil
}

func (m *QueryMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return []types.Action{types.QuitAction{}}, true
	case key.Matches(msg, m.keys.Submit):
		text := ""
		if m.textInput != nil {
			text = m.textInput.Value()
		}
		return []types.Action{types.SubmitTextAction{Text: text}}, true
	case key.Matches(msg, m.keys.ToResults):
		return []types.Action{types.ChangeModeAction{Mode: types.ModeBrowse}}, true
	default:
		// Let the main handler update the text input
		return nil, false
	}
}
