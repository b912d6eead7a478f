package viewmodels

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"booksearch/internal/ui/input/types"
)

var dimText = lipgloss.NewStyle().Faint(true)

// InputTransformer renders the search field for the current input mode
type InputTransformer struct {
	mode      types.Mode
	textInput textinput.Model
}

// NewInputTransformer creates a new input transformer
func NewInputTransformer(textInput textinput.Model) *InputTransformer {
	return &InputTransformer{
		mode:      types.ModeQuery,
		textInput: textInput,
	}
}

// SetMode sets the current input mode
func (it *InputTransformer) SetMode(mode types.Mode) {
	it.mode = mode
}

// Focused reports whether the field takes keystrokes
func (it *InputTransformer) Focused() bool {
	return it.mode == types.ModeQuery
}

// GetInputText returns the search field as the view shows it.
// Outside query mode the field is drawn static, without a cursor.
func (it *InputTransformer) GetInputText() string {
	if it.Focused() {
		return it.textInput.View()
	}
	if v := it.textInput.Value(); v != "" {
		return v
	}
	return dimText.Render(it.textInput.Placeholder)
}
