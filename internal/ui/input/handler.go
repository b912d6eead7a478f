package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"booksearch/internal/ui/input/keys"
	"booksearch/internal/ui/input/modes"
	"booksearch/internal/ui/input/types"
)

// Placeholder is shown in the empty search field
const Placeholder = "Hunger Games..."

type Handler struct {
	currentMode types.Mode
	noticeFrom  types.Mode // mode to restore when the notice is dismissed
	modes       map[types.Mode]types.ModeHandler
	textInput   *textinput.Model // the search field
	keys        keys.KeyMap
}

func New() *Handler {
	ti := textinput.New()
	ti.Placeholder = Placeholder
	ti.Prompt = ""
	ti.CharLimit = 256
	ti.Focus()

	km := keys.Default()
	h := &Handler{
		currentMode: types.ModeQuery,
		textInput:   &ti,
		keys:        km,
		modes:       make(map[types.Mode]types.ModeHandler),
	}

	// Register all mode handlers
	h.modes[types.ModeQuery] = modes.NewQueryMode(km, h.textInput)
	h.modes[types.ModeBrowse] = modes.NewBrowseMode(km)
	h.modes[types.ModeNotice] = modes.NewNoticeMode(km)

	return h
}

func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, tea.Cmd) {
	handler := h.modes[h.currentMode]
	if handler == nil {
		return nil, nil
	}

	actions, consumed := handler.HandleKey(msg, ctx)

	// If not consumed and we're in text mode, we'll handle it below
	if !consumed && !h.isTextMode(h.currentMode) {
		return nil, nil
	}

	var cmd tea.Cmd
	var allActions []types.Action

	// Handle mode changes
	for _, action := range actions {
		if changeMode, ok := action.(types.ChangeModeAction); ok {
			allActions = append(allActions, h.switchMode(changeMode.Mode, ctx)...)
			if h.isTextMode(h.currentMode) {
				cmd = textinput.Blink
			}
		} else {
			allActions = append(allActions, action)
		}
	}

	// If we're in a text mode and didn't handle the key, pass it to text input
	if h.isTextMode(h.currentMode) && !consumed {
		var textCmd tea.Cmd
		*h.textInput, textCmd = h.textInput.Update(msg)
		cmd = textCmd
		// Always append an update action when in text mode to keep view in sync
		allActions = append(allActions, types.UpdateTextAction{Text: h.textInput.Value()})
	}

	return allActions, cmd
}

func (h *Handler) switchMode(mode types.Mode, ctx types.Context) []types.Action {
	var out []types.Action
	if cur := h.modes[h.currentMode]; cur != nil {
		out = append(out, cur.Exit(ctx)...)
	}
	h.currentMode = mode
	if next := h.modes[h.currentMode]; next != nil {
		out = append(out, next.Enter(ctx)...)
	}
	return out
}

// ShowNotice switches to notice mode, remembering the mode to return to
func (h *Handler) ShowNotice(ctx types.Context) {
	if h.currentMode == types.ModeNotice {
		return
	}
	h.noticeFrom = h.currentMode
	h.switchMode(types.ModeNotice, ctx)
}

// DismissNotice returns to the mode active before the notice
func (h *Handler) DismissNotice(ctx types.Context) tea.Cmd {
	if h.currentMode != types.ModeNotice {
		return nil
	}
	h.switchMode(h.noticeFrom, ctx)
	if h.isTextMode(h.currentMode) {
		return textinput.Blink
	}
	return nil
}

// ChangeMode changes the current input mode
func (h *Handler) ChangeMode(mode types.Mode, ctx types.Context) tea.Cmd {
	h.switchMode(mode, ctx)
	if h.isTextMode(mode) {
		return textinput.Blink
	}
	return nil
}

// SetText replaces the search field contents
func (h *Handler) SetText(text string) {
	h.textInput.SetValue(text)
	h.textInput.CursorEnd()
}

// SetWidth sizes the search field
func (h *Handler) SetWidth(width int) {
	h.textInput.Width = max(10, width)
}

func (h *Handler) CurrentMode() types.Mode {
	if h == nil {
		return types.ModeQuery
	}
	return h.currentMode
}

// TextInput returns the search field model
func (h *Handler) TextInput() *textinput.Model {
	return h.textInput
}

// Keys returns the active key bindings
func (h *Handler) Keys() keys.KeyMap {
	return h.keys
}

func (h *Handler) isTextMode(mode types.Mode) bool {
	return mode == types.ModeQuery
}

// Update handles non-keyboard messages for text input
func (h *Handler) Update(msg tea.Msg) tea.Cmd {
	if h.isTextMode(h.currentMode) {
		var cmd tea.Cmd
		*h.textInput, cmd = h.textInput.Update(msg)
		return cmd
	}
	return nil
}

// Init returns the initial command for the handler
func (h *Handler) Init() tea.Cmd {
	return textinput.Blink
}
