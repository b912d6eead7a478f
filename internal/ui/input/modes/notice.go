package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"booksearch/internal/ui/input/keys"
	"booksearch/internal/ui/input/types"
)

// NoticeMode blocks all input until the notice is dismissed
type NoticeMode struct {
	keys keys.KeyMap
}

func NewNoticeMode(km keys.KeyMap) *NoticeMode {
	return &NoticeMode{keys: km}
}

func (m *NoticeMode) Name() string {
	return "notice"
}

func (m *NoticeMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NoticeMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NoticeMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	if key.Matches(msg, m.keys.Dismiss) {
		return []types.Action{types.DismissNoticeAction{}}, true
	}
	// Swallow everything else
	return nil, true
}
