package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"booksearch/internal/ui/input/keys"
	"booksearch/internal/ui/input/types"
)

// BrowseMode moves around the result grid and acts on the selected card
type BrowseMode struct {
	keys keys.KeyMap
}

func NewBrowseMode(km keys.KeyMap) *BrowseMode {
	return &BrowseMode{keys: km}
}

func (m *BrowseMode) Name() string {
	return "browse"
}

func (m *BrowseMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *BrowseMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *BrowseMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	hasCards := ctx.TotalItems() > 0

	switch {
	case key.Matches(msg, m.keys.Quit):
		return []types.Action{types.QuitAction{}}, true

	case key.Matches(msg, m.keys.Up):
		return navigate("up"), true
	case key.Matches(msg, m.keys.Down):
		return navigate("down"), true
	case key.Matches(msg, m.keys.Left):
		return navigate("left"), true
	case key.Matches(msg, m.keys.Right):
		return navigate("right"), true
	case key.Matches(msg, m.keys.PageUp):
		return navigate("pageup"), true
	case key.Matches(msg, m.keys.PageDown):
		return navigate("pagedown"), true
	case key.Matches(msg, m.keys.Home):
		return navigate("home"), true
	case key.Matches(msg, m.keys.End):
		return navigate("end"), true

	case key.Matches(msg, m.keys.LoadMore):
		if ctx.CanLoadMore() {
			return []types.Action{types.LoadMoreAction{}}, true
		}
		return nil, true

	case key.Matches(msg, m.keys.OpenLink):
		if hasCards {
			return []types.Action{types.OpenLinkAction{}}, true
		}
		return nil, true

	case key.Matches(msg, m.keys.OpenCover):
		if hasCards {
			return []types.Action{types.OpenCoverAction{}}, true
		}
		return nil, true

	case key.Matches(msg, m.keys.FocusQuery):
		return []types.Action{types.ChangeModeAction{Mode: types.ModeQuery}}, true

	case key.Matches(msg, m.keys.Help):
		return []types.Action{types.ShowHelpAction{}}, true
	}

	return nil, false
}

func navigate(direction string) []types.Action {
	return []types.Action{types.NavigateAction{Direction: direction}}
}
