// Package keys holds the key bindings shared by the input modes and the help views.
package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap lists every binding of the app
type KeyMap struct {
	// Query mode
	Submit    key.Binding
	ToResults key.Binding
	ForceQuit key.Binding

	// Browse mode
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Home       key.Binding
	End        key.Binding
	LoadMore   key.Binding
	OpenLink   key.Binding
	OpenCover  key.Binding
	FocusQuery key.Binding
	Help       key.Binding
	Quit       key.Binding

	// Notice mode
	Dismiss key.Binding
}

// Default returns the standard bindings
func Default() KeyMap {
	return KeyMap{
		Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search")),
		ToResults: key.NewBinding(key.WithKeys("tab", "esc"), key.WithHelp("tab", "results")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),

		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:       key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		PageUp:     key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown:   key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		Home:       key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "first")),
		End:        key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "last")),
		LoadMore:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "load more")),
		OpenLink:   key.NewBinding(key.WithKeys("o", "enter"), key.WithHelp("o", "goodreads")),
		OpenCover:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "cover")),
		FocusQuery: key.NewBinding(key.WithKeys("/", "i", "tab"), key.WithHelp("/", "search")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

		Dismiss: key.NewBinding(key.WithKeys("enter", "esc"), key.WithHelp("enter", "dismiss")),
	}
}

// QueryHelp is the status-line summary while typing
type QueryHelp struct{ KeyMap }

func (k QueryHelp) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.ToResults, k.ForceQuit}
}

func (k QueryHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// BrowseHelp is the status-line summary while browsing results
type BrowseHelp struct{ KeyMap }

func (k BrowseHelp) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.LoadMore, k.OpenLink, k.OpenCover, k.FocusQuery, k.Help, k.Quit}
}

func (k BrowseHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.PageUp, k.PageDown, k.Home, k.End},
		{k.LoadMore, k.OpenLink, k.OpenCover},
		{k.FocusQuery, k.Help, k.Quit},
	}
}

// NoticeHelp is the status-line summary while a notice is shown
type NoticeHelp struct{ KeyMap }

func (k NoticeHelp) ShortHelp() []key.Binding {
	return []key.Binding{k.Dismiss}
}

func (k NoticeHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
