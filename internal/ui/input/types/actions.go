package types

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "pageup", "pagedown", "home", "end", "left", "right"
}

func (a NavigateAction) Type() string { return "navigate" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
}

func (a SubmitTextAction) Type() string { return "submit_text" }

// Result actions
type LoadMoreAction struct{}

func (a LoadMoreAction) Type() string { return "load_more" }

type OpenLinkAction struct{}

func (a OpenLinkAction) Type() string { return "open_link" }

type OpenCoverAction struct{}

func (a OpenCoverAction) Type() string { return "open_cover" }

// Notice actions
type DismissNoticeAction struct{}

func (a DismissNoticeAction) Type() string { return "dismiss_notice" }

// UI actions
type ShowHelpAction struct{}

func (a ShowHelpAction) Type() string { return "show_help" }

type QuitAction struct{}

func (a QuitAction) Type() string { return "quit" }
