package ui

// helpPagerMsg contains the result of showing help in the pager
type helpPagerMsg struct {
	err error
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}

// clearStatusMsg clears a transient status message unless a newer one replaced it
type clearStatusMsg struct {
	seq int
}

// quitMsg signals that the application should quit
type quitMsg struct{}
