package views

const (
	// CardWidth is the outer width of one result card, border included
	CardWidth = 32
	// CardHeight is the outer height of one result card, border included
	CardHeight = 7
	// CardGap separates cards horizontally
	CardGap = 1

	// chromeLines is everything around the grid: padding, header, search box,
	// results heading, scroll indicators, load-more line, status and help
	chromeLines = 15
	// sidePadding is the horizontal padding of the main container
	sidePadding = 4

	DefaultWidth  = 80
	DefaultHeight = 24
)

// Layout describes how many cards fit on screen
type Layout struct {
	Columns     int
	VisibleRows int
}

// ComputeLayout derives the grid shape from the terminal size
func ComputeLayout(width, height int) Layout {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}

	usable := width - sidePadding
	cols := (usable + CardGap) / (CardWidth + CardGap)
	rows := (height - chromeLines) / CardHeight

	return Layout{
		Columns:     max(1, cols),
		VisibleRows: max(1, rows),
	}
}
