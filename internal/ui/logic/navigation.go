package logic

// Direction is a selection movement within the card grid
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
	PageUp
	PageDown
	Home
	End
)

// Navigator handles grid navigation and viewport management
type Navigator struct {
	columns     int // cards per row
	visibleRows int // grid rows that fit on screen
	count       int // visible cards
}

// NewNavigator creates a navigator for count cards laid out in columns.
// Columns and rows are clamped to at least one.
func NewNavigator(columns, visibleRows, count int) *Navigator {
	return &Navigator{
		columns:     max(1, columns),
		visibleRows: max(1, visibleRows),
		count:       max(0, count),
	}
}

// Columns returns the number of cards per row
func (n *Navigator) Columns() int {
	return n.columns
}

// Rows returns the number of grid rows needed for all cards
func (n *Navigator) Rows() int {
	return (n.count + n.columns - 1) / n.columns
}

// RowOf returns the grid row of a card index
func (n *Navigator) RowOf(index int) int {
	return index / n.columns
}

// Move returns the index reached from index in direction d
func (n *Navigator) Move(index int, d Direction) int {
	if n.count == 0 {
		return 0
	}

	page := n.visibleRows * n.columns
	switch d {
	case Up:
		if index-n.columns >= 0 {
			index -= n.columns
		}
	case Down:
		if index+n.columns < n.count {
			index += n.columns
		} else if n.RowOf(index) < n.Rows()-1 {
			// Last row is short; drop onto its final card
			index = n.count - 1
		}
	case Left:
		if index%n.columns > 0 {
			index--
		}
	case Right:
		if index%n.columns < n.columns-1 && index+1 < n.count {
			index++
		}
	case PageUp:
		index -= page
	case PageDown:
		index += page
	case Home:
		index = 0
	case End:
		index = n.count - 1
	}

	return max(0, min(index, n.count-1))
}

// EnsureVisible returns the row offset that keeps index on screen, starting
// from the current offset and scrolling as little as possible.
func (n *Navigator) EnsureVisible(index, offset int) int {
	if n.count == 0 {
		return 0
	}

	row := n.RowOf(index)
	if row < offset {
		offset = row
	}
	if row >= offset+n.visibleRows {
		offset = row - n.visibleRows + 1
	}

	// Never leave empty rows below the grid when it could be filled
	maxOffset := max(0, n.Rows()-n.visibleRows)
	return max(0, min(offset, maxOffset))
}
