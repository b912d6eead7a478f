package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMove(t *testing.T) {
	// 3 columns, 2 rows on screen, 8 cards:
	// 0 1 2
	// 3 4 5
	// 6 7
	n := NewNavigator(3, 2, 8)

	tests := []struct {
		name string
		from int
		dir  Direction
		want int
	}{
		{"right within row", 0, Right, 1},
		{"right at row end", 2, Right, 2},
		{"right past last card", 7, Right, 7},
		{"left within row", 4, Left, 3},
		{"left at row start", 3, Left, 3},
		{"down", 1, Down, 4},
		{"down into short row", 5, Down, 7},
		{"down on last row", 6, Down, 6},
		{"up", 4, Up, 1},
		{"up on first row", 2, Up, 2},
		{"page down", 0, PageDown, 6},
		{"page down clamps", 4, PageDown, 7},
		{"page up clamps", 4, PageUp, 0},
		{"home", 5, Home, 0},
		{"end", 1, End, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, n.Move(tt.from, tt.dir))
		})
	}
}

func TestMoveWithNoCards(t *testing.T) {
	n := NewNavigator(3, 2, 0)
	assert.Equal(t, 0, n.Move(0, Down))
	assert.Equal(t, 0, n.Move(5, End))
	assert.Equal(t, 0, n.EnsureVisible(0, 3))
}

func TestEnsureVisible(t *testing.T) {
	// 2 columns, 2 rows on screen, 10 cards => 5 rows
	n := NewNavigator(2, 2, 10)

	assert.Equal(t, 0, n.EnsureVisible(3, 0), "row 1 already visible")
	assert.Equal(t, 1, n.EnsureVisible(4, 0), "row 2 scrolls by one")
	assert.Equal(t, 3, n.EnsureVisible(9, 0), "last row")
	assert.Equal(t, 0, n.EnsureVisible(0, 3), "scroll back to top")
	assert.Equal(t, 3, n.EnsureVisible(8, 7), "offset past the end is clamped")
}

func TestNavigatorClampsLayout(t *testing.T) {
	n := NewNavigator(0, 0, 3)
	assert.Equal(t, 1, n.Columns())
	assert.Equal(t, 3, n.Rows())
	assert.Equal(t, 1, n.Move(0, Down))
}
