package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// RenderPopupOverlay renders a popup centred on top of the main content,
// greying out the frame beneath it
func (pr *PopupRenderer) RenderPopupOverlay(mainContent, popupContent string, height, width int, popupStyle lipgloss.Style) string {
	styledPopup := popupStyle.Render(popupContent)

	modalW := lipgloss.Width(styledPopup)
	modalH := lipgloss.Height(styledPopup)
	x := max(0, (width-modalW)/2)
	y := max(0, (height-modalH)/2)

	base := strings.Split(desaturate(mainContent), "\n")
	for len(base) < y+modalH {
		base = append(base, "")
	}

	for i, line := range strings.Split(styledPopup, "\n") {
		row := base[y+i]
		left := ansi.Truncate(row, x, "")
		if w := ansi.StringWidth(left); w < x {
			left += strings.Repeat(" ", x-w)
		}
		right := ansi.TruncateLeft(row, x+modalW, "")
		base[y+i] = left + line + right
	}

	return strings.Join(base, "\n")
}

// desaturate strips colours and styles and recolours text dim grey
func desaturate(s string) string {
	grey := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		plain := ansi.Strip(line)
		if plain == "" {
			lines[i] = ""
			continue
		}
		lines[i] = grey.Render(plain)
	}
	return strings.Join(lines, "\n")
}
