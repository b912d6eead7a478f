package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Fixed UI text
const (
	HeaderText      = "Search for your book here"
	SearchLabel     = "Search"
	LoadingText     = "Loading..."
	NoResultsText   = "No books found"
	ResultsHeading  = "Search results for: "
	NoCoverText     = "No cover image"
	LinkText        = "Book on GoodReads"
	LoadingMoreText = "Loading More ..."
	LoadMoreText    = "Load More"
	EmptyTermNotice = "Please fill the field"
)

// CardView is one result card ready for display
type CardView struct {
	Title    string
	Authors  string // joined with ", ", blank when absent
	CoverURL string // "" when the record has no cover id
	LinkURL  string
}

// HasCover reports whether a cover reference is shown instead of the placeholder
func (c CardView) HasCover() bool {
	return c.CoverURL != ""
}

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width  int
	Height int

	QueryInput   string // rendered search field
	QueryFocused bool

	Searching bool
	Spinner   string
	Searched  bool
	Term      string

	Cards          []CardView // the visible window only
	SelectedIndex  int
	ShowSelection  bool
	ViewportOffset int // first grid row on screen
	Layout         Layout
	ShowCoverURLs  bool

	LoadingMore bool
	HasMore     bool

	Notice        string
	HelpPopup     string // full key reference, "" when hidden
	StatusMessage string
	StatusIsError bool
	HelpLine      string
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		popupRender: NewPopupRenderer(styles),
	}
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	width, height := state.Width, state.Height
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}

	content := &strings.Builder{}

	content.WriteString(r.styles.Title.Render(HeaderText))
	content.WriteString("\n")
	content.WriteString(r.renderSearchBox(state, width))
	content.WriteString("\n\n")
	content.WriteString(r.RenderBody(state))

	// Status line: explicit message, otherwise the selected card's link
	status := ""
	switch {
	case state.StatusMessage != "" && state.StatusIsError:
		status = r.styles.StatusError.Render(state.StatusMessage)
	case state.StatusMessage != "":
		status = r.styles.StatusInfo.Render(state.StatusMessage)
	case state.ShowSelection && state.SelectedIndex < len(state.Cards):
		status = r.styles.Dim.Render(ansi.Truncate(state.Cards[state.SelectedIndex].LinkURL, width-sidePadding, "…"))
	}

	// Push status and help to the bottom
	footer := []string{status}
	if state.HelpLine != "" {
		footer = append(footer, r.styles.Help.Render(state.HelpLine))
	}
	currentLines := strings.Count(content.String(), "\n") + 1
	availableLines := height - 2 // Main padding
	paddingNeeded := availableLines - currentLines - len(footer)
	if paddingNeeded > 0 {
		content.WriteString(strings.Repeat("\n", paddingNeeded))
	}
	content.WriteString("\n")
	content.WriteString(strings.Join(footer, "\n"))

	finalContent := r.styles.Main.MaxHeight(height).Render(content.String())

	if state.Notice != "" {
		return r.popupRender.RenderPopupOverlay(finalContent, state.Notice, height, width, r.styles.NoticeBox)
	}
	if state.HelpPopup != "" {
		return r.popupRender.RenderPopupOverlay(finalContent, state.HelpPopup, height, width, r.styles.HelpBox)
	}
	return finalContent
}

// RenderBody renders the results area. Priority: loading, nothing searched
// yet, no results, results grid.
func (r *Renderer) RenderBody(state ViewState) string {
	switch {
	case state.Searching:
		spin := state.Spinner
		if spin != "" {
			spin += " "
		}
		return r.styles.StatusLoading.Render(spin + LoadingText)
	case !state.Searched:
		return ""
	case len(state.Cards) == 0:
		return r.styles.Dim.Render(NoResultsText)
	}

	var b strings.Builder
	b.WriteString(r.styles.Heading.Render(ResultsHeading) + r.styles.Term.Render(state.Term))
	b.WriteString("\n\n")
	b.WriteString(r.renderGrid(state))
	b.WriteString("\n")

	switch {
	case state.LoadingMore:
		b.WriteString(r.styles.StatusLoading.Render(LoadingMoreText))
	case state.HasMore:
		b.WriteString(r.styles.Button.Render(LoadMoreText) + r.styles.Dim.Render(" (m)"))
	}
	return b.String()
}

func (r *Renderer) renderSearchBox(state ViewState, width int) string {
	box := r.styles.InputBox
	if state.QueryFocused {
		box = r.styles.InputFocused
	}
	button := r.styles.Button.Render(SearchLabel)
	inputWidth := max(10, width-sidePadding-lipgloss.Width(button)-5)
	field := box.Width(inputWidth).Render(state.QueryInput)
	return lipgloss.JoinHorizontal(lipgloss.Center, field, " ", button)
}

// renderGrid renders the visible rows of the card grid with scroll indicators
func (r *Renderer) renderGrid(state ViewState) string {
	cols := max(1, state.Layout.Columns)
	visibleRows := max(1, state.Layout.VisibleRows)
	totalRows := (len(state.Cards) + cols - 1) / cols

	first := max(0, min(state.ViewportOffset, totalRows-1))
	last := min(totalRows, first+visibleRows)

	var lines []string
	if first > 0 {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↑ %d more rows above ↑", first)))
	}

	for row := first; row < last; row++ {
		var cards []string
		for col := 0; col < cols; col++ {
			i := row*cols + col
			if i >= len(state.Cards) {
				break
			}
			if col > 0 {
				cards = append(cards, strings.Repeat(" ", CardGap))
			}
			selected := state.ShowSelection && i == state.SelectedIndex
			cards = append(cards, r.RenderCard(state.Cards[i], selected, state.ShowCoverURLs))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}

	if below := totalRows - last; below > 0 {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↓ %d more rows below ↓", below)))
	}
	return strings.Join(lines, "\n")
}

// RenderCard renders a single result card
func (r *Renderer) RenderCard(card CardView, selected, showCoverURL bool) string {
	style := r.styles.Card
	if selected {
		style = r.styles.CardSelected
	}
	inner := CardWidth - 4 // border and padding

	var cover []string
	switch {
	case !card.HasCover():
		cover = []string{r.styles.NoCover.Render(NoCoverText), ""}
	case showCoverURL:
		head, tail := splitCoverURL(card.CoverURL, inner)
		cover = []string{r.styles.CoverURL.Render(head), r.styles.CoverURL.Render(tail)}
	default:
		cover = []string{r.styles.CoverURL.Render("Cover (c)"), ""}
	}

	lines := append(cover,
		r.styles.CardTitle.Render(ansi.Truncate(card.Title, inner, "…")),
		ansi.Truncate("-"+card.Authors, inner, "…"),
		r.styles.CardLink.Render(LinkText),
	)
	return style.Width(CardWidth - 2).Render(strings.Join(lines, "\n"))
}

// splitCoverURL lays a cover URL over two lines of width w. When it is too
// long for both, the middle is elided so the id at the end stays readable.
func splitCoverURL(u string, w int) (string, string) {
	n := ansi.StringWidth(u)
	switch {
	case n <= w:
		return u, ""
	case n <= 2*w:
		return ansi.Truncate(u, w, ""), ansi.TruncateLeft(u, w, "")
	default:
		return ansi.Truncate(u, w, "…"), ansi.TruncateLeft(u, n-(w-1), "…")
	}
}
