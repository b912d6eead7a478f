package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Heading       lipgloss.Style
	Term          lipgloss.Style
	Dim           lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	Scroll        lipgloss.Style
	InputBox      lipgloss.Style
	InputFocused  lipgloss.Style
	Button        lipgloss.Style
	Card          lipgloss.Style
	CardSelected  lipgloss.Style
	CardTitle     lipgloss.Style
	CardLink      lipgloss.Style
	NoCover       lipgloss.Style
	CoverURL      lipgloss.Style
	NoticeBox     lipgloss.Style
	HelpBox       lipgloss.Style
	StatusError   lipgloss.Style
	StatusLoading lipgloss.Style
	StatusInfo    lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Heading: lipgloss.NewStyle().Bold(true),
		Term:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true), // yellow
		Dim:     lipgloss.NewStyle().Faint(true),
		Help:    lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(1, 2),
		Scroll: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		InputBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		InputFocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(0, 1),
		Button: lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("99")).
			Padding(0, 1),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1),
		CardSelected: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(0, 1),
		CardTitle:     lipgloss.NewStyle().Bold(true),
		CardLink:      lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Underline(true), // cyan
		NoCover:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		CoverURL:      lipgloss.NewStyle().Foreground(lipgloss.Color("78")), // green
		NoticeBox: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("203")).
			Padding(1, 3).
			Bold(true),
		HelpBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(1, 2),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		StatusInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}
