package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/Laisky/errors/v2"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"

	"booksearch/internal/ui/input/keys"
)

// errNoProgram is returned when the pager is requested before the program runs
var errNoProgram = errors.New("program not set")

// HelpRenderer handles help content rendering
type HelpRenderer struct {
	keys keys.KeyMap
}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer(km keys.KeyMap) *HelpRenderer {
	return &HelpRenderer{keys: km}
}

type helpSection struct {
	title    string
	bindings []key.Binding
}

func (r *HelpRenderer) sections() []helpSection {
	k := r.keys
	return []helpSection{
		{"Search field", []key.Binding{k.Submit, k.ToResults, k.ForceQuit}},
		{"Results", []key.Binding{k.Up, k.Down, k.Left, k.Right, k.PageUp, k.PageDown, k.Home, k.End}},
		{"Cards", []key.Binding{k.LoadMore, k.OpenLink, k.OpenCover}},
		{"Other", []key.Binding{k.FocusQuery, k.Dismiss, k.Help, k.Quit}},
	}
}

// RenderHelpContent generates the key reference with colors, for the pager
// and the in-app popup
func (r *HelpRenderer) RenderHelpContent() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39"))

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220")).
		Width(10)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var help strings.Builder
	help.WriteString(titleStyle.Render("Book Search Help"))
	help.WriteString("\n")

	for i, section := range r.sections() {
		if i > 0 {
			help.WriteString("\n")
		}
		help.WriteString(sectionStyle.Render(section.title))
		help.WriteString("\n")
		for _, b := range section.bindings {
			h := b.Help()
			help.WriteString(fmt.Sprintf("  %s %s\n", keyStyle.Render(strings.Join(b.Keys(), "/")), descStyle.Render(h.Desc)))
		}
	}

	return strings.TrimRight(help.String(), "\n")
}

// HelpOps shows help outside the Bubble Tea frame
type HelpOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewHelpOps creates a new help operations instance
func NewHelpOps() *HelpOps {
	return &HelpOps{}
}

// SetProgram sets the program reference for terminal management
func (h *HelpOps) SetProgram(p *tea.Program) {
	h.program = p
}

// ShowHelpInPager shows help content using ov pager
func (h *HelpOps) ShowHelpInPager(helpContent string) error {
	if h.program == nil {
		return errNoProgram
	}

	// Release terminal control to run ov
	if err := h.program.ReleaseTerminal(); err != nil {
		return errors.Wrap(err, "release terminal")
	}

	// Ensure terminal is restored even if ov fails
	defer func() {
		time.Sleep(100 * time.Millisecond)
		_ = h.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(helpContent))
	if err != nil {
		return errors.Wrap(err, "create pager")
	}

	// Don't write on exit, it would mess with our screen
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
