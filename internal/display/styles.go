package display

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// styles are bound to a renderer so colour can be disabled per output
type styles struct {
	header    lipgloss.Style
	label     lipgloss.Style
	value     lipgloss.Style
	redCard   lipgloss.Style
	blackCard lipgloss.Style
	trump     lipgloss.Style
	success   lipgloss.Style
	error     lipgloss.Style
	warning   lipgloss.Style
	info      lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		header: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true).
			Padding(0, 1),
		label: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		value: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")),
		redCard: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		blackCard: r.NewStyle().
			Foreground(lipgloss.Color("#C0C0C0")).
			Bold(true),
		trump: r.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		success: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		error: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		warning: r.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true),
		info: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),
	}
}

// Printer renders engine output for a terminal
type Printer struct {
	w      io.Writer
	styles styles
}

// NewPrinter creates a printer for w. With noColor set every style renders
// as plain text.
func NewPrinter(w io.Writer, noColor bool) *Printer {
	r := lipgloss.NewRenderer(w)
	if noColor {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Printer{w: w, styles: newStyles(r)}
}
