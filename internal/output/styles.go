package output

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorGreen  = lipgloss.Color("82")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("204")
	colorCyan   = lipgloss.Color("14")
)

var (
	// StyleNoun styles paths and file names.
	StyleNoun = lipgloss.NewStyle().Foreground(colorCyan)
	// StyleDim styles secondary detail.
	StyleDim = lipgloss.NewStyle().Faint(true)
	// StyleHeading styles section headings.
	StyleHeading = lipgloss.NewStyle().Bold(true)
)

// Marker is a fixed-width status tag printed before a line.
type Marker string

const (
	OK   Marker = "[ OK ]"
	Skip Marker = "[SKIP]"
	Warn Marker = "[WARN]"
	Fail Marker = "[FAIL]"
	Miss Marker = "[MISS]"
	Fix  Marker = "[FIX ]"
)

func (m Marker) style() lipgloss.Style {
	switch m {
	case OK, Fix:
		return lipgloss.NewStyle().Foreground(colorGreen)
	case Skip, Miss:
		return lipgloss.NewStyle().Faint(true)
	case Warn:
		return lipgloss.NewStyle().Foreground(colorYellow)
	case Fail:
		return lipgloss.NewStyle().Bold(true).Foreground(colorRed)
	default:
		return lipgloss.NewStyle()
	}
}

// Line renders "<marker> text".
func Line(m Marker, text string) string {
	return m.style().Render(string(m)) + " " + text
}

// Printf writes a marked line to w.
func Printf(w io.Writer, m Marker, format string, args ...any) {
	fmt.Fprintln(w, Line(m, fmt.Sprintf(format, args...)))
}
