package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Color palette
const (
	ColorPass  = "82"
	ColorFail  = "196"
	ColorLabel = "245"
	ColorID    = "214"
)

// styles holds the styles bound to one output renderer
type styles struct {
	pass  lipgloss.Style
	fail  lipgloss.Style
	label lipgloss.Style
	id    lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		pass:  r.NewStyle().Foreground(lipgloss.Color(ColorPass)),
		fail:  r.NewStyle().Foreground(lipgloss.Color(ColorFail)),
		label: r.NewStyle().Foreground(lipgloss.Color(ColorLabel)),
		id:    r.NewStyle().Foreground(lipgloss.Color(ColorID)),
	}
}

// padRight pads a string to the specified display width using runewidth
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}
