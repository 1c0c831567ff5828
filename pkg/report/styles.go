package report

import "github.com/charmbracelet/lipgloss"

var colorSuccess = lipgloss.Color("#00B785")
var colorFailed = lipgloss.Color("#e1244c")
var colorWarning = lipgloss.Color("#e0a800")
var colorHighlight = lipgloss.Color("#407FF8")

type styles struct {
	success   lipgloss.Style
	failed    lipgloss.Style
	warning   lipgloss.Style
	highlight lipgloss.Style
	heading   lipgloss.Style
	muted     lipgloss.Style
	banner    lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		success:   r.NewStyle().Foreground(colorSuccess).Bold(true),
		failed:    r.NewStyle().Foreground(colorFailed).Bold(true),
		warning:   r.NewStyle().Foreground(colorWarning).Bold(true),
		highlight: r.NewStyle().Foreground(colorHighlight).Bold(true),
		heading:   r.NewStyle().Bold(true),
		muted:     r.NewStyle().Foreground(lipgloss.Color("#5D689C")),
		banner: r.NewStyle().
			Padding(0, 1).
			Margin(1, 0).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorWarning).
			Width(80),
	}
}
