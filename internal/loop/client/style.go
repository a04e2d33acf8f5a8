package client

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// styles are the text styles for one session. Each session gets its own
// renderer because SSH clients differ from the server's own terminal.
type styles struct {
	hud      lipgloss.Style
	hudLabel lipgloss.Style
	lives    lipgloss.Style
	lost     lipgloss.Style
	banner   lipgloss.Style
	title    lipgloss.Style
	text     lipgloss.Style
	key      lipgloss.Style
	dim      lipgloss.Style
	box      lipgloss.Style
	pad      lipgloss.Style
	padHeld  lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	// The canvas already speaks xterm-256; keep text in the same palette
	// regardless of what the remote end advertises.
	r.SetColorProfile(termenv.ANSI256)

	accent := lipgloss.Color("#93c5fd")
	warm := lipgloss.Color("#f59e0b")
	fg := lipgloss.Color("#e5e7eb")
	muted := lipgloss.Color("#64748b")

	return styles{
		hud:      r.NewStyle().Foreground(fg).Bold(true),
		hudLabel: r.NewStyle().Foreground(accent),
		lives:    r.NewStyle().Foreground(lipgloss.Color("#ef4444")),
		lost:     r.NewStyle().Foreground(muted),
		banner:   r.NewStyle().Foreground(warm).Bold(true),
		title:    r.NewStyle().Foreground(accent).Bold(true),
		text:     r.NewStyle().Foreground(fg),
		key:      r.NewStyle().Foreground(warm).Bold(true),
		dim:      r.NewStyle().Foreground(muted),
		box: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 2),
		pad: r.NewStyle().
			Foreground(fg).
			Background(lipgloss.Color("#1e293b")).
			Align(lipgloss.Center),
		padHeld: r.NewStyle().
			Foreground(lipgloss.Color("#0b1020")).
			Background(accent).
			Bold(true).
			Align(lipgloss.Center),
	}
}
