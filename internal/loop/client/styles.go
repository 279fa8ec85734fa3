package client

import "github.com/charmbracelet/lipgloss"

// styles are built on the session's renderer so color output matches the
// remote terminal rather than the server's.
type styles struct {
	panel    lipgloss.Style
	alert    lipgloss.Style
	title    lipgloss.Style
	dim      lipgloss.Style
	hud      lipgloss.Style
	good     lipgloss.Style
	bad      lipgloss.Style
	warn     lipgloss.Style
	flash    lipgloss.Style
	prompt   lipgloss.Style
	barFull  lipgloss.Style
	barEmpty lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		panel: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 2).
			Align(lipgloss.Center),
		alert: r.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("196")).
			Padding(0, 2).
			Align(lipgloss.Center),
		title:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("229")),
		dim:      r.NewStyle().Foreground(lipgloss.Color("245")),
		hud:      r.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("24")),
		good:     r.NewStyle().Foreground(lipgloss.Color("120")),
		bad:      r.NewStyle().Foreground(lipgloss.Color("203")),
		warn:     r.NewStyle().Foreground(lipgloss.Color("221")),
		flash:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("16")).Background(lipgloss.Color("221")).Padding(0, 1),
		prompt:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("51")),
		barFull:  r.NewStyle().Foreground(lipgloss.Color("120")),
		barEmpty: r.NewStyle().Foreground(lipgloss.Color("240")),
	}
}
