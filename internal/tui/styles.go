package tui

import "github.com/charmbracelet/lipgloss"

var accents = map[string]lipgloss.Color{
	"blue":   lipgloss.Color("12"),
	"green":  lipgloss.Color("10"),
	"yellow": lipgloss.Color("11"),
	"purple": lipgloss.Color("13"),
}

type styles struct {
	title   lipgloss.Style
	panel   lipgloss.Style
	code    lipgloss.Style
	muted   lipgloss.Style
	warning lipgloss.Style
	errText lipgloss.Style
	correct lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")),
		panel:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1).Width(72),
		code:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		errText: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		correct: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	}
}

func (s styles) accent(color string) lipgloss.Style {
	c, ok := accents[color]
	if !ok {
		c = lipgloss.Color("15")
	}
	return lipgloss.NewStyle().Bold(true).Foreground(c)
}
