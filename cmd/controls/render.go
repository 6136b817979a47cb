package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFD700"))
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF7F"))
	actionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB")).Width(12)
	keyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF"))
	emptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Italic(true)
	boxStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#5F5FAF")).
			Padding(0, 1)
)

// renderBindings draws one profile as a boxed action -> keys table.
func renderBindings(profile string, active bool, bindings map[string][]string) string {
	header := titleStyle.Render("profile " + profile)
	if active {
		header = lipgloss.JoinHorizontal(lipgloss.Top, header, " ", activeStyle.Render("(active)"))
	}

	rows := []string{header, ""}
	for _, action := range sortedActions(bindings) {
		names := bindings[action]
		value := emptyStyle.Render("unbound")
		if len(names) > 0 {
			value = keyStyle.Render(strings.Join(names, ", "))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, actionStyle.Render(action), value))
	}
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
