package ui

import (
	"strings"
)

// renderHelp renders the full-screen help overlay. Any key dismisses it.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	rows := []struct{ key, desc string }{
		{"a", "Add a timezone (fuzzy city search)"},
		{"d/x", "Remove the highlighted timezone"},
		{"j/k", "Move the cursor"},
		{"J/K", "Reorder the highlighted timezone"},
		{"/", "Filter cards by city"},
		{"r", "Force a data refresh"},
		{"T", "Toggle light/dark theme"},
		{"esc", "Clear filter / cancel input"},
		{"?/h", "Toggle this help"},
		{"q", "Quit"},
	}

	var b strings.Builder
	b.WriteString(styles.Logo.Render("zoneclock keys"))
	b.WriteString("\n\n")
	for _, row := range rows {
		b.WriteString("  ")
		b.WriteString(styles.AccentText.Render(padRight("<"+row.key+">", 8)))
		b.WriteString(styles.Text.Render(row.desc))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("Press any key to close"))
	return b.String()
}
