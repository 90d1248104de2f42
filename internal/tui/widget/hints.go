package widget

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/sarathi-rto/sarathi/internal/tui/theme"
)

// RenderHintBar renders a hint bar with the given key-description pairs.
// Example: RenderHintBar("↑↓", "navigate", "enter", "select", "esc", "back")
// Returns: "↑↓ navigate • enter select • esc back"
func RenderHintBar(pairs ...string) string {
	if len(pairs) == 0 || len(pairs)%2 != 0 {
		return ""
	}

	th := theme.Current()
	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(th.FgSubtle)).
		Bold(true)
	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(th.FgMuted))
	sepStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(th.BgSurface2))

	var b strings.Builder
	for i := 0; i < len(pairs); i += 2 {
		if i > 0 {
			b.WriteString(" " + sepStyle.Render("•") + " ")
		}
		b.WriteString(keyStyle.Render(pairs[i]))
		b.WriteString(" ")
		b.WriteString(descStyle.Render(pairs[i+1]))
	}
	return b.String()
}
