package widget

import (
	"charm.land/lipgloss/v2"

	"github.com/sarathi-rto/sarathi/internal/tui/theme"
)

// RenderModal frames content in the standard modal box with a centered title.
func RenderModal(title, content string, width int) string {
	th := theme.Current()

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(th.Primary)).
		Bold(true).
		Width(width - 6).
		Align(lipgloss.Center)

	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(th.BorderFocused)).
		Padding(1, 2).
		Width(width)

	return frame.Render(titleStyle.Render(title) + "\n\n" + content)
}
