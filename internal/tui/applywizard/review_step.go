package applywizard

import (
	"charm.land/lipgloss/v2"

	"github.com/sarathi-rto/sarathi/internal/tui/theme"
)

// ReviewStep shows the collected values before submission.
type ReviewStep struct {
	fullName   string
	email      string
	brokerName string
	details    string
	width      int
	height     int
}

// NewReviewStep creates the review step from the collected values.
func NewReviewStep(fullName, email, brokerName, details string) *ReviewStep {
	return &ReviewStep{
		fullName:   fullName,
		email:      email,
		brokerName: brokerName,
		details:    details,
	}
}

// View renders the summary.
func (s *ReviewStep) View() string {
	th := theme.Current()

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(th.FgMuted)).
		Width(12)
	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(th.FgBase))

	row := func(label, value string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top,
			labelStyle.Render(label),
			valueStyle.Render(value))
	}

	details := s.details
	if runes := []rune(details); len(runes) > 200 {
		details = string(runes[:197]) + "..."
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		row("Name", s.fullName),
		row("Email", s.email),
		row("Broker", s.brokerName),
		"",
		labelStyle.Render("Details"),
		valueStyle.Width(58).Render(details),
	)
}

// SetSize updates the step dimensions.
func (s *ReviewStep) SetSize(width, height int) {
	s.width = width
	s.height = height
}
