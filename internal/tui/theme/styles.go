package theme

import "charm.land/lipgloss/v2"

// Styles contains pre-built lipgloss styles for the TUI.
type Styles struct {
	Base        lipgloss.Style
	Muted       lipgloss.Style
	Highlight   lipgloss.Style
	HeaderTitle lipgloss.Style

	StatusBar      lipgloss.Style
	ModalContainer lipgloss.Style

	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style
}
