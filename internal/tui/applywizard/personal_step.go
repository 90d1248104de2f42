package applywizard

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/sarathi-rto/sarathi/internal/tui/theme"
	"github.com/sarathi-rto/sarathi/internal/tui/widget"
	"github.com/sarathi-rto/sarathi/internal/validate"
)

// Focus zones within the personal info step
const (
	personalFocusName = iota
	personalFocusEmail
)

// PersonalStep collects the applicant's full name and email.
type PersonalStep struct {
	nameInput  textinput.Model
	emailInput textinput.Model
	focus      int
	width      int
	height     int
	errs       validate.Errors
}

// NewPersonalStep creates the personal info step.
func NewPersonalStep() *PersonalStep {
	name := textinput.New()
	name.Placeholder = "e.g., Priya Sharma"
	name.CharLimit = 100
	name.Focus()

	email := textinput.New()
	email.Placeholder = "e.g., priya@example.com"
	email.CharLimit = 100

	return &PersonalStep{
		nameInput:  name,
		emailInput: email,
		focus:      personalFocusName,
	}
}

// Init initializes the step.
func (s *PersonalStep) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the step.
func (s *PersonalStep) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "enter":
			return s.Submit()
		case "tab", "down":
			if s.focus == personalFocusName {
				s.focusZone(personalFocusEmail)
				return nil
			}
			return func() tea.Msg {
				return widget.TabExitForwardMsg{}
			}
		case "shift+tab", "up":
			if s.focus == personalFocusEmail {
				s.focusZone(personalFocusName)
				return nil
			}
			return func() tea.Msg {
				return widget.TabExitBackwardMsg{}
			}
		default:
			// Clear field errors on edits
			if len(s.errs) > 0 {
				s.errs = nil
			}
		}
	}

	var cmd tea.Cmd
	switch s.focus {
	case personalFocusName:
		s.nameInput, cmd = s.nameInput.Update(msg)
	case personalFocusEmail:
		s.emailInput, cmd = s.emailInput.Update(msg)
	}
	return cmd
}

func (s *PersonalStep) focusZone(zone int) {
	s.focus = zone
	if zone == personalFocusName {
		s.nameInput.Focus()
		s.emailInput.Blur()
	} else {
		s.nameInput.Blur()
		s.emailInput.Focus()
	}
}

// View renders the step content.
func (s *PersonalStep) View() string {
	th := theme.Current()

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(th.FgBase))
	inputStyle := lipgloss.NewStyle().
		Width(60).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(th.BorderDefault))
	focusedInputStyle := inputStyle.
		BorderForeground(lipgloss.Color(th.BorderFocused))
	errStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(th.Error)).
		Bold(true)

	nameBox := inputStyle
	emailBox := inputStyle
	if s.focus == personalFocusName {
		nameBox = focusedInputStyle
	} else {
		emailBox = focusedInputStyle
	}

	parts := []string{
		labelStyle.Render("Full Name"),
		nameBox.Render(s.nameInput.View()),
	}
	if msg, ok := s.errs[validate.FieldFullName]; ok {
		parts = append(parts, errStyle.Render("✗ "+msg))
	}
	parts = append(parts,
		"",
		labelStyle.Render("Email"),
		emailBox.Render(s.emailInput.View()),
	)
	if msg, ok := s.errs[validate.FieldEmail]; ok {
		parts = append(parts, errStyle.Render("✗ "+msg))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Values returns the current trimmed field values.
func (s *PersonalStep) Values() (fullName, email string) {
	return strings.TrimSpace(s.nameInput.Value()), strings.TrimSpace(s.emailInput.Value())
}

// SetValues restores previously entered values.
func (s *PersonalStep) SetValues(fullName, email string) {
	s.nameInput.SetValue(fullName)
	s.emailInput.SetValue(email)
}

// SetSize updates the step dimensions.
func (s *PersonalStep) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// Focus focuses the first input.
func (s *PersonalStep) Focus() {
	s.focusZone(personalFocusName)
}

// FocusLast focuses the last input.
func (s *PersonalStep) FocusLast() {
	s.focusZone(personalFocusEmail)
}

// Blur removes focus from all inputs.
func (s *PersonalStep) Blur() {
	s.nameInput.Blur()
	s.emailInput.Blur()
}

// Submit validates the step fields and advances on success.
func (s *PersonalStep) Submit() tea.Cmd {
	fullName, email := s.Values()
	errs := validate.Check(validate.FormValues{FullName: fullName, Email: email}, nil)

	stepErrs := validate.Errors{}
	for _, f := range []validate.Field{validate.FieldFullName, validate.FieldEmail} {
		if msg, ok := errs[f]; ok {
			stepErrs[f] = msg
		}
	}
	if len(stepErrs) > 0 {
		s.errs = stepErrs
		return nil
	}

	s.errs = nil
	return func() tea.Msg {
		return PersonalSubmittedMsg{FullName: fullName, Email: email}
	}
}
