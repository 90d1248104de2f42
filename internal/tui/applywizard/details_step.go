package applywizard

import (
	"os"
	"strings"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/editor"

	"github.com/sarathi-rto/sarathi/internal/tui/theme"
	"github.com/sarathi-rto/sarathi/internal/tui/widget"
	"github.com/sarathi-rto/sarathi/internal/validate"
)

// DetailsStep collects the application details text.
type DetailsStep struct {
	textarea textarea.Model
	width    int
	height   int
	err      string
	tmpFile  string
}

// DetailsEditedMsg is sent when the external editor returns with new content.
type DetailsEditedMsg struct {
	Content string
}

// NewDetailsStep creates the details input step.
func NewDetailsStep() *DetailsStep {
	ta := textarea.New()
	ta.Placeholder = "Describe your application...\n\nExample:\n- Vehicle make and model\n- Registration district\n- Any supporting documents you hold"
	ta.CharLimit = 5000
	ta.SetHeight(8)
	ta.SetWidth(60)
	ta.Focus()

	return &DetailsStep{
		textarea: ta,
	}
}

// Init initializes the step.
func (s *DetailsStep) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages for the step.
func (s *DetailsStep) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case DetailsEditedMsg:
		s.textarea.SetValue(msg.Content)
		if s.tmpFile != "" {
			_ = os.Remove(s.tmpFile)
			s.tmpFile = ""
		}
		return nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+d":
			return s.Submit()
		case "ctrl+e":
			return s.openEditor()
		case "tab":
			return func() tea.Msg {
				return widget.TabExitForwardMsg{}
			}
		case "shift+tab":
			return func() tea.Msg {
				return widget.TabExitBackwardMsg{}
			}
		default:
			if s.err != "" {
				s.err = ""
			}
		}
	}

	var cmd tea.Cmd
	s.textarea, cmd = s.textarea.Update(msg)
	return cmd
}

// openEditor writes the current text to a temp file and opens $EDITOR on it.
func (s *DetailsStep) openEditor() tea.Cmd {
	tmpfile, err := os.CreateTemp("", "sarathi-details-*.txt")
	if err != nil {
		return nil
	}
	if _, err := tmpfile.WriteString(s.textarea.Value()); err != nil {
		tmpfile.Close()
		_ = os.Remove(tmpfile.Name())
		return nil
	}
	tmpfile.Close()
	s.tmpFile = tmpfile.Name()

	cmd, err := editor.Command("sarathi", tmpfile.Name())
	if err != nil {
		_ = os.Remove(tmpfile.Name())
		return nil
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		if err != nil {
			return nil
		}
		content, err := os.ReadFile(tmpfile.Name())
		if err != nil {
			return nil
		}
		return DetailsEditedMsg{Content: string(content)}
	})
}

// View renders the step content.
func (s *DetailsStep) View() string {
	th := theme.Current()

	instruction := lipgloss.NewStyle().
		Foreground(lipgloss.Color(th.FgBase)).
		MarginBottom(1).
		Render("Describe what you are applying for:")

	box := lipgloss.NewStyle().
		Width(62).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(th.BorderDefault)).
		Render(s.textarea.View())

	hint := lipgloss.NewStyle().
		Foreground(lipgloss.Color(th.FgMuted)).
		Render("ctrl+d to continue • ctrl+e to open $EDITOR")

	parts := []string{instruction, box, hint}
	if s.err != "" {
		parts = append(parts, lipgloss.NewStyle().
			Foreground(lipgloss.Color(th.Error)).
			Bold(true).
			Render("✗ "+s.err))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Value returns the trimmed details text.
func (s *DetailsStep) Value() string {
	return strings.TrimSpace(s.textarea.Value())
}

// SetValue restores previously entered text.
func (s *DetailsStep) SetValue(v string) {
	s.textarea.SetValue(v)
}

// SetSize updates the step dimensions.
func (s *DetailsStep) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// Focus focuses the textarea.
func (s *DetailsStep) Focus() {
	s.textarea.Focus()
}

// Blur blurs the textarea.
func (s *DetailsStep) Blur() {
	s.textarea.Blur()
}

// Submit validates the details and advances on success.
func (s *DetailsStep) Submit() tea.Cmd {
	value := s.Value()
	errs := validate.Check(validate.FormValues{Details: value}, nil)
	if msg, ok := errs[validate.FieldDetails]; ok {
		s.err = msg
		return nil
	}
	s.err = ""
	return func() tea.Msg {
		return DetailsSubmittedMsg{Details: value}
	}
}
