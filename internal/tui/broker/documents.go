package broker

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/sarathi-rto/sarathi/internal/api"
	"github.com/sarathi-rto/sarathi/internal/logger"
	"github.com/sarathi-rto/sarathi/internal/tui/theme"
	"github.com/sarathi-rto/sarathi/internal/tui/widget"
)

// DocumentsModal runs a forgery check on a document image. Each check gets
// a monotonically increasing token; results carrying an older token than
// the latest request are discarded, so a slow response never overwrites a
// newer check.
type DocumentsModal struct {
	pathInput textinput.Model
	checking  bool
	token     int
	result    *api.ForgeryResult
	errMsg    string
	client    *api.Client
}

// NewDocumentsModal creates the document check modal.
func NewDocumentsModal(client *api.Client) *DocumentsModal {
	ti := textinput.New()
	ti.Placeholder = "Path to document image"
	ti.CharLimit = 500
	ti.Focus()

	return &DocumentsModal{
		pathInput: ti,
		client:    client,
	}
}

// Init starts the cursor blink.
func (m *DocumentsModal) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages while the modal is open. Returns a command and
// whether the modal wants to close.
func (m *DocumentsModal) Update(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case ForgeryResultMsg:
		if msg.Token != m.token {
			logger.Debug("Discarding stale forgery result: token=%d latest=%d", msg.Token, m.token)
			return nil, false
		}
		m.checking = false
		if msg.Err != nil {
			m.errMsg = "Document check failed. Please try again."
			return nil, false
		}
		m.result = msg.Result
		return nil, false

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return nil, true
		case "enter":
			return m.check(), false
		default:
			m.errMsg = ""
		}
	}

	var cmd tea.Cmd
	m.pathInput, cmd = m.pathInput.Update(msg)
	return cmd, false
}

// check reads the file and starts an async forgery check.
func (m *DocumentsModal) check() tea.Cmd {
	path := strings.TrimSpace(m.pathInput.Value())
	if path == "" {
		m.errMsg = "Enter a file path"
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		m.errMsg = fmt.Sprintf("Could not read %s", path)
		return nil
	}

	m.token++
	m.checking = true
	m.result = nil
	m.errMsg = ""

	token := m.token
	client := m.client
	encoded := base64.StdEncoding.EncodeToString(data)
	return func() tea.Msg {
		result, err := client.DetectForgery(context.Background(), encoded)
		return ForgeryResultMsg{Token: token, Result: result, Err: err}
	}
}

// View renders the modal.
func (m *DocumentsModal) View() string {
	th := theme.Current()

	box := lipgloss.NewStyle().
		Width(46).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(th.BorderFocused)).
		Render(m.pathInput.View())

	parts := []string{
		lipgloss.NewStyle().Foreground(lipgloss.Color(th.FgBase)).
			Render("Document Image"),
		box,
	}

	if m.checking {
		parts = append(parts, "", lipgloss.NewStyle().
			Foreground(lipgloss.Color(th.FgMuted)).Render("Checking document..."))
	}

	if m.result != nil {
		var verdict string
		if m.result.IsForged {
			verdict = lipgloss.NewStyle().
				Foreground(lipgloss.Color(th.Error)).
				Bold(true).
				Render(fmt.Sprintf("✗ Possible forgery (%.0f%% confidence)", m.result.Confidence*100))
		} else {
			verdict = lipgloss.NewStyle().
				Foreground(lipgloss.Color(th.Success)).
				Bold(true).
				Render(fmt.Sprintf("✓ Document looks genuine (%.0f%% confidence)", m.result.Confidence*100))
		}
		parts = append(parts, "", verdict)
		for _, issue := range m.result.Issues {
			parts = append(parts, lipgloss.NewStyle().
				Foreground(lipgloss.Color(th.Warning)).
				Render("  • "+issue))
		}
	}

	if m.errMsg != "" {
		parts = append(parts, "", lipgloss.NewStyle().
			Foreground(lipgloss.Color(th.Error)).Bold(true).Render("✗ "+m.errMsg))
	}
	parts = append(parts, "", widget.RenderHintBar("enter", "check", "esc", "close"))

	return widget.RenderModal("Document Check", lipgloss.JoinVertical(lipgloss.Left, parts...), 56)
}
