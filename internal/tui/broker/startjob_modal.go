package broker

import (
	"context"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/sarathi-rto/sarathi/internal/api"
	"github.com/sarathi-rto/sarathi/internal/tui/theme"
	"github.com/sarathi-rto/sarathi/internal/tui/widget"
)

// StartJobModal collects a vehicle number and starts a job for it.
// Vehicle numbers are normalized to upper case before sending.
type StartJobModal struct {
	input    textinput.Model
	starting bool
	errMsg   string
	client   *api.Client
	brokerID int
}

// NewStartJobModal creates the start-job modal.
func NewStartJobModal(client *api.Client, brokerID int) *StartJobModal {
	ti := textinput.New()
	ti.Placeholder = "e.g., MH12AB1234"
	ti.CharLimit = 20
	ti.Focus()

	return &StartJobModal{
		input:    ti,
		client:   client,
		brokerID: brokerID,
	}
}

// Init starts the cursor blink.
func (m *StartJobModal) Init() tea.Cmd {
	return textinput.Blink
}

// VehicleNumber returns the normalized vehicle number.
func (m *StartJobModal) VehicleNumber() string {
	return strings.ToUpper(strings.TrimSpace(m.input.Value()))
}

// Update handles messages while the modal is open. Returns a command and
// whether the modal wants to close.
func (m *StartJobModal) Update(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case StartJobResultMsg:
		m.starting = false
		if msg.Err != nil {
			m.errMsg = "Could not start job. Please try again."
			return nil, false
		}
		if !msg.Resp.Success {
			m.errMsg = msg.Resp.Message
			if m.errMsg == "" {
				m.errMsg = "Job could not be started"
			}
			return nil, false
		}
		// Started; parent opens the OTP modal and clears this one
		return nil, true

	case tea.KeyPressMsg:
		if m.starting {
			return nil, false
		}
		switch msg.String() {
		case "esc":
			return nil, true
		case "enter":
			return m.start(), false
		default:
			m.errMsg = ""
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd, false
}

// start sends the job request.
func (m *StartJobModal) start() tea.Cmd {
	vehicle := m.VehicleNumber()
	if vehicle == "" {
		m.errMsg = "Enter a vehicle number"
		return nil
	}
	m.starting = true
	m.errMsg = ""

	client := m.client
	brokerID := m.brokerID
	return func() tea.Msg {
		resp, err := client.StartJob(context.Background(), brokerID, vehicle)
		return StartJobResultMsg{Resp: resp, Err: err}
	}
}

// View renders the modal.
func (m *StartJobModal) View() string {
	th := theme.Current()

	box := lipgloss.NewStyle().
		Width(40).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(th.BorderFocused)).
		Render(m.input.View())

	parts := []string{
		lipgloss.NewStyle().Foreground(lipgloss.Color(th.FgBase)).
			Render("Vehicle Number"),
		box,
	}
	if m.starting {
		parts = append(parts, "", lipgloss.NewStyle().
			Foreground(lipgloss.Color(th.FgMuted)).Render("Starting job..."))
	}
	if m.errMsg != "" {
		parts = append(parts, "", lipgloss.NewStyle().
			Foreground(lipgloss.Color(th.Error)).Bold(true).Render("✗ "+m.errMsg))
	}
	parts = append(parts, "", widget.RenderHintBar("enter", "start", "esc", "close"))

	return widget.RenderModal("Start Job", lipgloss.JoinVertical(lipgloss.Left, parts...), 50)
}
