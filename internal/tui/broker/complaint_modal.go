package broker

import (
	"context"
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/sarathi-rto/sarathi/internal/api"
	"github.com/sarathi-rto/sarathi/internal/tui/theme"
	"github.com/sarathi-rto/sarathi/internal/tui/widget"
)

var complaintTypes = []string{"Document Issue", "Payment Issue", "Delay", "Other"}

// Focus zones within the complaint modal
const (
	complaintFocusType = iota
	complaintFocusApp
	complaintFocusDesc
)

// ComplaintModal files a complaint against one of the broker's applications.
type ComplaintModal struct {
	typeIdx    int
	appInput   textinput.Model
	descInput  textarea.Model
	focus      int
	submitting bool
	errMsg     string
	client     *api.Client
	brokerID   int
}

// NewComplaintModal creates the complaint modal.
func NewComplaintModal(client *api.Client, brokerID int) *ComplaintModal {
	app := textinput.New()
	app.Placeholder = "Application ID"
	app.CharLimit = 10

	desc := textarea.New()
	desc.Placeholder = "Describe the issue..."
	desc.CharLimit = 1000
	desc.SetHeight(4)
	desc.SetWidth(44)

	return &ComplaintModal{
		appInput:  app,
		descInput: desc,
		client:    client,
		brokerID:  brokerID,
	}
}

// Init starts the cursor blink.
func (m *ComplaintModal) Init() tea.Cmd {
	return textinput.Blink
}

// ComplaintType returns the selected complaint type.
func (m *ComplaintModal) ComplaintType() string {
	return complaintTypes[m.typeIdx]
}

// Update handles messages while the modal is open. Returns a command and
// whether the modal wants to close.
func (m *ComplaintModal) Update(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case ComplaintResultMsg:
		m.submitting = false
		if msg.Err != nil {
			m.errMsg = "Could not submit complaint. Please try again."
			return nil, false
		}
		// Filed; parent reloads the dashboard
		return func() tea.Msg { return ReloadDashboardMsg{} }, true

	case tea.KeyPressMsg:
		if m.submitting {
			return nil, false
		}
		switch msg.String() {
		case "esc":
			return nil, true
		case "tab":
			m.focusZone((m.focus + 1) % 3)
			return nil, false
		case "shift+tab":
			m.focusZone((m.focus + 2) % 3)
			return nil, false
		case "ctrl+d":
			return m.submit(), false
		case "left":
			if m.focus == complaintFocusType {
				m.typeIdx = (m.typeIdx - 1 + len(complaintTypes)) % len(complaintTypes)
				return nil, false
			}
		case "right":
			if m.focus == complaintFocusType {
				m.typeIdx = (m.typeIdx + 1) % len(complaintTypes)
				return nil, false
			}
		case "enter":
			if m.focus != complaintFocusDesc {
				return m.submit(), false
			}
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case complaintFocusApp:
		m.appInput, cmd = m.appInput.Update(msg)
	case complaintFocusDesc:
		m.descInput, cmd = m.descInput.Update(msg)
	}
	return cmd, false
}

func (m *ComplaintModal) focusZone(zone int) {
	m.focus = zone
	m.appInput.Blur()
	m.descInput.Blur()
	switch zone {
	case complaintFocusApp:
		m.appInput.Focus()
	case complaintFocusDesc:
		m.descInput.Focus()
	}
}

// submit files the complaint.
func (m *ComplaintModal) submit() tea.Cmd {
	appID, err := strconv.Atoi(strings.TrimSpace(m.appInput.Value()))
	if err != nil || appID <= 0 {
		m.errMsg = "Enter a valid application ID"
		return nil
	}
	desc := strings.TrimSpace(m.descInput.Value())
	if desc == "" {
		m.errMsg = "Describe the issue"
		return nil
	}

	m.submitting = true
	m.errMsg = ""

	client := m.client
	req := api.ComplaintCreate{
		BrokerID:      m.brokerID,
		ApplicationID: appID,
		ComplaintType: m.ComplaintType(),
		Description:   desc,
	}
	return func() tea.Msg {
		resp, err := client.SubmitComplaint(context.Background(), req)
		return ComplaintResultMsg{Resp: resp, Err: err}
	}
}

// View renders the modal.
func (m *ComplaintModal) View() string {
	th := theme.Current()

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(th.FgMuted))
	normalStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(th.FgBase)).
		Padding(0, 1)
	selectedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(th.BgBase)).
		Background(lipgloss.Color(th.Primary)).
		Bold(true).
		Padding(0, 1)

	var types []string
	for i, ct := range complaintTypes {
		if i == m.typeIdx {
			types = append(types, selectedStyle.Render(ct))
		} else {
			types = append(types, normalStyle.Render(ct))
		}
	}

	inputBox := lipgloss.NewStyle().
		Width(20).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(th.BorderDefault))
	descBox := lipgloss.NewStyle().
		Width(46).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(th.BorderDefault))
	if m.focus == complaintFocusApp {
		inputBox = inputBox.BorderForeground(lipgloss.Color(th.BorderFocused))
	}
	if m.focus == complaintFocusDesc {
		descBox = descBox.BorderForeground(lipgloss.Color(th.BorderFocused))
	}

	parts := []string{
		labelStyle.Render("Complaint Type"),
		lipgloss.JoinHorizontal(lipgloss.Top, types...),
		"",
		labelStyle.Render("Application ID"),
		inputBox.Render(m.appInput.View()),
		"",
		labelStyle.Render("Description"),
		descBox.Render(m.descInput.View()),
	}
	if m.submitting {
		parts = append(parts, "", lipgloss.NewStyle().
			Foreground(lipgloss.Color(th.FgMuted)).Render("Submitting..."))
	}
	if m.errMsg != "" {
		parts = append(parts, "", lipgloss.NewStyle().
			Foreground(lipgloss.Color(th.Error)).Bold(true).Render("✗ "+m.errMsg))
	}
	parts = append(parts, "", widget.RenderHintBar("tab", "next field", "ctrl+d", "submit", "esc", "close"))

	return widget.RenderModal("File Complaint", lipgloss.JoinVertical(lipgloss.Left, parts...), 56)
}
