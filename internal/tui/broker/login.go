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

// LoginView collects a broker license number and authenticates it.
// A rejected login (success=false) is shown inline, not treated as an
// error.
type LoginView struct {
	input      textinput.Model
	submitting bool
	errMsg     string
	client     *api.Client
}

// NewLoginView creates the login view.
func NewLoginView(client *api.Client) *LoginView {
	ti := textinput.New()
	ti.Placeholder = "e.g., BRK-2024-001"
	ti.CharLimit = 50
	ti.Focus()

	return &LoginView{
		input:  ti,
		client: client,
	}
}

// Init starts the cursor blink.
func (v *LoginView) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the login view.
func (v *LoginView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case LoginResultMsg:
		v.submitting = false
		if msg.Err != nil {
			v.errMsg = "Login failed. Please try again."
			return nil
		}
		if !msg.Resp.Success {
			v.errMsg = msg.Resp.Message
			if v.errMsg == "" {
				v.errMsg = "Invalid license number"
			}
			return nil
		}
		// App handles the successful login
		return nil

	case tea.KeyPressMsg:
		if v.submitting {
			return nil
		}
		switch msg.String() {
		case "enter":
			return v.Submit()
		default:
			v.errMsg = ""
		}
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return cmd
}

// Submit sends the login request.
func (v *LoginView) Submit() tea.Cmd {
	license := strings.TrimSpace(v.input.Value())
	if license == "" {
		v.errMsg = "Enter your license number"
		return nil
	}
	v.submitting = true
	v.errMsg = ""

	client := v.client
	return func() tea.Msg {
		resp, err := client.BrokerLogin(context.Background(), license)
		return LoginResultMsg{Resp: resp, Err: err}
	}
}

// View renders the login card.
func (v *LoginView) View() string {
	th := theme.Current()

	box := lipgloss.NewStyle().
		Width(40).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(th.BorderFocused)).
		Render(v.input.View())

	parts := []string{
		lipgloss.NewStyle().Foreground(lipgloss.Color(th.FgBase)).
			Render("License Number"),
		box,
	}
	if v.submitting {
		parts = append(parts, "", lipgloss.NewStyle().
			Foreground(lipgloss.Color(th.FgMuted)).Render("Signing in..."))
	}
	if v.errMsg != "" {
		parts = append(parts, "", lipgloss.NewStyle().
			Foreground(lipgloss.Color(th.Error)).Bold(true).Render("✗ "+v.errMsg))
	}
	parts = append(parts, "", widget.RenderHintBar("enter", "sign in", "ctrl+c", "quit"))

	return widget.RenderModal("Broker Login", lipgloss.JoinVertical(lipgloss.Left, parts...), 50)
}
