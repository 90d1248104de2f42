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

const otpSlots = 6

// Focus zones within the modal
const (
	otpFocusPhone = iota
	otpFocusSlots
)

// OTPModal collects a mobile number and a six-digit code, one digit per
// slot. Typing a digit fills the active slot and advances; backspace
// clears and moves back.
type OTPModal struct {
	phoneInput textinput.Model
	digits     [otpSlots]string
	active     int
	focus      int
	verifying  bool
	errMsg     string
	client     *api.Client
}

// NewOTPModal creates the OTP entry modal, prefilled with the broker's
// registered phone number. Focus starts on the slots when a number is
// already present.
func NewOTPModal(client *api.Client, phone string) *OTPModal {
	ti := textinput.New()
	ti.Placeholder = "Enter mobile number"
	ti.CharLimit = 15
	ti.SetValue(phone)

	m := &OTPModal{
		phoneInput: ti,
		client:     client,
		focus:      otpFocusSlots,
	}
	if phone == "" {
		m.focus = otpFocusPhone
		m.phoneInput.Focus()
	}
	return m
}

// Phone returns the trimmed mobile number.
func (m *OTPModal) Phone() string {
	return strings.TrimSpace(m.phoneInput.Value())
}

// Filled reports whether every slot has a digit.
func (m *OTPModal) Filled() bool {
	for _, d := range m.digits {
		if d == "" {
			return false
		}
	}
	return true
}

// Code returns the six digits joined.
func (m *OTPModal) Code() string {
	return strings.Join(m.digits[:], "")
}

// Update handles keys while the modal is open. Returns a command and
// whether the modal wants to close.
func (m *OTPModal) Update(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case OTPResultMsg:
		m.verifying = false
		if msg.Err != nil {
			m.errMsg = "Verification failed. Please try again."
			return nil, false
		}
		if !msg.Resp.Success {
			m.errMsg = msg.Resp.Message
			if m.errMsg == "" {
				m.errMsg = "Invalid OTP"
			}
			return nil, false
		}
		// Verified: parent reloads the dashboard
		return func() tea.Msg { return ReloadDashboardMsg{} }, true

	case tea.KeyPressMsg:
		if m.verifying {
			return nil, false
		}
		key := msg.String()
		switch key {
		case "esc":
			return nil, true
		case "enter":
			return m.verify(), false
		case "tab", "shift+tab":
			if m.focus == otpFocusPhone {
				m.focus = otpFocusSlots
				m.phoneInput.Blur()
			} else {
				m.focus = otpFocusPhone
				m.phoneInput.Focus()
			}
			return nil, false
		}

		if m.focus == otpFocusPhone {
			var cmd tea.Cmd
			m.phoneInput, cmd = m.phoneInput.Update(msg)
			return cmd, false
		}

		switch {
		case key == "backspace":
			if m.digits[m.active] != "" {
				m.digits[m.active] = ""
			} else if m.active > 0 {
				m.active--
				m.digits[m.active] = ""
			}
			m.errMsg = ""
		case key == "left":
			if m.active > 0 {
				m.active--
			}
		case key == "right":
			if m.active < otpSlots-1 {
				m.active++
			}
		case len(key) == 1 && key >= "0" && key <= "9":
			m.digits[m.active] = key
			if m.active < otpSlots-1 {
				m.active++
			}
			m.errMsg = ""
		}
	}
	return nil, false
}

// verify sends the code when a number is set and all slots are filled.
func (m *OTPModal) verify() tea.Cmd {
	if m.Phone() == "" {
		m.errMsg = "Enter the mobile number"
		return nil
	}
	if !m.Filled() {
		m.errMsg = "Enter all six digits"
		return nil
	}
	m.verifying = true
	m.errMsg = ""

	client := m.client
	phone := m.Phone()
	code := m.Code()
	return func() tea.Msg {
		resp, err := client.VerifyOTP(context.Background(), phone, code)
		return OTPResultMsg{Resp: resp, Err: err}
	}
}

// View renders the modal.
func (m *OTPModal) View() string {
	th := theme.Current()

	slotStyle := lipgloss.NewStyle().
		Width(3).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(th.BorderDefault))
	activeSlotStyle := slotStyle.
		BorderForeground(lipgloss.Color(th.BorderFocused))

	var slots []string
	for i, d := range m.digits {
		display := d
		if display == "" {
			display = " "
		}
		if i == m.active && m.focus == otpFocusSlots {
			slots = append(slots, activeSlotStyle.Render(display))
		} else {
			slots = append(slots, slotStyle.Render(display))
		}
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, slots...)

	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(th.FgMuted))
	parts := []string{
		lipgloss.NewStyle().Foreground(lipgloss.Color(th.FgBase)).
			Render("Enter the 6-digit OTP sent to the registered mobile number"),
		"",
		labelStyle.Render("Mobile Number"),
		m.phoneInput.View(),
		"",
		labelStyle.Render("OTP"),
		row,
	}
	if m.verifying {
		parts = append(parts, "", lipgloss.NewStyle().
			Foreground(lipgloss.Color(th.FgMuted)).Render("Verifying..."))
	}
	if m.errMsg != "" {
		parts = append(parts, "", lipgloss.NewStyle().
			Foreground(lipgloss.Color(th.Error)).Bold(true).Render("✗ "+m.errMsg))
	}
	parts = append(parts, "", widget.RenderHintBar("0-9", "type", "tab", "switch field", "enter", "verify", "esc", "close"))

	return widget.RenderModal("Verify OTP", lipgloss.JoinVertical(lipgloss.Left, parts...), 50)
}
