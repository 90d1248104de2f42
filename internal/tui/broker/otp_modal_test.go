package broker

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarathi-rto/sarathi/internal/api"
)

func key(s string) tea.KeyPressMsg {
	switch s {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "backspace":
		return tea.KeyPressMsg{Code: tea.KeyBackspace}
	case "left":
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	case "right":
		return tea.KeyPressMsg{Code: tea.KeyRight}
	case "tab":
		return tea.KeyPressMsg{Code: tea.KeyTab}
	}
	return tea.KeyPressMsg{Code: rune(s[0]), Text: s}
}

func TestOTPAutoAdvance(t *testing.T) {
	t.Parallel()

	m := NewOTPModal(api.New("http://localhost:0"), "9999999999")

	for i, d := range []string{"1", "2", "3", "4", "5"} {
		m.Update(key(d))
		assert.Equal(t, i+1, m.active, "slot should advance after digit %s", d)
	}

	// Final slot: digit lands but the index stays in bounds
	m.Update(key("6"))
	assert.Equal(t, otpSlots-1, m.active)
	assert.Equal(t, "123456", m.Code())
	assert.True(t, m.Filled())

	// Typing another digit overwrites the last slot, never panics
	m.Update(key("9"))
	assert.Equal(t, "123459", m.Code())
}

func TestOTPBackspace(t *testing.T) {
	t.Parallel()

	m := NewOTPModal(api.New("http://localhost:0"), "9999999999")
	m.Update(key("1"))
	m.Update(key("2"))

	// Active slot is empty: backspace clears the previous one
	m.Update(key("backspace"))
	assert.Equal(t, 1, m.active)
	assert.Equal(t, "", m.digits[1])
	assert.Equal(t, "1", m.digits[0])

	m.Update(key("backspace"))
	assert.Equal(t, 0, m.active)
	assert.Equal(t, "", m.digits[0])

	// At the first empty slot backspace is a no-op
	m.Update(key("backspace"))
	assert.Equal(t, 0, m.active)
}

func TestOTPVerifyRequiresAllDigits(t *testing.T) {
	t.Parallel()

	m := NewOTPModal(api.New("http://localhost:0"), "9999999999")
	for _, d := range []string{"1", "2", "3"} {
		m.Update(key(d))
	}

	cmd, closed := m.Update(key("enter"))
	assert.Nil(t, cmd, "verify must not fire with empty slots")
	assert.False(t, closed)
	assert.NotEmpty(t, m.errMsg)
}

func TestOTPVerifyRequiresPhone(t *testing.T) {
	t.Parallel()

	m := NewOTPModal(api.New("http://localhost:0"), "")
	m.digits = [otpSlots]string{"1", "2", "3", "4", "5", "6"}

	cmd, closed := m.Update(key("enter"))
	assert.Nil(t, cmd)
	assert.False(t, closed)
	assert.Equal(t, "Enter the mobile number", m.errMsg)

	m.phoneInput.SetValue("9876543210")
	cmd, _ = m.Update(key("enter"))
	assert.NotNil(t, cmd)
	assert.True(t, m.verifying)
}

func TestOTPTabSwitchesToPhoneField(t *testing.T) {
	t.Parallel()

	m := NewOTPModal(api.New("http://localhost:0"), "9999999999")
	require.Equal(t, otpFocusSlots, m.focus)

	m.Update(key("tab"))
	assert.Equal(t, otpFocusPhone, m.focus)

	// Digits now edit the phone number, not the slots
	m.Update(key("1"))
	assert.Equal(t, "", m.digits[0])
	assert.Equal(t, "99999999991", m.Phone())

	m.Update(key("tab"))
	assert.Equal(t, otpFocusSlots, m.focus)
}

func TestOTPIgnoresNonDigits(t *testing.T) {
	t.Parallel()

	m := NewOTPModal(api.New("http://localhost:0"), "9999999999")
	m.Update(key("a"))
	m.Update(key("x"))

	assert.Equal(t, 0, m.active)
	assert.Equal(t, "", m.digits[0])
}

func TestOTPSuccessClosesAndReloads(t *testing.T) {
	t.Parallel()

	m := NewOTPModal(api.New("http://localhost:0"), "9999999999")

	cmd, closed := m.Update(OTPResultMsg{Resp: &api.VerifyOTPResponse{Success: true}})
	assert.True(t, closed, "verified OTP closes the modal")
	require.NotNil(t, cmd)
	assert.IsType(t, ReloadDashboardMsg{}, cmd())
}

func TestOTPRejectionStaysOpen(t *testing.T) {
	t.Parallel()

	m := NewOTPModal(api.New("http://localhost:0"), "9999999999")

	cmd, closed := m.Update(OTPResultMsg{Resp: &api.VerifyOTPResponse{Success: false, Message: "Invalid OTP"}})
	assert.False(t, closed)
	assert.Nil(t, cmd)
	assert.Equal(t, "Invalid OTP", m.errMsg)
}
