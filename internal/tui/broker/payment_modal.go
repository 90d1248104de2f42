package broker

import (
	"context"
	"encoding/json"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/sarathi-rto/sarathi/internal/api"
	"github.com/sarathi-rto/sarathi/internal/tui/theme"
	"github.com/sarathi-rto/sarathi/internal/tui/widget"
)

var paymentMethods = []string{"UPI", "Card", "NetBanking"}

// PaymentModal processes a payment for a fee estimate. After a successful
// payment the modal locks into a receipt view until dismissed; dismissing
// closes the modal and triggers a dashboard reload.
type PaymentModal struct {
	methodIdx int
	estimate  *api.FeeEstimate
	appID     int
	paying    bool
	paid      *api.PaymentResponse
	errMsg    string
	client    *api.Client
}

// NewPaymentModal creates the payment modal for an estimate.
func NewPaymentModal(client *api.Client, appID int, estimate *api.FeeEstimate) *PaymentModal {
	return &PaymentModal{
		client:   client,
		appID:    appID,
		estimate: estimate,
	}
}

// Paid reports whether a payment has completed.
func (m *PaymentModal) Paid() bool {
	return m.paid != nil
}

// Method returns the selected payment method.
func (m *PaymentModal) Method() string {
	return paymentMethods[m.methodIdx]
}

// Update handles messages while the modal is open. Returns a command and
// whether the modal wants to close.
func (m *PaymentModal) Update(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case PaymentResultMsg:
		m.paying = false
		if msg.Err != nil {
			m.errMsg = "Payment failed. Please try again."
			return nil, false
		}
		if !msg.Resp.Success {
			m.errMsg = msg.Resp.Message
			if m.errMsg == "" {
				m.errMsg = "Payment was not accepted"
			}
			return nil, false
		}
		m.paid = msg.Resp
		m.errMsg = ""
		return nil, false

	case tea.KeyPressMsg:
		if m.paying {
			return nil, false
		}
		// After success only dismissal is allowed
		if m.paid != nil {
			switch msg.String() {
			case "esc", "enter":
				return func() tea.Msg { return ReloadDashboardMsg{} }, true
			}
			return nil, false
		}
		switch msg.String() {
		case "esc":
			return nil, true
		case "left", "up":
			m.methodIdx = (m.methodIdx - 1 + len(paymentMethods)) % len(paymentMethods)
			m.errMsg = ""
		case "right", "down", "tab":
			m.methodIdx = (m.methodIdx + 1) % len(paymentMethods)
			m.errMsg = ""
		case "enter":
			return m.pay(), false
		}
	}
	return nil, false
}

// pay submits the payment with the estimate's breakdown attached as a
// JSON string, matching what the portal backend expects.
func (m *PaymentModal) pay() tea.Cmd {
	breakdown, err := json.Marshal(m.estimate.Breakdown)
	if err != nil {
		m.errMsg = "Could not prepare payment"
		return nil
	}

	m.paying = true
	m.errMsg = ""

	client := m.client
	req := api.PaymentRequest{
		ApplicationID: m.appID,
		Amount:        m.estimate.Breakdown.Total,
		PaymentMethod: m.Method(),
		FeeBreakdown:  string(breakdown),
	}
	return func() tea.Msg {
		resp, err := client.ProcessPayment(context.Background(), req)
		return PaymentResultMsg{Resp: resp, Err: err}
	}
}

// View renders the modal.
func (m *PaymentModal) View() string {
	th := theme.Current()

	if m.paid != nil {
		parts := []string{
			lipgloss.NewStyle().
				Foreground(lipgloss.Color(th.Success)).
				Bold(true).
				Render("✓ Payment successful"),
			"",
			lipgloss.NewStyle().Foreground(lipgloss.Color(th.FgBase)).
				Render(fmt.Sprintf("Transaction ID: %s", m.paid.TransactionID)),
			lipgloss.NewStyle().Foreground(lipgloss.Color(th.FgBase)).
				Render(fmt.Sprintf("Amount: ₹%.2f", m.estimate.Breakdown.Total)),
			"",
			widget.RenderHintBar("enter/esc", "dismiss"),
		}
		return widget.RenderModal("Payment", lipgloss.JoinVertical(lipgloss.Left, parts...), 50)
	}

	normalStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(th.FgBase)).
		Padding(0, 1)
	selectedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(th.BgBase)).
		Background(lipgloss.Color(th.Primary)).
		Bold(true).
		Padding(0, 1)

	var methods []string
	for i, method := range paymentMethods {
		if i == m.methodIdx {
			methods = append(methods, selectedStyle.Render(method))
		} else {
			methods = append(methods, normalStyle.Render(method))
		}
	}

	parts := []string{
		lipgloss.NewStyle().Foreground(lipgloss.Color(th.FgBase)).
			Render(fmt.Sprintf("Amount due: ₹%.2f", m.estimate.Breakdown.Total)),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, methods...),
	}
	if m.paying {
		parts = append(parts, "", lipgloss.NewStyle().
			Foreground(lipgloss.Color(th.FgMuted)).Render("Processing payment..."))
	}
	if m.errMsg != "" {
		parts = append(parts, "", lipgloss.NewStyle().
			Foreground(lipgloss.Color(th.Error)).Bold(true).Render("✗ "+m.errMsg))
	}
	parts = append(parts, "", widget.RenderHintBar("←→", "method", "enter", "pay", "esc", "close"))

	return widget.RenderModal("Payment", lipgloss.JoinVertical(lipgloss.Left, parts...), 50)
}
