package broker

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/sarathi-rto/sarathi/internal/api"
	"github.com/sarathi-rto/sarathi/internal/tui/theme"
	"github.com/sarathi-rto/sarathi/internal/tui/widget"
)

// Selectable options for fee estimation.
var (
	applicationTypes = []string{"New Registration", "Renewal", "Transfer"}
	vehicleClasses   = []string{"Two Wheeler", "Four Wheeler", "Commercial", "Heavy Vehicle"}
)

// Focus rows within the fee modal
const (
	feeFocusType = iota
	feeFocusClass
)

// FeeModal estimates fees for an application. The server's breakdown is
// rendered verbatim; no amounts are computed client side.
type FeeModal struct {
	typeIdx     int
	classIdx    int
	focus       int
	estimate    *api.FeeEstimate
	calculating bool
	errMsg      string
	client      *api.Client
	appID       int
}

// NewFeeModal creates the fee estimation modal for the given application.
func NewFeeModal(client *api.Client, appID int) *FeeModal {
	return &FeeModal{
		client: client,
		appID:  appID,
	}
}

// Estimate returns the current server estimate, or nil.
func (m *FeeModal) Estimate() *api.FeeEstimate {
	return m.estimate
}

// ApplicationType returns the selected application type.
func (m *FeeModal) ApplicationType() string {
	return applicationTypes[m.typeIdx]
}

// VehicleClass returns the selected vehicle class.
func (m *FeeModal) VehicleClass() string {
	return vehicleClasses[m.classIdx]
}

// Update handles messages while the modal is open. It returns a command,
// whether the modal wants to close, and whether the user chose to proceed
// to payment.
func (m *FeeModal) Update(msg tea.Msg) (tea.Cmd, bool, bool) {
	switch msg := msg.(type) {
	case FeeResultMsg:
		m.calculating = false
		if msg.Err != nil {
			m.errMsg = "Could not calculate fees. Please try again."
			return nil, false, false
		}
		m.estimate = msg.Estimate
		return nil, false, false

	case tea.KeyPressMsg:
		if m.calculating {
			return nil, false, false
		}
		switch msg.String() {
		case "esc":
			// Closing discards any estimate
			return nil, true, false
		case "up", "down":
			if m.focus == feeFocusType {
				m.focus = feeFocusClass
			} else {
				m.focus = feeFocusType
			}
		case "left":
			m.cycle(-1)
		case "right":
			m.cycle(1)
		case "enter", "c":
			return m.calculate(), false, false
		case "p":
			if m.estimate != nil {
				return nil, true, true
			}
			m.errMsg = "Calculate fees before proceeding"
		}
	}
	return nil, false, false
}

// cycle moves the focused selector by delta, changing the selection
// invalidates any previous estimate.
func (m *FeeModal) cycle(delta int) {
	if m.focus == feeFocusType {
		m.typeIdx = (m.typeIdx + delta + len(applicationTypes)) % len(applicationTypes)
	} else {
		m.classIdx = (m.classIdx + delta + len(vehicleClasses)) % len(vehicleClasses)
	}
	m.estimate = nil
	m.errMsg = ""
}

// calculate requests a fresh estimate from the server.
func (m *FeeModal) calculate() tea.Cmd {
	m.calculating = true
	m.errMsg = ""

	client := m.client
	appID := m.appID
	appType := m.ApplicationType()
	class := m.VehicleClass()
	return func() tea.Msg {
		est, err := client.CalculateFee(context.Background(), appID, appType, class)
		return FeeResultMsg{Estimate: est, Err: err}
	}
}

// View renders the modal.
func (m *FeeModal) View() string {
	th := theme.Current()

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(th.FgMuted)).
		Width(18)
	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(th.FgBase))
	focusedValueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(th.BgBase)).
		Background(lipgloss.Color(th.Primary)).
		Bold(true).
		Padding(0, 1)

	selector := func(label, value string, focused bool) string {
		v := valueStyle.Render("◂ " + value + " ▸")
		if focused {
			v = focusedValueStyle.Render("◂ " + value + " ▸")
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), v)
	}

	parts := []string{
		selector("Application Type", m.ApplicationType(), m.focus == feeFocusType),
		selector("Vehicle Class", m.VehicleClass(), m.focus == feeFocusClass),
	}

	if m.calculating {
		parts = append(parts, "", lipgloss.NewStyle().
			Foreground(lipgloss.Color(th.FgMuted)).Render("Calculating..."))
	}

	if m.estimate != nil {
		b := m.estimate.Breakdown
		amount := func(label string, v float64) string {
			return lipgloss.JoinHorizontal(lipgloss.Top,
				labelStyle.Render(label),
				valueStyle.Render(fmt.Sprintf("₹%.2f", v)))
		}
		parts = append(parts,
			"",
			amount("Base Fee", b.BaseFee),
			amount("Service Fee", b.ServiceFee),
			amount("Broker Commission", b.BrokerCommission),
			amount("Tax (GST)", b.TaxGST),
			lipgloss.JoinHorizontal(lipgloss.Top,
				labelStyle.Render("Total"),
				lipgloss.NewStyle().
					Foreground(lipgloss.Color(th.Success)).
					Bold(true).
					Render(fmt.Sprintf("₹%.2f", b.Total))),
		)
	}

	if m.errMsg != "" {
		parts = append(parts, "", lipgloss.NewStyle().
			Foreground(lipgloss.Color(th.Error)).Bold(true).Render("✗ "+m.errMsg))
	}

	hints := []string{"←→", "change", "↑↓", "row", "enter", "calculate"}
	if m.estimate != nil {
		hints = append(hints, "p", "proceed to payment")
	}
	hints = append(hints, "esc", "close")
	parts = append(parts, "", widget.RenderHintBar(hints...))

	return widget.RenderModal("Fee Calculator", lipgloss.JoinVertical(lipgloss.Left, parts...), 56)
}
