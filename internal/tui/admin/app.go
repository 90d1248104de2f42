// Package admin implements the admin dashboard: the platform analytics
// snapshot and an application queue with approve/reject actions.
package admin

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/sarathi-rto/sarathi/internal/api"
	"github.com/sarathi-rto/sarathi/internal/config"
	"github.com/sarathi-rto/sarathi/internal/logger"
	"github.com/sarathi-rto/sarathi/internal/tui/theme"
	"github.com/sarathi-rto/sarathi/internal/tui/widget"
)

// App is the admin dashboard model.
type App struct {
	client *api.Client
	ctx    context.Context

	analytics    *api.Analytics
	applications []api.Application
	selected     int
	loading      bool
	acting       bool
	loadErr      string
	statusMsg    string

	// Reject requires a reason, collected in a small prompt. The target
	// is captured when the prompt opens so a reload that shrinks the
	// list cannot invalidate it.
	rejecting    bool
	rejectTarget api.Application
	reasonInput  textinput.Model
	reasonErr    string

	width    int
	height   int
	quitting bool
}

// Run is the entry point for the admin dashboard.
func Run(cfg *config.Config) error {
	app := NewApp(api.New(cfg.APIBaseURL))

	p := tea.NewProgram(app)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("admin dashboard failed: %w", err)
	}
	return nil
}

// NewApp creates the admin dashboard model.
func NewApp(client *api.Client) *App {
	ti := textinput.New()
	ti.Placeholder = "Reason for rejection"
	ti.CharLimit = 200

	return &App{
		client:      client,
		ctx:         context.Background(),
		reasonInput: ti,
	}
}

// Init kicks off the initial data load.
func (a *App) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, a.load())
}

// Update handles messages for the dashboard.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case AdminLoadedMsg:
		a.loading = false
		if msg.Err != nil {
			logger.Error("Admin load failed: %v", msg.Err)
			a.loadErr = "Could not load dashboard"
			return a, nil
		}
		a.loadErr = ""
		a.analytics = msg.Analytics
		a.applications = msg.Applications
		if a.selected >= len(a.applications) {
			a.selected = 0
		}
		return a, nil

	case ActionDoneMsg:
		a.acting = false
		if msg.Err != nil {
			logger.Error("%s failed: %v", msg.Action, msg.Err)
			a.statusMsg = ""
			a.loadErr = "Action failed. Please try again."
			return a, nil
		}
		a.loadErr = ""
		a.statusMsg = msg.Resp.Message
		if a.statusMsg == "" {
			a.statusMsg = "Application " + msg.Action + "d"
		}
		return a, a.load()

	case tea.KeyPressMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		a.quitting = true
		return a, tea.Quit
	}

	if a.rejecting {
		return a.handleReasonKey(msg)
	}

	switch msg.String() {
	case "q":
		a.quitting = true
		return a, tea.Quit
	case "up", "k":
		if a.selected > 0 {
			a.selected--
		}
		return a, nil
	case "down", "j":
		if a.selected < len(a.applications)-1 {
			a.selected++
		}
		return a, nil
	case "a":
		if a.acting || len(a.applications) == 0 {
			return a, nil
		}
		return a, a.approve(a.applications[a.selected])
	case "r":
		if a.acting || len(a.applications) == 0 {
			return a, nil
		}
		a.rejecting = true
		a.rejectTarget = a.applications[a.selected]
		a.reasonErr = ""
		a.reasonInput.SetValue("")
		a.reasonInput.Focus()
		return a, textinput.Blink
	case "R":
		a.statusMsg = ""
		return a, a.load()
	}

	return a, nil
}

func (a *App) handleReasonKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.rejecting = false
		a.reasonInput.Blur()
		return a, nil
	case "enter":
		reason := strings.TrimSpace(a.reasonInput.Value())
		if reason == "" {
			a.reasonErr = "A reason is required"
			return a, nil
		}
		a.rejecting = false
		a.reasonInput.Blur()
		return a, a.reject(a.rejectTarget, reason)
	}

	var cmd tea.Cmd
	a.reasonInput, cmd = a.reasonInput.Update(msg)
	return a, cmd
}

// load fetches the analytics snapshot and the full application list.
func (a *App) load() tea.Cmd {
	a.loading = true

	client := a.client
	ctx := a.ctx
	return func() tea.Msg {
		analytics, err := client.Analytics(ctx)
		if err != nil {
			return AdminLoadedMsg{Err: err}
		}
		apps, err := client.ListApplications(ctx)
		if err != nil {
			return AdminLoadedMsg{Err: err}
		}
		return AdminLoadedMsg{Analytics: analytics, Applications: apps}
	}
}

// approve approves the application on behalf of its assigned broker.
func (a *App) approve(app api.Application) tea.Cmd {
	a.acting = true
	a.statusMsg = ""

	client := a.client
	ctx := a.ctx
	return func() tea.Msg {
		resp, err := client.ApproveApplication(ctx, app.ID, app.BrokerID)
		return ActionDoneMsg{Action: "approve", Resp: resp, Err: err}
	}
}

func (a *App) reject(app api.Application, reason string) tea.Cmd {
	a.acting = true
	a.statusMsg = ""

	client := a.client
	ctx := a.ctx
	return func() tea.Msg {
		resp, err := client.RejectApplication(ctx, app.ID, app.BrokerID, reason)
		return ActionDoneMsg{Action: "reject", Resp: resp, Err: err}
	}
}

// View renders the dashboard.
func (a *App) View() tea.View {
	var view tea.View
	view.AltScreen = true

	if a.width == 0 || a.height == 0 {
		view.Content = lipgloss.NewLayer("")
		return view
	}

	var content string
	if a.rejecting {
		content = lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, a.renderReasonPrompt())
	} else {
		content = a.renderDashboard()
	}

	canvas := uv.NewScreenBuffer(a.width, a.height)
	uv.NewStyledString(content).Draw(canvas, uv.Rectangle{
		Min: uv.Position{X: 0, Y: 0},
		Max: uv.Position{X: a.width, Y: a.height},
	})

	view.Content = lipgloss.NewLayer(canvas.Render())
	return view
}

func (a *App) renderDashboard() string {
	th := theme.Current()

	header := th.S().HeaderTitle.Render("Sarathi Admin Dashboard")

	var body string
	switch {
	case a.loading:
		body = lipgloss.NewStyle().Foreground(lipgloss.Color(th.FgMuted)).Render("Loading analytics...")
	case a.loadErr != "":
		body = lipgloss.NewStyle().Foreground(lipgloss.Color(th.Error)).Render("✗ " + a.loadErr)
	default:
		body = lipgloss.JoinVertical(
			lipgloss.Left,
			a.renderAnalytics(),
			"",
			a.renderApplications(),
		)
	}

	status := ""
	if a.statusMsg != "" {
		status = th.S().Success.Render("✓ " + a.statusMsg)
	}

	hints := widget.RenderHintBar(
		"↑/↓", "select", "a", "approve", "r", "reject", "R", "refresh", "q", "quit",
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		"",
		body,
		"",
		status,
		hints,
	)
}

// renderAnalytics renders the counters row. The approval rate and pending
// count are derived from the snapshot the same way the portal shows them.
func (a *App) renderAnalytics() string {
	th := theme.Current()

	if a.analytics == nil {
		return ""
	}

	rate := 0
	if a.analytics.TotalApplications > 0 {
		rate = a.analytics.ApprovedApplications * 100 / a.analytics.TotalApplications
	}
	pending := a.analytics.TotalApplications - a.analytics.ApprovedApplications

	card := func(label string, value string) string {
		return lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(th.BorderDefault)).
			Padding(0, 2).
			Render(lipgloss.JoinVertical(
				lipgloss.Left,
				lipgloss.NewStyle().Foreground(lipgloss.Color(th.FgMuted)).Render(label),
				lipgloss.NewStyle().Foreground(lipgloss.Color(th.FgBase)).Bold(true).Render(value),
			))
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		card("Applications", fmt.Sprintf("%d", a.analytics.TotalApplications)),
		card("Approval Rate", fmt.Sprintf("%d%%", rate)),
		card("Pending", fmt.Sprintf("%d", pending)),
		card("Citizens", fmt.Sprintf("%d", a.analytics.TotalCitizens)),
		card("Brokers", fmt.Sprintf("%d", a.analytics.TotalBrokers)),
	)
}

func (a *App) renderApplications() string {
	th := theme.Current()

	if len(a.applications) == 0 {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(th.FgMuted)).
			Render("No applications.")
	}

	rowStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(th.FgBase))
	selectedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(th.Primary)).Bold(true)
	fraudStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(th.Error)).Bold(true)

	var rows []string
	for i, app := range a.applications {
		cursor := "  "
		if i == a.selected {
			cursor = "› "
		}
		row := fmt.Sprintf("%s#%-5d %-18s %-10s %s",
			cursor, app.ID, app.ApplicationType, app.Status, app.SubmissionDate)

		switch {
		case app.IsFraud:
			rows = append(rows, fraudStyle.Render(row+"  ⚠ fraud"))
		case i == a.selected:
			rows = append(rows, selectedStyle.Render(row))
		default:
			rows = append(rows, rowStyle.Render(row))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (a *App) renderReasonPrompt() string {
	th := theme.Current()

	app := a.rejectTarget

	lines := []string{
		lipgloss.NewStyle().Foreground(lipgloss.Color(th.FgBase)).
			Render(fmt.Sprintf("Reject application #%d", app.ID)),
		"",
		a.reasonInput.View(),
	}
	if a.reasonErr != "" {
		lines = append(lines, "", lipgloss.NewStyle().Foreground(lipgloss.Color(th.Error)).Render("✗ "+a.reasonErr))
	}
	lines = append(lines, "", widget.RenderHintBar("enter", "reject", "esc", "cancel"))

	return widget.RenderModal("Reject Application", lipgloss.JoinVertical(lipgloss.Left, lines...), 70)
}
