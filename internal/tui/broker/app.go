// Package broker implements the broker console: license login, a tabbed
// dashboard of applications, complaints and support info, and the job
// workflow modals (start job, OTP, fees, payment, complaints, document
// checks).
package broker

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/sarathi-rto/sarathi/internal/api"
	"github.com/sarathi-rto/sarathi/internal/config"
	"github.com/sarathi-rto/sarathi/internal/logger"
	natsutil "github.com/sarathi-rto/sarathi/internal/nats"
	"github.com/sarathi-rto/sarathi/internal/receipt"
	"github.com/sarathi-rto/sarathi/internal/session"
	"github.com/sarathi-rto/sarathi/internal/state"
	"github.com/sarathi-rto/sarathi/internal/tui/theme"
	"github.com/sarathi-rto/sarathi/internal/tui/widget"
)

// Dashboard tabs
const (
	TabApplications = "applications"
	TabComplaints   = "complaints"
	TabSupport      = "support"
)

var tabOrder = []string{TabApplications, TabComplaints, TabSupport}

// Console phases
const (
	phaseLogin = iota
	phaseDashboard
)

// App is the main Bubbletea model for the broker console.
type App struct {
	phase    int
	client   *api.Client
	sessions *session.Store
	dataDir  string
	ctx      context.Context

	login  *LoginView
	broker *api.Broker

	// Dashboard snapshot. Only re-fetched on OTP success, complaint
	// submission, and payment dismissal.
	applications []api.Application
	complaints   []api.Complaint
	support      *api.SupportInfo
	loadErr      string
	loading      bool

	activeTab string

	// Workflow modals, at most one open at a time
	startJobModal  *StartJobModal
	otpModal       *OTPModal
	feeModal       *FeeModal
	paymentModal   *PaymentModal
	complaintModal *ComplaintModal
	documentsModal *DocumentsModal

	// Id of the application created by the last started job. Fee
	// estimation uses it, falling back to 1 when no job was started
	// this session.
	lastJobAppID int

	width    int
	height   int
	quitting bool
}

// Run is the entry point for the broker console. It starts the embedded
// store for the login session, restores any persisted session, and runs
// the TUI.
func Run(cfg *config.Config) error {
	ctx := context.Background()

	ns, err := natsutil.StartEmbeddedNATS(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("starting session store: %w", err)
	}
	nc, err := natsutil.ConnectInProcess(ns)
	if err != nil {
		natsutil.Shutdown(nil, ns)
		return fmt.Errorf("connecting session store: %w", err)
	}
	defer func() {
		if err := natsutil.Shutdown(nc, ns); err != nil {
			logger.Warn("Session store shutdown: %v", err)
		}
	}()

	js, err := natsutil.CreateJetStream(nc)
	if err != nil {
		return fmt.Errorf("session store jetstream: %w", err)
	}
	kv, err := natsutil.SetupSessionKV(ctx, js)
	if err != nil {
		return fmt.Errorf("session store bucket: %w", err)
	}

	app := NewApp(api.New(cfg.APIBaseURL), session.NewStore(kv), cfg.DataDir)

	p := tea.NewProgram(app)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("broker console failed: %w", err)
	}
	return nil
}

// NewApp creates the broker console model. sessions may be nil, in which
// case logins are not persisted.
func NewApp(client *api.Client, sessions *session.Store, dataDir string) *App {
	uiState := state.Load(dataDir)

	return &App{
		phase:     phaseLogin,
		client:    client,
		sessions:  sessions,
		dataDir:   dataDir,
		ctx:       context.Background(),
		activeTab: uiState.Dashboard.ActiveTab,
	}
}

// Init restores a persisted session, falling back to the login view.
func (a *App) Init() tea.Cmd {
	a.login = NewLoginView(a.client)

	cmds := []tea.Cmd{a.login.Init()}
	if a.sessions != nil {
		sessions := a.sessions
		ctx := a.ctx
		cmds = append(cmds, func() tea.Msg {
			broker, err := sessions.Load(ctx)
			return SessionLoadedMsg{Broker: broker, Err: err}
		})
	}
	return tea.Batch(cmds...)
}

// Update handles messages for the console.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case SessionLoadedMsg:
		if msg.Err != nil {
			logger.Warn("Could not restore session: %v", msg.Err)
			return a, nil
		}
		if msg.Broker != nil && a.phase == phaseLogin {
			a.broker = msg.Broker
			a.phase = phaseDashboard
			return a, a.loadDashboard()
		}
		return a, nil

	case LoginResultMsg:
		cmd := a.login.Update(msg)
		if msg.Err == nil && msg.Resp.Success && msg.Resp.Broker != nil {
			a.broker = msg.Resp.Broker
			a.phase = phaseDashboard

			cmds := []tea.Cmd{a.loadDashboard()}
			if a.sessions != nil {
				sessions := a.sessions
				ctx := a.ctx
				broker := msg.Resp.Broker
				cmds = append(cmds, func() tea.Msg {
					if err := sessions.Set(ctx, broker); err != nil {
						logger.Warn("Could not persist session: %v", err)
					}
					return nil
				})
			}
			return a, tea.Batch(cmds...)
		}
		return a, cmd

	case DashboardLoadedMsg:
		a.loading = false
		if msg.Err != nil {
			logger.Error("Dashboard load failed: %v", msg.Err)
			a.loadErr = "Could not load dashboard"
			return a, nil
		}
		a.loadErr = ""
		if msg.Broker != nil {
			a.broker = msg.Broker
		}
		a.applications = msg.Applications
		a.complaints = msg.Complaints
		a.support = msg.Support
		return a, nil

	case ReloadDashboardMsg:
		return a, a.loadDashboard()

	case LogoutMsg:
		a.broker = nil
		a.phase = phaseLogin
		a.login = NewLoginView(a.client)
		a.applications = nil
		a.complaints = nil
		a.support = nil
		a.lastJobAppID = 0
		a.closeAllModals()
		if a.sessions != nil {
			sessions := a.sessions
			ctx := a.ctx
			return a, tea.Batch(a.login.Init(), func() tea.Msg {
				if err := sessions.Clear(ctx); err != nil {
					logger.Warn("Could not clear session: %v", err)
				}
				return nil
			})
		}
		return a, a.login.Init()

	case StartJobResultMsg:
		if a.startJobModal == nil {
			return a, nil
		}
		cmd, closed := a.startJobModal.Update(msg)
		if closed {
			// Success: remember the application and move on to OTP
			a.lastJobAppID = msg.Resp.ApplicationID
			a.startJobModal = nil
			a.otpModal = NewOTPModal(a.client, a.brokerPhone())
		}
		return a, cmd

	case OTPResultMsg:
		if a.otpModal == nil {
			return a, nil
		}
		cmd, closed := a.otpModal.Update(msg)
		if closed {
			a.otpModal = nil
		}
		return a, cmd

	case FeeResultMsg:
		if a.feeModal == nil {
			return a, nil
		}
		cmd, closed, _ := a.feeModal.Update(msg)
		if closed {
			a.feeModal = nil
		}
		return a, cmd

	case PaymentResultMsg:
		if a.paymentModal == nil {
			return a, nil
		}
		appID := a.paymentModal.appID
		cmd, closed := a.paymentModal.Update(msg)
		if closed {
			a.paymentModal = nil
		}
		if msg.Err == nil && msg.Resp.Success {
			resp := msg.Resp
			dataDir := a.dataDir
			return a, tea.Batch(cmd, func() tea.Msg {
				path, err := receipt.Save(dataDir, appID, resp)
				if err != nil {
					logger.Warn("Could not write receipt: %v", err)
					return nil
				}
				logger.Info("Receipt written to %s", path)
				return nil
			})
		}
		return a, cmd

	case ComplaintResultMsg:
		if a.complaintModal == nil {
			return a, nil
		}
		cmd, closed := a.complaintModal.Update(msg)
		if closed {
			a.complaintModal = nil
		}
		return a, cmd

	case ForgeryResultMsg:
		if a.documentsModal == nil {
			return a, nil
		}
		cmd, closed := a.documentsModal.Update(msg)
		if closed {
			a.documentsModal = nil
		}
		return a, cmd

	case tea.KeyPressMsg:
		return a.handleKey(msg)
	}

	// Forward everything else to the login view while it is active
	if a.phase == phaseLogin && a.login != nil {
		return a, a.login.Update(msg)
	}
	return a, nil
}

// handleKey dispatches a keypress, giving any open modal priority.
func (a *App) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		a.quitting = true
		return a, tea.Quit
	}

	if a.phase == phaseLogin {
		return a, a.login.Update(msg)
	}

	// Modal priority: exactly one can be open
	switch {
	case a.startJobModal != nil:
		cmd, closed := a.startJobModal.Update(msg)
		if closed {
			a.startJobModal = nil
		}
		return a, cmd
	case a.otpModal != nil:
		cmd, closed := a.otpModal.Update(msg)
		if closed {
			a.otpModal = nil
		}
		return a, cmd
	case a.feeModal != nil:
		cmd, closed, proceed := a.feeModal.Update(msg)
		if proceed {
			// Carry the estimate into the payment modal
			a.paymentModal = NewPaymentModal(a.client, a.feeModal.appID, a.feeModal.Estimate())
			a.feeModal = nil
			return a, cmd
		}
		if closed {
			// Closing without proceeding discards the estimate
			a.feeModal = nil
		}
		return a, cmd
	case a.paymentModal != nil:
		cmd, closed := a.paymentModal.Update(msg)
		if closed {
			// Dismissal ends the job chain
			a.paymentModal = nil
			a.lastJobAppID = 0
		}
		return a, cmd
	case a.complaintModal != nil:
		cmd, closed := a.complaintModal.Update(msg)
		if closed {
			a.complaintModal = nil
		}
		return a, cmd
	case a.documentsModal != nil:
		cmd, closed := a.documentsModal.Update(msg)
		if closed {
			a.documentsModal = nil
		}
		return a, cmd
	}

	// Dashboard keys
	switch msg.String() {
	case "q":
		a.quitting = true
		return a, tea.Quit
	case "tab":
		a.nextTab(1)
		return a, nil
	case "shift+tab":
		a.nextTab(-1)
		return a, nil
	case "1":
		a.setTab(TabApplications)
		return a, nil
	case "2":
		a.setTab(TabComplaints)
		return a, nil
	case "3":
		a.setTab(TabSupport)
		return a, nil
	case "s":
		a.startJobModal = NewStartJobModal(a.client, a.brokerID())
		return a, a.startJobModal.Init()
	case "f":
		a.feeModal = NewFeeModal(a.client, a.feeAppID())
		return a, nil
	case "c":
		a.complaintModal = NewComplaintModal(a.client, a.brokerID())
		cmd := a.complaintModal.Init()
		a.complaintModal.focusZone(complaintFocusType)
		return a, cmd
	case "d":
		a.documentsModal = NewDocumentsModal(a.client)
		return a, a.documentsModal.Init()
	case "ctrl+l":
		return a, func() tea.Msg { return LogoutMsg{} }
	}

	return a, nil
}

// feeAppID returns the application id fee estimation should target: the
// last started job's application, or 1 when no job ran this session.
func (a *App) feeAppID() int {
	if a.lastJobAppID > 0 {
		return a.lastJobAppID
	}
	return 1
}

func (a *App) brokerID() int {
	if a.broker == nil {
		return 0
	}
	return a.broker.ID
}

func (a *App) brokerPhone() string {
	if a.broker == nil {
		return ""
	}
	return a.broker.Phone
}

func (a *App) closeAllModals() {
	a.startJobModal = nil
	a.otpModal = nil
	a.feeModal = nil
	a.paymentModal = nil
	a.complaintModal = nil
	a.documentsModal = nil
}

func (a *App) setTab(tab string) {
	a.activeTab = tab
	uiState := state.Load(a.dataDir)
	uiState.Dashboard.ActiveTab = tab
	if err := state.Save(a.dataDir, uiState); err != nil {
		logger.Warn("Could not save UI state: %v", err)
	}
}

func (a *App) nextTab(delta int) {
	for i, tab := range tabOrder {
		if tab == a.activeTab {
			a.setTab(tabOrder[(i+delta+len(tabOrder))%len(tabOrder)])
			return
		}
	}
	a.setTab(tabOrder[0])
}

// loadDashboard fetches a fresh snapshot of everything the dashboard
// shows: the broker record, their applications, complaints, and the
// support info card.
func (a *App) loadDashboard() tea.Cmd {
	a.loading = true

	client := a.client
	ctx := a.ctx
	brokerID := a.brokerID()
	return func() tea.Msg {
		broker, err := client.GetBroker(ctx, brokerID)
		if err != nil {
			return DashboardLoadedMsg{Err: err}
		}

		all, err := client.ListApplications(ctx)
		if err != nil {
			return DashboardLoadedMsg{Err: err}
		}
		var mine []api.Application
		for _, app := range all {
			if app.BrokerID == brokerID {
				mine = append(mine, app)
			}
		}

		complaints, err := client.ListComplaints(ctx, brokerID, "")
		if err != nil {
			return DashboardLoadedMsg{Err: err}
		}

		support, err := client.SupportInfo(ctx)
		if err != nil {
			return DashboardLoadedMsg{Err: err}
		}

		return DashboardLoadedMsg{
			Broker:       broker,
			Applications: mine,
			Complaints:   complaints,
			Support:      support,
		}
	}
}

// View renders the console.
func (a *App) View() tea.View {
	var view tea.View
	view.AltScreen = true

	if a.width == 0 || a.height == 0 {
		view.Content = lipgloss.NewLayer("")
		return view
	}

	var content string
	if a.phase == phaseLogin {
		content = lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, a.login.View())
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

// renderDashboard renders the tabbed dashboard, overlaying any open modal.
func (a *App) renderDashboard() string {
	th := theme.Current()

	// Open modal replaces the dashboard body
	var modal string
	switch {
	case a.startJobModal != nil:
		modal = a.startJobModal.View()
	case a.otpModal != nil:
		modal = a.otpModal.View()
	case a.feeModal != nil:
		modal = a.feeModal.View()
	case a.paymentModal != nil:
		modal = a.paymentModal.View()
	case a.complaintModal != nil:
		modal = a.complaintModal.View()
	case a.documentsModal != nil:
		modal = a.documentsModal.View()
	}
	if modal != "" {
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, modal)
	}

	name := ""
	if a.broker != nil {
		name = a.broker.Name
	}
	header := th.S().HeaderTitle.Render("Sarathi Broker Console") +
		lipgloss.NewStyle().Foreground(lipgloss.Color(th.FgMuted)).Render("  "+name)

	tabs := a.renderTabs()

	var body string
	switch a.activeTab {
	case TabComplaints:
		body = a.renderComplaints()
	case TabSupport:
		body = a.renderSupport()
	default:
		body = a.renderApplications()
	}

	if a.loading {
		body = lipgloss.NewStyle().Foreground(lipgloss.Color(th.FgMuted)).Render("Loading...")
	}
	if a.loadErr != "" {
		body = lipgloss.NewStyle().Foreground(lipgloss.Color(th.Error)).Render("✗ " + a.loadErr)
	}

	hints := widget.RenderHintBar(
		"s", "start job", "f", "fees", "c", "complaint", "d", "documents",
		"tab", "switch", "ctrl+l", "logout", "q", "quit",
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		"",
		tabs,
		"",
		body,
		"",
		hints,
	)
}

func (a *App) renderTabs() string {
	th := theme.Current()

	activeStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(th.BgBase)).
		Background(lipgloss.Color(th.Primary)).
		Bold(true).
		Padding(0, 2)
	inactiveStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(th.FgMuted)).
		Padding(0, 2)

	labels := map[string]string{
		TabApplications: "Applications",
		TabComplaints:   "Complaints",
		TabSupport:      "Support",
	}

	var tabs []string
	for _, tab := range tabOrder {
		if tab == a.activeTab {
			tabs = append(tabs, activeStyle.Render(labels[tab]))
		} else {
			tabs = append(tabs, inactiveStyle.Render(labels[tab]))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (a *App) renderApplications() string {
	th := theme.Current()

	if len(a.applications) == 0 {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(th.FgMuted)).
			Render("No applications yet.")
	}

	rowStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(th.FgBase))
	fraudStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(th.Error)).Bold(true)

	var rows []string
	for _, app := range a.applications {
		row := fmt.Sprintf("#%-5d %-18s %-10s %s",
			app.ID, app.ApplicationType, app.Status, app.SubmissionDate)
		if app.IsFraud {
			rows = append(rows, fraudStyle.Render(row+"  ⚠ fraud"))
		} else {
			rows = append(rows, rowStyle.Render(row))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (a *App) renderComplaints() string {
	th := theme.Current()

	if len(a.complaints) == 0 {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(th.FgMuted)).
			Render("No complaints filed.")
	}

	rowStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(th.FgBase))

	var rows []string
	for _, c := range a.complaints {
		rows = append(rows, rowStyle.Render(fmt.Sprintf("#%-5d app #%-5d %-15s %-10s %s",
			c.ID, c.ApplicationID, c.ComplaintType, c.Status, c.Description)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (a *App) renderSupport() string {
	th := theme.Current()

	if a.support == nil {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(th.FgMuted)).
			Render("Support info unavailable.")
	}

	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(th.FgMuted)).Width(12)
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(th.FgBase))

	row := func(label, value string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top,
			labelStyle.Render(label), valueStyle.Render(value))
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		row("Toll Free", a.support.TollFree),
		row("Emergency", a.support.EmergencyContact),
		row("Email", a.support.Email),
		row("Hours", a.support.WorkingHours),
		row("Helpdesk", a.support.Helpdesk),
	)
}
