// Package applywizard implements the citizen application wizard: a
// four-step flow collecting personal info, broker choice, and application
// details, then submitting a citizen record and application to the portal.
package applywizard

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/sarathi-rto/sarathi/internal/api"
	"github.com/sarathi-rto/sarathi/internal/config"
	"github.com/sarathi-rto/sarathi/internal/logger"
	"github.com/sarathi-rto/sarathi/internal/tui/theme"
	"github.com/sarathi-rto/sarathi/internal/tui/widget"
	"github.com/sarathi-rto/sarathi/internal/validate"
)

// Step enumeration for wizard flow
const (
	StepPersonal = 0 // Full name and email
	StepBroker   = 1 // Broker selection
	StepDetails  = 2 // Application details
	StepReview   = 3 // Review and submit
)

// Modal layout constants
const (
	modalWidth        = 70
	modalPadding      = 2
	modalBorderWidth  = 1
	modalContentWidth = modalWidth - (modalPadding * 2) - (modalBorderWidth * 2)
)

// Values submitted when creating the citizen record. The portal only
// collects name and email; the remaining citizen fields are filled with
// placeholders the backend accepts.
const (
	placeholderPhone   = "0000000000"
	placeholderAddress = "Placeholder address"
	applicationType    = "New Registration"
)

// FormResult holds the accumulated data from the wizard flow.
type FormResult struct {
	FullName string
	Email    string
	BrokerID string
	Details  string
}

// Model is the main BubbleTea model for the application wizard.
type Model struct {
	step      int
	cancelled bool
	result    FormResult
	width     int
	height    int
	client    *api.Client
	ctx       context.Context

	// Broker directory, loaded once at startup
	brokers       []api.Broker
	brokerIDs     []string
	brokersLoaded bool
	brokersErr    string

	// Step components
	personalStep *PersonalStep
	brokerStep   *BrokerStep
	detailsStep  *DetailsStep
	reviewStep   *ReviewStep

	// Button bar with focus tracking
	buttonBar     *widget.ButtonBar
	buttonFocused bool

	// Cached button bars per step (prevents focus reset on re-render)
	stepButtonBars [StepReview + 1]*widget.ButtonBar

	// Submission state
	submitting bool
	statusMsg  string // Success or fraud banner after submission
	statusErr  string // Error banner when submission failed
}

// Run is the entry point for the application wizard.
func Run(cfg *config.Config) error {
	m := New(api.New(cfg.APIBaseURL))

	p := tea.NewProgram(m)
	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("apply wizard failed: %w", err)
	}

	wm, ok := finalModel.(*Model)
	if !ok {
		return fmt.Errorf("unexpected model type")
	}
	if wm.cancelled {
		return fmt.Errorf("cancelled by user")
	}
	return nil
}

// New creates the wizard model against the given API client.
func New(client *api.Client) *Model {
	return &Model{
		step:   StepPersonal,
		client: client,
		ctx:    context.Background(),
	}
}

// Init initializes the wizard and starts loading the broker directory.
func (m *Model) Init() tea.Cmd {
	m.personalStep = NewPersonalStep()
	return tea.Batch(m.personalStep.Init(), m.loadBrokers())
}

// loadBrokers fetches the broker directory in the background.
func (m *Model) loadBrokers() tea.Cmd {
	client := m.client
	ctx := m.ctx
	return func() tea.Msg {
		brokers, err := client.ListBrokers(ctx)
		return BrokersLoadedMsg{Brokers: brokers, Err: err}
	}
}

// Update handles messages for the wizard.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		// Any keypress clears a lingering result banner
		if m.statusMsg != "" {
			m.statusMsg = ""
		}

		if m.buttonFocused && m.buttonBar != nil {
			switch msg.String() {
			case "tab", "right":
				if !m.buttonBar.FocusNext() {
					m.buttonFocused = false
					m.buttonBar.Blur()
					m.focusStepContentFirst()
				}
				return m, nil
			case "shift+tab", "left":
				if !m.buttonBar.FocusPrev() {
					m.buttonFocused = false
					m.buttonBar.Blur()
					m.focusStepContentLast()
				}
				return m, nil
			case "enter", " ":
				return m.activateButton(m.buttonBar.FocusedButton())
			}
		}

		switch msg.String() {
		case "ctrl+c":
			m.cancelled = true
			return m, tea.Quit
		case "esc":
			if m.step == StepPersonal {
				m.cancelled = true
				return m, tea.Quit
			}
			return m.goBack()
		case "tab":
			if !m.buttonFocused {
				m.buttonFocused = true
				m.blurStepContent()
				m.ensureButtonBar()
				m.buttonBar.FocusFirst()
				return m, nil
			}
		case "shift+tab":
			if !m.buttonFocused {
				m.buttonFocused = true
				m.blurStepContent()
				m.ensureButtonBar()
				m.buttonBar.FocusLast()
				return m, nil
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateCurrentStepSize()
		return m, nil

	case BrokersLoadedMsg:
		m.brokersLoaded = true
		if msg.Err != nil {
			logger.Error("Failed to load brokers: %v", msg.Err)
			m.brokersErr = "Could not load broker directory"
		} else {
			m.brokers = msg.Brokers
			m.brokerIDs = make([]string, 0, len(msg.Brokers))
			for _, b := range msg.Brokers {
				m.brokerIDs = append(m.brokerIDs, strconv.Itoa(b.ID))
			}
		}
		if m.brokerStep != nil {
			m.brokerStep.SetBrokers(m.brokers, m.brokersErr)
		}
		return m, nil

	case PersonalSubmittedMsg:
		m.result.FullName = msg.FullName
		m.result.Email = msg.Email
		return m.goToStep(StepBroker)

	case BrokerSelectedMsg:
		m.result.BrokerID = msg.BrokerID
		return m.goToStep(StepDetails)

	case DetailsSubmittedMsg:
		m.result.Details = msg.Details
		return m.goToStep(StepReview)

	case SubmitApplicationMsg:
		return m.submit()

	case SubmissionDoneMsg:
		m.submitting = false
		m.stepButtonBars[StepReview] = nil
		m.buttonBar = nil
		if msg.Err != nil {
			logger.Error("Application submission failed: %v", msg.Err)
			m.statusErr = "Submission failed. Please try again."
			return m, nil
		}
		// Reset the whole wizard; keep the result banner
		if msg.Application != nil && msg.Application.IsFraud {
			m.statusMsg = fmt.Sprintf(
				"Application #%d submitted but flagged for manual review.",
				msg.Application.ID)
		} else if msg.Application != nil {
			m.statusMsg = fmt.Sprintf(
				"Application #%d submitted successfully!", msg.Application.ID)
		}
		m.result = FormResult{}
		m.statusErr = ""
		m.stepButtonBars = [StepReview + 1]*widget.ButtonBar{}
		return m.goToStep(StepPersonal)

	case widget.TabExitForwardMsg:
		m.buttonFocused = true
		m.blurStepContent()
		m.ensureButtonBar()
		m.buttonBar.FocusFirst()
		return m, nil

	case widget.TabExitBackwardMsg:
		m.buttonFocused = true
		m.blurStepContent()
		m.ensureButtonBar()
		m.buttonBar.FocusLast()
		return m, nil
	}

	return m.updateCurrentStep(msg)
}

// View renders the wizard.
func (m *Model) View() tea.View {
	var view tea.View
	view.AltScreen = true

	if m.width == 0 || m.height == 0 {
		view.Content = lipgloss.NewLayer("")
		return view
	}

	content := m.renderCurrentStep()

	centered := lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)

	canvas := uv.NewScreenBuffer(m.width, m.height)
	uv.NewStyledString(centered).Draw(canvas, uv.Rectangle{
		Min: uv.Position{X: 0, Y: 0},
		Max: uv.Position{X: m.width, Y: m.height},
	})

	view.Content = lipgloss.NewLayer(canvas.Render())
	return view
}

// goToStep switches to the given step and initializes its component.
func (m *Model) goToStep(step int) (tea.Model, tea.Cmd) {
	m.step = step
	m.buttonFocused = false
	m.buttonBar = nil
	cmd := m.initCurrentStep()
	return m, cmd
}

// initCurrentStep initializes the current step component, restoring any
// previously entered values.
func (m *Model) initCurrentStep() tea.Cmd {
	var cmd tea.Cmd
	switch m.step {
	case StepPersonal:
		m.personalStep = NewPersonalStep()
		m.personalStep.SetValues(m.result.FullName, m.result.Email)
		cmd = m.personalStep.Init()
	case StepBroker:
		m.brokerStep = NewBrokerStep(m.brokers, !m.brokersLoaded, m.brokersErr)
		if m.result.BrokerID != "" {
			m.brokerStep.Select(m.result.BrokerID)
		}
		cmd = m.brokerStep.Init()
	case StepDetails:
		m.detailsStep = NewDetailsStep()
		m.detailsStep.SetValue(m.result.Details)
		cmd = m.detailsStep.Init()
	case StepReview:
		m.reviewStep = NewReviewStep(
			m.result.FullName,
			m.result.Email,
			m.brokerName(m.result.BrokerID),
			m.result.Details,
		)
	}
	m.updateCurrentStepSize()
	return cmd
}

// brokerName resolves a broker id to its display name.
func (m *Model) brokerName(id string) string {
	for _, b := range m.brokers {
		if strconv.Itoa(b.ID) == id {
			return b.Name
		}
	}
	return id
}

// updateCurrentStep forwards a message to the current step.
func (m *Model) updateCurrentStep(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.step {
	case StepPersonal:
		if m.personalStep != nil {
			cmd = m.personalStep.Update(msg)
		}
	case StepBroker:
		if m.brokerStep != nil {
			cmd = m.brokerStep.Update(msg)
		}
	case StepDetails:
		if m.detailsStep != nil {
			cmd = m.detailsStep.Update(msg)
		}
	}
	return m, cmd
}

// getModalContentSize returns the internal content dimensions for the modal.
func (m *Model) getModalContentSize() (width, height int) {
	width = modalContentWidth

	height = m.height - 4
	if height < 20 {
		height = 20
	}
	if height > 40 {
		height = 40
	}
	height = height - 10
	if height < 10 {
		height = 10
	}
	return width, height
}

// updateCurrentStepSize updates the size of the current step.
func (m *Model) updateCurrentStepSize() {
	contentWidth, contentHeight := m.getModalContentSize()

	switch m.step {
	case StepPersonal:
		if m.personalStep != nil {
			m.personalStep.SetSize(contentWidth, contentHeight)
		}
	case StepBroker:
		if m.brokerStep != nil {
			m.brokerStep.SetSize(contentWidth, contentHeight)
		}
	case StepDetails:
		if m.detailsStep != nil {
			m.detailsStep.SetSize(contentWidth, contentHeight)
		}
	case StepReview:
		if m.reviewStep != nil {
			m.reviewStep.SetSize(contentWidth, contentHeight)
		}
	}
}

// renderCurrentStep renders the content for the current step.
func (m *Model) renderCurrentStep() string {
	currentTheme := theme.Current()

	var stepTitle string
	switch m.step {
	case StepPersonal:
		stepTitle = "Apply - Step 1: Personal Info"
	case StepBroker:
		stepTitle = "Apply - Step 2: Choose Broker"
	case StepDetails:
		stepTitle = "Apply - Step 3: Details"
	case StepReview:
		stepTitle = "Apply - Review & Submit"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(currentTheme.Primary)).
		MarginBottom(1)
	title := titleStyle.Render(stepTitle)

	var stepContent string
	switch m.step {
	case StepPersonal:
		if m.personalStep != nil {
			stepContent = m.personalStep.View()
		}
	case StepBroker:
		if m.brokerStep != nil {
			stepContent = m.brokerStep.View()
		}
	case StepDetails:
		if m.detailsStep != nil {
			stepContent = m.detailsStep.View()
		}
	case StepReview:
		if m.reviewStep != nil {
			stepContent = m.reviewStep.View()
		}
	}

	m.ensureButtonBar()
	buttonBarContent := m.buttonBar.Render()

	hint := lipgloss.NewStyle().
		Foreground(lipgloss.Color(currentTheme.FgMuted)).
		Render("tab to navigate • esc to go back")

	parts := []string{title}

	if m.statusMsg != "" {
		parts = append(parts, lipgloss.NewStyle().
			Foreground(lipgloss.Color(currentTheme.Success)).
			Bold(true).
			Render("✓ "+m.statusMsg), "")
	}
	if m.statusErr != "" {
		parts = append(parts, lipgloss.NewStyle().
			Foreground(lipgloss.Color(currentTheme.Error)).
			Bold(true).
			Render("✗ "+m.statusErr), "")
	}
	if m.submitting {
		parts = append(parts, lipgloss.NewStyle().
			Foreground(lipgloss.Color(currentTheme.FgMuted)).
			Render("Submitting application..."), "")
	}

	parts = append(parts, stepContent, "", buttonBarContent, "", hint)

	content := lipgloss.JoinVertical(lipgloss.Left, parts...)

	modalStyle := lipgloss.NewStyle().
		Width(modalWidth).
		Padding(2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(currentTheme.BorderDefault))

	return modalStyle.Render(content)
}

// ensureButtonBar creates the button bar if needed, using cached instance per step.
func (m *Model) ensureButtonBar() {
	if cached := m.stepButtonBars[m.step]; cached != nil {
		m.buttonBar = cached
		return
	}

	var buttons []widget.Button
	switch m.step {
	case StepPersonal:
		buttons = widget.CreateCancelNextButtons(true, "Next →")
	case StepReview:
		buttons = widget.CreateBackNextButtons(true, !m.submitting, "Submit")
	default:
		buttons = widget.CreateBackNextButtons(true, true, "Next →")
	}

	bar := widget.NewButtonBar(buttons)
	m.stepButtonBars[m.step] = bar
	m.buttonBar = bar
}

// activateButton handles button activation.
func (m *Model) activateButton(btnID widget.ButtonID) (tea.Model, tea.Cmd) {
	switch btnID {
	case widget.ButtonCancel:
		m.cancelled = true
		return m, tea.Quit
	case widget.ButtonBack:
		return m.goBack()
	case widget.ButtonNext:
		return m.goNext()
	}
	return m, nil
}

// goBack moves to the previous step.
func (m *Model) goBack() (tea.Model, tea.Cmd) {
	if m.step > StepPersonal {
		m.captureStepValues()
		return m.goToStep(m.step - 1)
	}
	return m, nil
}

// goNext advances via the current step's own validation.
func (m *Model) goNext() (tea.Model, tea.Cmd) {
	switch m.step {
	case StepPersonal:
		if m.personalStep != nil {
			return m, m.personalStep.Submit()
		}
	case StepBroker:
		if m.brokerStep != nil {
			return m, m.brokerStep.Submit()
		}
	case StepDetails:
		if m.detailsStep != nil {
			return m, m.detailsStep.Submit()
		}
	case StepReview:
		if !m.submitting {
			return m, func() tea.Msg {
				return SubmitApplicationMsg{}
			}
		}
	}
	return m, nil
}

// captureStepValues saves current step inputs so going back doesn't lose them.
func (m *Model) captureStepValues() {
	switch m.step {
	case StepPersonal:
		if m.personalStep != nil {
			m.result.FullName, m.result.Email = m.personalStep.Values()
		}
	case StepBroker:
		if m.brokerStep != nil {
			if id := m.brokerStep.SelectedBrokerID(); id != "" {
				m.result.BrokerID = id
			}
		}
	case StepDetails:
		if m.detailsStep != nil {
			m.result.Details = m.detailsStep.Value()
		}
	}
}

// submit revalidates the whole form and, when clean, creates the citizen
// and application records in order. On a validation failure the wizard
// jumps back to the earliest failing step.
func (m *Model) submit() (tea.Model, tea.Cmd) {
	errs := validate.Check(validate.FormValues{
		FullName: m.result.FullName,
		Email:    m.result.Email,
		BrokerID: m.result.BrokerID,
		Details:  m.result.Details,
	}, m.brokerIDs)

	if len(errs) > 0 {
		switch {
		case errs.Has(validate.FieldFullName, validate.FieldEmail):
			return m.goToStep(StepPersonal)
		case errs.Has(validate.FieldBrokerID):
			return m.goToStep(StepBroker)
		default:
			return m.goToStep(StepDetails)
		}
	}

	m.submitting = true
	m.statusErr = ""
	// Rebuild the review bar so Submit renders disabled while in flight
	m.stepButtonBars[StepReview] = nil
	m.buttonBar = nil

	client := m.client
	ctx := m.ctx
	result := m.result
	return m, func() tea.Msg {
		citizen, err := client.CreateCitizen(ctx, api.CitizenCreate{
			Name:    result.FullName,
			Email:   result.Email,
			Phone:   placeholderPhone,
			Aadhaar: syntheticAadhaar(),
			Address: placeholderAddress,
		})
		if err != nil {
			return SubmissionDoneMsg{Err: err}
		}

		brokerID, _ := strconv.Atoi(result.BrokerID)
		app, err := client.CreateApplication(ctx, api.ApplicationCreate{
			CitizenID:       citizen.ID,
			BrokerID:        brokerID,
			ApplicationType: applicationType,
			Documents:       result.Details,
		})
		if err != nil {
			return SubmissionDoneMsg{Err: err}
		}
		return SubmissionDoneMsg{Application: app}
	}
}

// syntheticAadhaar generates a random 12-digit identifier for the
// placeholder citizen record.
func syntheticAadhaar() string {
	digits := make([]byte, 12)
	for i := range digits {
		digits[i] = byte('0' + rand.Intn(10))
	}
	return string(digits)
}

// focusStepContentFirst focuses the first element in step content.
func (m *Model) focusStepContentFirst() {
	switch m.step {
	case StepPersonal:
		if m.personalStep != nil {
			m.personalStep.Focus()
		}
	case StepDetails:
		if m.detailsStep != nil {
			m.detailsStep.Focus()
		}
	}
}

// focusStepContentLast focuses the last element in step content.
func (m *Model) focusStepContentLast() {
	switch m.step {
	case StepPersonal:
		if m.personalStep != nil {
			m.personalStep.FocusLast()
		}
	case StepDetails:
		if m.detailsStep != nil {
			m.detailsStep.Focus()
		}
	}
}

// blurStepContent removes focus from step inputs.
func (m *Model) blurStepContent() {
	switch m.step {
	case StepPersonal:
		if m.personalStep != nil {
			m.personalStep.Blur()
		}
	case StepDetails:
		if m.detailsStep != nil {
			m.detailsStep.Blur()
		}
	}
}
