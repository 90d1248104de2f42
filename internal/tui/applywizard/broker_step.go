package applywizard

import (
	"fmt"
	"strconv"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/sarathi-rto/sarathi/internal/api"
	"github.com/sarathi-rto/sarathi/internal/tui/theme"
)

// BrokerStep lets the applicant pick a broker from the directory.
type BrokerStep struct {
	brokers     []api.Broker
	selectedIdx int
	loading     bool
	loadErr     string
	spinner     spinner.Model
	width       int
	height      int
	err         string
}

// NewBrokerStep creates the broker selection step.
func NewBrokerStep(brokers []api.Broker, loading bool, loadErr string) *BrokerStep {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Current().Primary))

	return &BrokerStep{
		brokers: brokers,
		loading: loading,
		loadErr: loadErr,
		spinner: sp,
	}
}

// Init initializes the step.
func (s *BrokerStep) Init() tea.Cmd {
	if s.loading {
		return s.spinner.Tick
	}
	return nil
}

// SetBrokers replaces the broker directory once loaded.
func (s *BrokerStep) SetBrokers(brokers []api.Broker, loadErr string) {
	s.brokers = brokers
	s.loading = false
	s.loadErr = loadErr
	if s.selectedIdx >= len(brokers) {
		s.selectedIdx = 0
	}
}

// Update handles messages for the step.
func (s *BrokerStep) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if s.loading {
			var cmd tea.Cmd
			s.spinner, cmd = s.spinner.Update(msg)
			return cmd
		}
	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			if s.selectedIdx > 0 {
				s.selectedIdx--
				s.err = ""
			}
		case "down", "j":
			if s.selectedIdx < len(s.brokers)-1 {
				s.selectedIdx++
				s.err = ""
			}
		case "enter":
			return s.Submit()
		}
	}
	return nil
}

// View renders the step content.
func (s *BrokerStep) View() string {
	th := theme.Current()

	if s.loading {
		return s.spinner.View() + " Loading brokers..."
	}
	if s.loadErr != "" {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color(th.Error)).
			Render("✗ " + s.loadErr)
	}
	if len(s.brokers) == 0 {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color(th.FgMuted)).
			Render("No brokers available.")
	}

	normalStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(th.FgBase)).
		Padding(0, 1)
	selectedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(th.BgBase)).
		Background(lipgloss.Color(th.Primary)).
		Bold(true).
		Padding(0, 1)
	metaStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(th.FgMuted))

	var rows []string
	for i, b := range s.brokers {
		meta := fmt.Sprintf("%s • %.1f★", b.Specialization, b.AvgOverall)
		var line string
		if i == s.selectedIdx {
			line = selectedStyle.Render("▸ " + b.Name + "  " + meta)
		} else {
			line = normalStyle.Render(b.Name + "  " + metaStyle.Render(meta))
		}
		rows = append(rows, line)
	}

	if s.err != "" {
		rows = append(rows, "", lipgloss.NewStyle().
			Foreground(lipgloss.Color(th.Error)).
			Bold(true).
			Render("✗ "+s.err))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// SelectedBrokerID returns the id of the highlighted broker, or "" when none.
func (s *BrokerStep) SelectedBrokerID() string {
	if s.loading || s.selectedIdx < 0 || s.selectedIdx >= len(s.brokers) {
		return ""
	}
	return strconv.Itoa(s.brokers[s.selectedIdx].ID)
}

// Select moves the highlight to the broker with the given id, if present.
func (s *BrokerStep) Select(brokerID string) {
	for i, b := range s.brokers {
		if strconv.Itoa(b.ID) == brokerID {
			s.selectedIdx = i
			return
		}
	}
}

// SetSize updates the step dimensions.
func (s *BrokerStep) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// Focus is a no-op; the list is always active while the step is shown.
func (s *BrokerStep) Focus() {}

// Blur is a no-op.
func (s *BrokerStep) Blur() {}

// Submit confirms the highlighted broker.
func (s *BrokerStep) Submit() tea.Cmd {
	id := s.SelectedBrokerID()
	if id == "" {
		s.err = "Please select a broker"
		return nil
	}
	s.err = ""
	return func() tea.Msg {
		return BrokerSelectedMsg{BrokerID: id}
	}
}
