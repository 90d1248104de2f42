// Package chat implements the AI assistant chat widget: a scrolling
// message log with markdown-rendered assistant replies and a textarea
// composer.
package chat

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/google/uuid"

	"github.com/sarathi-rto/sarathi/internal/api"
	"github.com/sarathi-rto/sarathi/internal/config"
	"github.com/sarathi-rto/sarathi/internal/logger"
	"github.com/sarathi-rto/sarathi/internal/tui/theme"
	"github.com/sarathi-rto/sarathi/internal/tui/widget"
)

// Message roles
const (
	roleUser      = "user"
	roleAssistant = "assistant"
)

type chatMessage struct {
	ID      string
	Role    string
	Content string
	Failed  bool
}

// App is the chat widget model.
type App struct {
	client *api.Client
	ctx    context.Context

	messages   []chatMessage
	viewport   viewport.Model
	input      textarea.Model
	spinner    spinner.Model
	processing bool
	// Id of the user message awaiting a reply. Replies for anything else
	// are stale and dropped.
	pendingID string

	width    int
	height   int
	quitting bool
}

// Run is the entry point for the chat widget.
func Run(cfg *config.Config) error {
	app := NewApp(api.New(cfg.APIBaseURL))

	p := tea.NewProgram(app)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("chat failed: %w", err)
	}
	return nil
}

// NewApp creates the chat widget model.
func NewApp(client *api.Client) *App {
	ta := textarea.New()
	ta.Placeholder = "Ask about registrations, fees, documents..."
	ta.CharLimit = 2000
	ta.SetHeight(3)
	ta.SetWidth(60)
	ta.Focus()

	vp := viewport.New()
	vp.MouseWheelEnabled = true

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	return &App{
		client:   client,
		ctx:      context.Background(),
		viewport: vp,
		input:    ta,
		spinner:  sp,
	}
}

// Init starts the composer cursor blink.
func (a *App) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages for the chat widget.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.viewport.SetWidth(msg.Width - 2)
		a.viewport.SetHeight(max(msg.Height-8, 5))
		a.input.SetWidth(max(msg.Width-4, 20))
		a.refreshLog()
		return a, nil

	case spinner.TickMsg:
		if !a.processing {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case ChatReplyMsg:
		if msg.ID != a.pendingID {
			logger.Debug("Dropping stale chat reply for %s", msg.ID)
			return a, nil
		}
		a.processing = false
		a.pendingID = ""
		if msg.Err != nil {
			logger.Error("Chat request failed: %v", msg.Err)
			a.messages = append(a.messages, chatMessage{
				ID:      uuid.NewString(),
				Role:    roleAssistant,
				Content: "The assistant is unavailable. Please try again.",
				Failed:  true,
			})
		} else {
			a.messages = append(a.messages, chatMessage{
				ID:      uuid.NewString(),
				Role:    roleAssistant,
				Content: msg.Reply,
			})
		}
		a.refreshLog()
		return a, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			a.quitting = true
			return a, tea.Quit
		case "enter":
			return a, a.send()
		case "up", "down", "pgup", "pgdown":
			var cmd tea.Cmd
			a.viewport, cmd = a.viewport.Update(msg)
			return a, cmd
		}
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// send dispatches the composed message. Sending is disabled while a
// reply is in flight.
func (a *App) send() tea.Cmd {
	if a.processing {
		return nil
	}
	text := strings.TrimSpace(a.input.Value())
	if text == "" {
		return nil
	}

	id := uuid.NewString()
	a.messages = append(a.messages, chatMessage{ID: id, Role: roleUser, Content: text})
	a.input.SetValue("")
	a.processing = true
	a.pendingID = id
	a.refreshLog()

	client := a.client
	ctx := a.ctx
	return tea.Batch(a.spinner.Tick, func() tea.Msg {
		reply, err := client.Chat(ctx, text)
		return ChatReplyMsg{ID: id, Reply: reply, Err: err}
	})
}

// refreshLog re-renders the message log into the viewport and scrolls
// to the newest message.
func (a *App) refreshLog() {
	th := theme.Current()
	width := a.viewport.Width()
	if width <= 0 {
		width = 60
	}

	userLabel := lipgloss.NewStyle().Foreground(lipgloss.Color(th.Secondary)).Bold(true)
	userText := lipgloss.NewStyle().Foreground(lipgloss.Color(th.FgBase))
	assistantLabel := lipgloss.NewStyle().Foreground(lipgloss.Color(th.Primary)).Bold(true)
	failedText := lipgloss.NewStyle().Foreground(lipgloss.Color(th.Error))

	var lines []string
	for _, m := range a.messages {
		switch {
		case m.Role == roleUser:
			lines = append(lines, userLabel.Render("You"), userText.Render(m.Content), "")
		case m.Failed:
			lines = append(lines, assistantLabel.Render("Sarathi"), failedText.Render("✗ "+m.Content), "")
		default:
			lines = append(lines, assistantLabel.Render("Sarathi"), renderMarkdown(m.Content, width), "")
		}
	}

	a.viewport.SetContent(lipgloss.JoinVertical(lipgloss.Left, lines...))
	a.viewport.GotoBottom()
}

// View renders the chat widget.
func (a *App) View() tea.View {
	var view tea.View
	view.AltScreen = true

	if a.width == 0 || a.height == 0 {
		view.Content = lipgloss.NewLayer("")
		return view
	}

	th := theme.Current()

	header := th.S().HeaderTitle.Render("Sarathi Assistant")

	status := ""
	if a.processing {
		status = lipgloss.NewStyle().Foreground(lipgloss.Color(th.FgMuted)).
			Render(a.spinner.View() + " Thinking...")
	}

	hints := widget.RenderHintBar("enter", "send", "↑/↓", "scroll", "esc", "quit")

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		"",
		a.viewport.View(),
		"",
		a.input.View(),
		status,
		hints,
	)

	canvas := uv.NewScreenBuffer(a.width, a.height)
	uv.NewStyledString(content).Draw(canvas, uv.Rectangle{
		Min: uv.Position{X: 0, Y: 0},
		Max: uv.Position{X: a.width, Y: a.height},
	})

	view.Content = lipgloss.NewLayer(canvas.Render())
	return view
}
