// Package views provides TUI view components for the Aegis client.
package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aegis-dev/aegis/internal/session"
	"github.com/aegis-dev/aegis/internal/tui"
)

// SubmitQuestionMsg is sent when the user submits a question.
type SubmitQuestionMsg struct {
	Content string
}

// StatusLevel selects the style the status line renders with.
type StatusLevel int

const (
	// StatusInfo reports progress or a successful outcome.
	StatusInfo StatusLevel = iota
	// StatusWarn reports input rejected before any backend call.
	StatusWarn
	// StatusError reports a failed backend call.
	StatusError
)

// ChatModel is the view model for the conversation screen. It owns the
// presentation pieces only; the transcript itself lives in the session
// and is pushed in through SetMessages.
type ChatModel struct {
	messages      []session.Message
	textarea      textarea.Model
	viewport      viewport.Model
	spinner       spinner.Model
	status        string
	statusLevel   StatusLevel
	busy          bool
	artifactReady bool
	width         int
	height        int
}

// NewChatModel creates the conversation screen.
func NewChatModel(width, height int) ChatModel {
	ta := textarea.New()
	ta.Placeholder = "Ask a question about your documents... (Enter to send)"
	ta.CharLimit = 2000
	ta.SetWidth(width - 8)
	ta.SetHeight(3)
	ta.ShowLineNumbers = false
	ta.Focus()

	// Enter submits; Ctrl+J inserts a newline.
	keyMap := ta.KeyMap
	keyMap.InsertNewline = key.NewBinding(
		key.WithKeys(tui.KeyCtrlJ),
		key.WithHelp(tui.KeyCtrlJ, "new line"),
	)
	ta.KeyMap = keyMap

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#7C3AED"))

	vp := viewport.New(chatViewportWidth(width), chatViewportHeight(height))
	vp.SetContent(formatMessages(nil))

	return ChatModel{
		textarea: ta,
		viewport: vp,
		spinner:  sp,
		width:    width,
		height:   height,
	}
}

// Init returns the initial command for the chat view.
func (m ChatModel) Init() tea.Cmd {
	return textarea.Blink
}

// SetMessages replaces the rendered transcript and scrolls to the bottom.
func (m *ChatModel) SetMessages(messages []session.Message) {
	m.messages = messages
	m.viewport.SetContent(formatMessages(messages))
	m.viewport.GotoBottom()
}

// SetStatus sets the one-line workflow status under the input.
func (m *ChatModel) SetStatus(status string, level StatusLevel) {
	m.status = status
	m.statusLevel = level
}

// SetBusy toggles the in-flight indicator.
func (m *ChatModel) SetBusy(busy bool) {
	m.busy = busy
}

// SetArtifactReady reveals or hides the delivery key hint.
func (m *ChatModel) SetArtifactReady(ready bool) {
	m.artifactReady = ready
}

// ArtifactReady reports whether the delivery key hint is shown.
func (m ChatModel) ArtifactReady() bool {
	return m.artifactReady
}

// SpinnerTick starts the spinner ticking.
func (m ChatModel) SpinnerTick() tea.Cmd {
	return m.spinner.Tick
}

// Update handles messages for the chat view.
func (m ChatModel) Update(msg tea.Msg) (ChatModel, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == tui.KeyEnter {
			// Submitting a blank question is a no-op.
			content := strings.TrimSpace(m.textarea.Value())
			if content == "" {
				return m, nil
			}

			// Clear the input. The textarea stays enabled: nothing
			// serializes overlapping questions.
			m.textarea.Reset()

			return m, func() tea.Msg {
				return SubmitQuestionMsg{Content: content}
			}
		}

	case spinner.TickMsg:
		if m.busy {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = chatViewportWidth(msg.Width)
		m.viewport.Height = chatViewportHeight(msg.Height)
		m.textarea.SetWidth(m.viewport.Width)
		m.viewport.SetContent(formatMessages(m.messages))
		return m, nil
	}

	m.textarea, cmd = m.textarea.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// View renders the chat view.
func (m ChatModel) View() string {
	var b strings.Builder

	header := tui.TitleStyle.Render("Aegis - Document Assistant")
	b.WriteString(header)
	b.WriteString("\n\n")

	b.WriteString(m.viewport.View())
	b.WriteString("\n\n")

	if m.busy {
		b.WriteString(m.spinner.View())
		b.WriteString(" Working...")
		b.WriteString("\n\n")
	}

	b.WriteString(m.textarea.View())
	b.WriteString("\n\n")

	if m.status != "" {
		switch m.statusLevel {
		case StatusWarn:
			b.WriteString(tui.WarningStyle.Render(m.status))
		case StatusError:
			b.WriteString(tui.ErrorStyle.Render(m.status))
		default:
			b.WriteString(tui.SuccessStyle.Render(m.status))
		}
		b.WriteString("\n\n")
	}

	hints := []string{
		"Enter: Ask",
		"Ctrl+O: Upload document",
		"Ctrl+G: Generate report",
	}
	if m.artifactReady {
		hints = append(hints, "Ctrl+S: Email report")
	}
	hints = append(hints, "Ctrl+C twice: Quit")
	b.WriteString(tui.DimStyle.Render(strings.Join(hints, " · ")))

	content := b.String()
	boxed := tui.BoxStyle.
		Width(m.width - 4).
		Render(content)

	return boxed
}

func chatViewportWidth(width int) int {
	w := width - 8
	if w < 20 {
		w = 20
	}
	return w
}

func chatViewportHeight(height int) int {
	// Reserve space for header, busy line, textarea, status and footer.
	h := height - 16
	if h < 5 {
		h = 5
	}
	return h
}

// formatMessages formats the transcript for display in the viewport.
func formatMessages(messages []session.Message) string {
	if len(messages) == 0 {
		return tui.DimStyle.Render("No messages yet. Upload a document and ask away!")
	}

	var b strings.Builder
	for i, msg := range messages {
		var prefix string
		var style lipgloss.Style

		switch msg.Role {
		case session.RoleUser:
			prefix = "You: "
			style = tui.UserStyle
		case session.RoleAssistant:
			prefix = "Aegis: "
			style = tui.AssistantStyle
		default:
			prefix = msg.Role + ": "
			style = tui.DimStyle
		}

		b.WriteString(style.Render(prefix))
		if msg.Pending {
			b.WriteString(tui.DimStyle.Render(msg.Text))
		} else {
			b.WriteString(msg.Text)
		}

		if i < len(messages)-1 {
			b.WriteString("\n\n")
		}
	}

	return b.String()
}
