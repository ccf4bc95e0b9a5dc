package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aegis-dev/aegis/internal/tui"
)

// PromptKind identifies which workflow a prompt value belongs to.
type PromptKind int

const (
	PromptUpload PromptKind = iota
	PromptRecipient
)

// PromptSubmitMsg is sent when the user submits a prompt value.
type PromptSubmitMsg struct {
	Kind  PromptKind
	Value string
}

// PromptCancelMsg signals that the user dismissed the prompt.
type PromptCancelMsg struct{}

// PromptModel is a one-line input overlay used to collect a document path
// or a recipient address.
type PromptModel struct {
	kind   PromptKind
	title  string
	input  textinput.Model
	width  int
	height int
}

// NewPromptModel creates a prompt of the given kind.
func NewPromptModel(kind PromptKind, title, placeholder string, width, height int) PromptModel {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 500
	ti.Width = width - 10
	ti.Focus()

	return PromptModel{
		kind:   kind,
		title:  title,
		input:  ti,
		width:  width,
		height: height,
	}
}

// Init returns the initial command for the prompt view.
func (m PromptModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the prompt view.
func (m PromptModel) Update(msg tea.Msg) (PromptModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case tui.KeyEnter:
			value := strings.TrimSpace(m.input.Value())
			kind := m.kind
			return m, func() tea.Msg {
				return PromptSubmitMsg{Kind: kind, Value: value}
			}
		case tui.KeyEsc:
			return m, func() tea.Msg {
				return PromptCancelMsg{}
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 10
		return m, nil
	}

	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the prompt view.
func (m PromptModel) View() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render(m.title))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(tui.DimStyle.Render("Enter: Confirm · Esc: Cancel"))

	content := b.String()
	boxed := tui.BoxStyle.
		Width(m.width - 4).
		Render(content)

	// Center vertically if there's space.
	contentHeight := lipgloss.Height(boxed)
	if m.height > contentHeight {
		padding := (m.height - contentHeight) / 3
		if padding > 0 {
			boxed = strings.Repeat("\n", padding) + boxed
		}
	}

	return boxed
}
