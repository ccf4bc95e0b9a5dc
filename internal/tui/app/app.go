// Package app provides the main TUI application that wires all views together.
package app

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aegis-dev/aegis/internal/backend"
	"github.com/aegis-dev/aegis/internal/config"
	"github.com/aegis-dev/aegis/internal/log"
	"github.com/aegis-dev/aegis/internal/report"
	"github.com/aegis-dev/aegis/internal/session"
	"github.com/aegis-dev/aegis/internal/tui"
	"github.com/aegis-dev/aegis/internal/tui/commands"
	"github.com/aegis-dev/aegis/internal/tui/views"
)

type viewState int

const (
	stateChat viewState = iota
	statePrompt
)

// App is the main TUI application. All workflow orchestration happens in
// its Update loop; network calls run as commands and are the only points
// where a workflow is suspended.
type App struct {
	cfg    *config.Config
	client *backend.Client
	sess   *session.Session
	logger *log.Logger // nil disables event logging

	state      viewState
	chatView   views.ChatModel
	promptView views.PromptModel

	// Number of in-flight backend calls. Nothing serializes them.
	inflight int

	ctrlCPending bool
	width        int
	height       int
}

// New creates the application around a fresh session.
func New(cfg *config.Config, client *backend.Client, logger *log.Logger) *App {
	return &App{
		cfg:      cfg,
		client:   client,
		sess:     session.New(),
		logger:   logger,
		chatView: views.NewChatModel(80, 24),
		width:    80,
		height:   24,
	}
}

// Init returns the initial command for the TUI.
func (a *App) Init() tea.Cmd {
	return a.chatView.Init()
}

// Update handles messages and updates the application state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		var cmd tea.Cmd
		a.chatView, cmd = a.chatView.Update(msg)
		if a.state == statePrompt {
			a.promptView, _ = a.promptView.Update(msg)
		}
		return a, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case tui.KeyCtrlC:
			if a.ctrlCPending {
				return a, tea.Quit
			}
			a.ctrlCPending = true
			return a, tea.Tick(time.Second, func(time.Time) tea.Msg {
				return tui.CtrlCResetMsg{}
			})

		case tui.KeyCtrlO:
			if a.state == stateChat {
				return a.openPrompt(views.PromptUpload,
					"Upload a document", "Path to a PDF file...")
			}

		case tui.KeyCtrlG:
			if a.state == stateChat {
				return a.startReport()
			}

		case tui.KeyCtrlS:
			if a.state == stateChat {
				if !a.sess.ArtifactReady() {
					a.chatView.SetStatus("Generate a report before emailing it.", views.StatusWarn)
					return a, nil
				}
				return a.openPrompt(views.PromptRecipient,
					"Email the report", "Recipient address...")
			}
		}

	case tui.CtrlCResetMsg:
		a.ctrlCPending = false
		return a, nil

	// Query workflow.
	case views.SubmitQuestionMsg:
		return a.startQuestion(msg.Content)

	case tui.AnswerMsg:
		a.sess.ResolveAnswer(msg.Token, msg.Answer)
		a.callDone()
		a.refreshTranscript()
		a.logEvent(log.LogEvent{Event: log.EventAnswerReceived})
		return a, nil

	case tui.AnswerErrorMsg:
		// The placeholder is settled with the failure detail; the
		// question it answers stays in the transcript.
		a.sess.ResolveAnswer(msg.Token, "Error: "+msg.Err.Error())
		a.callDone()
		a.refreshTranscript()
		a.logEvent(log.LogEvent{Event: log.EventAnswerFailed, Error: msg.Err.Error()})
		return a, nil

	// Prompt outcomes (upload path or recipient).
	case views.PromptSubmitMsg:
		a.state = stateChat
		switch msg.Kind {
		case views.PromptUpload:
			return a.startUpload(msg.Value)
		case views.PromptRecipient:
			return a.startDelivery(msg.Value)
		}
		return a, nil

	case views.PromptCancelMsg:
		a.state = stateChat
		return a, nil

	// Upload workflow outcomes.
	case tui.UploadResultMsg:
		a.callDone()
		status := msg.Message
		if status == "" {
			status = fmt.Sprintf("Uploaded %s.", msg.Filename)
		}
		a.chatView.SetStatus(status, views.StatusInfo)
		a.logEvent(log.LogEvent{Event: log.EventDocumentUploaded, Filename: msg.Filename})
		return a, nil

	case tui.UploadErrorMsg:
		a.callDone()
		a.chatView.SetStatus("Upload failed: "+msg.Err.Error(), views.StatusError)
		a.logEvent(log.LogEvent{Event: log.EventUploadFailed, Filename: msg.Filename, Error: msg.Err.Error()})
		return a, nil

	// Report workflow outcomes.
	case tui.ReportRenderedMsg:
		a.callDone()
		artifact := a.sess.RetainArtifact(msg.Data)
		a.chatView.SetArtifactReady(true)

		path, err := report.Save(a.cfg.Report.OutputDir, msg.Data)
		if err != nil {
			a.chatView.SetStatus(fmt.Sprintf("Report ready, but saving failed: %v", err), views.StatusError)
		} else {
			a.chatView.SetStatus(fmt.Sprintf("Report saved to %s. Ctrl+S to email it.", path), views.StatusInfo)
		}
		a.logEvent(log.LogEvent{
			Event:   log.EventReportRendered,
			Bytes:   len(msg.Data),
			Version: artifact.Version,
		})
		return a, nil

	case tui.ReportErrorMsg:
		// Any previously retained artifact stays valid for delivery.
		a.callDone()
		a.chatView.SetStatus("Report failed: "+msg.Err.Error(), views.StatusError)
		a.logEvent(log.LogEvent{Event: log.EventReportFailed, Error: msg.Err.Error()})
		return a, nil

	// Delivery workflow outcomes.
	case tui.DeliveryResultMsg:
		a.callDone()
		status := msg.Message
		if status == "" {
			status = fmt.Sprintf("Report sent to %s.", msg.Recipient)
		}
		a.chatView.SetStatus(status, views.StatusInfo)
		a.logEvent(log.LogEvent{Event: log.EventEmailSent, Recipient: msg.Recipient})
		return a, nil

	case tui.DeliveryErrorMsg:
		a.callDone()
		a.chatView.SetStatus("Email failed: "+msg.Err.Error(), views.StatusError)
		a.logEvent(log.LogEvent{Event: log.EventEmailFailed, Recipient: msg.Recipient, Error: msg.Err.Error()})
		return a, nil
	}

	// Everything else (typing, scrolling, spinner ticks) goes to the
	// active view.
	var cmd tea.Cmd
	switch a.state {
	case stateChat:
		a.chatView, cmd = a.chatView.Update(msg)
	case statePrompt:
		a.promptView, cmd = a.promptView.Update(msg)
	}
	return a, cmd
}

// View renders the current application state.
func (a *App) View() string {
	if a.state == statePrompt {
		return a.promptView.View()
	}
	return a.chatView.View()
}

// ============================================================================
// Workflow starts
// ============================================================================

// startQuestion runs the query workflow up to its network call: append
// the user message and the pending placeholder, then ask.
func (a *App) startQuestion(content string) (tea.Model, tea.Cmd) {
	token, err := a.sess.BeginQuestion(content)
	if err != nil {
		// Blank input; the chat view filters this already.
		return a, nil
	}

	a.refreshTranscript()
	a.callStarted()
	a.logEvent(log.LogEvent{Event: log.EventQuestionSubmitted, Question: content})

	return a, tea.Batch(
		a.chatView.SpinnerTick(),
		commands.AskCmd(a.client, token, content),
	)
}

// startUpload runs the upload workflow for the given path.
func (a *App) startUpload(path string) (tea.Model, tea.Cmd) {
	if path == "" {
		a.chatView.SetStatus("No file selected.", views.StatusWarn)
		return a, nil
	}

	a.callStarted()
	a.chatView.SetStatus("Uploading "+path+"...", views.StatusInfo)

	return a, tea.Batch(
		a.chatView.SpinnerTick(),
		commands.UploadCmd(a.client, path),
	)
}

// startReport runs the report workflow. An empty transcript fails fast
// without a network call and without touching delivery visibility.
func (a *App) startReport() (tea.Model, tea.Cmd) {
	text, err := a.sess.ReportInput()
	if err != nil {
		a.chatView.SetStatus("Nothing to report yet - ask a question first.", views.StatusWarn)
		return a, nil
	}

	html := report.Compose(a.cfg.Report.Title, time.Now(), text)
	a.callStarted()
	a.chatView.SetStatus("Rendering report...", views.StatusInfo)

	return a, tea.Batch(
		a.chatView.SpinnerTick(),
		commands.RenderReportCmd(a.client, html),
	)
}

// startDelivery runs the delivery workflow for the given recipient.
// Validation failures surface before any network call; the artifact is
// captured here, so a render landing mid-flight cannot swap it.
func (a *App) startDelivery(recipient string) (tea.Model, tea.Cmd) {
	artifact, err := a.sess.PrepareDelivery(recipient)
	if err != nil {
		a.chatView.SetStatus("Cannot send: "+err.Error(), views.StatusWarn)
		return a, nil
	}

	a.callStarted()
	a.chatView.SetStatus("Sending report to "+recipient+"...", views.StatusInfo)

	return a, tea.Batch(
		a.chatView.SpinnerTick(),
		commands.SendReportCmd(a.client, recipient, artifact.Data),
	)
}

// ============================================================================
// Helpers
// ============================================================================

func (a *App) openPrompt(kind views.PromptKind, title, placeholder string) (tea.Model, tea.Cmd) {
	a.state = statePrompt
	a.promptView = views.NewPromptModel(kind, title, placeholder, a.width, a.height)
	return a, a.promptView.Init()
}

func (a *App) refreshTranscript() {
	a.chatView.SetMessages(a.sess.Transcript().Messages())
}

func (a *App) callStarted() {
	a.inflight++
	a.chatView.SetBusy(true)
}

func (a *App) callDone() {
	if a.inflight > 0 {
		a.inflight--
	}
	a.chatView.SetBusy(a.inflight > 0)
}

// logEvent appends to the event log, best-effort. Logging never blocks
// or fails a workflow.
func (a *App) logEvent(event log.LogEvent) {
	if a.logger == nil {
		return
	}
	_ = a.logger.Append(event)
}
