// Package commands provides Bubble Tea commands for the workflow
// network calls. Each command issues exactly one backend call and
// reports the outcome as a typed message.
package commands

import (
	"context"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/aegis-dev/aegis/internal/backend"
	"github.com/aegis-dev/aegis/internal/report"
	"github.com/aegis-dev/aegis/internal/tui"
)

// UploadCmd submits the document at path for ingestion.
// A failure to open the file is reported without any network call.
// Only the base name goes on the wire; the backend joins it with its
// own storage directory.
func UploadCmd(client *backend.Client, path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return tui.UploadErrorMsg{Filename: path, Err: err}
		}
		defer f.Close()

		result, err := client.UploadDocument(context.Background(), filepath.Base(path), f)
		if err != nil {
			return tui.UploadErrorMsg{Filename: path, Err: err}
		}
		return tui.UploadResultMsg{Filename: result.Filename, Message: result.Message}
	}
}

// AskCmd submits a question. The token identifies the placeholder the
// answer settles, so overlapping questions land on the right entries.
func AskCmd(client *backend.Client, token uuid.UUID, question string) tea.Cmd {
	return func() tea.Msg {
		answer, err := client.AskQuestion(context.Background(), question)
		if err != nil {
			return tui.AnswerErrorMsg{Token: token, Err: err}
		}
		return tui.AnswerMsg{Token: token, Answer: answer}
	}
}

// RenderReportCmd asks the backend to render the composed HTML.
func RenderReportCmd(client *backend.Client, html string) tea.Cmd {
	return func() tea.Msg {
		data, err := client.RenderReport(context.Background(), html)
		if err != nil {
			return tui.ReportErrorMsg{Err: err}
		}
		return tui.ReportRenderedMsg{Data: data}
	}
}

// SendReportCmd emails the artifact captured at issue time to recipient.
// A render completing while this call is in flight does not affect it.
func SendReportCmd(client *backend.Client, recipient string, pdf []byte) tea.Cmd {
	return func() tea.Msg {
		message, err := client.SendReport(
			context.Background(),
			recipient,
			report.DeliverySubject,
			report.DeliveryBody,
			report.ArtifactFilename,
			pdf,
		)
		if err != nil {
			return tui.DeliveryErrorMsg{Recipient: recipient, Err: err}
		}
		return tui.DeliveryResultMsg{Recipient: recipient, Message: message}
	}
}
