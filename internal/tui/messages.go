// Package tui implements the terminal user interface using Bubble Tea.
package tui

import "github.com/google/uuid"

// ============================================================================
// Upload Workflow Messages
// ============================================================================

// UploadResultMsg carries the backend's confirmation for an ingested document.
type UploadResultMsg struct {
	Filename string
	Message  string
}

// UploadErrorMsg signals that an upload failed.
type UploadErrorMsg struct {
	Filename string
	Err      error
}

// ============================================================================
// Query Workflow Messages
// ============================================================================

// AnswerMsg carries the assistant's answer for the placeholder identified
// by Token.
type AnswerMsg struct {
	Token  uuid.UUID
	Answer string
}

// AnswerErrorMsg signals that a question failed. The placeholder
// identified by Token is settled with the error detail instead.
type AnswerErrorMsg struct {
	Token uuid.UUID
	Err   error
}

// ============================================================================
// Report Workflow Messages
// ============================================================================

// ReportRenderedMsg carries the rendered report bytes from the backend.
type ReportRenderedMsg struct {
	Data []byte
}

// ReportErrorMsg signals that report rendering failed. Any previously
// retained artifact stays valid.
type ReportErrorMsg struct {
	Err error
}

// ============================================================================
// Delivery Workflow Messages
// ============================================================================

// DeliveryResultMsg carries the backend's confirmation that the report
// was emailed.
type DeliveryResultMsg struct {
	Recipient string
	Message   string
}

// DeliveryErrorMsg signals that delivery failed. The retained artifact is
// untouched.
type DeliveryErrorMsg struct {
	Recipient string
	Err       error
}

// ============================================================================
// Utility Messages
// ============================================================================

// CtrlCResetMsg clears the pending Ctrl+C confirmation after its timeout.
type CtrlCResetMsg struct{}
