package log

import (
	"testing"
)

func TestAppendAndReadAll(t *testing.T) {
	logger, err := NewLogger(t.TempDir())
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	events := []LogEvent{
		{Event: EventDocumentUploaded, Filename: "contract.pdf"},
		{Event: EventQuestionSubmitted, Question: "what changed?"},
		{Event: EventReportRendered, Bytes: 2048, Version: 1},
	}
	for _, e := range events {
		if err := logger.Append(e); err != nil {
			t.Fatalf("Append(%s) failed: %v", e.Event, err)
		}
	}

	got, err := logger.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(got) != len(events) {
		t.Fatalf("ReadAll returned %d events, want %d", len(got), len(events))
	}
	for i, e := range events {
		if got[i].Event != e.Event {
			t.Errorf("event %d = %q, want %q", i, got[i].Event, e.Event)
		}
		if got[i].Time.IsZero() {
			t.Errorf("event %d has zero timestamp", i)
		}
	}
}

func TestReadAllMissingFile(t *testing.T) {
	logger, err := NewLogger(t.TempDir())
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	events, err := logger.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("ReadAll returned %d events, want 0", len(events))
	}
}
