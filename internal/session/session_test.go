package session

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestBeginQuestionAppendsUserThenPlaceholder(t *testing.T) {
	s := New()

	token, err := s.BeginQuestion("What does section 3 say?")
	if err != nil {
		t.Fatalf("BeginQuestion failed: %v", err)
	}

	msgs := s.Transcript().Messages()
	if len(msgs) != 2 {
		t.Fatalf("transcript length = %d, want 2", len(msgs))
	}
	if msgs[0].Role != RoleUser || msgs[0].Pending {
		t.Errorf("first message = %+v, want settled user message", msgs[0])
	}
	if msgs[0].Text != "What does section 3 say?" {
		t.Errorf("user text = %q, want the question", msgs[0].Text)
	}
	if msgs[1].Role != RoleAssistant || !msgs[1].Pending {
		t.Errorf("second message = %+v, want pending assistant message", msgs[1])
	}
	if msgs[1].ID != token {
		t.Error("returned token does not identify the placeholder")
	}
}

func TestBeginQuestionBlankIsNoOp(t *testing.T) {
	s := New()

	for _, input := range []string{"", "   ", "\n\t "} {
		_, err := s.BeginQuestion(input)
		if !errors.Is(err, ErrBlankQuestion) {
			t.Errorf("BeginQuestion(%q) error = %v, want ErrBlankQuestion", input, err)
		}
	}
	if got := s.Transcript().Len(); got != 0 {
		t.Errorf("transcript length = %d, want 0 after blank submissions", got)
	}
}

func TestResolveAnswerSettlesPlaceholder(t *testing.T) {
	s := New()
	token, _ := s.BeginQuestion("What is the capital of Italy?")

	if !s.ResolveAnswer(token, "The capital of Italy is Rome.") {
		t.Fatal("ResolveAnswer returned false for a live token")
	}

	msgs := s.Transcript().Messages()
	last := msgs[len(msgs)-1]
	if last.Pending {
		t.Error("assistant message still pending after answer")
	}
	if last.Text != "The capital of Italy is Rome." {
		t.Errorf("assistant text = %q, want the answer", last.Text)
	}
}

func TestResolveAnswerByTokenWithOverlappingQuestions(t *testing.T) {
	s := New()
	first, _ := s.BeginQuestion("first question")
	second, _ := s.BeginQuestion("second question")

	// Answers arrive out of order; each must land on its own placeholder.
	if !s.ResolveAnswer(second, "second answer") {
		t.Fatal("resolving second token failed")
	}
	if !s.ResolveAnswer(first, "first answer") {
		t.Fatal("resolving first token failed")
	}

	msgs := s.Transcript().Messages()
	if msgs[1].Text != "first answer" {
		t.Errorf("first placeholder = %q, want %q", msgs[1].Text, "first answer")
	}
	if msgs[3].Text != "second answer" {
		t.Errorf("second placeholder = %q, want %q", msgs[3].Text, "second answer")
	}
}

func TestResolveAnswerUnknownOrSettledToken(t *testing.T) {
	s := New()
	token, _ := s.BeginQuestion("question")

	if !s.ResolveAnswer(token, "answer") {
		t.Fatal("first resolve failed")
	}
	if s.ResolveAnswer(token, "late duplicate") {
		t.Error("resolving an already settled token should return false")
	}

	msgs := s.Transcript().Messages()
	if msgs[1].Text != "answer" {
		t.Errorf("settled text = %q, want the original answer", msgs[1].Text)
	}
}

func TestFailurePathSettlesSamePlaceholder(t *testing.T) {
	s := New()
	token, _ := s.BeginQuestion("question")

	// Error details travel through the same mutation as answers; the
	// user message appended earlier is never rolled back.
	s.ResolveAnswer(token, "Error: backend unreachable")

	msgs := s.Transcript().Messages()
	if len(msgs) != 2 {
		t.Fatalf("transcript length = %d, want 2", len(msgs))
	}
	if msgs[1].Pending {
		t.Error("placeholder still pending after failure")
	}
	if !strings.HasPrefix(msgs[1].Text, "Error:") {
		t.Errorf("placeholder text = %q, want error detail", msgs[1].Text)
	}
}

func TestFlattenSkipsPendingEntries(t *testing.T) {
	s := New()
	first, _ := s.BeginQuestion("answered question")
	s.ResolveAnswer(first, "an answer")
	s.BeginQuestion("still waiting")

	flat := s.Transcript().Flatten()
	if !strings.Contains(flat, "You: answered question") {
		t.Errorf("flatten missing user line: %q", flat)
	}
	if !strings.Contains(flat, "Assistant: an answer") {
		t.Errorf("flatten missing assistant line: %q", flat)
	}
	if strings.Contains(flat, PendingPlaceholder) {
		t.Errorf("flatten contains pending placeholder: %q", flat)
	}
}

func TestReportInputEmptyTranscript(t *testing.T) {
	s := New()

	_, err := s.ReportInput()
	if !errors.Is(err, ErrEmptyTranscript) {
		t.Errorf("ReportInput error = %v, want ErrEmptyTranscript", err)
	}
}

func TestRetainArtifactVersioning(t *testing.T) {
	s := New()
	if s.ArtifactReady() {
		t.Error("new session should start with no artifact")
	}

	first := s.RetainArtifact([]byte("pdf-one"))
	if first.Version != 1 {
		t.Errorf("first version = %d, want 1", first.Version)
	}
	if !s.ArtifactReady() {
		t.Error("artifact should be ready after retain")
	}

	second := s.RetainArtifact([]byte("pdf-two"))
	if second.Version != 2 {
		t.Errorf("second version = %d, want 2", second.Version)
	}

	got, err := s.PrepareDelivery("someone@example.com")
	if err != nil {
		t.Fatalf("PrepareDelivery failed: %v", err)
	}
	if !bytes.Equal(got.Data, []byte("pdf-two")) {
		t.Error("delivery should see the replacement artifact, not the original")
	}
}

func TestPrepareDeliveryNoArtifact(t *testing.T) {
	s := New()

	for _, recipient := range []string{"someone@example.com", "", "   "} {
		_, err := s.PrepareDelivery(recipient)
		if err == nil {
			t.Errorf("PrepareDelivery(%q) succeeded with no artifact", recipient)
		}
	}
}

func TestPrepareDeliveryBlankRecipient(t *testing.T) {
	s := New()
	s.RetainArtifact([]byte("pdf"))

	_, err := s.PrepareDelivery("")
	if !errors.Is(err, ErrBlankRecipient) {
		t.Errorf("PrepareDelivery error = %v, want ErrBlankRecipient", err)
	}
}

func TestDeliveryDoesNotConsumeArtifact(t *testing.T) {
	s := New()
	s.RetainArtifact([]byte("pdf"))

	if _, err := s.PrepareDelivery("one@example.com"); err != nil {
		t.Fatalf("first delivery failed: %v", err)
	}
	if _, err := s.PrepareDelivery("two@example.com"); err != nil {
		t.Fatalf("second delivery failed: %v", err)
	}
}

func TestCapitalOfItalyScenario(t *testing.T) {
	s := New()

	token, err := s.BeginQuestion("What is the capital of Italy?")
	if err != nil {
		t.Fatalf("BeginQuestion failed: %v", err)
	}

	msgs := s.Transcript().Messages()
	if msgs[0].Text != "What is the capital of Italy?" || msgs[0].Role != RoleUser {
		t.Fatalf("user message = %+v", msgs[0])
	}
	if !msgs[1].Pending {
		t.Fatal("assistant placeholder should be pending before the answer")
	}

	s.ResolveAnswer(token, "Rome")

	msgs = s.Transcript().Messages()
	if msgs[1].Pending || msgs[1].Text != "Rome" {
		t.Errorf("assistant message = %+v, want settled %q", msgs[1], "Rome")
	}
}
