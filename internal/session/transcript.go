// Package session holds the in-memory state of one assistant session:
// the transcript of exchanged messages and the rendered report artifact.
// Nothing in this package survives a restart.
package session

import (
	"strings"

	"github.com/google/uuid"
)

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// PendingPlaceholder is the text shown for an assistant message whose
// answer has not arrived yet.
const PendingPlaceholder = "Thinking..."

// Message is a single transcript entry. An assistant message is created
// pending and mutated in place once its answer (or an error) arrives;
// messages are never deleted.
type Message struct {
	ID      uuid.UUID
	Role    string
	Text    string
	Pending bool
}

// Transcript is the append-only ordered log of messages for one session.
type Transcript struct {
	messages []Message
}

// Append adds a settled message and returns its correlation token.
func (t *Transcript) Append(role, text string) uuid.UUID {
	id := uuid.New()
	t.messages = append(t.messages, Message{ID: id, Role: role, Text: text})
	return id
}

// AppendPending adds a pending assistant placeholder and returns its
// correlation token. The token identifies the exact entry to mutate when
// the answer arrives, so overlapping questions cannot race each other.
func (t *Transcript) AppendPending() uuid.UUID {
	id := uuid.New()
	t.messages = append(t.messages, Message{
		ID:      id,
		Role:    RoleAssistant,
		Text:    PendingPlaceholder,
		Pending: true,
	})
	return id
}

// Resolve settles the pending entry identified by id, replacing its text.
// Both answers and error details settle an entry the same way. Returns
// false if no pending entry carries the token.
func (t *Transcript) Resolve(id uuid.UUID, text string) bool {
	for i := range t.messages {
		if t.messages[i].ID == id && t.messages[i].Pending {
			t.messages[i].Text = text
			t.messages[i].Pending = false
			return true
		}
	}
	return false
}

// Len returns the number of messages in the transcript.
func (t *Transcript) Len() int {
	return len(t.messages)
}

// Messages returns a copy of the transcript entries in order.
func (t *Transcript) Messages() []Message {
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Flatten renders the settled exchanges as plain text for the report.
// Pending placeholders are skipped; an exchange still waiting for its
// answer contributes only the question.
func (t *Transcript) Flatten() string {
	var b strings.Builder
	for _, m := range t.messages {
		if m.Pending {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		switch m.Role {
		case RoleUser:
			b.WriteString("You: ")
		case RoleAssistant:
			b.WriteString("Assistant: ")
		default:
			b.WriteString(m.Role + ": ")
		}
		b.WriteString(m.Text)
	}
	return b.String()
}
