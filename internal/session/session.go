package session

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// Validation errors. These are caught before any network call is issued.
var (
	ErrBlankQuestion   = errors.New("question is empty")
	ErrEmptyTranscript = errors.New("transcript is empty")
	ErrNoArtifact      = errors.New("no report has been generated yet")
	ErrBlankRecipient  = errors.New("recipient is empty")
)

// Artifact is a rendered report document. The bytes are opaque to the
// client; Version increases monotonically with each regeneration so a
// delivery can tell whether it is working from the latest render.
type Artifact struct {
	Data    []byte
	Version int
}

// Session is the application state shared by all workflows: the
// transcript and the single artifact cell. The artifact cell is written
// only by the report workflow and replaced wholesale on each render,
// never mutated in place.
type Session struct {
	transcript Transcript
	artifact   *Artifact
}

// New creates an empty session with no artifact.
func New() *Session {
	return &Session{}
}

// Transcript returns the session's transcript store.
func (s *Session) Transcript() *Transcript {
	return &s.transcript
}

// BeginQuestion records a submitted question: the user message followed
// by a pending assistant placeholder. It returns the placeholder's
// correlation token, which the answer (or failure) must carry back.
// Blank input is rejected before anything is appended.
func (s *Session) BeginQuestion(text string) (uuid.UUID, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return uuid.Nil, ErrBlankQuestion
	}

	s.transcript.Append(RoleUser, trimmed)
	return s.transcript.AppendPending(), nil
}

// ResolveAnswer settles the placeholder identified by token with the
// answer text. Error details settle the same entry through the same path.
func (s *Session) ResolveAnswer(token uuid.UUID, text string) bool {
	return s.transcript.Resolve(token, text)
}

// ReportInput returns the flattened transcript for report synthesis.
// An empty transcript fails here, before any rendering call is made.
func (s *Session) ReportInput() (string, error) {
	text := s.transcript.Flatten()
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyTranscript
	}
	return text, nil
}

// RetainArtifact replaces the current artifact with freshly rendered
// bytes and bumps the version. Any previous artifact is discarded; it is
// never merged with the new one.
func (s *Session) RetainArtifact(data []byte) Artifact {
	version := 1
	if s.artifact != nil {
		version = s.artifact.Version + 1
	}
	s.artifact = &Artifact{Data: data, Version: version}
	return *s.artifact
}

// ArtifactReady reports whether a rendered artifact is available for
// delivery.
func (s *Session) ArtifactReady() bool {
	return s.artifact != nil
}

// PrepareDelivery validates a delivery request and returns the artifact
// to send. The artifact is not consumed: the same render may be resent
// to any number of recipients.
func (s *Session) PrepareDelivery(recipient string) (Artifact, error) {
	if strings.TrimSpace(recipient) == "" {
		return Artifact{}, ErrBlankRecipient
	}
	if s.artifact == nil {
		return Artifact{}, ErrNoArtifact
	}
	return *s.artifact, nil
}
