// Package qa manages the question/answer transcript: an append-only,
// call-start-ordered sequence of exchanges against the portal backend,
// with deterministic keyword answers when the backend is unreachable.
package qa

import (
	"context"
	"strings"
	"sync"

	"govlens/internal/api"
	"govlens/internal/portal"
)

// Backend is the slice of the API client the orchestrator needs.
type Backend interface {
	AskDocument(ctx context.Context, id string, req api.AskRequest) (*portal.Answer, error)
	Ask(ctx context.Context, req api.AskRequest) (*portal.Answer, error)
}

// Scope supplies the current document and language. Satisfied by
// *session.Session.
type Scope interface {
	DocumentID() string
	Document() *portal.Document
	Language() string
}

const pendingText = "Thinking..."

// Orchestrator owns one session's transcript. Transcript slots are
// reserved at call start, so overlapping asks keep call-start order and
// a slow earlier answer can never overwrite a faster later one: each
// completion fills only the placeholder it reserved.
type Orchestrator struct {
	mu         sync.Mutex
	backend    Backend
	scope      Scope
	generation int
	transcript []portal.ChatMessage
}

// New creates an orchestrator bound to a session scope.
func New(backend Backend, scope Scope) *Orchestrator {
	return &Orchestrator{backend: backend, scope: scope}
}

// Transcript returns a copy of the transcript in call-start order.
// Pending placeholders are included as-is.
func (o *Orchestrator) Transcript() []portal.ChatMessage {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]portal.ChatMessage(nil), o.transcript...)
}

// Clear drops the transcript. Used on navigation away from a document.
// Asks still in flight complete against the old generation and their
// answers are discarded instead of landing in the fresh transcript.
func (o *Orchestrator) Clear() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.generation++
	o.transcript = nil
}

// Ask sends a question to the backend, scoped to the current document
// when one is loaded. An empty question is a no-op. The user message and
// a pending placeholder are appended immediately; the placeholder is
// replaced exactly once, by either the backend answer or a degraded
// offline answer.
func (o *Orchestrator) Ask(ctx context.Context, question string) (*portal.ChatMessage, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, nil
	}

	docID := o.scope.DocumentID()
	language := o.scope.Language()

	// Reserve the exchange's transcript slots at call start. The
	// generation ties the reservation to the current transcript; Clear
	// invalidates it.
	o.mu.Lock()
	o.transcript = append(o.transcript,
		portal.ChatMessage{Role: portal.RoleUser, Text: question},
		portal.ChatMessage{Role: portal.RoleAssistant, Text: pendingText, Pending: true},
	)
	slot := len(o.transcript) - 1
	gen := o.generation
	o.mu.Unlock()

	req := api.AskRequest{Question: question, Language: language}
	var answer *portal.Answer
	var err error
	if docID != "" {
		answer, err = o.backend.AskDocument(ctx, docID, req)
	} else {
		answer, err = o.backend.Ask(ctx, req)
	}

	// Every failure kind degrades to the offline answer; raw backend
	// errors are never surfaced into the transcript.
	var msg portal.ChatMessage
	if err == nil {
		msg = portal.ChatMessage{
			Role:      portal.RoleAssistant,
			Text:      answer.Answer,
			Citations: answer.Citations,
		}
	} else {
		msg = OfflineAnswer(question, o.scope.Document())
	}

	o.mu.Lock()
	if gen == o.generation {
		o.transcript[slot] = msg
	}
	o.mu.Unlock()
	return &msg, nil
}
