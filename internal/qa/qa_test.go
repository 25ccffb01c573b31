package qa

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"govlens/internal/api"
	"govlens/internal/portal"
)

// stubBackend answers from a fixed queue, or fails when down.
type stubBackend struct {
	down    bool
	answers []portal.Answer
	calls   int
}

func (b *stubBackend) next() (*portal.Answer, error) {
	b.calls++
	if b.down {
		return nil, &api.TransportError{Op: "POST /ask", Err: errors.New("connection refused")}
	}
	a := b.answers[0]
	if len(b.answers) > 1 {
		b.answers = b.answers[1:]
	}
	return &a, nil
}

func (b *stubBackend) AskDocument(ctx context.Context, id string, req api.AskRequest) (*portal.Answer, error) {
	return b.next()
}

func (b *stubBackend) Ask(ctx context.Context, req api.AskRequest) (*portal.Answer, error) {
	return b.next()
}

// stubScope pins the document scope without a live session.
type stubScope struct {
	id       string
	doc      *portal.Document
	language string
}

func (s *stubScope) DocumentID() string         { return s.id }
func (s *stubScope) Document() *portal.Document { return s.doc }
func (s *stubScope) Language() string           { return s.language }

func demoDoc(t *testing.T) *portal.Document {
	t.Helper()
	return &portal.Document{
		ID:       "income-tax-2025",
		Title:    "The Income-tax Bill, 2025",
		Category: portal.CategoryBill,
		Summary:  "A consolidated income tax law with 536 sections instead of 819.",
		KeyPoints: []string{
			"Reduces sections from 819 to 536",
			"Introduces a unified tax year",
		},
		Journey: []portal.LegislativeStep{
			{Status: "Introduced", House: "Lok Sabha", Date: "13 Feb 2025", Tag: "done"},
			{Status: "Under Review", House: "Committee", Date: "Ongoing", Tag: "active"},
		},
		Timeline: &portal.Timeline{
			Change: portal.TimelineSection{
				Title:   "What changes",
				Summary: "A rewritten law with 536 sections and tabulated exemptions.",
			},
		},
	}
}

func TestAskEmptyQuestionIsNoOp(t *testing.T) {
	backend := &stubBackend{}
	o := New(backend, &stubScope{language: "en"})

	for _, q := range []string{"", "   ", "\n\t"} {
		msg, err := o.Ask(context.Background(), q)
		if err != nil {
			t.Fatalf("Ask(%q): %v", q, err)
		}
		if msg != nil {
			t.Errorf("Ask(%q) should return no message", q)
		}
	}
	if backend.calls != 0 {
		t.Errorf("empty questions made %d backend calls", backend.calls)
	}
	if got := o.Transcript(); len(got) != 0 {
		t.Errorf("transcript grew to %d entries on empty questions", len(got))
	}
}

func TestAskReplacesPlaceholder(t *testing.T) {
	backend := &stubBackend{answers: []portal.Answer{{
		Answer:    "Clause 4 defines the tax year.",
		Citations: []portal.Citation{{Section: "Clause 4", Text: "The tax year means the twelve months starting 1 April.", RelevanceScore: 0.91}},
	}}}
	o := New(backend, &stubScope{id: "income-tax-2025", language: "en", doc: demoDoc(t)})

	msg, err := o.Ask(context.Background(), "What is the tax year?")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if msg.Pending {
		t.Error("returned message still marked pending")
	}
	if msg.Text != "Clause 4 defines the tax year." {
		t.Errorf("answer text: %q", msg.Text)
	}
	if len(msg.Citations) != 1 {
		t.Fatalf("citations: got %d, want 1", len(msg.Citations))
	}

	tr := o.Transcript()
	if len(tr) != 2 {
		t.Fatalf("transcript length: got %d, want 2", len(tr))
	}
	if tr[0].Role != portal.RoleUser || tr[0].Text != "What is the tax year?" {
		t.Errorf("first entry should be the user question, got %+v", tr[0])
	}
	if tr[1].Pending || tr[1].Text == pendingText {
		t.Errorf("placeholder was never replaced: %+v", tr[1])
	}
}

func TestAskOrderAcrossExchanges(t *testing.T) {
	backend := &stubBackend{answers: []portal.Answer{
		{Answer: "first answer"},
		{Answer: "second answer"},
	}}
	o := New(backend, &stubScope{id: "income-tax-2025", language: "en", doc: demoDoc(t)})

	if _, err := o.Ask(context.Background(), "first question"); err != nil {
		t.Fatalf("first Ask: %v", err)
	}
	if _, err := o.Ask(context.Background(), "second question"); err != nil {
		t.Fatalf("second Ask: %v", err)
	}

	tr := o.Transcript()
	wantTexts := []string{"first question", "first answer", "second question", "second answer"}
	if len(tr) != len(wantTexts) {
		t.Fatalf("transcript length: got %d, want %d", len(tr), len(wantTexts))
	}
	for i, want := range wantTexts {
		if tr[i].Text != want {
			t.Errorf("transcript[%d].Text = %q, want %q", i, tr[i].Text, want)
		}
	}
	wantRoles := []portal.Role{portal.RoleUser, portal.RoleAssistant, portal.RoleUser, portal.RoleAssistant}
	for i, want := range wantRoles {
		if tr[i].Role != want {
			t.Errorf("transcript[%d].Role = %q, want %q", i, tr[i].Role, want)
		}
	}
}

func TestAskBackendDownDegradesToOfflineAnswer(t *testing.T) {
	doc := demoDoc(t)
	backend := &stubBackend{down: true}
	o := New(backend, &stubScope{id: doc.ID, language: "en", doc: doc})

	msg, err := o.Ask(context.Background(), "Give me a summary of this bill")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if !strings.Contains(msg.Text, doc.Summary) {
		t.Errorf("offline answer should quote the document summary, got %q", msg.Text)
	}
	if !strings.Contains(msg.Text, "unreachable") {
		t.Errorf("offline answer should carry the unreachable notice, got %q", msg.Text)
	}

	tr := o.Transcript()
	if len(tr) != 2 || tr[1].Pending {
		t.Fatalf("placeholder not replaced after backend failure: %+v", tr)
	}
}

func TestAskBackendDownNoDocument(t *testing.T) {
	backend := &stubBackend{down: true}
	o := New(backend, &stubScope{language: "en"})

	msg, err := o.Ask(context.Background(), "anything at all")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if msg.Role != portal.RoleAssistant || msg.Text == "" {
		t.Errorf("expected an apology message, got %+v", msg)
	}
}

func TestAskScopesToLoadedDocument(t *testing.T) {
	backend := &stubBackend{answers: []portal.Answer{{Answer: "scoped"}}}
	scope := &stubScope{id: "income-tax-2025", language: "hi", doc: demoDoc(t)}
	o := New(backend, scope)

	if _, err := o.Ask(context.Background(), "status?"); err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if backend.calls != 1 {
		t.Errorf("backend calls: got %d, want 1", backend.calls)
	}
}

// blockingBackend holds its first call until release is closed; later
// calls answer immediately.
type blockingBackend struct {
	mu      sync.Mutex
	calls   int
	release chan struct{}
}

func (b *blockingBackend) next() (*portal.Answer, error) {
	b.mu.Lock()
	b.calls++
	first := b.calls == 1
	b.mu.Unlock()
	if first {
		<-b.release
		return &portal.Answer{Answer: "stale"}, nil
	}
	return &portal.Answer{Answer: "fresh"}, nil
}

func (b *blockingBackend) AskDocument(ctx context.Context, id string, req api.AskRequest) (*portal.Answer, error) {
	return b.next()
}

func (b *blockingBackend) Ask(ctx context.Context, req api.AskRequest) (*portal.Answer, error) {
	return b.next()
}

func waitForTranscript(t *testing.T, o *Orchestrator, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(o.Transcript()) == n {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("transcript never reached %d entries (have %d)", n, len(o.Transcript()))
}

func TestClearDuringInFlightAsk(t *testing.T) {
	backend := &blockingBackend{release: make(chan struct{})}
	o := New(backend, &stubScope{language: "en"})

	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, err := o.Ask(context.Background(), "slow question"); err != nil {
			t.Errorf("Ask: %v", err)
		}
	}()

	waitForTranscript(t, o, 2)
	o.Clear()
	close(backend.release)
	<-done

	if got := o.Transcript(); len(got) != 0 {
		t.Fatalf("cleared transcript regained %d entries from a stale completion", len(got))
	}
}

func TestStaleCompletionDoesNotTouchNewTranscript(t *testing.T) {
	backend := &blockingBackend{release: make(chan struct{})}
	o := New(backend, &stubScope{language: "en"})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = o.Ask(context.Background(), "slow question")
	}()

	waitForTranscript(t, o, 2)
	o.Clear()

	if _, err := o.Ask(context.Background(), "new question"); err != nil {
		t.Fatalf("Ask after Clear: %v", err)
	}
	close(backend.release)
	<-done

	tr := o.Transcript()
	if len(tr) != 2 {
		t.Fatalf("transcript length: got %d, want 2", len(tr))
	}
	if tr[0].Text != "new question" || tr[1].Text != "fresh" {
		t.Errorf("stale completion corrupted the new transcript: %+v", tr)
	}
}

func TestClearDropsTranscript(t *testing.T) {
	backend := &stubBackend{answers: []portal.Answer{{Answer: "x"}}}
	o := New(backend, &stubScope{language: "en"})
	if _, err := o.Ask(context.Background(), "q"); err != nil {
		t.Fatalf("Ask: %v", err)
	}
	o.Clear()
	if got := o.Transcript(); len(got) != 0 {
		t.Errorf("transcript not cleared: %d entries", len(got))
	}
}

func TestRuleAnswerFirstMatch(t *testing.T) {
	doc := demoDoc(t)

	cases := []struct {
		question string
		contains string
	}{
		{"Can you summarize this?", doc.Summary},
		{"What are the key points?", "The key points are:"},
		{"Has it passed yet?", doc.Title},
		{"What is the main change?", doc.Timeline.Change.Summary},
		{"xyzzy unrelated question", "Here is the document summary:"},
	}
	for _, tc := range cases {
		got := RuleAnswer(tc.question, doc)
		if !strings.Contains(got, tc.contains) {
			t.Errorf("RuleAnswer(%q) = %q, want substring %q", tc.question, got, tc.contains)
		}
	}
}

func TestRuleAnswerDeterministic(t *testing.T) {
	doc := demoDoc(t)
	first := RuleAnswer("what are the highlights?", doc)
	for i := 0; i < 5; i++ {
		if got := RuleAnswer("what are the highlights?", doc); got != first {
			t.Fatalf("rule answer changed between calls: %q vs %q", got, first)
		}
	}
}
