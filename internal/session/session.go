// Package session holds the state of one document viewing session: the
// current document, the display language, and the panel flag. It is the
// explicit replacement for what a browser page keeps in globals, with
// defined initialization (New) and teardown (Close).
package session

import (
	"context"
	"fmt"
	"log"
	"sync"

	"govlens/internal/api"
	"govlens/internal/config"
	"govlens/internal/fixture"
	"govlens/internal/portal"
	"govlens/internal/translate"
)

// Prefs persists the preferred language across sessions. Satisfied by
// *store.Store.
type Prefs interface {
	Language(ctx context.Context, fallback string) (string, error)
	SetLanguage(ctx context.Context, code string) error
}

// RemoteSource adapts the API client to the fixture.Source interface.
type RemoteSource struct {
	Client *api.Client
}

func (r *RemoteSource) Document(ctx context.Context, id string) (*portal.Document, error) {
	return r.Client.GetDocument(ctx, id)
}

func (r *RemoteSource) Documents(ctx context.Context, page int, category portal.Category) (*portal.DocumentList, error) {
	return r.Client.ListDocuments(ctx, page, category)
}

// Session is the per-run viewing session. All fields are guarded by mu;
// orchestrators share one Session.
type Session struct {
	mu sync.Mutex

	remote    fixture.Source
	local     *fixture.StaticSource
	prober    *PDFProber
	prefs     Prefs
	pass      *translate.Pass
	language  string
	panelOpen bool

	doc   *portal.Document
	view  *DocumentView
	pdfOK bool
}

// Options configures a Session.
type Options struct {
	Remote fixture.Source // nil forces fixture-only (demo) operation
	Prober *PDFProber     // nil disables the PDF probe (summary body)
	Prefs  Prefs          // nil keeps language in memory only
	Pass   *translate.Pass
}

// New initializes a session. The preferred language is restored from
// Prefs when available, defaulting to the source language.
func New(ctx context.Context, opts Options) *Session {
	s := &Session{
		remote:   opts.Remote,
		local:    fixture.NewStaticSource(),
		prober:   opts.Prober,
		prefs:    opts.Prefs,
		pass:     opts.Pass,
		language: config.SourceLanguage,
	}
	if s.prefs != nil {
		lang, err := s.prefs.Language(ctx, config.SourceLanguage)
		if err != nil {
			log.Printf("session: restoring language preference: %v", err)
		} else {
			s.language = lang
		}
	}
	return s
}

// Close tears the session down. Transcript and view state do not
// survive it; only the language preference (already persisted) does.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = nil
	s.view = nil
	s.panelOpen = false
}

// Language returns the current display language.
func (s *Session) Language() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.language
}

// DocumentID returns the id of the loaded document, or "" before any load.
func (s *Session) DocumentID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return ""
	}
	return s.doc.ID
}

// Document returns the loaded document, or nil.
func (s *Session) Document() *portal.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc
}

// View returns the rendered view of the loaded document, or nil.
func (s *Session) View() *DocumentView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// SetPanelOpen records whether the article panel is open.
func (s *Session) SetPanelOpen(open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.panelOpen = open
}

// PanelOpen reports whether the article panel is open.
func (s *Session) PanelOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.panelOpen
}

// LoadDocument loads and renders the document with the given id. An
// empty id means the default document. Any remote failure — transport
// error, non-2xx, undecodable body — falls back to the bundled fixture
// table, where an unknown id also resolves to the default document.
// Rendering fully replaces any previous view.
func (s *Session) LoadDocument(ctx context.Context, id string) (*DocumentView, error) {
	if id == "" {
		id = fixture.DefaultDocumentID
	}

	doc, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}

	pdfOK := false
	if s.prober != nil {
		pdfOK = s.prober.Embeddable(ctx, doc.PDFURL)
	}

	s.mu.Lock()
	language := s.language
	s.mu.Unlock()

	view := renderView(doc, language, pdfOK)
	s.translateView(ctx, view, language)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = doc
	s.pdfOK = pdfOK
	s.view = view
	s.panelOpen = true
	return s.view, nil
}

// translateView runs the best-effort translation pass over the view's
// prose fields and returns how many were translated. A source-language
// view needs no pass at all.
func (s *Session) translateView(ctx context.Context, view *DocumentView, code string) int {
	if code == config.SourceLanguage || s.pass == nil {
		return 0
	}
	// Summary plus the three timeline phase summaries, each on its own:
	// one failed field must not hold the others back.
	fields := []*string{&view.Summary}
	for i := range view.Phases {
		fields = append(fields, &view.Phases[i].Summary)
	}
	return s.pass.Fields(ctx, code, config.SourceLanguage, fields)
}

// fetch resolves a document id remote-first, fixture-second.
func (s *Session) fetch(ctx context.Context, id string) (*portal.Document, error) {
	if s.remote != nil {
		doc, err := s.remote.Document(ctx, id)
		if err == nil {
			return doc, nil
		}
		if !api.IsUnreachable(err) {
			return nil, fmt.Errorf("loading document %s: %w", id, err)
		}
		log.Printf("session: backend unavailable for document %s, using bundled data: %v", id, err)
	}
	return s.local.Document(ctx, id)
}

// ListDocuments lists the catalog remote-first, fixture-second.
func (s *Session) ListDocuments(ctx context.Context, page int, category portal.Category) (*portal.DocumentList, error) {
	if s.remote != nil {
		list, err := s.remote.Documents(ctx, page, category)
		if err == nil {
			return list, nil
		}
		if !api.IsUnreachable(err) {
			return nil, fmt.Errorf("listing documents: %w", err)
		}
		log.Printf("session: backend unavailable for listing, using bundled data: %v", err)
	}
	return s.local.Documents(ctx, page, category)
}

// SetLanguage switches the display language, persists the preference,
// and retranslates the current view. Switching back to the source
// language reloads original-language content in full instead of issuing
// translation calls. Returns the number of fields translated.
func (s *Session) SetLanguage(ctx context.Context, code string) (int, error) {
	if _, ok := config.SupportedLanguages[code]; !ok {
		return 0, fmt.Errorf("unsupported language %q", code)
	}

	s.mu.Lock()
	prev := s.language
	s.language = code
	doc := s.doc
	pdfOK := s.pdfOK
	s.mu.Unlock()

	if s.prefs != nil {
		if err := s.prefs.SetLanguage(ctx, code); err != nil {
			log.Printf("session: persisting language preference: %v", err)
		}
	}

	if code == prev || doc == nil {
		return 0, nil
	}

	// The loaded Document is immutable and always source-language, so a
	// switch always starts from a fresh original-language render. For
	// the source language that full replacement is the whole operation:
	// no translator round trip.
	view := renderView(doc, code, pdfOK)
	n := s.translateView(ctx, view, code)

	s.mu.Lock()
	s.view = view
	s.mu.Unlock()
	return n, nil
}
