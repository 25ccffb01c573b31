package fixture

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"govlens/internal/factcheck"
	"govlens/internal/portal"
	"govlens/internal/qa"
)

// ServerConfig holds demo server configuration.
type ServerConfig struct {
	Port     int
	AllowAll bool // allow all CORS origins (dev mode)
}

// Server serves the bundled fixture set over the portal REST surface,
// so the client is fully demonstrable with zero connectivity and tests
// get a real HTTP backend.
type Server struct {
	cfg        ServerConfig
	source     *StaticSource
	router     chi.Router
	httpServer *http.Server
}

// NewServer creates a demo server over the bundled fixtures.
func NewServer(cfg ServerConfig) *Server {
	s := &Server{cfg: cfg, source: NewStaticSource()}
	s.router = s.buildRouter()
	return s
}

// Handler returns the router, for mounting under httptest in tests.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/health", s.handleHealth)
	r.Get("/documents", s.handleListDocuments)
	r.Get("/documents/{id}", s.handleGetDocument)
	r.Get("/documents/{id}/timeline", s.handleGetTimeline)
	r.Post("/documents/{id}/ask", s.handleAskDocument)
	r.Post("/ask", s.handleAsk)
	r.Post("/fact-check", s.handleFactCheck)
	r.Post("/fact-check-url", s.handleFactCheckURL)
	r.Post("/translate", s.handleTranslate)

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("fixture: encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "healthy",
		"version": "demo",
		"services": map[string]bool{
			"documents":  true,
			"fact_check": true,
			"translate":  true,
		},
	})
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	category := portal.Category(r.URL.Query().Get("category"))
	list, err := s.source.Documents(r.Context(), page, category)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.source.Has(id) {
		writeError(w, http.StatusNotFound, "Document not found")
		return
	}
	doc, _ := s.source.Document(r.Context(), id)
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleGetTimeline(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.source.Has(id) {
		writeError(w, http.StatusNotFound, "Document not found")
		return
	}
	doc, _ := s.source.Document(r.Context(), id)
	if doc.Timeline == nil {
		writeError(w, http.StatusBadRequest, "Document timeline not available")
		return
	}
	writeJSON(w, http.StatusOK, doc.Timeline)
}

type askRequest struct {
	Question string `json:"question"`
	Language string `json:"language"`
}

func (s *Server) handleAskDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.source.Has(id) {
		writeError(w, http.StatusNotFound, "Document not found")
		return
	}
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Question) == "" {
		writeError(w, http.StatusBadRequest, "question is required")
		return
	}
	doc, _ := s.source.Document(r.Context(), id)
	s.answer(w, req, doc)
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Question) == "" {
		writeError(w, http.StatusBadRequest, "question is required")
		return
	}
	// Unscoped questions are answered from the default document.
	doc, _ := s.source.Document(r.Context(), DefaultDocumentID)
	s.answer(w, req, doc)
}

func (s *Server) answer(w http.ResponseWriter, req askRequest, doc *portal.Document) {
	lang := req.Language
	if lang == "" {
		lang = "en"
	}
	writeJSON(w, http.StatusOK, portal.Answer{
		Answer: qa.RuleAnswer(req.Question, doc),
		Citations: []portal.Citation{
			{Section: "Summary", Text: truncate(doc.Summary, 200), RelevanceScore: 0.6},
		},
		Confidence: 0.6,
		Language:   lang,
	})
}

type factCheckRequest struct {
	Claim    string `json:"claim"`
	Language string `json:"language"`
}

func (s *Server) handleFactCheck(w http.ResponseWriter, r *http.Request) {
	var req factCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	res := factcheck.FallbackVerdict(req.Claim)
	res.Language = req.Language
	writeJSON(w, http.StatusOK, res)
}

type urlFactCheckRequest struct {
	URL               string `json:"url"`
	AdditionalContext string `json:"additional_context"`
	Language          string `json:"language"`
}

// govtKeywords gate the demo URL checker the same way the live backend
// gates URL content: no keyword hit means "not government related".
var govtKeywords = []string{
	"government", "ministry", "parliament", "lok sabha", "rajya sabha",
	"bill", "act", "policy", "scheme", "income tax", "gst", "budget",
	"election", "section", "amendment", "supreme court",
}

func (s *Server) handleFactCheckURL(w http.ResponseWriter, r *http.Request) {
	var req urlFactCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	parsed, err := url.Parse(req.URL)
	if err != nil || parsed.Host == "" {
		writeError(w, http.StatusBadRequest, "invalid url")
		return
	}

	sourceType := factcheck.SourceTypeForHost(parsed.Hostname())
	content := strings.ToLower(req.URL + " " + req.AdditionalContext)

	var found []string
	for _, kw := range govtKeywords {
		if strings.Contains(content, kw) {
			found = append(found, kw)
		}
	}

	if len(found) == 0 {
		writeJSON(w, http.StatusOK, portal.URLFactCheckResult{
			URL:           req.URL,
			SourceType:    sourceType,
			IsGovtRelated: false,
			Results:       []portal.FactCheckResult{},
			Message: "This content does not appear to be related to government policies, " +
				"bills, or official matters. The fact-checker only verifies claims about " +
				"government-related information.",
		})
		return
	}

	claim := req.AdditionalContext
	if strings.TrimSpace(claim) == "" {
		claim = req.URL
	}
	res := factcheck.FallbackVerdict(claim)
	res.Language = req.Language

	var relevant []string
	for _, ev := range res.Evidence {
		relevant = append(relevant, ev.DocumentTitle)
	}

	writeJSON(w, http.StatusOK, portal.URLFactCheckResult{
		URL:               req.URL,
		SourceType:        sourceType,
		IsGovtRelated:     true,
		ExtractedTitle:    fmt.Sprintf("%s content", sourceType),
		ExtractedClaims:   []string{claim},
		Results:           []portal.FactCheckResult{res},
		GovtKeywordsFound: found,
		Message:           "Checked against the bundled document set.",
		RelevantDocuments: relevant,
	})
}

type translateRequest struct {
	Text           string `json:"text"`
	TargetLanguage string `json:"target_language"`
	SourceLanguage string `json:"source_language"`
}

// handleTranslate tags text with the target language instead of really
// translating, so demo round trips are visible without a translator.
func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	var req translateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}
	if req.TargetLanguage == "" {
		writeError(w, http.StatusBadRequest, "target_language is required")
		return
	}
	source := req.SourceLanguage
	if source == "" {
		source = "en"
	}
	translated := req.Text
	if req.TargetLanguage != source {
		translated = "[" + req.TargetLanguage + "] " + req.Text
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"original_text":   req.Text,
		"translated_text": translated,
		"source_language": source,
		"target_language": req.TargetLanguage,
	})
}

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("govlens demo server listening on %s", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
