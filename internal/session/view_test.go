package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"govlens/internal/portal"
)

func TestRenderJourneyNoTrailingArrow(t *testing.T) {
	steps := []portal.LegislativeStep{
		{Status: "Introduced", House: "Lok Sabha", Date: "13 Feb 2025"},
		{Status: "Passed", House: "Lok Sabha", Date: "Mar 2025"},
		{Status: "Pending", House: "Rajya Sabha", Date: "TBD"},
	}
	line := renderJourney(steps)
	if strings.HasSuffix(line, "->") || strings.HasSuffix(line, "-> ") {
		t.Errorf("journey has a trailing arrow: %q", line)
	}
	if got := strings.Count(line, "->"); got != len(steps)-1 {
		t.Errorf("arrow count: got %d, want %d", got, len(steps)-1)
	}
}

func TestRenderJourneyEmpty(t *testing.T) {
	if line := renderJourney(nil); line != "" {
		t.Errorf("empty journey should render empty, got %q", line)
	}
}

func TestRenderViewBodyMode(t *testing.T) {
	doc := &portal.Document{ID: "d", Title: "T", Summary: "s", PDFURL: "/files/d.pdf"}

	if v := renderView(doc, "en", true); v.BodyMode != BodyPDF {
		t.Errorf("probe ok: got %s, want pdf", v.BodyMode)
	}
	if v := renderView(doc, "en", false); v.BodyMode != BodySummary {
		t.Errorf("probe failed: got %s, want summary", v.BodyMode)
	}

	doc.PDFURL = ""
	if v := renderView(doc, "en", true); v.BodyMode != BodySummary {
		t.Errorf("no pdf url: got %s, want summary", v.BodyMode)
	}
}

func TestPDFProber(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Errorf("expected HEAD, got %s", r.Method)
		}
		switch r.URL.Path {
		case "/files/good.pdf":
			w.Header().Set("Content-Type", "application/pdf")
		case "/files/page.html":
			w.Header().Set("Content-Type", "text/html")
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	prober := NewPDFProber(srv.URL, time.Second)
	ctx := context.Background()

	if !prober.Embeddable(ctx, "/files/good.pdf") {
		t.Error("pdf content type should be embeddable")
	}
	if prober.Embeddable(ctx, "/files/page.html") {
		t.Error("html content type should not be embeddable")
	}
	if prober.Embeddable(ctx, "/files/missing.pdf") {
		t.Error("404 should not be embeddable")
	}
	if prober.Embeddable(ctx, "") {
		t.Error("empty url should not be embeddable")
	}
}

func TestPDFProberTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Header().Set("Content-Type", "application/pdf")
	}))
	defer srv.Close()

	prober := NewPDFProber(srv.URL, 20*time.Millisecond)
	if prober.Embeddable(context.Background(), "/files/slow.pdf") {
		t.Error("a slow file server must fall back to the summary view")
	}
}
