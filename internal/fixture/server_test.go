package fixture

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"govlens/internal/api"
	"govlens/internal/portal"
)

// newDemo mounts the demo router under httptest and returns a client
// pointed at it, which exercises the same wire path the CLI uses.
func newDemo(t *testing.T) *api.Client {
	t.Helper()
	srv := httptest.NewServer(NewServer(ServerConfig{}).Handler())
	t.Cleanup(srv.Close)
	return api.New(srv.URL)
}

func TestServerHealth(t *testing.T) {
	client := newDemo(t)
	if err := client.Health(context.Background()); err != nil {
		t.Fatalf("Health: %v", err)
	}
}

func TestServerListDocuments(t *testing.T) {
	client := newDemo(t)

	list, err := client.ListDocuments(context.Background(), 1, "")
	if err != nil {
		t.Fatalf("ListDocuments: %v", err)
	}
	if list.Total != len(documents) {
		t.Errorf("total: got %d, want %d", list.Total, len(documents))
	}

	bills, err := client.ListDocuments(context.Background(), 1, portal.CategoryBill)
	if err != nil {
		t.Fatalf("ListDocuments(bill): %v", err)
	}
	for _, d := range bills.Documents {
		if d.Category != portal.CategoryBill {
			t.Errorf("category filter leaked %s (%s)", d.ID, d.Category)
		}
	}
}

func TestServerGetDocument(t *testing.T) {
	client := newDemo(t)

	doc, err := client.GetDocument(context.Background(), DefaultDocumentID)
	if err != nil {
		t.Fatalf("GetDocument: %v", err)
	}
	if doc.ID != DefaultDocumentID {
		t.Errorf("got %s, want %s", doc.ID, DefaultDocumentID)
	}

	_, err = client.GetDocument(context.Background(), "no-such-document")
	var apiErr *api.Error
	if !errors.As(err, &apiErr) || apiErr.StatusCode != 404 {
		t.Fatalf("unknown id should 404, got %v", err)
	}
	if !api.IsUnreachable(err) {
		t.Error("a 404 must send callers to the bundled fallback")
	}
}

func TestServerGetTimeline(t *testing.T) {
	client := newDemo(t)

	tl, err := client.GetTimeline(context.Background(), DefaultDocumentID, "en")
	if err != nil {
		t.Fatalf("GetTimeline: %v", err)
	}
	if tl.Change.Summary == "" {
		t.Error("timeline change phase is empty")
	}
}

func TestServerAskDocument(t *testing.T) {
	client := newDemo(t)

	ans, err := client.AskDocument(context.Background(), DefaultDocumentID, api.AskRequest{
		Question: "what are the key points?",
		Language: "en",
	})
	if err != nil {
		t.Fatalf("AskDocument: %v", err)
	}
	if !strings.Contains(ans.Answer, "key points") {
		t.Errorf("rule answer not applied: %q", ans.Answer)
	}
	if len(ans.Citations) == 0 {
		t.Error("demo answer carries no citation")
	}

	_, err = client.AskDocument(context.Background(), DefaultDocumentID, api.AskRequest{Question: "   "})
	var apiErr *api.Error
	if !errors.As(err, &apiErr) || apiErr.StatusCode != 400 {
		t.Errorf("blank question should 400, got %v", err)
	}
}

func TestServerFactCheck(t *testing.T) {
	client := newDemo(t)

	res, err := client.CheckClaim(context.Background(), api.FactCheckRequest{
		Claim:    "The new bill has 536 sections instead of 819.",
		Language: "en",
	})
	if err != nil {
		t.Fatalf("CheckClaim: %v", err)
	}
	if res.Verdict != portal.VerdictTrue {
		t.Errorf("verdict: got %s, want true", res.Verdict)
	}
	if res.Language != "en" {
		t.Errorf("language not echoed: %q", res.Language)
	}
}

func TestServerFactCheckURLNotRelated(t *testing.T) {
	client := newDemo(t)

	res, err := client.CheckURL(context.Background(), api.URLFactCheckRequest{
		URL:               "https://x.com/someone/status/1",
		AdditionalContext: "my cat learned a new trick",
	})
	if err != nil {
		t.Fatalf("CheckURL: %v", err)
	}
	if res.IsGovtRelated {
		t.Error("cat content flagged as government related")
	}
	if res.SourceType != portal.SourceTwitter {
		t.Errorf("source type: got %s, want twitter", res.SourceType)
	}
	if res.Message == "" {
		t.Error("not-related response carries no explanation")
	}
}

func TestServerFactCheckURLRelated(t *testing.T) {
	client := newDemo(t)

	res, err := client.CheckURL(context.Background(), api.URLFactCheckRequest{
		URL:               "https://www.youtube.com/watch?v=abc",
		AdditionalContext: "The income tax bill replaces the old act with 536 sections.",
	})
	if err != nil {
		t.Fatalf("CheckURL: %v", err)
	}
	if !res.IsGovtRelated {
		t.Fatal("tax content not flagged as government related")
	}
	if res.SourceType != portal.SourceYouTube {
		t.Errorf("source type: got %s, want youtube", res.SourceType)
	}
	if len(res.Results) != 1 {
		t.Fatalf("results: got %d, want 1", len(res.Results))
	}
	if res.Results[0].Verdict != portal.VerdictTrue {
		t.Errorf("verdict: got %s, want true", res.Results[0].Verdict)
	}
	if len(res.GovtKeywordsFound) == 0 {
		t.Error("matched keywords not reported")
	}
}

func TestServerFactCheckURLInvalid(t *testing.T) {
	client := newDemo(t)

	_, err := client.CheckURL(context.Background(), api.URLFactCheckRequest{URL: "not a url"})
	var apiErr *api.Error
	if !errors.As(err, &apiErr) || apiErr.StatusCode != 400 {
		t.Errorf("invalid url should 400, got %v", err)
	}
}

func TestServerTranslate(t *testing.T) {
	client := newDemo(t)

	resp, err := client.Translate(context.Background(), api.TranslateRequest{
		Text:           "A new income tax law.",
		TargetLanguage: "hi",
		SourceLanguage: "en",
	})
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if resp.TranslatedText != "[hi] A new income tax law." {
		t.Errorf("translated text: %q", resp.TranslatedText)
	}

	// Same-language round trips echo the input.
	resp, err = client.Translate(context.Background(), api.TranslateRequest{
		Text:           "unchanged",
		TargetLanguage: "en",
		SourceLanguage: "en",
	})
	if err != nil {
		t.Fatalf("Translate same language: %v", err)
	}
	if resp.TranslatedText != "unchanged" {
		t.Errorf("same-language translation mutated text: %q", resp.TranslatedText)
	}
}
