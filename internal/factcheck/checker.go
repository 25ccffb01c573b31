// Package factcheck verifies claims and URLs against the portal backend,
// degrading to a deterministic local rule table when the backend cannot
// answer. Validation failures never reach the network.
package factcheck

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"
	"unicode/utf8"

	"govlens/internal/api"
	"govlens/internal/portal"
	"govlens/internal/store"
)

// ErrValidation marks user input rejected before any network call.
var ErrValidation = errors.New("validation failed")

// ValidationError carries the user-visible message for rejected input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrValidation }

// minClaimLength is the shortest claim worth checking.
const minClaimLength = 10

// Backend is the slice of the API client the checker needs.
type Backend interface {
	CheckClaim(ctx context.Context, req api.FactCheckRequest) (*portal.FactCheckResult, error)
	CheckURL(ctx context.Context, req api.URLFactCheckRequest) (*portal.URLFactCheckResult, error)
}

// History records completed checks. Satisfied by *store.Store.
type History interface {
	LogFactCheck(ctx context.Context, entry store.FactCheckEntry) error
}

// Checker orchestrates claim and URL fact checks.
type Checker struct {
	backend  Backend
	history  History
	language string
}

// New creates a Checker. history may be nil to disable history logging.
func New(backend Backend, history History, language string) *Checker {
	if language == "" {
		language = "en"
	}
	return &Checker{backend: backend, history: history, language: language}
}

// Outcome is a completed claim check plus where the verdict came from.
type Outcome struct {
	Result portal.FactCheckResult
	Source store.FactCheckSource
}

// CheckClaim verifies a free-text claim. Claims shorter than ten
// characters are rejected with a *ValidationError before any request is
// made. Backend failures of any kind fall back to the offline rule table.
func (c *Checker) CheckClaim(ctx context.Context, claim string) (*Outcome, error) {
	trimmed := strings.TrimSpace(claim)
	if utf8.RuneCountInString(trimmed) < minClaimLength {
		return nil, &ValidationError{Message: "Please enter a claim of at least 10 characters to fact-check."}
	}

	outcome := &Outcome{Source: store.SourceBackend}
	res, err := c.backend.CheckClaim(ctx, api.FactCheckRequest{Claim: trimmed, Language: c.language})
	switch {
	case err == nil:
		outcome.Result = *res
	case api.IsUnreachable(err):
		outcome.Result = FallbackVerdict(trimmed)
		outcome.Source = store.SourceFallback
	default:
		return nil, fmt.Errorf("checking claim: %w", err)
	}

	c.log(ctx, store.FactCheckEntry{
		Kind:       store.KindClaim,
		Input:      trimmed,
		Verdict:    string(outcome.Result.Verdict),
		Confidence: outcome.Result.Confidence,
		Source:     outcome.Source,
	})
	return outcome, nil
}

// URLOutcomeState says how a URL check result should be presented.
type URLOutcomeState string

const (
	// URLVerdict renders a verdict banner from Result.
	URLVerdict URLOutcomeState = "verdict"
	// URLNotRelated renders the "not government related" notice; no
	// verdict banner is shown even when the backend returned results.
	URLNotRelated URLOutcomeState = "not_related"
	// URLNoResult renders an unverifiable state built from the
	// backend's top-level message.
	URLNoResult URLOutcomeState = "no_result"
)

// URLOutcome is a completed URL check.
type URLOutcome struct {
	State      URLOutcomeState
	SourceType portal.SourceType
	Title      string
	Message    string
	Keywords   []string
	Result     *portal.FactCheckResult
	Source     store.FactCheckSource
}

// CheckURL fact-checks content behind a URL. Malformed URLs are rejected
// with a *ValidationError before any request is made. When the backend
// fails, the source type is inferred from the host and the claim
// fallback table is applied to the additional context (or the URL itself).
func (c *Checker) CheckURL(ctx context.Context, rawURL, additionalContext string) (*URLOutcome, error) {
	rawURL = strings.TrimSpace(rawURL)
	parsed, err := url.Parse(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, &ValidationError{Message: "Please enter a valid URL starting with http:// or https://."}
	}

	res, err := c.backend.CheckURL(ctx, api.URLFactCheckRequest{
		URL:               rawURL,
		AdditionalContext: additionalContext,
		Language:          c.language,
	})
	var outcome *URLOutcome
	switch {
	case err == nil:
		outcome = interpretURLResult(res)
		outcome.Source = store.SourceBackend
	case api.IsUnreachable(err):
		claim := additionalContext
		if strings.TrimSpace(claim) == "" {
			claim = rawURL
		}
		fallback := FallbackVerdict(claim)
		outcome = &URLOutcome{
			State:      URLVerdict,
			SourceType: SourceTypeForHost(parsed.Hostname()),
			Message:    "The fact-check service is unreachable; showing an offline verdict based on bundled documents.",
			Result:     &fallback,
			Source:     store.SourceFallback,
		}
	default:
		return nil, fmt.Errorf("checking url: %w", err)
	}

	verdict := ""
	confidence := 0.0
	if outcome.Result != nil {
		verdict = string(outcome.Result.Verdict)
		confidence = outcome.Result.Confidence
	}
	c.log(ctx, store.FactCheckEntry{
		Kind:       store.KindURL,
		Input:      rawURL,
		Verdict:    verdict,
		Confidence: confidence,
		Source:     outcome.Source,
	})
	return outcome, nil
}

// interpretURLResult maps a backend URL response onto a display state.
// Only the first fact-check result is ever shown.
func interpretURLResult(res *portal.URLFactCheckResult) *URLOutcome {
	out := &URLOutcome{
		SourceType: res.SourceType,
		Title:      res.ExtractedTitle,
		Message:    res.Message,
		Keywords:   res.GovtKeywordsFound,
	}

	if !res.IsGovtRelated {
		out.State = URLNotRelated
		return out
	}

	if len(res.Results) == 0 {
		out.State = URLNoResult
		out.Result = &portal.FactCheckResult{
			Verdict:     portal.VerdictUnverifiable,
			Confidence:  0,
			Explanation: res.Message,
			Evidence:    []portal.Evidence{},
		}
		return out
	}

	first := res.Results[0]
	out.State = URLVerdict
	out.Result = &first
	return out
}

// SourceTypeForHost classifies a URL host the same way the backend does.
func SourceTypeForHost(host string) portal.SourceType {
	host = strings.ToLower(host)
	switch {
	case strings.Contains(host, "youtube.com") || strings.Contains(host, "youtu.be"):
		return portal.SourceYouTube
	case strings.Contains(host, "twitter.com") || host == "x.com" || strings.HasSuffix(host, ".x.com"):
		return portal.SourceTwitter
	case strings.Contains(host, "instagram.com"):
		return portal.SourceInstagram
	case strings.Contains(host, "facebook.com") || strings.Contains(host, "fb.com"):
		return portal.SourceFacebook
	default:
		return portal.SourceArticle
	}
}

// log records a completed check. History is best-effort: a logging
// failure never affects the outcome already computed.
func (c *Checker) log(ctx context.Context, entry store.FactCheckEntry) {
	if c.history == nil {
		return
	}
	if err := c.history.LogFactCheck(ctx, entry); err != nil {
		log.Printf("factcheck: recording history: %v", err)
	}
}
