package portal

// Verdict is the outcome of a fact check.
type Verdict string

const (
	VerdictTrue          Verdict = "true"
	VerdictFalse         Verdict = "false"
	VerdictPartiallyTrue Verdict = "partially_true"
	VerdictUnverifiable  Verdict = "unverifiable"
)

// Label returns the display label for a verdict. Any value outside the
// four enumerated verdicts maps to "UNKNOWN" rather than leaking raw
// backend strings into the UI.
func (v Verdict) Label() string {
	switch v {
	case VerdictTrue:
		return "TRUE"
	case VerdictFalse:
		return "FALSE"
	case VerdictPartiallyTrue:
		return "PARTIALLY TRUE"
	case VerdictUnverifiable:
		return "UNVERIFIABLE"
	default:
		return "UNKNOWN"
	}
}

// Valid reports whether v is one of the four enumerated verdicts.
func (v Verdict) Valid() bool {
	switch v {
	case VerdictTrue, VerdictFalse, VerdictPartiallyTrue, VerdictUnverifiable:
		return true
	}
	return false
}

// ConfidencePercent converts a [0,1] confidence to a whole percent,
// clamped to [0,100] for display.
func ConfidencePercent(confidence float64) int {
	pct := int(confidence*100 + 0.5)
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// Evidence is a quoted passage supporting or contradicting a claim.
type Evidence struct {
	DocumentID    string `json:"document_id"`
	DocumentTitle string `json:"document_title"`
	Page          int    `json:"page,omitempty"`
	Section       string `json:"section,omitempty"`
	Quote         string `json:"quote"`
	SupportsClaim bool   `json:"supports_claim"`
}

// FactCheckResult is the verdict for a single claim. Ephemeral:
// recomputed on every check, never persisted as-is.
type FactCheckResult struct {
	Claim       string     `json:"claim"`
	Verdict     Verdict    `json:"verdict"`
	Confidence  float64    `json:"confidence"`
	Explanation string     `json:"explanation"`
	Evidence    []Evidence `json:"evidence"`
	Language    string     `json:"language,omitempty"`
}

// SourceType identifies where a fact-checked URL points.
type SourceType string

const (
	SourceYouTube   SourceType = "youtube"
	SourceTwitter   SourceType = "twitter"
	SourceInstagram SourceType = "instagram"
	SourceFacebook  SourceType = "facebook"
	SourceArticle   SourceType = "article"
)

// URLFactCheckResult is the backend's response to a URL check. Only the
// first entry of Results is displayed even when several claims were
// extracted and checked.
type URLFactCheckResult struct {
	URL               string            `json:"url"`
	SourceType        SourceType        `json:"source_type"`
	IsGovtRelated     bool              `json:"is_govt_related"`
	ExtractedTitle    string            `json:"extracted_title,omitempty"`
	ExtractedClaims   []string          `json:"extracted_claims,omitempty"`
	Results           []FactCheckResult `json:"fact_check_results"`
	GovtKeywordsFound []string          `json:"govt_keywords_found,omitempty"`
	Message           string            `json:"message"`
	RelevantDocuments []string          `json:"relevant_documents,omitempty"`
}
