package portal

import "time"

// Category classifies a policy document.
type Category string

const (
	CategoryBill         Category = "bill"
	CategoryAct          Category = "act"
	CategoryNotification Category = "notification"
	CategoryReport       Category = "report"
	CategoryJudgment     Category = "judgment"
	CategoryPolicy       Category = "policy"
)

// TimelineSection is one phase of the before/change/result timeline.
type TimelineSection struct {
	Title           string   `json:"title"`
	Summary         string   `json:"summary"`
	KeyPoints       []string `json:"key_points"`
	SourceReference string   `json:"source_reference,omitempty"`
}

// Timeline is the "simply put" three-phase view of a document: how things
// were before, what the document changes, and what the result will be.
type Timeline struct {
	Before TimelineSection `json:"before"`
	Change TimelineSection `json:"change"`
	Result TimelineSection `json:"result"`
}

// LegislativeStep is one milestone in a bill's journey through the houses.
type LegislativeStep struct {
	Status string `json:"status"`
	House  string `json:"house"`
	Date   string `json:"date"`
	Tag    string `json:"tag"` // status classification: done, active, pending
}

// Document is a government policy document as served by the portal API.
// Immutable once loaded; a new load fully replaces the previous one.
type Document struct {
	ID             string            `json:"id"`
	Title          string            `json:"title"`
	Category       Category          `json:"category"`
	SourceMinistry string            `json:"source_ministry,omitempty"`
	PublishedDate  *time.Time        `json:"published_date,omitempty"`
	PageCount      int               `json:"page_count,omitempty"`
	PDFURL         string            `json:"pdf_url,omitempty"`
	Summary        string            `json:"summary"`
	KeyPoints      []string          `json:"key_points"`
	Journey        []LegislativeStep `json:"journey,omitempty"`
	Timeline       *Timeline         `json:"timeline,omitempty"`
}

// Clone returns a deep copy: slices, the published date, and the
// timeline are all detached from the receiver.
func (d Document) Clone() *Document {
	out := d
	out.KeyPoints = append([]string(nil), d.KeyPoints...)
	out.Journey = append([]LegislativeStep(nil), d.Journey...)
	if d.PublishedDate != nil {
		published := *d.PublishedDate
		out.PublishedDate = &published
	}
	if d.Timeline != nil {
		tl := *d.Timeline
		tl.Before.KeyPoints = append([]string(nil), d.Timeline.Before.KeyPoints...)
		tl.Change.KeyPoints = append([]string(nil), d.Timeline.Change.KeyPoints...)
		tl.Result.KeyPoints = append([]string(nil), d.Timeline.Result.KeyPoints...)
		out.Timeline = &tl
	}
	return &out
}

// DocumentSummary is the card view returned by document listings.
type DocumentSummary struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Category       Category   `json:"category"`
	Summary        string     `json:"summary"`
	SourceMinistry string     `json:"source_ministry,omitempty"`
	PublishedDate  *time.Time `json:"published_date,omitempty"`
}

// DocumentList is a paginated listing response.
type DocumentList struct {
	Documents []DocumentSummary `json:"documents"`
	Total     int               `json:"total"`
	Page      int               `json:"page"`
	PageSize  int               `json:"page_size"`
}

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Citation points at the passage an answer was grounded on.
type Citation struct {
	Page           int     `json:"page,omitempty"`
	Section        string  `json:"section,omitempty"`
	Text           string  `json:"text"`
	RelevanceScore float64 `json:"relevance_score"`
}

// ChatMessage is one entry in a Q&A transcript. Pending marks the
// placeholder shown while a round trip is in flight; it is always
// replaced in place by the final answer.
type ChatMessage struct {
	Role      Role       `json:"role"`
	Text      string     `json:"text"`
	Citations []Citation `json:"citations,omitempty"`
	Pending   bool       `json:"-"`
}

// Answer is the backend's response to a question.
type Answer struct {
	Answer     string     `json:"answer"`
	Citations  []Citation `json:"citations"`
	Confidence float64    `json:"confidence"`
	Language   string     `json:"language"`
}
