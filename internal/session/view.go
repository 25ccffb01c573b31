package session

import (
	"fmt"
	"strings"

	"govlens/internal/portal"
)

// BodyMode says what the document body panel shows.
type BodyMode string

const (
	// BodyPDF embeds the source PDF.
	BodyPDF BodyMode = "pdf"
	// BodySummary shows the textual summary instead, used whenever the
	// PDF cannot be confirmed embeddable.
	BodySummary BodyMode = "summary"
)

// PhaseView is one rendered timeline phase.
type PhaseView struct {
	Title     string
	Summary   string
	KeyPoints []string
}

// DocumentView is the fully rendered article panel. Rendering always
// builds a fresh view from the Document, so loading the same document
// twice yields identical views and stale panel content can never leak
// through.
type DocumentView struct {
	DocumentID string
	Title      string
	Category   string
	Ministry   string
	Published  string
	PageCount  int
	Summary    string
	KeyPoints  []string
	Journey    string
	Phases     []PhaseView
	BodyMode   BodyMode
	PDFURL     string
	Language   string
}

// renderView builds the view for doc. pdfOK is the outcome of the embed
// probe; when false the body falls back to the summary.
func renderView(doc *portal.Document, language string, pdfOK bool) *DocumentView {
	v := &DocumentView{
		DocumentID: doc.ID,
		Title:      doc.Title,
		Category:   strings.ToUpper(string(doc.Category)),
		Ministry:   doc.SourceMinistry,
		PageCount:  doc.PageCount,
		Summary:    doc.Summary,
		KeyPoints:  append([]string(nil), doc.KeyPoints...),
		Journey:    renderJourney(doc.Journey),
		BodyMode:   BodySummary,
		PDFURL:     doc.PDFURL,
		Language:   language,
	}
	if doc.PublishedDate != nil {
		v.Published = doc.PublishedDate.Format("2 January 2006")
	}
	if pdfOK && doc.PDFURL != "" {
		v.BodyMode = BodyPDF
	}
	if doc.Timeline != nil {
		for _, section := range []portal.TimelineSection{doc.Timeline.Before, doc.Timeline.Change, doc.Timeline.Result} {
			v.Phases = append(v.Phases, PhaseView{
				Title:     section.Title,
				Summary:   section.Summary,
				KeyPoints: append([]string(nil), section.KeyPoints...),
			})
		}
	}
	return v
}

// renderJourney joins the legislative steps left to right. The last step
// carries no trailing arrow.
func renderJourney(steps []portal.LegislativeStep) string {
	if len(steps) == 0 {
		return ""
	}
	parts := make([]string, 0, len(steps))
	for _, step := range steps {
		parts = append(parts, fmt.Sprintf("%s (%s, %s)", step.Status, step.House, step.Date))
	}
	return strings.Join(parts, " -> ")
}
