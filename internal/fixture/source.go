package fixture

import (
	"context"
	"sort"
	"unicode/utf8"

	"govlens/internal/portal"
)

// Source provides documents. The session controller holds two of these:
// the remote API and this package's static table, falling back to the
// latter when the former fails.
type Source interface {
	Document(ctx context.Context, id string) (*portal.Document, error)
	Documents(ctx context.Context, page int, category portal.Category) (*portal.DocumentList, error)
}

// StaticSource serves the bundled demo documents. It never fails: an
// unknown id resolves to the default document, so the viewer always has
// something to show.
type StaticSource struct{}

// NewStaticSource returns the bundled demo data source.
func NewStaticSource() *StaticSource { return &StaticSource{} }

// Document returns the fixture document for id, or the default document
// when id is empty or unknown.
func (s *StaticSource) Document(_ context.Context, id string) (*portal.Document, error) {
	doc, ok := documents[id]
	if !ok {
		doc = documents[DefaultDocumentID]
	}
	// Deep copy so callers cannot mutate the table through slices or
	// the timeline pointer.
	return doc.Clone(), nil
}

// Documents lists the fixture set, optionally filtered by category.
// Pagination is accepted for interface parity but the fixture set fits
// on one page.
func (s *StaticSource) Documents(_ context.Context, page int, category portal.Category) (*portal.DocumentList, error) {
	if page <= 0 {
		page = 1
	}
	var summaries []portal.DocumentSummary
	for _, doc := range documents {
		if category != "" && doc.Category != category {
			continue
		}
		summaries = append(summaries, portal.DocumentSummary{
			ID:             doc.ID,
			Title:          doc.Title,
			Category:       doc.Category,
			Summary:        truncate(doc.Summary, 300),
			SourceMinistry: doc.SourceMinistry,
			PublishedDate:  doc.PublishedDate,
		})
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].ID < summaries[j].ID })

	return &portal.DocumentList{
		Documents: summaries,
		Total:     len(summaries),
		Page:      page,
		PageSize:  20,
	}, nil
}

// Has reports whether id is present in the fixture table.
func (s *StaticSource) Has(id string) bool {
	_, ok := documents[id]
	return ok
}

// truncate cuts s to max characters on a rune boundary, so translated
// summaries never end in a torn multi-byte sequence.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max]) + "..."
}
