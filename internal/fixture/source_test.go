package fixture

import (
	"context"
	"reflect"
	"testing"
	"unicode/utf8"

	"govlens/internal/portal"
)

func TestStaticSourceUnknownIDResolvesToDefault(t *testing.T) {
	src := NewStaticSource()
	ctx := context.Background()

	def, err := src.Document(ctx, DefaultDocumentID)
	if err != nil {
		t.Fatalf("Document(default): %v", err)
	}
	for _, id := range []string{"", "no-such-document", "INCOME-TAX-2025"} {
		got, err := src.Document(ctx, id)
		if err != nil {
			t.Fatalf("Document(%q): %v", id, err)
		}
		if !reflect.DeepEqual(got, def) {
			t.Errorf("Document(%q) should resolve to the default document", id)
		}
	}
}

func TestStaticSourceReturnsCopies(t *testing.T) {
	src := NewStaticSource()
	ctx := context.Background()

	first, _ := src.Document(ctx, DefaultDocumentID)
	first.Title = "mutated"
	first.KeyPoints[0] = "mutated"
	first.Journey[0].Status = "mutated"
	first.Timeline.Change.Summary = "mutated"

	second, _ := src.Document(ctx, DefaultDocumentID)
	if second.Title == "mutated" {
		t.Error("mutating a returned document changed the fixture table")
	}
	if second.KeyPoints[0] == "mutated" {
		t.Error("key points alias the fixture table")
	}
	if second.Journey[0].Status == "mutated" {
		t.Error("journey steps alias the fixture table")
	}
	if second.Timeline.Change.Summary == "mutated" {
		t.Error("timeline aliases the fixture table")
	}
}

func TestStaticSourceListSortedAndFiltered(t *testing.T) {
	src := NewStaticSource()
	ctx := context.Background()

	list, err := src.Documents(ctx, 0, "")
	if err != nil {
		t.Fatalf("Documents: %v", err)
	}
	if list.Page != 1 {
		t.Errorf("page <= 0 should normalize to 1, got %d", list.Page)
	}
	for i := 1; i < len(list.Documents); i++ {
		if list.Documents[i-1].ID > list.Documents[i].ID {
			t.Fatalf("listing not sorted by id: %s before %s",
				list.Documents[i-1].ID, list.Documents[i].ID)
		}
	}

	reports, err := src.Documents(ctx, 1, portal.CategoryReport)
	if err != nil {
		t.Fatalf("Documents(report): %v", err)
	}
	for _, d := range reports.Documents {
		if d.Category != portal.CategoryReport {
			t.Errorf("filter leaked %s (%s)", d.ID, d.Category)
		}
	}
	if reports.Total >= list.Total {
		t.Errorf("report filter did not narrow the set: %d vs %d", reports.Total, list.Total)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("short string mutated: %q", got)
	}
	if got := truncate("abcdefghij", 4); got != "abcd..." {
		t.Errorf("truncate: got %q, want %q", got, "abcd...")
	}

	// Multi-byte text cuts on a rune boundary, never mid-sequence.
	got := truncate("नया कर कानून", 6)
	if got != "नया कर..." {
		t.Errorf("truncate: got %q, want %q", got, "नया कर...")
	}
	if !utf8.ValidString(got) {
		t.Errorf("truncate produced invalid UTF-8: %q", got)
	}
}
