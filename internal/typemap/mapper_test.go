package typemap

import (
	"bytes"
	"strings"
	"testing"

	"github.com/BIBSYSDEV/nva-publication-api-sub014/internal/publication"
	"github.com/rs/zerolog"
)

func TestMap_CombinationTakesPrecedence(t *testing.T) {
	m := NewMapper()

	got := m.Map([]string{"Book", "Peer reviewed"})
	if got.Type != ScientificMonograph {
		t.Errorf("expected %q, got %q", ScientificMonograph, got.Type)
	}
	if got.Status != Exact {
		t.Errorf("expected exact mapping, got %s", got.Status)
	}

	// Order of tags must not matter
	got = m.Map([]string{"peer reviewed", "BOOK"})
	if got.Type != ScientificMonograph {
		t.Errorf("reversed order: expected %q, got %q", ScientificMonograph, got.Type)
	}
}

func TestMap_SingleTag(t *testing.T) {
	m := NewMapper()

	tests := []struct {
		tag  string
		want Type
	}{
		{"Book", Book},
		{"Journal article", JournalArticle},
		{"Master thesis", MasterThesis},
		{"  report ", Report},
	}
	for _, tt := range tests {
		got := m.Map([]string{tt.tag})
		if got.Type != tt.want || got.Status != Exact {
			t.Errorf("Map(%q) = %+v, want %q exact", tt.tag, got, tt.want)
		}
	}
}

func TestMap_FallbackIsDegradedAndLogged(t *testing.T) {
	var buf bytes.Buffer
	m := NewMapper(WithLogger(zerolog.New(&buf)))

	got := m.Map([]string{"Book", "UnknownTag"})
	if got.Type != Book {
		t.Errorf("expected %q, got %q", Book, got.Type)
	}
	if got.Status != Degraded {
		t.Errorf("expected degraded, got %s", got.Status)
	}
	if len(got.DroppedTags) != 1 || got.DroppedTags[0] != "UnknownTag" {
		t.Errorf("expected UnknownTag dropped, got %v", got.DroppedTags)
	}
	if !strings.Contains(buf.String(), "degraded type mapping") {
		t.Errorf("expected degraded mapping to be logged, got %q", buf.String())
	}
}

func TestMap_FallbackPrefersFirstMappableTag(t *testing.T) {
	m := NewMapper()

	got := m.Map([]string{"UnknownTag", "Report", "Book"})
	if got.Type != Report {
		t.Errorf("expected first mappable tag Report, got %q", got.Type)
	}
	if len(got.DroppedTags) != 2 {
		t.Errorf("expected 2 dropped tags, got %v", got.DroppedTags)
	}
}

func TestMap_Unmappable(t *testing.T) {
	m := NewMapper()

	tests := [][]string{
		nil,
		{""},
		{"Peer reviewed"},
		{"Hologram", "Peer reviewed"},
	}
	for _, tags := range tests {
		got := m.Map(tags)
		if got.Mapped() {
			t.Errorf("Map(%v) = %+v, expected unmappable", tags, got)
		}
	}
}

func TestMap_TagContainingSeparatorIsNotACombination(t *testing.T) {
	m := NewMapper()

	tests := [][]string{
		{"Book|Peer reviewed"},
		{"Book|Peer", "reviewed"},
	}
	for _, tags := range tests {
		got := m.Map(tags)
		if got.Type == ScientificMonograph {
			t.Errorf("Map(%q) = %+v, must not match the Book + Peer reviewed combination", tags, got)
		}
	}

	if got := m.Map([]string{"Book|Peer reviewed"}); got.Mapped() {
		t.Errorf("single unknown tag mapped to %+v", got)
	}
}

func TestIsIndividuallyMappable(t *testing.T) {
	m := NewMapper()
	if !m.IsIndividuallyMappable("Book") {
		t.Error("Book should be individually mappable")
	}
	if m.IsIndividuallyMappable("Peer reviewed") {
		t.Error("Peer reviewed is a qualifier, not a type")
	}
}

func TestKey_OrderIndependent(t *testing.T) {
	if Key([]string{"b", "A", "a"}) != Key([]string{"a", "b"}) {
		t.Errorf("keys differ: %q vs %q", Key([]string{"b", "A", "a"}), Key([]string{"a", "b"}))
	}
}

func TestDefaultTable_Valid(t *testing.T) {
	if err := DefaultTable().Validate(); err != nil {
		t.Fatalf("default table invalid: %v", err)
	}
}

func TestParseTable_Override(t *testing.T) {
	data := []byte(`
version: "test-1"
combinations:
  - tags: [Report, Peer reviewed]
    type: Research Report
individual:
  Anthology: Book
targets:
  Book:
    kind: BookAnthology
    context: Book
`)
	table, err := ParseTable(data)
	if err != nil {
		t.Fatalf("ParseTable: %v", err)
	}
	m := NewMapper(WithTable(table))

	if m.TableVersion() != "test-1" {
		t.Errorf("version = %q", m.TableVersion())
	}
	if got := m.Map([]string{"Report", "Peer reviewed"}); got.Type != ResearchReport {
		t.Errorf("override combination: got %q", got.Type)
	}
	if got := m.Map([]string{"Anthology"}); got.Type != Book {
		t.Errorf("override individual: got %q", got.Type)
	}
	target, ok := m.Target(Book)
	if !ok || target.Kind != publication.KindBookAnthology {
		t.Errorf("override target: got %+v", target)
	}
	// Built-in entries survive
	if got := m.Map([]string{"Book", "Peer reviewed"}); got.Type != ScientificMonograph {
		t.Errorf("built-in combination lost: got %q", got.Type)
	}
}

func TestParseTable_RejectsUnknownKind(t *testing.T) {
	data := []byte(`
individual:
  Hologram: Hologram
targets:
  Hologram:
    kind: Hologram
    context: Book
`)
	if _, err := ParseTable(data); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestParseTable_RejectsSingleTagCombination(t *testing.T) {
	data := []byte(`
combinations:
  - tags: [Book]
    type: Book
`)
	if _, err := ParseTable(data); err == nil {
		t.Fatal("expected error for one-tag combination")
	}
}
