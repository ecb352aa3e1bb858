package publication

import (
	"encoding/json"
	"testing"
)

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"The  Title: A Study.", "the title a study"},
		{"  Über   Åpne Data ", "über åpne data"},
		{"COVID-19 and you", "covid 19 and you"},
		{"", ""},
		{"...", ""},
	}
	for _, tt := range tests {
		if got := NormalizeTitle(tt.in); got != tt.want {
			t.Errorf("NormalizeTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeDOI(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"10.1234/ABC", "10.1234/abc"},
		{"https://doi.org/10.1234/abc", "10.1234/abc"},
		{"http://dx.doi.org/10.1234/abc", "10.1234/abc"},
		{"doi:10.1234/abc ", "10.1234/abc"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeDOI(tt.in); got != tt.want {
			t.Errorf("NormalizeDOI(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeISBN(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"978-82-15-01234-4", "9788215012344"},
		{"0-306-40615-2", "9780306406157"},
		{"978 0 306 40615 7", "9780306406157"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeISBN(tt.in); got != tt.want {
			t.Errorf("NormalizeISBN(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeISBNs_Deduplicates(t *testing.T) {
	got := NormalizeISBNs([]string{"0-306-40615-2", "9780306406157", "", "978-82-15-01234-4"})
	if len(got) != 2 {
		t.Fatalf("expected 2 ISBNs, got %v", got)
	}
	if got[0] != "9780306406157" || got[1] != "9788215012344" {
		t.Errorf("unexpected order or values: %v", got)
	}
}

func TestAllKindsConstructible(t *testing.T) {
	kinds := AllKinds()
	if len(kinds) != len(constructors) {
		t.Fatalf("AllKinds has %d kinds, constructors has %d", len(kinds), len(constructors))
	}
	for _, k := range kinds {
		inst, ok := NewInstance(k)
		if !ok {
			t.Errorf("no constructor for %s", k)
			continue
		}
		if inst.Kind() != k {
			t.Errorf("NewInstance(%s).Kind() = %s", k, inst.Kind())
		}
	}
}

func TestReferenceJSONRoundTrip(t *testing.T) {
	ref := Reference{
		DOI: "10.1234/abc",
		Context: &Journal{
			Title:     "Nordic Journal",
			PrintISSN: "1234-5678",
		},
		Instance: &AcademicArticle{JournalFields{
			Volume: Str("3"),
			Pages:  PageRange{Begin: Str("10"), End: Str("20")},
		}},
	}

	data, err := json.Marshal(ref)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got Reference
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	article, ok := got.Instance.(*AcademicArticle)
	if !ok {
		t.Fatalf("expected *AcademicArticle, got %T", got.Instance)
	}
	if Value(article.Volume) != "3" || Value(article.Pages.End) != "20" {
		t.Errorf("instance fields lost: %+v", article)
	}
	journal, ok := got.Context.(*Journal)
	if !ok {
		t.Fatalf("expected *Journal, got %T", got.Context)
	}
	if journal.Title != "Nordic Journal" {
		t.Errorf("journal title = %q", journal.Title)
	}
}

func TestReferenceUnmarshal_UnknownInstance(t *testing.T) {
	var ref Reference
	err := json.Unmarshal([]byte(`{"publication_instance":{"type":"Hologram"}}`), &ref)
	if err == nil {
		t.Fatal("expected error for unknown instance type")
	}
}

func TestInstitutionIdentifier(t *testing.T) {
	rep := Representation{
		Source: "brage",
		Publication: Publication{
			AdditionalIdentifiers: []AdditionalIdentifier{
				{SourceName: "scopus", Value: "2-s2.0-1"},
				{SourceName: "brage", Value: "20754.0.0.0:77"},
			},
		},
	}
	id, ok := rep.InstitutionIdentifier()
	if !ok {
		t.Fatal("expected institution identifier")
	}
	if id.Value != "20754.0.0.0:77" {
		t.Errorf("value = %q", id.Value)
	}

	rep.Source = "cristin"
	if _, ok := rep.InstitutionIdentifier(); ok {
		t.Error("expected no identifier for cristin")
	}
}

func TestPublicationISBNs(t *testing.T) {
	p := Publication{EntityDescription: EntityDescription{Reference: Reference{
		Context: &Book{BookFields: BookFields{ISBNs: []string{"9780306406157"}}},
	}}}
	if got := p.ISBNs(); len(got) != 1 {
		t.Errorf("ISBNs() = %v", got)
	}

	p.EntityDescription.Reference.Context = &Journal{}
	if got := p.ISBNs(); got != nil {
		t.Errorf("journal context should have no ISBNs, got %v", got)
	}
}
