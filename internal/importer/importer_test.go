package importer

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/BIBSYSDEV/nva-publication-api-sub014/internal/publication"
	"github.com/BIBSYSDEV/nva-publication-api-sub014/internal/typemap"
)

func TestFlexibleString_String(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"string year", `"2026"`, "2026"},
		{"number year", `2026`, "2026"},
		{"null value", `null`, ""},
		{"float number", `12.0`, "12.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f FlexibleString
			if err := json.Unmarshal([]byte(tt.input), &f); err != nil {
				t.Fatalf("UnmarshalJSON() error = %v", err)
			}
			if got := f.String(); got != tt.want {
				t.Errorf("String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFlexibleString_InvalidInput(t *testing.T) {
	for _, input := range []string{`[1,2,3]`, `{"key": "value"}`, `true`} {
		var f FlexibleString
		if err := json.Unmarshal([]byte(input), &f); err == nil {
			t.Errorf("UnmarshalJSON() expected error for input %s", input)
		}
	}
}

type fakeProber struct {
	doi   string
	err   error
	calls []string
}

func (p *fakeProber) ProbeDOI(path string) (string, error) {
	p.calls = append(p.calls, path)
	return p.doi, p.err
}

func parse(t *testing.T, im *Importer, data string) ([]itemView, []error) {
	t.Helper()
	items, errs := im.Parse("records.jsonl", strings.NewReader(data))
	var out []itemView
	for _, it := range items {
		out = append(out, itemView{ref: it.Ref, rep: it.Representation, mapping: it.Mapping})
	}
	return out, errs
}

// oneLine joins a record written over several lines for readability.
func oneLine(s string) string {
	return strings.NewReplacer("\n", "", "\t", "").Replace(s)
}

type itemView struct {
	ref     string
	rep     publication.Representation
	mapping typemap.Result
}

func TestParse_JournalArticle(t *testing.T) {
	data := `{"source":"brage","source_id":"20754.0.0.0:77","types":["Journal article","Peer reviewed"],
	"title":" Fish in fjords ","year":2019,"month":"5","day":"40","doi":"10.1234/fish",
	"journal":"Nordic Journal","issn":"1234-5678","volume":3,"issue":"2","pages":{"begin":10,"end":"20"},
	"identifiers":{"scopus":"2-s2.0-1","cristin":"555","brage":"ignored"},
	"contributors":[{"name":"Nordmann, Kari","orcid":"0000-0001-2345-6789"},{"name":"Hansen, Ola"}]}`

	items, errs := parse(t, New(typemap.NewMapper()), oneLine(data))
	if len(errs) > 0 {
		t.Fatalf("Parse() errors = %v", errs)
	}
	if len(items) != 1 {
		t.Fatalf("Parse() returned %d items, want 1", len(items))
	}

	it := items[0]
	if it.ref != "records.jsonl:1" {
		t.Errorf("Ref = %q", it.ref)
	}
	if it.mapping.Type != typemap.ScientificArticle || it.mapping.Status != typemap.Exact {
		t.Errorf("mapping = %+v", it.mapping)
	}

	rep := it.rep
	id, ok := rep.InstitutionIdentifier()
	if !ok || id.Value != "20754.0.0.0:77" {
		t.Errorf("InstitutionIdentifier() = %v, %v", id, ok)
	}
	wantIDs := []string{"brage:20754.0.0.0:77", "cristin:555", "scopus:2-s2.0-1"}
	if len(rep.Publication.AdditionalIdentifiers) != len(wantIDs) {
		t.Fatalf("identifiers = %v", rep.Publication.AdditionalIdentifiers)
	}
	for i, want := range wantIDs {
		if got := rep.Publication.AdditionalIdentifiers[i].String(); got != want {
			t.Errorf("identifier %d = %q, want %q", i, got, want)
		}
	}

	d := rep.Publication.EntityDescription
	if d.MainTitle != "Fish in fjords" {
		t.Errorf("MainTitle = %q", d.MainTitle)
	}
	if d.PublicationDate != (publication.PublicationDate{Year: "2019", Month: "5"}) {
		t.Errorf("PublicationDate = %+v (invalid day should be dropped)", d.PublicationDate)
	}
	if len(d.Contributors) != 2 || d.Contributors[1].Sequence != 2 {
		t.Errorf("Contributors = %+v", d.Contributors)
	}

	journal, ok := d.Reference.Context.(*publication.Journal)
	if !ok || journal.Title != "Nordic Journal" || journal.PrintISSN != "1234-5678" {
		t.Errorf("Context = %#v", d.Reference.Context)
	}
	inst, ok := d.Reference.Instance.(*publication.AcademicArticle)
	if !ok {
		t.Fatalf("Instance = %T", d.Reference.Instance)
	}
	if publication.Value(inst.Volume) != "3" || publication.Value(inst.Issue) != "2" {
		t.Errorf("volume/issue = %q/%q", publication.Value(inst.Volume), publication.Value(inst.Issue))
	}
	if publication.Value(inst.Pages.Begin) != "10" || publication.Value(inst.Pages.End) != "20" {
		t.Errorf("pages = %+v", inst.Pages)
	}
	if inst.ArticleNumber != nil {
		t.Errorf("absent article number should be nil, got %q", *inst.ArticleNumber)
	}
}

func TestParse_BookAndThesis(t *testing.T) {
	data := `{"source":"brage","source_id":"1","types":["Book"],"title":"Coastal Ecology","year":"2010","publisher":"Universitetsforlaget","isbn":["0-306-40615-2"],"page_count":300}
{"source":"brage","source_id":"2","types":["Master thesis"],"title":"On Fjords","year":"2021","submitted":"2021-06-01","pages":{"begin":"1","end":"88"}}`

	items, errs := parse(t, New(typemap.NewMapper()), data)
	if len(errs) > 0 {
		t.Fatalf("Parse() errors = %v", errs)
	}
	if len(items) != 2 {
		t.Fatalf("Parse() returned %d items", len(items))
	}

	book := items[0].rep.Publication
	if book.Kind() != publication.KindNonFictionMonograph {
		t.Errorf("book kind = %q", book.Kind())
	}
	if got := book.ISBNs(); len(got) != 1 || got[0] != "0-306-40615-2" {
		t.Errorf("ISBNs = %v", got)
	}
	mono := book.EntityDescription.Reference.Instance.(*publication.NonFictionMonograph)
	if publication.Value(mono.Pages) != "300" {
		t.Errorf("page count = %q", publication.Value(mono.Pages))
	}

	thesis := items[1].rep.Publication.EntityDescription.Reference.Instance.(*publication.DegreeMaster)
	if publication.Value(thesis.SubmittedDate) != "2021-06-01" || publication.Value(thesis.Pages.End) != "88" {
		t.Errorf("thesis = %+v", thesis.DegreeFields)
	}
	if _, ok := items[1].rep.Publication.EntityDescription.Reference.Context.(*publication.Degree); !ok {
		t.Errorf("thesis context = %T", items[1].rep.Publication.EntityDescription.Reference.Context)
	}
}

func TestParse_UnmappableIsAnItem(t *testing.T) {
	data := `{"source":"brage","source_id":"9","types":["Other"],"title":"Mystery","year":"2020"}`

	items, errs := parse(t, New(typemap.NewMapper()), data)
	if len(errs) != 0 {
		t.Fatalf("unmappable record should not be a parse error: %v", errs)
	}
	if len(items) != 1 {
		t.Fatalf("Parse() returned %d items", len(items))
	}
	if items[0].mapping.Mapped() {
		t.Errorf("mapping = %+v, want unmappable", items[0].mapping)
	}
	if items[0].rep.Publication.EntityDescription.Reference.Instance != nil {
		t.Error("unmappable record should carry no instance")
	}
}

func TestParse_Errors(t *testing.T) {
	data := `{"source":"brage","source_id":"1","types":["Book"],"year":"2010"}
{not json}

{"source":"brage","source_id":"3","types":["Book"],"title":"Bad year","year":"20x0"}
{"source":"brage","source_id":"4","types":["Book"],"title":"Fine","year":"2010"}`

	items, errs := parse(t, New(typemap.NewMapper()), data)
	if len(items) != 1 || items[0].ref != "records.jsonl:5" {
		t.Errorf("items = %+v", items)
	}
	if len(errs) != 3 {
		t.Fatalf("errors = %v", errs)
	}

	var pe *ParseError
	if !errors.As(errs[0], &pe) || pe.Line != 1 || pe.Ref != "brage:1" || !strings.Contains(pe.Error(), "title") {
		t.Errorf("first error = %v", errs[0])
	}
	if !errors.As(errs[1], &pe) || pe.Line != 2 {
		t.Errorf("second error = %v", errs[1])
	}
	if !errors.As(errs[2], &pe) || pe.Line != 4 {
		t.Errorf("third error = %v", errs[2])
	}
}

func TestParse_DefaultSource(t *testing.T) {
	data := `{"source_id":"7","types":["Book"],"title":"No source","year":"2010"}`

	items, _ := parse(t, New(typemap.NewMapper(), WithDefaultSource("brage")), data)
	if len(items) != 1 || items[0].rep.Source != "brage" {
		t.Fatalf("items = %+v", items)
	}
	if id, ok := items[0].rep.InstitutionIdentifier(); !ok || id.Value != "7" {
		t.Errorf("InstitutionIdentifier() = %v, %v", id, ok)
	}
}

func TestParse_Artifacts(t *testing.T) {
	data := `{"types":["Book"],"title":"Files","year":"2010","files":[
		{"id":"f1","name":"book.pdf","path":"files/book.pdf","published":true},
		{"name":"draft.pdf","path":"files/draft.pdf"},
		{"url":"https://example.org/book"}]}`

	items, errs := parse(t, New(typemap.NewMapper()), oneLine(data))
	if len(errs) > 0 {
		t.Fatalf("Parse() errors = %v", errs)
	}
	arts := items[0].rep.Publication.AssociatedArtifacts
	want := []publication.ArtifactType{
		publication.ArtifactPublishedFile,
		publication.ArtifactPendingFile,
		publication.ArtifactLink,
	}
	if len(arts) != len(want) {
		t.Fatalf("artifacts = %+v", arts)
	}
	for i := range want {
		if arts[i].Type != want[i] {
			t.Errorf("artifact %d type = %q, want %q", i, arts[i].Type, want[i])
		}
	}
}

func TestParse_ProbesDOIOnlyWhenMissing(t *testing.T) {
	prober := &fakeProber{doi: "10.5555/probed"}
	im := New(typemap.NewMapper(), WithProber(prober))

	data := `{"types":["Book"],"title":"No DOI","year":"2010","files":[{"name":"a.txt","path":"a.txt"},{"name":"a.pdf","path":"a.PDF"}]}
{"types":["Book"],"title":"Has DOI","year":"2010","doi":"10.1234/given","files":[{"name":"b.pdf","path":"b.pdf"}]}`

	items, errs := parse(t, im, data)
	if len(errs) > 0 {
		t.Fatalf("Parse() errors = %v", errs)
	}
	if got := items[0].rep.Publication.DOI(); got != "10.5555/probed" {
		t.Errorf("probed DOI = %q", got)
	}
	if got := items[1].rep.Publication.DOI(); got != "10.1234/given" {
		t.Errorf("given DOI = %q", got)
	}
	if len(prober.calls) != 1 || prober.calls[0] != "a.PDF" {
		t.Errorf("prober calls = %v", prober.calls)
	}
}

func TestParse_ProbeFailureIsNotFatal(t *testing.T) {
	im := New(typemap.NewMapper(), WithProber(&fakeProber{err: errors.New("broken pdf")}))

	items, errs := parse(t, im, `{"types":["Book"],"title":"T","year":"2010","files":[{"name":"a.pdf","path":"a.pdf"}]}`)
	if len(errs) != 0 || len(items) != 1 {
		t.Fatalf("items = %d, errs = %v", len(items), errs)
	}
	if items[0].rep.Publication.DOI() != "" {
		t.Errorf("DOI = %q, want empty", items[0].rep.Publication.DOI())
	}
}
