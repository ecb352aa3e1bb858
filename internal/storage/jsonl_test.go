package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BIBSYSDEV/nva-publication-api-sub014/internal/publication"
)

func TestReadAll_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "publications.jsonl")

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	f.Close()

	pubs, err := ReadAll(path)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(pubs) != 0 {
		t.Errorf("ReadAll() returned %d publications, want 0", len(pubs))
	}
}

func TestReadAll_NonExistentFile(t *testing.T) {
	pubs, err := ReadAll("/nonexistent/path/publications.jsonl")
	if err != nil {
		t.Fatalf("ReadAll() error = %v (should return nil for nonexistent file)", err)
	}
	if len(pubs) != 0 {
		t.Errorf("ReadAll() returned %v, want empty", pubs)
	}
}

func TestReadAll_SinglePublication(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "publications.jsonl")

	content := `{"identifier":"p1","status":"PUBLISHED","entity_description":{"main_title":"Fish in fjords","publication_date":{"year":"2019"},"reference":{"doi":"10.1234/fish","publication_context":{"type":"Journal","title":"Nordic Journal"},"publication_instance":{"type":"AcademicArticle","volume":"3"}}}}`
	if err := os.WriteFile(path, []byte(content+"\n\n"), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	pubs, err := ReadAll(path)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(pubs) != 1 {
		t.Fatalf("ReadAll() returned %d publications, want 1", len(pubs))
	}

	pub := pubs[0]
	if pub.Identifier != "p1" || pub.Status != publication.StatusPublished {
		t.Errorf("identity = %q/%q", pub.Identifier, pub.Status)
	}
	if pub.DOI() != "10.1234/fish" {
		t.Errorf("DOI = %q", pub.DOI())
	}
	if pub.Kind() != publication.KindAcademicArticle {
		t.Errorf("Kind = %q", pub.Kind())
	}
	inst := pub.EntityDescription.Reference.Instance.(*publication.AcademicArticle)
	if publication.Value(inst.Volume) != "3" {
		t.Errorf("Volume = %q", publication.Value(inst.Volume))
	}
}

func TestReadAll_InvalidLine(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "publications.jsonl")

	content := `{"identifier":"p1","entity_description":{"main_title":"ok","publication_date":{},"reference":{}}}
{not json}
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	_, err := ReadAll(path)
	if err == nil {
		t.Fatal("ReadAll() should fail on invalid JSON")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error should name the line, got %v", err)
	}
}

func TestWriteAll_RoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "publications.jsonl")

	pubs := testPublications()
	if err := WriteAll(path, pubs); err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}

	got, err := ReadAll(path)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(got) != len(pubs) {
		t.Fatalf("ReadAll() returned %d publications, want %d", len(got), len(pubs))
	}
	for i := range pubs {
		if got[i].Identifier != pubs[i].Identifier {
			t.Errorf("publication %d: identifier %q, want %q", i, got[i].Identifier, pubs[i].Identifier)
		}
		if got[i].Kind() != pubs[i].Kind() {
			t.Errorf("publication %d: kind %q, want %q", i, got[i].Kind(), pubs[i].Kind())
		}
	}

	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("WriteAll() left its temporary file behind")
	}
}

func TestAppend(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "publications.jsonl")

	for _, pub := range testPublications()[:2] {
		if err := Append(path, pub); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	got, err := ReadAll(path)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ReadAll() returned %d publications, want 2", len(got))
	}
	if got[1].Identifier != "book-1" {
		t.Errorf("second publication = %q, want book-1", got[1].Identifier)
	}
}

func TestFindByID(t *testing.T) {
	pubs := testPublications()

	if idx, ok := FindByID(pubs, "book-1"); !ok || idx != 1 {
		t.Errorf("FindByID(book-1) = %d, %v", idx, ok)
	}
	if _, ok := FindByID(pubs, "missing"); ok {
		t.Error("FindByID(missing) should not be found")
	}
}
