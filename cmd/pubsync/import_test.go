package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/BIBSYSDEV/nva-publication-api-sub014/internal/ingest"
	"github.com/BIBSYSDEV/nva-publication-api-sub014/internal/match"
	"github.com/BIBSYSDEV/nva-publication-api-sub014/internal/publication"
	"github.com/BIBSYSDEV/nva-publication-api-sub014/internal/storage"
	"github.com/BIBSYSDEV/nva-publication-api-sub014/internal/typemap"
)

func TestImportExitCode(t *testing.T) {
	tests := []struct {
		name    string
		summary ingest.Summary
		want    int
	}{
		{"all merged or created", ingest.Summary{Merged: 2, Created: 1}, ExitSuccess},
		{"empty batch", ingest.Summary{}, ExitSuccess},
		{"flagged items", ingest.Summary{Merged: 1, Flagged: 1}, ExitFlagged},
		{"failure outranks flagged", ingest.Summary{Flagged: 3, Failed: 1}, ExitError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := importExitCode(tt.summary); got != tt.want {
				t.Errorf("importExitCode(%+v) = %d, want %d", tt.summary, got, tt.want)
			}
		})
	}
}

// recordingWriter records calls and fails Update with updateErr.
type recordingWriter struct {
	updateErr error
	created   []string
	updated   []string
}

func (w *recordingWriter) Create(ctx context.Context, pub publication.Publication) (publication.Publication, error) {
	w.created = append(w.created, pub.Identifier)
	return pub, nil
}

func (w *recordingWriter) Update(ctx context.Context, pub publication.Publication) (publication.Publication, error) {
	w.updated = append(w.updated, pub.Identifier)
	if w.updateErr != nil {
		return publication.Publication{}, w.updateErr
	}
	return pub, nil
}

func TestStoreWriter_InsertsWhenNotStoredLocally(t *testing.T) {
	inner := &recordingWriter{updateErr: fmt.Errorf("%w: remote-1", storage.ErrNotFound)}
	w := storeWriter{Writer: inner}

	got, err := w.Update(context.Background(), publication.Publication{Identifier: "remote-1"})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got.Identifier != "remote-1" {
		t.Errorf("Identifier = %q, want remote-1", got.Identifier)
	}
	if len(inner.created) != 1 || inner.created[0] != "remote-1" {
		t.Errorf("created = %v, want [remote-1]", inner.created)
	}
}

func TestStoreWriter_FallbackKeepsMatchedBookkeeping(t *testing.T) {
	dir := t.TempDir()
	st, err := storage.OpenStore(filepath.Join(dir, "publications.jsonl"), filepath.Join(dir, "cache", "publications.db"))
	if err != nil {
		t.Fatalf("OpenStore() error = %v", err)
	}
	defer st.Close()

	w := storeWriter{Writer: st}
	matched := publication.Publication{
		Identifier: "remote-1",
		Status:     publication.StatusPublished,
		CreatedAt:  "2020-01-02T03:04:05Z",
	}
	got, err := w.Update(context.Background(), matched)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got.Status != publication.StatusPublished || got.CreatedAt != "2020-01-02T03:04:05Z" {
		t.Errorf("got status %q created %q, want matched values kept", got.Status, got.CreatedAt)
	}

	stored, err := st.GetByID(context.Background(), "remote-1")
	if err != nil || stored == nil {
		t.Fatalf("GetByID() = %v, %v", stored, err)
	}
	if stored.CreatedAt != "2020-01-02T03:04:05Z" {
		t.Errorf("stored CreatedAt = %q", stored.CreatedAt)
	}
}

func TestStoreWriter_PassesThroughOtherErrors(t *testing.T) {
	boom := errors.New("disk full")
	inner := &recordingWriter{updateErr: boom}
	w := storeWriter{Writer: inner}

	if _, err := w.Update(context.Background(), publication.Publication{Identifier: "p1"}); !errors.Is(err, boom) {
		t.Errorf("Update() error = %v, want %v", err, boom)
	}
	if len(inner.created) != 0 {
		t.Errorf("created = %v, want none", inner.created)
	}
}

func TestStoreWriter_UpdateSucceeds(t *testing.T) {
	inner := &recordingWriter{}
	w := storeWriter{Writer: inner}

	if _, err := w.Update(context.Background(), publication.Publication{Identifier: "p1"}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if len(inner.updated) != 1 || len(inner.created) != 0 {
		t.Errorf("updated = %v, created = %v", inner.updated, inner.created)
	}
}

type stubResolver struct {
	found *match.PublicationForUpdate
	err   error
}

func (r stubResolver) Resolve(ctx context.Context, incoming publication.Representation) (*match.PublicationForUpdate, error) {
	return r.found, r.err
}

func testItem(title string) ingest.Item {
	rep := publication.Representation{Source: "brage"}
	rep.Publication.EntityDescription.MainTitle = title
	return ingest.Item{
		Ref:            "export.jsonl:3",
		Representation: rep,
		Mapping:        typemap.Result{Type: typemap.JournalArticle, Status: typemap.Exact},
	}
}

func TestResolveItem(t *testing.T) {
	ctx := context.Background()

	t.Run("match", func(t *testing.T) {
		r := stubResolver{found: &match.PublicationForUpdate{
			Source:   match.SourceDOI,
			Existing: publication.Publication{Identifier: "pub-9"},
		}}
		d := resolveItem(ctx, r, testItem("Salmon lice"))
		if d.MergeSource != match.SourceDOI || d.PublicationID != "pub-9" {
			t.Errorf("got source %q id %q, want DOI pub-9", d.MergeSource, d.PublicationID)
		}
		if d.Error != "" {
			t.Errorf("unexpected error %q", d.Error)
		}
		if d.TypeStatus != "exact" {
			t.Errorf("TypeStatus = %q, want exact", d.TypeStatus)
		}
	})

	t.Run("no match", func(t *testing.T) {
		d := resolveItem(ctx, stubResolver{}, testItem("Salmon lice"))
		if d.PublicationID != "" || d.MergeSource != "" {
			t.Errorf("expected no match, got %+v", d)
		}
	})

	t.Run("ambiguous", func(t *testing.T) {
		r := stubResolver{err: &match.AmbiguousMatchError{
			Source:     match.SourceTitleAndType,
			Key:        "salmon lice",
			Candidates: []string{"a", "b"},
		}}
		d := resolveItem(ctx, r, testItem("Salmon lice"))
		if d.MergeSource != match.SourceTitleAndType {
			t.Errorf("MergeSource = %q, want TITLE_AND_TYPE", d.MergeSource)
		}
		if len(d.Candidates) != 2 {
			t.Errorf("Candidates = %v, want 2", d.Candidates)
		}
		if d.Error == "" {
			t.Error("expected error text")
		}
	})
}

func TestNormalizeKey(t *testing.T) {
	tests := map[string]string{
		"search-url":     "search_url",
		"Search-URL":     "search_url",
		"default_source": "default_source",
		"workers":        "workers",
	}
	for in, want := range tests {
		if got := normalizeKey(in); got != want {
			t.Errorf("normalizeKey(%q) = %q, want %q", in, got, want)
		}
	}
}
