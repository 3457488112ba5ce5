package knowledge

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "knowledge.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestIndexAndSearch(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	docs := map[string]string{
		"photosynthesis.md": "Photosynthesis converts sunlight into chemical energy in plants.",
		"respiration.md":    "Cellular respiration breaks down glucose to release energy.",
	}
	for source, content := range docs {
		if err := store.IndexDocument(ctx, "biology", source, content); err != nil {
			t.Fatalf("IndexDocument(%s) failed: %v", source, err)
		}
	}

	sources, err := store.Search(ctx, "biology", "photosynthesis", 5)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(sources) != 1 {
		t.Fatalf("expected 1 result, got %d: %+v", len(sources), sources)
	}
	if sources[0].Source != "photosynthesis.md" {
		t.Fatalf("source = %q", sources[0].Source)
	}
	if sources[0].Score <= 0 {
		t.Fatalf("score = %v", sources[0].Score)
	}
}

func TestSearchScopedToCollection(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.IndexDocument(ctx, "biology", "a.md", "energy in plants"); err != nil {
		t.Fatal(err)
	}
	if err := store.IndexDocument(ctx, "physics", "b.md", "energy in motion"); err != nil {
		t.Fatal(err)
	}

	sources, err := store.Search(ctx, "physics", "energy", 5)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(sources) != 1 || sources[0].Source != "b.md" {
		t.Fatalf("unexpected results: %+v", sources)
	}
}

func TestSearchEmptyCollection(t *testing.T) {
	store := newTestStore(t)
	sources, err := store.Search(context.Background(), "nothing", "query", 5)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(sources) != 0 {
		t.Fatalf("expected no results, got %+v", sources)
	}
}

func TestReindexReplacesDocument(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.IndexDocument(ctx, "biology", "a.md", "old content about mitosis"); err != nil {
		t.Fatal(err)
	}
	if err := store.IndexDocument(ctx, "biology", "a.md", "new content about meiosis"); err != nil {
		t.Fatal(err)
	}

	infos, err := store.Collections(ctx)
	if err != nil {
		t.Fatalf("Collections failed: %v", err)
	}
	if len(infos) != 1 || infos[0].Documents != 1 {
		t.Fatalf("expected one collection with one document, got %+v", infos)
	}

	sources, err := store.Search(ctx, "biology", "meiosis", 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(sources) != 1 {
		t.Fatalf("expected the reindexed document, got %+v", sources)
	}
}

func TestDeleteDocument(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.IndexDocument(ctx, "biology", "a.md", "about osmosis"); err != nil {
		t.Fatal(err)
	}
	if err := store.DeleteDocument(ctx, "biology", "a.md"); err != nil {
		t.Fatalf("DeleteDocument failed: %v", err)
	}

	sources, err := store.Search(ctx, "biology", "osmosis", 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(sources) != 0 {
		t.Fatalf("deleted document still searchable: %+v", sources)
	}
}

func TestMatchExpressionQuotesTerms(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"simple", `"simple"`},
		{"two words", `"two" OR "words"`},
		{`inject" OR 1`, `"inject""" OR "OR" OR "1"`},
		{"", `""`},
	}
	for _, tt := range tests {
		if got := matchExpression(tt.query); got != tt.want {
			t.Errorf("matchExpression(%q) = %q, want %q", tt.query, got, tt.want)
		}
	}
}

func TestWorkspaceLoaderInitialScan(t *testing.T) {
	store := newTestStore(t)

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "biology"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "biology", "cells.md"), []byte("cells are the basic unit of life"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "biology", "ignored.bin"), []byte{0x00}, 0644); err != nil {
		t.Fatal(err)
	}

	loader := NewWorkspaceLoader(store, dir)
	if loader == nil {
		t.Fatal("loader is nil")
	}
	defer loader.Close()

	sources, err := store.Search(context.Background(), "biology", "cells", 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(sources) != 1 || sources[0].Source != "cells.md" {
		t.Fatalf("unexpected results: %+v", sources)
	}
}

func TestWorkspaceLoaderMissingDir(t *testing.T) {
	store := newTestStore(t)
	if loader := NewWorkspaceLoader(store, filepath.Join(t.TempDir(), "missing")); loader != nil {
		t.Fatal("expected nil loader for missing directory")
	}
	if loader := NewWorkspaceLoader(store, ""); loader != nil {
		t.Fatal("expected nil loader for empty directory")
	}
}
