package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/debemdeboas/the-notebook/internal/repository"
	"github.com/debemdeboas/the-notebook/internal/store"
	"github.com/rs/zerolog"
)

func init() {
	importLogger = zerolog.New(os.Stdout).Level(zerolog.Disabled)
	repository.SetLogger(importLogger)
	store.SetLogger(importLogger)
}

func writeFile(t *testing.T, dir, name, content string, mod time.Time) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if err := os.Chtimes(path, mod, mod); err != nil {
		t.Fatalf("Chtimes failed: %v", err)
	}
}

func TestCollectAndImport(t *testing.T) {
	dir := t.TempDir()
	old := time.Date(2023, 1, 2, 3, 4, 5, 0, time.UTC)
	newer := old.Add(24 * time.Hour)

	writeFile(t, dir, "plain.md", "just text", newer)
	writeFile(t, dir, "titled.md", "%%%\ntitle = \"From front matter\"\n%%%\n\nbody", old)
	writeFile(t, dir, "skip.txt", "not markdown", old)

	notes, err := collectNotes(dir)
	if err != nil {
		t.Fatalf("collectNotes failed: %v", err)
	}
	if len(notes) != 2 {
		t.Fatalf("Expected 2 notes, got %d", len(notes))
	}
	if notes[0].title != "From front matter" || notes[0].content != "body" {
		t.Errorf("Unexpected first note: %+v", notes[0])
	}
	if notes[1].title != "plain" || notes[1].content != "just text" {
		t.Errorf("Unexpected second note: %+v", notes[1])
	}

	kv := store.NewMemoryKV()
	adapter := store.NewAdapter(kv, "")
	n, err := importNotes(adapter, notes)
	if err != nil || n != 2 {
		t.Fatalf("importNotes = %d, %v", n, err)
	}

	docs := repository.NewDocuments(adapter).List()
	if len(docs) != 2 {
		t.Fatalf("Expected 2 stored documents, got %d", len(docs))
	}
	if docs[0].Title != "plain" || docs[0].CreatedAt != newer.UnixMilli() {
		t.Errorf("Expected newest note first with its file date, got %+v", docs[0])
	}
	if docs[1].CreatedAt != old.UnixMilli() {
		t.Errorf("Expected front matter note to keep its date, got %d", docs[1].CreatedAt)
	}
}

func TestCollectNotesMissingDir(t *testing.T) {
	if _, err := collectNotes(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("Expected error for missing directory")
	}
}
