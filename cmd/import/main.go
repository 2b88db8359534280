// Command import adds a directory of markdown files to the notebook, one document per file.
package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/debemdeboas/the-notebook/internal/config"
	"github.com/debemdeboas/the-notebook/internal/logger"
	"github.com/debemdeboas/the-notebook/internal/repository"
	"github.com/debemdeboas/the-notebook/internal/store"
	"github.com/debemdeboas/the-notebook/internal/util"
	"github.com/rs/zerolog"
)

var importLogger zerolog.Logger

type note struct {
	file    string
	title   string
	content string
	created time.Time
}

// readNote takes the title and date from %%% front matter when present, else from the file name and
// modification time. The front matter is not kept in the content.
func readNote(path string) (note, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return note{}, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return note{}, err
	}

	n := note{
		file:    filepath.Base(path),
		title:   strings.TrimSuffix(filepath.Base(path), ".md"),
		content: string(raw),
		created: info.ModTime(),
	}

	if front, body := util.SplitFrontMatter(raw); front != nil {
		n.content = string(body)
		if front.Title != "" {
			n.title = front.Title
		}
		if !front.Date.IsZero() {
			n.created = front.Date
		}
	}
	return n, nil
}

// collectNotes reads every .md file in dir, oldest first.
func collectNotes(dir string) ([]note, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var notes []note
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		n, err := readNote(filepath.Join(dir, entry.Name()))
		if err != nil {
			importLogger.Error().Err(err).Str("file", entry.Name()).Msg("Error reading file")
			continue
		}
		notes = append(notes, n)
	}

	slices.SortStableFunc(notes, func(a, b note) int { return a.created.Compare(b.created) })
	return notes, nil
}

// importNotes creates one document per note. Creation times follow the notes but never go
// below the newest stored document.
func importNotes(p repository.Persister, notes []note) (int, error) {
	var current time.Time
	repo := repository.NewDocuments(p, repository.WithClock(func() time.Time { return current }))

	for i, n := range notes {
		current = n.created
		doc, err := repo.Create(n.content, n.title)
		if err != nil {
			return i, err
		}
		importLogger.Info().Str("file", n.file).Str("doc_id", string(doc.ID)).Msg("Imported")
	}
	return len(notes), nil
}

func main() {
	path := flag.String("path", "", "Directory containing .md files")
	configFile := flag.String("config", config.DefaultConfigPath, "Configuration file")
	flag.Parse()

	importLogger = logger.New("info")
	if *path == "" {
		importLogger.Fatal().Msg("--path is required")
	}

	if err := config.LoadConfig(*configFile); err != nil {
		importLogger.Fatal().Err(err).Msg("Failed to load configuration")
	}
	cfg := config.AppConfig

	kv, closeStore, err := store.Open(context.Background(), cfg.Storage)
	if err != nil {
		importLogger.Fatal().Err(err).Msg("Failed to open store")
	}
	defer closeStore()

	notes, err := collectNotes(*path)
	if err != nil {
		importLogger.Fatal().Err(err).Str("path", *path).Msg("Error reading directory")
	}

	n, err := importNotes(store.NewAdapter(kv, cfg.Storage.Key), notes)
	if err != nil {
		importLogger.Error().Err(err).Int("imported", n).Msg("Import stopped")
		return
	}
	importLogger.Info().Int("imported", n).Msg("Import finished")
}
