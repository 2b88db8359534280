// Command notes prints the stored documents, newest first.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/debemdeboas/the-notebook/internal/config"
	"github.com/debemdeboas/the-notebook/internal/logger"
	"github.com/debemdeboas/the-notebook/internal/model"
	"github.com/debemdeboas/the-notebook/internal/repository"
	"github.com/debemdeboas/the-notebook/internal/store"
	"github.com/rs/zerolog"
)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
	dateStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	idStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	contentStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
)

func renderList(docs []model.Document, placeholder string) string {
	if len(docs) == 0 {
		return dateStyle.Render("No documents") + "\n"
	}

	var b strings.Builder
	for _, doc := range docs {
		label := model.DisplayTitleFor(doc.Content, placeholder)
		if doc.Title != "" {
			label = doc.Title + dateStyle.Render(" · ") + label
		}
		fmt.Fprintf(&b, "%s  %s\n  %s\n",
			dateStyle.Render(model.FormatTimestamp(doc.CreatedAt)),
			titleStyle.Render(label),
			idStyle.Render(string(doc.ID)),
		)
	}
	return b.String()
}

func renderDocument(doc model.Document) string {
	header := titleStyle.Render(doc.Title)
	if doc.Title == "" {
		header = titleStyle.Render(model.DisplayTitle(doc))
	}
	return header + "\n" + dateStyle.Render(model.FormatTimestamp(doc.CreatedAt)) + "\n" + contentStyle.Render(doc.Content) + "\n"
}

func main() {
	configFile := flag.String("config", config.DefaultConfigPath, "Configuration file")
	show := flag.String("show", "", "Print the document with this id")
	flag.Parse()

	log := logger.New("warn")
	config.SetLogger(log)
	store.SetLogger(log)
	repository.SetLogger(zerolog.Nop())

	if err := config.LoadConfig(*configFile); err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	cfg := config.AppConfig

	kv, closeStore, err := store.Open(context.Background(), cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open store")
	}
	defer closeStore()

	repo := repository.NewDocuments(store.NewAdapter(kv, cfg.Storage.Key))

	if *show != "" {
		doc, ok := repo.Get(model.DocumentID(*show))
		if !ok {
			fmt.Fprintln(os.Stderr, "Document not found:", *show)
			os.Exit(1)
		}
		fmt.Print(renderDocument(doc))
		return
	}

	fmt.Print(renderList(repo.List(), cfg.Session.Placeholder))
}
