// Package repository owns the in-memory document collection and persists it after every mutation.
package repository

import (
	"github.com/debemdeboas/the-notebook/internal/model"
	"github.com/rs/zerolog"
)

var repoLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	repoLogger = l
}

type DocumentRepository interface {
	Create(content, title string) (*model.Document, error)
	// Update patches a document. Unknown ids are ignored.
	Update(id model.DocumentID, patch model.Patch) error
	// Delete removes a document. Unknown ids are ignored.
	Delete(id model.DocumentID) error

	Get(id model.DocumentID) (model.Document, bool)
	List() []model.Document
	Len() int

	// SetChangeNotifier sets a function that will be called after every persisted mutation. It runs
	// synchronously inside Create, Update and Delete, under whatever locks their caller holds.
	SetChangeNotifier(notifier func())
}

// Persister is the storage side of the repository; *store.Adapter implements it.
type Persister interface {
	Load() []model.Document
	Save(docs []model.Document) error
}
