package repository

import (
	"cmp"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/debemdeboas/the-notebook/internal/model"
	"github.com/google/uuid"
)

type Documents struct { // implements DocumentRepository
	mu   sync.RWMutex
	docs []model.Document

	persister Persister
	newID     func() model.DocumentID
	now       func() time.Time

	// Highest CreatedAt handed out, so creation times stay strictly increasing.
	lastCreated int64

	notifier func()
}

type Option func(*Documents)

func WithIDGenerator(gen func() model.DocumentID) Option {
	return func(d *Documents) { d.newID = gen }
}

func WithClock(now func() time.Time) Option {
	return func(d *Documents) { d.now = now }
}

// NewID returns a time ordered UUIDv7, falling back to a random UUID.
func NewID() model.DocumentID {
	id, err := uuid.NewV7()
	if err != nil {
		return model.DocumentID(uuid.New().String())
	}
	return model.DocumentID(id.String())
}

// NewDocuments loads the stored collection through p.
func NewDocuments(p Persister, opts ...Option) *Documents {
	d := &Documents{
		persister: p,
		newID:     NewID,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}

	d.docs = p.Load()
	for _, doc := range d.docs {
		d.lastCreated = max(d.lastCreated, doc.CreatedAt)
	}

	repoLogger.Info().Int("documents", len(d.docs)).Msg("Documents loaded")
	return d
}

func (d *Documents) SetChangeNotifier(notifier func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.notifier = notifier
}

func (d *Documents) notifyChange() {
	d.mu.RLock()
	notifier := d.notifier
	d.mu.RUnlock()

	if notifier != nil {
		notifier()
	}
}

func (d *Documents) indexOf(id model.DocumentID) int {
	return slices.IndexFunc(d.docs, func(doc model.Document) bool { return doc.ID == id })
}

// commit persists next and makes it the live collection. On failure the live collection is left as it was,
// so memory never runs ahead of the store.
func (d *Documents) commit(next []model.Document) error {
	if err := d.persister.Save(next); err != nil {
		return err
	}
	d.docs = next
	return nil
}

func (d *Documents) Create(content, title string) (*model.Document, error) {
	d.mu.Lock()

	createdAt := max(d.now().UnixMilli(), d.lastCreated+1)
	doc := model.Document{
		ID:        d.newID(),
		Title:     title,
		Content:   content,
		CreatedAt: createdAt,
	}

	if d.indexOf(doc.ID) != -1 {
		d.mu.Unlock()
		return nil, fmt.Errorf("document id %s already in use", doc.ID)
	}

	next := append(slices.Clip(d.docs), doc)
	if err := d.commit(next); err != nil {
		d.mu.Unlock()
		return nil, fmt.Errorf("error creating document: %w", err)
	}
	d.lastCreated = createdAt
	d.mu.Unlock()

	repoLogger.Debug().Str("doc_id", string(doc.ID)).Msg("Document created")
	d.notifyChange()
	return &doc, nil
}

func (d *Documents) Update(id model.DocumentID, patch model.Patch) error {
	d.mu.Lock()

	i := d.indexOf(id)
	if i == -1 {
		d.mu.Unlock()
		repoLogger.Debug().Str("doc_id", string(id)).Msg("Update of unknown document ignored")
		return nil
	}

	next := slices.Clone(d.docs)
	next[i].Apply(patch)
	if err := d.commit(next); err != nil {
		d.mu.Unlock()
		return fmt.Errorf("error updating document %s: %w", id, err)
	}
	d.mu.Unlock()

	d.notifyChange()
	return nil
}

func (d *Documents) Delete(id model.DocumentID) error {
	d.mu.Lock()

	i := d.indexOf(id)
	if i == -1 {
		d.mu.Unlock()
		repoLogger.Debug().Str("doc_id", string(id)).Msg("Delete of unknown document ignored")
		return nil
	}

	next := slices.Delete(slices.Clone(d.docs), i, i+1)
	if err := d.commit(next); err != nil {
		d.mu.Unlock()
		return fmt.Errorf("error deleting document %s: %w", id, err)
	}
	d.mu.Unlock()

	repoLogger.Debug().Str("doc_id", string(id)).Msg("Document deleted")
	d.notifyChange()
	return nil
}

func (d *Documents) Get(id model.DocumentID) (model.Document, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if i := d.indexOf(id); i != -1 {
		return d.docs[i], true
	}
	return model.Document{}, false
}

// List returns a copy of the collection, newest first.
func (d *Documents) List() []model.Document {
	d.mu.RLock()
	docs := slices.Clone(d.docs)
	d.mu.RUnlock()

	if docs == nil {
		docs = []model.Document{}
	}

	slices.SortStableFunc(docs, func(a, b model.Document) int {
		if c := cmp.Compare(b.CreatedAt, a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return docs
}

func (d *Documents) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.docs)
}
