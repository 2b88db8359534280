package editor

import (
	"errors"
	"fmt"

	"github.com/debemdeboas/the-notebook/internal/model"
	"github.com/debemdeboas/the-notebook/internal/repository"
)

var ErrNotDraft = errors.New("editor: not in draft mode")

// loader writes programmatic content into the widget. The Bridge implements it.
type loader interface {
	Load(content string)
}

// DraftController manages the unsaved document shown before the first edit. The draft has no id;
// it becomes a real document on promotion and never goes back.
type DraftController struct {
	repo        repository.DocumentRepository
	cursor      *Cursor
	placeholder string

	buffer loader
}

func NewDraftController(repo repository.DocumentRepository, cursor *Cursor, placeholder string) *DraftController {
	if placeholder == "" {
		placeholder = model.Placeholder
	}
	return &DraftController{
		repo:        repo,
		cursor:      cursor,
		placeholder: placeholder,
	}
}

func (d *DraftController) attach(l loader) {
	d.buffer = l
}

func (d *DraftController) Active() bool {
	return d.cursor.IsDraft()
}

func (d *DraftController) Placeholder() string {
	return d.placeholder
}

// Start enters draft mode: no document is selected, the title is cleared and the buffer shows the placeholder.
func (d *DraftController) Start() {
	d.cursor.SetTitle("")
	d.cursor.enterDraft()

	if d.buffer != nil {
		d.buffer.Load(d.placeholder)
	}
	editorLogger.Debug().Msg("Draft started")
}

// Promote turns the draft into a stored document holding content and the draft title, and selects it.
// It fails with ErrNotDraft once the draft was promoted.
func (d *DraftController) Promote(content string) (*model.Document, error) {
	if !d.cursor.IsDraft() {
		return nil, ErrNotDraft
	}

	doc, err := d.repo.Create(content, d.cursor.Title())
	if err != nil {
		return nil, fmt.Errorf("error promoting draft: %w", err)
	}

	d.cursor.Select(doc.ID)
	editorLogger.Info().Str("doc_id", string(doc.ID)).Msg("Draft promoted")
	return doc, nil
}
