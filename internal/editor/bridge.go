package editor

import (
	"sync"

	"github.com/debemdeboas/the-notebook/internal/model"
	"github.com/debemdeboas/the-notebook/internal/repository"
)

// Bridge keeps the widget buffer and the current document or draft in step.
type Bridge struct {
	widget Widget
	drafts *DraftController
	repo   repository.DocumentRepository
	cursor *Cursor

	// Held while a user edit is applied. The session passes its own lock.
	locker sync.Locker

	unsubscribe func()
	onError     func(error)
	onApplied   func()
}

// NewBridge subscribes to widget changes. A nil locker gets a private mutex.
func NewBridge(widget Widget, drafts *DraftController, repo repository.DocumentRepository, cursor *Cursor, locker sync.Locker) *Bridge {
	if locker == nil {
		locker = &sync.Mutex{}
	}
	b := &Bridge{
		widget: widget,
		drafts: drafts,
		repo:   repo,
		cursor: cursor,
		locker: locker,
	}
	drafts.attach(b)
	b.unsubscribe = widget.OnChange(b.handleChange)
	return b
}

// SetErrorHandler receives persistence errors raised while applying edits.
func (b *Bridge) SetErrorHandler(h func(error)) {
	b.onError = h
}

// SetAppliedHandler is called after a user edit was persisted, once the locker is released.
func (b *Bridge) SetAppliedHandler(h func()) {
	b.onApplied = h
}

func (b *Bridge) Close() {
	if b.unsubscribe != nil {
		b.unsubscribe()
		b.unsubscribe = nil
	}
}

// Load replaces the buffer without it counting as an edit.
func (b *Bridge) Load(content string) {
	b.widget.SetValue(content, OriginProgrammatic)
}

func (b *Bridge) Value() string {
	return b.widget.Value()
}

func (b *Bridge) Focus() {
	b.widget.Focus()
}

func (b *Bridge) handleChange(ev ChangeEvent) {
	// Programmatic writes happen while the session lock is held; never touch the lock for them.
	if ev.Origin == OriginProgrammatic {
		return
	}

	b.locker.Lock()
	err := b.apply()
	b.locker.Unlock()

	if err != nil {
		editorLogger.Error().Err(err).Msg("Could not persist edit")
		if b.onError != nil {
			b.onError(err)
		}
		return
	}
	if b.onApplied != nil {
		b.onApplied()
	}
}

// EditLocked writes content into the widget and persists it like a user edit. The caller holds the locker,
// which lets it check what is open before the edit lands. changed is false when content is already shown.
func (b *Bridge) EditLocked(content string) (changed bool, err error) {
	if content == b.widget.Value() {
		return false, nil
	}
	// Tagged programmatic so handleChange leaves it alone; it is persisted right here.
	b.widget.SetValue(content, OriginProgrammatic)
	return true, b.apply()
}

// apply persists the live buffer on every change, without debouncing.
func (b *Bridge) apply() error {
	content := b.widget.Value()

	if b.drafts.Active() {
		_, err := b.drafts.Promote(content)
		return err
	}

	if id, ok := b.cursor.Current(); ok {
		return b.repo.Update(id, model.Patch{Content: &content})
	}
	return nil
}
