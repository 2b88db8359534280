// Package session orchestrates the notebook: switching, creating and deleting documents, saving, the autosave
// loop, the clipboard and the transient indicators shown to the user.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/debemdeboas/the-notebook/internal/config"
	"github.com/debemdeboas/the-notebook/internal/editor"
	"github.com/debemdeboas/the-notebook/internal/model"
	"github.com/debemdeboas/the-notebook/internal/repository"
	"github.com/rs/zerolog"
)

var sessionLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	sessionLogger = l
}

var (
	ErrNoPendingDelete = errors.New("session: no delete pending")
	// ErrStaleEdit rejects an edit made for a document or draft that is no longer open.
	ErrStaleEdit = errors.New("session: edit target is not open")
)

const statusTimeFormat = "15:04:05"

type Options struct {
	Placeholder      string
	AutosaveInterval time.Duration
	AutosaveStatus   bool
	StatusDuration   time.Duration
	CopiedDuration   time.Duration

	Clock     Clock
	Clipboard Clipboard
}

func OptionsFromConfig(cfg config.SessionConfig) Options {
	return Options{
		Placeholder:      cfg.Placeholder,
		AutosaveInterval: cfg.AutosaveInterval,
		AutosaveStatus:   cfg.AutosaveStatus,
		StatusDuration:   cfg.StatusDuration,
		CopiedDuration:   cfg.CopiedDuration,
	}
}

func (o *Options) applyDefaults() {
	if o.Placeholder == "" {
		o.Placeholder = model.Placeholder
	}
	if o.AutosaveInterval <= 0 {
		o.AutosaveInterval = 5 * time.Second
	}
	if o.StatusDuration <= 0 {
		o.StatusDuration = 2 * time.Second
	}
	if o.CopiedDuration <= 0 {
		o.CopiedDuration = 2 * time.Second
	}
	if o.Clock == nil {
		o.Clock = SystemClock
	}
	if o.Clipboard == nil {
		o.Clipboard = &MemoryClipboard{}
	}
}

type pendingDelete struct {
	id    model.DocumentID
	title string
}

// Session serializes every state transition behind one mutex. The editor bridge takes the same mutex for user
// edits, so a session method never observes a half-applied edit. Flushes only run under the mutex, so two
// flushes of the same document never overlap.
type Session struct {
	mu sync.Mutex

	repo   repository.DocumentRepository
	cursor *editor.Cursor
	drafts *editor.DraftController
	bridge *editor.Bridge
	opts   Options

	sidebarOpen   bool
	status        string
	copied        bool
	pendingDelete *pendingDelete

	notifier func()
}

func New(repo repository.DocumentRepository, widget editor.Widget, opts Options) *Session {
	opts.applyDefaults()

	s := &Session{
		repo:   repo,
		cursor: &editor.Cursor{},
		opts:   opts,
	}
	s.drafts = editor.NewDraftController(repo, s.cursor, opts.Placeholder)
	s.bridge = editor.NewBridge(widget, s.drafts, repo, s.cursor, &s.mu)
	s.bridge.SetAppliedHandler(s.notifyChange)
	return s
}

// SetChangeNotifier sets a function called after every change visible in View, user edits included.
// It runs with no session lock held, so it may call back into the session.
func (s *Session) SetChangeNotifier(notifier func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifier = notifier
}

func (s *Session) notifyChange() {
	s.mu.Lock()
	notifier := s.notifier
	s.mu.Unlock()

	if notifier != nil {
		notifier()
	}
}

// Close detaches the session from its widget.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bridge.Close()
}

// Open starts every visit on a fresh draft.
func (s *Session) Open() {
	s.mu.Lock()
	s.drafts.Start()
	s.mu.Unlock()

	sessionLogger.Info().Int("documents", s.repo.Len()).Msg("Session opened")
	s.notifyChange()
}

// flushLocked writes the buffer and title into the current document. saved is false when there was nothing to
// write: draft mode, no selection or a deleted document.
func (s *Session) flushLocked() (saved bool, err error) {
	id, ok := s.cursor.Current()
	if !ok {
		return false, nil
	}
	if _, exists := s.repo.Get(id); !exists {
		return false, nil
	}

	content := s.bridge.Value()
	title := s.cursor.Title()
	if err := s.repo.Update(id, model.Patch{Content: &content, Title: &title}); err != nil {
		return false, fmt.Errorf("error saving document %s: %w", id, err)
	}
	return true, nil
}

func (s *Session) switchLocked(id model.DocumentID) error {
	if _, err := s.flushLocked(); err != nil {
		return err
	}

	target, ok := s.repo.Get(id)
	if !ok {
		sessionLogger.Debug().Str("doc_id", string(id)).Msg("Switch target not found")
		return nil
	}

	s.cursor.Select(target.ID)
	s.cursor.SetTitle(target.Title)
	s.bridge.Load(target.Content)
	return nil
}

// SwitchTo saves the current document and shows id. An unknown id only saves.
func (s *Session) SwitchTo(id model.DocumentID) error {
	s.mu.Lock()
	err := s.switchLocked(id)
	s.mu.Unlock()

	s.notifyChange()
	return err
}

// CreateDocument stores a new document holding the placeholder and switches to it.
func (s *Session) CreateDocument() error {
	s.mu.Lock()
	doc, err := s.repo.Create(s.drafts.Placeholder(), "")
	if err == nil {
		err = s.switchLocked(doc.ID)
	}
	s.mu.Unlock()

	if err != nil {
		return fmt.Errorf("error creating document: %w", err)
	}
	s.notifyChange()
	return nil
}

// editingLocked reports whether target is open. The empty id stands for the draft.
func (s *Session) editingLocked(target model.DocumentID) bool {
	if target == "" {
		return s.cursor.IsDraft()
	}
	current, ok := s.cursor.Current()
	return ok && current == target
}

// Edit applies a user edit typed while target was open; the empty id means the draft. It fails with
// ErrStaleEdit when the user has since switched away, so the edit cannot land in another document.
func (s *Session) Edit(target model.DocumentID, content string) error {
	s.mu.Lock()
	if !s.editingLocked(target) {
		s.mu.Unlock()
		sessionLogger.Debug().Str("doc_id", string(target)).Msg("Dropping edit for a document that is not open")
		return ErrStaleEdit
	}
	changed, err := s.bridge.EditLocked(content)
	s.mu.Unlock()

	if err != nil {
		return fmt.Errorf("error applying edit: %w", err)
	}
	if changed {
		s.notifyChange()
	}
	return nil
}

// SetTitle edits the title field. It is written on the next save.
func (s *Session) SetTitle(title string) {
	s.mu.Lock()
	s.cursor.SetTitle(title)
	s.mu.Unlock()

	s.notifyChange()
}

func (s *Session) CommitTitle() error {
	if err := s.Save(true); err != nil {
		return err
	}
	s.bridge.Focus()
	return nil
}

func (s *Session) setStatusLocked(status string) {
	s.status = status
	s.opts.Clock.AfterFunc(s.opts.StatusDuration, func() {
		s.mu.Lock()
		s.status = ""
		s.mu.Unlock()
		s.notifyChange()
	})
}

// Save flushes the current document. With showStatus a "Saved" message is shown for a while.
func (s *Session) Save(showStatus bool) error {
	s.mu.Lock()
	saved, err := s.flushLocked()
	if saved && showStatus {
		s.setStatusLocked("Saved " + s.opts.Clock.Now().Format(statusTimeFormat))
	}
	s.mu.Unlock()

	if saved {
		s.notifyChange()
	}
	return err
}

func (s *Session) ManualSave() error {
	return s.Save(true)
}

// Run autosaves until ctx is done. Failed saves are logged and retried on the next tick.
func (s *Session) Run(ctx context.Context) error {
	ticks, stop := s.opts.Clock.NewTicker(s.opts.AutosaveInterval)
	defer stop()

	sessionLogger.Info().Dur("interval", s.opts.AutosaveInterval).Msg("Autosave started")
	for {
		select {
		case <-ctx.Done():
			sessionLogger.Info().Msg("Autosave stopped")
			return ctx.Err()
		case <-ticks:
			if err := s.Save(s.opts.AutosaveStatus); err != nil {
				sessionLogger.Error().Err(err).Msg("Autosave failed")
			}
		}
	}
}

// RequestDelete asks for confirmation before deleting id. Unknown ids are ignored.
func (s *Session) RequestDelete(id model.DocumentID) {
	s.mu.Lock()
	doc, ok := s.repo.Get(id)
	if ok {
		s.pendingDelete = &pendingDelete{
			id:    id,
			title: model.DisplayTitleFor(doc.Content, s.drafts.Placeholder()),
		}
	}
	s.mu.Unlock()

	if ok {
		s.notifyChange()
	}
}

// ConfirmDelete deletes the pending document. Deleting the current document starts a new draft.
func (s *Session) ConfirmDelete() error {
	s.mu.Lock()
	pending := s.pendingDelete
	if pending == nil {
		s.mu.Unlock()
		return ErrNoPendingDelete
	}

	if err := s.repo.Delete(pending.id); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("error deleting document %s: %w", pending.id, err)
	}
	if current, ok := s.cursor.Current(); ok && current == pending.id {
		s.drafts.Start()
	}
	s.pendingDelete = nil
	s.mu.Unlock()

	sessionLogger.Info().Str("doc_id", string(pending.id)).Msg("Document deleted")
	s.notifyChange()
	return nil
}

func (s *Session) CancelDelete() {
	s.mu.Lock()
	s.pendingDelete = nil
	s.mu.Unlock()

	s.notifyChange()
}

func (s *Session) ToggleSidebar() {
	s.mu.Lock()
	s.sidebarOpen = !s.sidebarOpen
	s.mu.Unlock()

	s.notifyChange()
}

// CopyCurrentContent puts the live buffer on the clipboard and shows the copied indicator for a while.
func (s *Session) CopyCurrentContent(ctx context.Context) error {
	text := s.bridge.Value()

	if err := s.opts.Clipboard.WriteText(ctx, text); err != nil {
		sessionLogger.Error().Err(err).Msg("Failed to copy")
		return fmt.Errorf("error copying to clipboard: %w", err)
	}

	s.mu.Lock()
	s.copied = true
	s.opts.Clock.AfterFunc(s.opts.CopiedDuration, func() {
		s.mu.Lock()
		s.copied = false
		s.mu.Unlock()
		s.notifyChange()
	})
	s.mu.Unlock()

	s.notifyChange()
	return nil
}

// Value returns the live buffer.
func (s *Session) Value() string {
	return s.bridge.Value()
}
