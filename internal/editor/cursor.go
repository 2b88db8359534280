package editor

import "github.com/debemdeboas/the-notebook/internal/model"

// Cursor records what the editor is showing: the draft or exactly one document. It also holds the
// title field, which belongs to whichever of the two is showing.
//
// Cursor is not safe for concurrent use; the session serializes access.
type Cursor struct {
	current model.DocumentID
	draft   bool
	title   string
}

func (c *Cursor) IsDraft() bool {
	return c.draft
}

// Current returns the selected document. ok is false in draft mode or before anything was opened.
func (c *Cursor) Current() (id model.DocumentID, ok bool) {
	if c.draft || c.current == "" {
		return "", false
	}
	return c.current, true
}

func (c *Cursor) Select(id model.DocumentID) {
	c.current = id
	c.draft = false
}

func (c *Cursor) enterDraft() {
	c.current = ""
	c.draft = true
}

func (c *Cursor) Title() string {
	return c.title
}

func (c *Cursor) SetTitle(title string) {
	c.title = title
}
