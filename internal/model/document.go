// Package model defines the document types shared by the store, repository and session layers.
package model

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// Placeholder is written into the editor for a fresh draft. Content equal to it counts as unwritten.
	Placeholder = "Write something..."

	UntitledDocument = "Untitled Document"

	displayTitleLength = 50
	ellipsis           = "..."
)

type DocumentID string

type Document struct {
	ID      DocumentID `json:"id"`
	Title   string     `json:"title"`
	Content string     `json:"content"`

	// Unix milliseconds. Only used for ordering.
	CreatedAt int64 `json:"createdAt"`
}

// Patch carries the fields of an update. Nil fields are left untouched.
type Patch struct {
	Content *string
	Title   *string
}

func (p Patch) IsEmpty() bool {
	return p.Content == nil && p.Title == nil
}

func (d *Document) Apply(p Patch) {
	if p.Content != nil {
		d.Content = *p.Content
	}
	if p.Title != nil {
		d.Title = *p.Title
	}
}

func (d *Document) Created() time.Time {
	return time.UnixMilli(d.CreatedAt)
}

// DisplayTitle derives the sidebar label of a document from its content.
func DisplayTitle(doc Document) string {
	return DisplayTitleFor(doc.Content, Placeholder)
}

// DisplayTitleFor is DisplayTitle with a custom placeholder.
func DisplayTitleFor(content, placeholder string) string {
	if strings.TrimSpace(content) == "" || content == placeholder {
		return UntitledDocument
	}

	prefix := content
	truncated := utf8.RuneCountInString(content) > displayTitleLength
	if truncated {
		prefix = string([]rune(content)[:displayTitleLength])
	}

	title := strings.TrimSpace(strings.ReplaceAll(prefix, "\n", " "))
	if truncated {
		title += ellipsis
	}
	return title
}

// FormatTimestamp renders a CreatedAt value in local time for the document list.
func FormatTimestamp(ms int64) string {
	return time.UnixMilli(ms).Local().Format("2006-01-02 15:04:05")
}

func StringPtr(s string) *string {
	return &s
}
