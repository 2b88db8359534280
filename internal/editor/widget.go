// Package editor connects an editor widget to the document repository. It owns the draft
// lifecycle and is the only code that reads or writes the widget buffer.
package editor

import "github.com/rs/zerolog"

var editorLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	editorLogger = l
}

// Origin tags every buffer write so programmatic loads are never mistaken for user edits.
type Origin int

const (
	OriginUser Origin = iota
	OriginProgrammatic
)

func (o Origin) String() string {
	switch o {
	case OriginUser:
		return "user"
	case OriginProgrammatic:
		return "programmatic"
	default:
		return "unknown"
	}
}

type ChangeEvent struct {
	Value  string
	Origin Origin
}

// Widget is the editor component the notebook drives.
type Widget interface {
	Value() string
	SetValue(value string, origin Origin)
	// OnChange registers handler for content changes and returns a function that removes it.
	OnChange(handler func(ChangeEvent)) (unsubscribe func())
	Focus()
}
