package editor

import (
	"slices"
	"sync"
)

// Buffer is an in-process Widget. Handlers run synchronously on the writer's goroutine,
// after the buffer lock is released.
type Buffer struct {
	mu       sync.RWMutex
	value    string
	handlers map[int]func(ChangeEvent)
	nextID   int
	focused  int
}

func NewBuffer() *Buffer {
	return &Buffer{handlers: make(map[int]func(ChangeEvent))}
}

func (b *Buffer) Value() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.value
}

// SetValue replaces the buffer. Writes that do not change the content emit no event.
func (b *Buffer) SetValue(value string, origin Origin) {
	b.mu.Lock()
	if b.value == value {
		b.mu.Unlock()
		return
	}
	b.value = value

	ids := make([]int, 0, len(b.handlers))
	for id := range b.handlers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	handlers := make([]func(ChangeEvent), 0, len(ids))
	for _, id := range ids {
		handlers = append(handlers, b.handlers[id])
	}
	b.mu.Unlock()

	event := ChangeEvent{Value: value, Origin: origin}
	for _, h := range handlers {
		h(event)
	}
}

// Type appends text as if the user typed it.
func (b *Buffer) Type(text string) {
	b.SetValue(b.Value()+text, OriginUser)
}

func (b *Buffer) OnChange(handler func(ChangeEvent)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[id] = handler

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.handlers, id)
	}
}

func (b *Buffer) Focus() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.focused++
}

// FocusCount reports how many times Focus was called.
func (b *Buffer) FocusCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.focused
}
