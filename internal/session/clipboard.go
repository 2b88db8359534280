package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/aymanbagabas/go-osc52/v2"
	"github.com/debemdeboas/the-notebook/internal/config"
)

var ErrClipboardDenied = errors.New("clipboard: write denied")

type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}

type OSC52Mode string

const (
	OSC52Default OSC52Mode = ""
	OSC52Tmux    OSC52Mode = "tmux"
	OSC52Screen  OSC52Mode = "screen"
)

// OSC52Clipboard sets the system clipboard through the controlling terminal with an OSC 52 escape sequence.
type OSC52Clipboard struct {
	Out  io.Writer
	Mode OSC52Mode
}

func NewOSC52Clipboard(mode OSC52Mode) *OSC52Clipboard {
	return &OSC52Clipboard{Out: os.Stderr, Mode: mode}
}

func (c *OSC52Clipboard) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.Out == nil {
		return ErrClipboardDenied
	}

	seq := osc52.New(text)
	switch c.Mode {
	case OSC52Tmux:
		seq = seq.Tmux()
	case OSC52Screen:
		seq = seq.Screen()
	}

	if _, err := seq.WriteTo(c.Out); err != nil {
		return fmt.Errorf("error writing clipboard sequence: %w", err)
	}
	return nil
}

// MemoryClipboard records the last write. Setting Err makes every write fail with it.
type MemoryClipboard struct {
	mu   sync.Mutex
	text string
	Err  error
}

func (m *MemoryClipboard) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.text = text
	return nil
}

func (m *MemoryClipboard) Text() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text
}

// NewClipboard returns the clipboard configured by kind, one of the config.Clipboard* values.
func NewClipboard(kind string) (Clipboard, error) {
	switch kind {
	case config.ClipboardOSC52, "":
		return NewOSC52Clipboard(OSC52Default), nil
	case config.ClipboardOSC52Tmux:
		return NewOSC52Clipboard(OSC52Tmux), nil
	case config.ClipboardOSC52Screen:
		return NewOSC52Clipboard(OSC52Screen), nil
	case config.ClipboardMemory:
		return &MemoryClipboard{}, nil
	default:
		return nil, fmt.Errorf("unknown clipboard %q", kind)
	}
}
