// Copyright (c) 2026 Passgen Team
// Passgen - password generation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

// Package clipboard copies generated passwords to the system clipboard.
package clipboard // import "github.com/toeirei/passgen/internal/clipboard"

import (
	"errors"
	"sync"

	"github.com/atotto/clipboard"
)

// ErrUnavailable is returned by sinks that cannot reach a clipboard.
var ErrUnavailable = errors.New("clipboard unavailable")

// Sink receives text to place on a clipboard.
type Sink interface {
	Write(text string) error
}

// Unsupported reports whether the platform has no clipboard utility, e.g. a
// headless Linux box without xclip, xsel or wl-copy.
func Unsupported() bool { return clipboard.Unsupported }

// System writes to the operating system clipboard.
type System struct{}

func (System) Write(text string) error {
	if clipboard.Unsupported {
		return ErrUnavailable
	}
	return clipboard.WriteAll(text)
}

// Disabled refuses every write. It is used when clipboard.enabled is false.
type Disabled struct{}

func (Disabled) Write(string) error { return ErrUnavailable }

// Memory keeps the last written text. Safe for concurrent use.
type Memory struct {
	mu   sync.Mutex
	last string
	n    int
}

func (m *Memory) Write(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last = text
	m.n++
	return nil
}

// Last returns the most recent text and how many writes happened.
func (m *Memory) Last() (string, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last, m.n
}

// New returns System when enabled and the platform supports it, otherwise
// Disabled.
func New(enabled bool) Sink {
	if !enabled || Unsupported() {
		return Disabled{}
	}
	return System{}
}
