// Copyright (c) 2026 Passgen Team
// Passgen - password generation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package random

import (
	"errors"

	"github.com/toeirei/passgen/internal/logging"
)

// ErrPoolUnavailable is returned by the entropy pool reader on platforms
// without a kernel pool passgen knows how to read.
var ErrPoolUnavailable = errors.New("hardware entropy pool unavailable")

// HardwareOption configures a Hardware source.
type HardwareOption func(*Hardware)

// WithEntropyFunc replaces the kernel pool reader.
func WithEntropyFunc(read func(buf []byte) error) HardwareOption {
	return func(h *Hardware) { h.read = read }
}

// WithFallback replaces the secure source used when the pool fails.
func WithFallback(s *Secure) HardwareOption {
	return func(h *Hardware) { h.fallback = s }
}

// Hardware draws from the kernel entropy pool and falls back to a Secure
// source on any error.
type Hardware struct {
	read     wordReader
	fallback *Secure
	fellBack bool
}

// NewHardware returns a Hardware source using the platform pool reader.
func NewHardware(opts ...HardwareOption) *Hardware {
	h := &Hardware{read: readEntropyPool}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// IntN returns a uniform integer in [0, n).
func (h *Hardware) IntN(n int) int {
	v, _ := uniform(n, h.word)
	return v
}

// FallbackOccurred reports whether the pool failed at least once, or the
// secure fallback itself had to fall back.
func (h *Hardware) FallbackOccurred() bool {
	if h.fellBack {
		return true
	}
	return h.fallback != nil && h.fallback.FallbackOccurred()
}

func (h *Hardware) word() (uint64, error) {
	v, err := nextWord(h.read)
	if err == nil {
		return v, nil
	}
	if !h.fellBack {
		logging.Warnf("hardware entropy unavailable, using secure source: %v", err)
	}
	h.fellBack = true
	if h.fallback == nil {
		h.fallback = NewSecure()
	}
	return h.fallback.word()
}
