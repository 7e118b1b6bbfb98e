// Copyright (c) 2026 Passgen Team
// Passgen - password generation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

// Package generator turns a PasswordConfig into a batch of passwords.
//
// Generate validates the configuration, flattens it into a character
// universe once per batch, creates a single entropy source for the whole
// batch and samples every position, redrawing when the avoid-repeat
// constraint rejects a candidate. The batch either completes or fails as a
// whole; partial results are never returned.
package generator

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/toeirei/passgen/internal/logging"
	"github.com/toeirei/passgen/internal/model"
	"github.com/toeirei/passgen/internal/random"
)

// MaxDrawsPerPosition caps candidate draws for one character position.
const MaxDrawsPerPosition = 1000

// SourceFactory builds the entropy source for one batch.
type SourceFactory func(model.RandomAlgorithm) random.Source

// Option configures a Generate call.
type Option func(*options)

type options struct {
	newSource SourceFactory
}

// WithSourceFactory overrides how the batch's entropy source is created.
func WithSourceFactory(f SourceFactory) Option {
	return func(o *options) { o.newSource = f }
}

// WithSeed makes pseudo-random batches reproducible. Other algorithms are
// unaffected.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.newSource = func(alg model.RandomAlgorithm) random.Source {
			if alg == model.PseudoRandom {
				return random.NewPseudoSeeded(seed)
			}
			return random.New(alg)
		}
	}
}

// Generate produces cfg.Count passwords of cfg.Length characters each.
// Errors are always *Error.
func Generate(cfg model.PasswordConfig, opts ...Option) ([]model.GeneratedPassword, error) {
	o := options{newSource: random.New}
	for _, opt := range opts {
		opt(&o)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	universe := cfg.CharacterUniverse()
	if len(universe) == 0 {
		return nil, &Error{Kind: EmptyCharacterUniverse, Reason: "no characters resolved"}
	}
	if cfg.AvoidRepeatingChars && len(universe) < 2 {
		return nil, &Error{
			Kind:   ConstraintUnsatisfiable,
			Reason: fmt.Sprintf("avoiding repeats needs at least 2 distinct characters, have %d", len(universe)),
		}
	}

	src := o.newSource(cfg.RandomAlgorithm)
	logging.Debugf("generating %d password(s) of length %d from %d characters using %s",
		cfg.Count, cfg.Length, len(universe), cfg.RandomAlgorithm)

	values := make([]string, 0, cfg.Count)
	for i := 0; i < cfg.Count; i++ {
		v, err := generateOne(cfg.Length, universe, cfg.AvoidRepeatingChars, src)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}

	fellBack := src.FallbackOccurred()
	if fellBack {
		logging.Warnf("entropy source %s fell back to a weaker source during generation", cfg.RandomAlgorithm)
	}

	out := make([]model.GeneratedPassword, 0, len(values))
	for _, v := range values {
		out = append(out, model.NewGeneratedPassword(v, fellBack))
	}
	return out, nil
}

// generateOne builds a single password. universe must hold distinct runes.
func generateOne(length int, universe []rune, avoidRepeats bool, src random.Source) (string, error) {
	var sb strings.Builder
	sb.Grow(length * maxRuneLen(universe))

	var last rune
	hasLast := false
	for pos := 0; pos < length; pos++ {
		next, ok := draw(universe, src, func(r rune) bool {
			return !avoidRepeats || !hasLast || r != last || len(universe) == 1
		})
		if !ok {
			return "", &Error{
				Kind:   ConstraintUnsatisfiable,
				Reason: fmt.Sprintf("no acceptable character after %d draws at position %d", MaxDrawsPerPosition, pos),
			}
		}
		sb.WriteRune(next)
		last, hasLast = next, true
	}
	return sb.String(), nil
}

// draw samples until accept returns true or MaxDrawsPerPosition is reached.
func draw(universe []rune, src random.Source, accept func(rune) bool) (rune, bool) {
	for attempt := 0; attempt < MaxDrawsPerPosition; attempt++ {
		r := universe[src.IntN(len(universe))]
		if accept(r) {
			return r, true
		}
	}
	return 0, false
}

func maxRuneLen(universe []rune) int {
	n := 1
	for _, r := range universe {
		n = max(n, utf8.RuneLen(r))
	}
	return n
}
