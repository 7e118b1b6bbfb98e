// Copyright (c) 2026 Passgen Team
// Passgen - password generation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

// Package ui holds the pieces shared by the CLI and the terminal UI: running a
// generation and recording it in the history, and turning errors and
// settings into localized text.
package ui // import "github.com/toeirei/passgen/internal/ui"

import (
	"context"
	"time"

	"github.com/toeirei/passgen/internal/generator"
	"github.com/toeirei/passgen/internal/logging"
	"github.com/toeirei/passgen/internal/model"
)

// HistoryLogger records generation runs.
type HistoryLogger interface {
	LogGeneration(ctx context.Context, rec model.GenerationRecord) (int, error)
}

// GenerateFunc produces a batch of passwords.
type GenerateFunc func(cfg model.PasswordConfig) ([]model.GeneratedPassword, error)

// Generator runs generation batches and records each run.
type Generator struct {
	// History may be nil, in which case nothing is recorded.
	History HistoryLogger
	// Generate defaults to generator.Generate.
	Generate GenerateFunc
	// Now defaults to time.Now.
	Now func() time.Time
}

// Run generates a batch for cfg and appends the outcome to the history.
// A failing history write is logged but does not fail the batch.
func (g Generator) Run(ctx context.Context, cfg model.PasswordConfig) ([]model.GeneratedPassword, error) {
	gen := g.Generate
	if gen == nil {
		gen = func(cfg model.PasswordConfig) ([]model.GeneratedPassword, error) { return generator.Generate(cfg) }
	}
	now := g.Now
	if now == nil {
		now = time.Now
	}

	passwords, err := gen(cfg)

	if g.History != nil {
		rec := model.GenerationRecord{
			CreatedAt:           now(),
			Algorithm:           cfg.RandomAlgorithm,
			Length:              cfg.Length,
			Count:               cfg.Count,
			AvoidRepeatingChars: cfg.AvoidRepeatingChars,
			Outcome:             Outcome(err),
		}
		if len(passwords) > 0 {
			rec.HasFallback = passwords[0].HasFallback
		}
		if _, herr := g.History.LogGeneration(ctx, rec); herr != nil {
			logging.Warnf("could not record generation in history: %v", herr)
		}
	}
	return passwords, err
}

// Outcome is the history label for a generation result.
func Outcome(err error) string {
	if err == nil {
		return model.GenerationOutcomeOK
	}
	if k := generator.KindOf(err); k != 0 {
		return k.String()
	}
	return "error"
}

// HasFallback reports whether any password of the batch was produced after
// an entropy fallback.
func HasFallback(passwords []model.GeneratedPassword) bool {
	for _, p := range passwords {
		if p.HasFallback {
			return true
		}
	}
	return false
}
