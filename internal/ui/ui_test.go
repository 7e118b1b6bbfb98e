// Copyright (c) 2026 Passgen Team
// Passgen - password generation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package ui

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toeirei/passgen/internal/generator"
	"github.com/toeirei/passgen/internal/i18n"
	"github.com/toeirei/passgen/internal/model"
)

type recordingHistory struct {
	recs []model.GenerationRecord
	err  error
}

func (r *recordingHistory) LogGeneration(_ context.Context, rec model.GenerationRecord) (int, error) {
	r.recs = append(r.recs, rec)
	return len(r.recs), r.err
}

func TestGeneratorRun_RecordsSuccess(t *testing.T) {
	h := &recordingHistory{}
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	g := Generator{
		History: h,
		Generate: func(cfg model.PasswordConfig) ([]model.GeneratedPassword, error) {
			return []model.GeneratedPassword{model.NewGeneratedPassword("abcd", true)}, nil
		},
		Now: func() time.Time { return fixed },
	}
	cfg := model.DefaultPasswordConfig().With(func(c *model.PasswordConfig) { c.RandomAlgorithm = model.HardwareRandom })

	got, err := g.Run(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Len(t, h.recs, 1)
	rec := h.recs[0]
	assert.Equal(t, fixed, rec.CreatedAt)
	assert.Equal(t, model.HardwareRandom, rec.Algorithm)
	assert.Equal(t, cfg.Length, rec.Length)
	assert.True(t, rec.HasFallback)
	assert.Equal(t, model.GenerationOutcomeOK, rec.Outcome)
}

func TestGeneratorRun_RecordsFailureKind(t *testing.T) {
	h := &recordingHistory{}
	cfg := model.PasswordConfig{Length: 6, Count: 1, UseSymbols: true, SelectedSymbols: []string{"A"}, AvoidRepeatingChars: true}

	_, err := Generator{History: h}.Run(context.Background(), cfg)
	require.ErrorIs(t, err, generator.ErrConstraintUnsatisfiable)
	require.Len(t, h.recs, 1)
	assert.Equal(t, "constraint_unsatisfiable", h.recs[0].Outcome)
}

func TestGeneratorRun_HistoryFailureDoesNotFailBatch(t *testing.T) {
	h := &recordingHistory{err: errors.New("read-only database")}
	got, err := Generator{History: h}.Run(context.Background(), model.DefaultPasswordConfig())
	require.NoError(t, err)
	assert.Len(t, got, 5)
}

func TestErrorMessage(t *testing.T) {
	i18n.Init("en")
	_, err := generator.Generate(model.DefaultPasswordConfig().With(func(c *model.PasswordConfig) { c.Length = 1 }))
	assert.Contains(t, ErrorMessage(err), "100000000")

	_, err = generator.Generate(model.DefaultPasswordConfig().With(func(c *model.PasswordConfig) {
		c.UseSymbols = true
		c.SelectedSymbols = nil
	}))
	assert.Equal(t, i18n.T("config.error.no_symbols"), ErrorMessage(err))

	kindOnly := &generator.Error{Kind: generator.ConstraintUnsatisfiable}
	assert.Equal(t, i18n.T("generate.error.constraint_unsatisfiable"), ErrorMessage(kindOnly))
	assert.NotEqual(t, "generate.error.constraint_unsatisfiable", ErrorMessage(kindOnly), "message must be translated")

	assert.Equal(t, "boom", ErrorMessage(errors.New("boom")))
	assert.Empty(t, ErrorMessage(nil))
}

func TestOutcomeAndHasFallback(t *testing.T) {
	assert.Equal(t, "ok", Outcome(nil))
	assert.Equal(t, "error", Outcome(errors.New("x")))
	assert.False(t, HasFallback(nil))
	assert.True(t, HasFallback([]model.GeneratedPassword{{}, {HasFallback: true}}))
}

func TestAlgorithmLabelsAreTranslated(t *testing.T) {
	for _, lang := range []string{"en", "ja"} {
		i18n.Init(lang)
		for _, alg := range model.RandomAlgorithms {
			assert.NotEqual(t, "algorithm."+string(alg), AlgorithmLabel(alg), "%s/%s", lang, alg)
		}
	}
	i18n.Init("en")
}
