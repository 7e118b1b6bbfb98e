// Copyright (c) 2026 Passgen Team
// Passgen - password generation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package generator

import (
	"errors"
	"math/rand/v2"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toeirei/passgen/internal/model"
	"github.com/toeirei/passgen/internal/random"
)

// constSource always returns the same index and counts draws.
type constSource struct {
	idx      int
	draws    int
	fallback bool
}

func (c *constSource) IntN(n int) int {
	c.draws++
	return c.idx % n
}

func (c *constSource) FallbackOccurred() bool { return c.fallback }

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("no entropy") }

func symbolsOnly(length int, selected ...string) model.PasswordConfig {
	return model.PasswordConfig{
		Length:          length,
		Count:           1,
		UseSymbols:      true,
		SelectedSymbols: selected,
		RandomAlgorithm: model.PseudoRandom,
	}
}

func assertNoAdjacentRepeats(t *testing.T, s string) {
	t.Helper()
	var prev rune = -1
	for i, r := range []rune(s) {
		require.NotEqualf(t, prev, r, "adjacent repeat at rune %d in %q", i, s)
		prev = r
	}
}

func TestGenerate_FiveLettersNoRepeat(t *testing.T) {
	cfg := symbolsOnly(5, "A", "B", "C", "D", "E")
	cfg.AvoidRepeatingChars = true

	got, err := Generate(cfg)
	require.NoError(t, err)
	require.Len(t, got, 1)

	v := got[0].Value
	assert.Equal(t, 5, utf8.RuneCountInString(v))
	for _, r := range v {
		assert.Contains(t, "ABCDE", string(r))
	}
	assertNoAdjacentRepeats(t, v)
	assert.False(t, got[0].HasFallback)
	assert.NotEmpty(t, got[0].ID)
}

func TestGenerate_SingleCharacterUniverseWithAvoidRepeat(t *testing.T) {
	cfg := symbolsOnly(4, "A")
	cfg.AvoidRepeatingChars = true

	called := false
	_, err := Generate(cfg, WithSourceFactory(func(model.RandomAlgorithm) random.Source {
		called = true
		return random.NewPseudo()
	}))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConstraintUnsatisfiable)
	assert.Equal(t, ConstraintUnsatisfiable, KindOf(err))
	assert.False(t, called, "no entropy source should be created")
}

func TestGenerate_SingleCharacterUniverseWithoutAvoidRepeat(t *testing.T) {
	got, err := Generate(symbolsOnly(6, "A"))
	require.NoError(t, err)
	assert.Equal(t, "AAAAAA", got[0].Value)
}

func TestGenerate_InvalidConfigurationsConsumeNoEntropy(t *testing.T) {
	base := model.DefaultPasswordConfig()
	cases := []struct {
		name string
		cfg  model.PasswordConfig
		kind Kind
		want error
	}{
		{"length 3", base.With(func(c *model.PasswordConfig) { c.Length = 3 }), InvalidConfiguration, ErrInvalidConfiguration},
		{"length too big", base.With(func(c *model.PasswordConfig) { c.Length = model.MaxLength + 1 }), InvalidConfiguration, ErrInvalidConfiguration},
		{"count 0", base.With(func(c *model.PasswordConfig) { c.Count = 0 }), InvalidConfiguration, ErrInvalidConfiguration},
		{"count 26", base.With(func(c *model.PasswordConfig) { c.Count = 26 }), InvalidConfiguration, ErrInvalidConfiguration},
		{"no classes", model.PasswordConfig{Length: 8, Count: 1}, InvalidConfiguration, ErrInvalidConfiguration},
		{"empty symbols", symbolsOnly(8), EmptyCharacterUniverse, ErrEmptyCharacterUniverse},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			src := &constSource{}
			got, err := Generate(tc.cfg, WithSourceFactory(func(model.RandomAlgorithm) random.Source { return src }))
			require.Error(t, err)
			assert.Nil(t, got)
			assert.ErrorIs(t, err, tc.want)
			assert.Equal(t, tc.kind, KindOf(err))
			assert.Zero(t, src.draws)
		})
	}
}

func TestGenerate_ValidationCauseIsUnwrappable(t *testing.T) {
	_, err := Generate(symbolsOnly(8))
	assert.ErrorIs(t, err, model.ErrNoSymbols)
	assert.NotErrorIs(t, err, ErrInvalidConfiguration)
}

func TestGenerate_RedrawCapExceeded(t *testing.T) {
	cfg := symbolsOnly(4, "A", "B")
	cfg.AvoidRepeatingChars = true
	src := &constSource{idx: 0}

	got, err := Generate(cfg, WithSourceFactory(func(model.RandomAlgorithm) random.Source { return src }))
	require.Error(t, err)
	assert.Nil(t, got, "partial results must not be returned")
	assert.ErrorIs(t, err, ErrConstraintUnsatisfiable)
	// One draw for position 0, then the full cap for position 1.
	assert.Equal(t, 1+MaxDrawsPerPosition, src.draws)
}

func TestGenerate_CountAndLengthAndMembership(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 200; i++ {
		cfg := model.PasswordConfig{
			Length:              model.MinLength + rng.IntN(60),
			Count:               model.MinCount + rng.IntN(model.MaxCount),
			UseUppercase:        rng.IntN(2) == 0,
			UseLowercase:        rng.IntN(2) == 0,
			UseNumbers:          rng.IntN(2) == 0,
			UseSymbols:          rng.IntN(2) == 0,
			CustomSymbols:       []string{"", "äö ", "!!", "日本語"}[rng.IntN(4)],
			AvoidRepeatingChars: rng.IntN(2) == 0,
			RandomAlgorithm:     model.RandomAlgorithms[rng.IntN(len(model.RandomAlgorithms))],
		}
		if rng.IntN(2) == 0 {
			cfg = cfg.WithAllSymbols(true)
		}
		if !cfg.IsValid() || (cfg.AvoidRepeatingChars && len(cfg.CharacterUniverse()) < 2) {
			continue
		}

		got, err := Generate(cfg)
		require.NoError(t, err, "cfg=%+v", cfg)
		require.Len(t, got, cfg.Count)

		universe := cfg.CharacterSet()
		for _, p := range got {
			require.Equal(t, cfg.Length, utf8.RuneCountInString(p.Value))
			for _, r := range p.Value {
				require.True(t, strings.ContainsRune(universe, r), "%q not in universe %q", r, universe)
			}
			if cfg.AvoidRepeatingChars {
				assertNoAdjacentRepeats(t, p.Value)
			}
		}
	}
}

func TestGenerate_SeededIsReproducible(t *testing.T) {
	cfg := model.DefaultPasswordConfig()
	a, err := Generate(cfg, WithSeed(7))
	require.NoError(t, err)
	b, err := Generate(cfg, WithSeed(7))
	require.NoError(t, err)
	require.Len(t, b, len(a))
	for i := range a {
		assert.Equal(t, a[i].Value, b[i].Value)
		assert.NotEqual(t, a[i].ID, b[i].ID, "ids are never reused")
	}
}

func TestGenerate_PseudoNeverReportsFallback(t *testing.T) {
	got, err := Generate(model.DefaultPasswordConfig())
	require.NoError(t, err)
	for _, p := range got {
		assert.False(t, p.HasFallback)
	}
}

func TestGenerate_FallbackFlagsWholeBatch(t *testing.T) {
	cases := []struct {
		name string
		alg  model.RandomAlgorithm
		src  func() random.Source
	}{
		{"secure", model.CryptographicallySecure, func() random.Source {
			return random.NewSecure(random.WithReader(failingReader{}))
		}},
		{"hardware", model.HardwareRandom, func() random.Source {
			return random.NewHardware(random.WithEntropyFunc(func([]byte) error { return random.ErrPoolUnavailable }))
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := model.DefaultPasswordConfig()
			cfg.RandomAlgorithm = tc.alg
			cfg.Count = 3

			var gotAlg model.RandomAlgorithm
			got, err := Generate(cfg, WithSourceFactory(func(a model.RandomAlgorithm) random.Source {
				gotAlg = a
				return tc.src()
			}))
			require.NoError(t, err)
			assert.Equal(t, tc.alg, gotAlg)
			require.Len(t, got, 3)
			for _, p := range got {
				assert.True(t, p.HasFallback)
				assert.Len(t, p.Value, cfg.Length)
			}
		})
	}
}

func TestGenerate_FallbackLateInBatchStillMarksEarlierPasswords(t *testing.T) {
	src := &lateFallbackSource{after: 20}
	cfg := model.DefaultPasswordConfig()
	cfg.Count = 3
	cfg.Length = 10

	got, err := Generate(cfg, WithSourceFactory(func(model.RandomAlgorithm) random.Source { return src }))
	require.NoError(t, err)
	for _, p := range got {
		assert.True(t, p.HasFallback)
	}
}

type lateFallbackSource struct {
	after int
	draws int
}

func (l *lateFallbackSource) IntN(n int) int {
	l.draws++
	return l.draws % n
}

func (l *lateFallbackSource) FallbackOccurred() bool { return l.draws > l.after }

func TestError_Messages(t *testing.T) {
	err := &Error{Kind: EmptyCharacterUniverse, Reason: "nothing"}
	assert.Equal(t, "empty character universe: nothing", err.Error())
	assert.Equal(t, "generate.error.empty_character_universe", EmptyCharacterUniverse.MessageID())
	assert.Equal(t, Kind(0), KindOf(errors.New("other")))
}
