// Copyright (c) 2026 Passgen Team
// Passgen - password generation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package model

import (
	"errors"
	"testing"
)

func symbolsOnly(selected ...string) PasswordConfig {
	return PasswordConfig{
		Length:          8,
		Count:           1,
		UseSymbols:      true,
		SelectedSymbols: selected,
		RandomAlgorithm: PseudoRandom,
	}
}

func TestCheck_Boundaries(t *testing.T) {
	base := DefaultPasswordConfig()
	cases := []struct {
		name string
		cfg  PasswordConfig
		want error
	}{
		{"defaults", base, nil},
		{"length 3", base.With(func(c *PasswordConfig) { c.Length = 3 }), ErrLengthOutOfRange},
		{"length 4", base.With(func(c *PasswordConfig) { c.Length = 4 }), nil},
		{"length max", base.With(func(c *PasswordConfig) { c.Length = 100_000_000 }), nil},
		{"length max+1", base.With(func(c *PasswordConfig) { c.Length = 100_000_001 }), ErrLengthOutOfRange},
		{"count 0", base.With(func(c *PasswordConfig) { c.Count = 0 }), ErrCountOutOfRange},
		{"count 1", base.With(func(c *PasswordConfig) { c.Count = 1 }), nil},
		{"count 25", base.With(func(c *PasswordConfig) { c.Count = 25 }), nil},
		{"count 26", base.With(func(c *PasswordConfig) { c.Count = 26 }), ErrCountOutOfRange},
		{"no classes", base.With(func(c *PasswordConfig) {
			c.UseUppercase, c.UseLowercase, c.UseNumbers, c.UseSymbols = false, false, false, false
		}), ErrNoCharacterClass},
		{"symbols without any", base.With(func(c *PasswordConfig) { c.UseSymbols = true }), ErrNoSymbols},
		{"symbols from custom only", base.With(func(c *PasswordConfig) {
			c.UseSymbols = true
			c.CustomSymbols = "§"
		}), nil},
		{"symbols ignored when disabled", base.With(func(c *PasswordConfig) {
			c.SelectedSymbols = nil
			c.UseSymbols = false
		}), nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Check()
			if !errors.Is(err, tc.want) {
				t.Fatalf("Check() = %v, want %v", err, tc.want)
			}
			if tc.cfg.IsValid() != (tc.want == nil) {
				t.Fatalf("IsValid() disagrees with Check(): %v", err)
			}
		})
	}
}

func TestCharacterUniverse_OrderAndClasses(t *testing.T) {
	cfg := PasswordConfig{UseUppercase: true, UseNumbers: true}
	if got, want := cfg.CharacterSet(), UppercaseLetters+Digits; got != want {
		t.Fatalf("got %q want %q", got, want)
	}

	cfg = DefaultPasswordConfig().With(func(c *PasswordConfig) {
		c.UseSymbols = true
		c.SelectedSymbols = []string{"#", "!"}
		c.CustomSymbols = "é "
	})
	want := UppercaseLetters + LowercaseLetters + Digits + "#!é "
	if got := cfg.CharacterSet(); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestCharacterUniverse_Deduplicates(t *testing.T) {
	cfg := symbolsOnly("A", "B", "A")
	cfg.CustomSymbols = "BBCA  "
	if got, want := cfg.CharacterSet(), "ABC "; got != want {
		t.Fatalf("got %q want %q", got, want)
	}

	// Custom symbols overlapping an enabled class keep the class position.
	cfg = PasswordConfig{UseNumbers: true, UseSymbols: true, CustomSymbols: "1x1"}
	if got, want := cfg.CharacterSet(), Digits+"x"; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestCharacterUniverse_Deterministic(t *testing.T) {
	cfg := symbolsOnly("?", "-", "_")
	cfg.UseLowercase = true
	cfg.CustomSymbols = "日本"
	first := cfg.CharacterSet()
	for i := 0; i < 10; i++ {
		clone := cfg.With(func(*PasswordConfig) {})
		if got := clone.CharacterSet(); got != first {
			t.Fatalf("universe changed between calls: %q vs %q", got, first)
		}
	}
}

func TestCharacterUniverse_EmptyForRejectedConfigs(t *testing.T) {
	if got := (PasswordConfig{}).CharacterUniverse(); len(got) != 0 {
		t.Fatalf("expected empty universe, got %q", string(got))
	}
	if got := symbolsOnly().CharacterUniverse(); len(got) != 0 {
		t.Fatalf("expected empty universe, got %q", string(got))
	}
}

func TestWithHelpers_DoNotMutateReceiver(t *testing.T) {
	orig := symbolsOnly("!", "?")
	changed := orig.WithSymbolSelected("!", false).WithSymbolSelected("#", true)
	if got := orig.SelectedSymbolsString(); got != "!?" {
		t.Fatalf("receiver mutated: %q", got)
	}
	if got := changed.SelectedSymbolsString(); got != "?#" {
		t.Fatalf("unexpected selection %q", got)
	}

	all := orig.WithAllSymbols(true)
	if !all.AllSymbolsSelected() {
		t.Fatalf("expected every catalog symbol selected")
	}
	all.SelectedSymbols[0] = "X"
	if SymbolCatalog[0] != "-" {
		t.Fatalf("catalog mutated through WithAllSymbols copy")
	}
	if none := all.WithAllSymbols(false); len(none.SelectedSymbols) != 0 {
		t.Fatalf("expected empty selection")
	}
}

func TestClamp(t *testing.T) {
	if got := DefaultPasswordConfig().WithLength(1).Length; got != MinLength {
		t.Fatalf("length clamp low = %d", got)
	}
	if got := DefaultPasswordConfig().WithLength(MaxLength + 5).Length; got != MaxLength {
		t.Fatalf("length clamp high = %d", got)
	}
	if got := DefaultPasswordConfig().WithCount(0).Count; got != MinCount {
		t.Fatalf("count clamp low = %d", got)
	}
	if got := DefaultPasswordConfig().WithCount(99).Count; got != MaxCount {
		t.Fatalf("count clamp high = %d", got)
	}
}

func TestEqual_SelectionIsASet(t *testing.T) {
	a := symbolsOnly("!", "?")
	b := symbolsOnly("?", "!", "!")
	if !a.Equal(b) {
		t.Fatalf("expected set-equal selections to compare equal")
	}
	if a.Equal(a.WithLength(9)) {
		t.Fatalf("expected different lengths to differ")
	}
}
