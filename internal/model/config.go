// Copyright (c) 2026 Passgen Team
// Passgen - password generation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package model

import (
	"errors"
	"slices"
	"strings"
)

// Length and count bounds accepted by Validate.
const (
	MinLength = 4
	MaxLength = 100_000_000
	MinCount  = 1
	MaxCount  = 25
)

// Character classes, in the order they are added to the universe.
const (
	UppercaseLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	LowercaseLetters = "abcdefghijklmnopqrstuvwxyz"
	Digits           = "0123456789"
)

// SymbolCatalog is the fixed list of symbols a user can pick from.
var SymbolCatalog = []string{
	"-", "_", "@", "/", "*", "+", ",", "!", "?", "#", "$", "%", "&",
	"(", ")", "{", "}", "[", "]", "~", "|", ":", ";", "\"", "'",
	"^", ">", "<", "=",
}

// Validation failures reported by PasswordConfig.Check.
var (
	ErrLengthOutOfRange = errors.New("length out of range")
	ErrCountOutOfRange  = errors.New("count out of range")
	ErrNoCharacterClass = errors.New("no character class selected")
	ErrNoSymbols        = errors.New("symbols enabled but none selected")
)

// PasswordConfig describes a generation request. It is treated as an
// immutable value: the With* helpers return modified copies and never touch
// the receiver's SelectedSymbols backing array.
type PasswordConfig struct {
	Length              int             `json:"length"`
	Count               int             `json:"count"`
	UseUppercase        bool            `json:"use_uppercase"`
	UseLowercase        bool            `json:"use_lowercase"`
	UseNumbers          bool            `json:"use_numbers"`
	UseSymbols          bool            `json:"use_symbols"`
	SelectedSymbols     []string        `json:"selected_symbols"`
	CustomSymbols       string          `json:"custom_symbols"`
	AvoidRepeatingChars bool            `json:"avoid_repeating_chars"`
	RandomAlgorithm     RandomAlgorithm `json:"random_algorithm"`
}

// DefaultPasswordConfig returns the configuration used before anything is saved.
func DefaultPasswordConfig() PasswordConfig {
	return PasswordConfig{
		Length:          12,
		Count:           5,
		UseUppercase:    true,
		UseLowercase:    true,
		UseNumbers:      true,
		RandomAlgorithm: PseudoRandom,
	}
}

// Check returns nil when the configuration can be generated, or one of the
// Err* values above describing the first rule it breaks.
func (c PasswordConfig) Check() error {
	if c.Length < MinLength || c.Length > MaxLength {
		return ErrLengthOutOfRange
	}
	if c.Count < MinCount || c.Count > MaxCount {
		return ErrCountOutOfRange
	}
	if !c.UseUppercase && !c.UseLowercase && !c.UseNumbers && !c.UseSymbols {
		return ErrNoCharacterClass
	}
	if c.UseSymbols && len(c.ResolvedSymbols()) == 0 {
		return ErrNoSymbols
	}
	return nil
}

// IsValid reports whether Check passes.
func (c PasswordConfig) IsValid() bool {
	return c.Check() == nil
}

// ResolvedSymbols returns the union of selected and custom symbols, one rune
// per element, in selected-then-custom order with the first occurrence kept.
func (c PasswordConfig) ResolvedSymbols() []rune {
	seen := make(map[rune]struct{})
	var out []rune
	add := func(s string) {
		for _, r := range s {
			if _, ok := seen[r]; ok {
				continue
			}
			seen[r] = struct{}{}
			out = append(out, r)
		}
	}
	for _, s := range c.SelectedSymbols {
		add(s)
	}
	add(c.CustomSymbols)
	return out
}

// CharacterUniverse flattens the configuration into the ordered, duplicate
// free set of characters a password may contain. It is recomputed on every
// call. The result is empty only for configurations Check rejects.
func (c PasswordConfig) CharacterUniverse() []rune {
	seen := make(map[rune]struct{})
	var out []rune
	add := func(rs []rune) {
		for _, r := range rs {
			if _, ok := seen[r]; ok {
				continue
			}
			seen[r] = struct{}{}
			out = append(out, r)
		}
	}
	if c.UseUppercase {
		add([]rune(UppercaseLetters))
	}
	if c.UseLowercase {
		add([]rune(LowercaseLetters))
	}
	if c.UseNumbers {
		add([]rune(Digits))
	}
	if c.UseSymbols {
		add(c.ResolvedSymbols())
	}
	return out
}

// CharacterSet is CharacterUniverse as a string.
func (c PasswordConfig) CharacterSet() string {
	return string(c.CharacterUniverse())
}

// Equal reports structural equality. Symbol selection is compared as a set.
func (c PasswordConfig) Equal(o PasswordConfig) bool {
	if c.Length != o.Length || c.Count != o.Count ||
		c.UseUppercase != o.UseUppercase || c.UseLowercase != o.UseLowercase ||
		c.UseNumbers != o.UseNumbers || c.UseSymbols != o.UseSymbols ||
		c.CustomSymbols != o.CustomSymbols ||
		c.AvoidRepeatingChars != o.AvoidRepeatingChars ||
		c.RandomAlgorithm != o.RandomAlgorithm {
		return false
	}
	a := uniqueSorted(c.SelectedSymbols)
	b := uniqueSorted(o.SelectedSymbols)
	return slices.Equal(a, b)
}

func uniqueSorted(in []string) []string {
	out := slices.Clone(in)
	slices.Sort(out)
	return slices.Compact(out)
}

// HasSymbol reports whether sym is currently selected.
func (c PasswordConfig) HasSymbol(sym string) bool {
	return slices.Contains(c.SelectedSymbols, sym)
}

// AllSymbolsSelected reports whether every catalog symbol is selected.
func (c PasswordConfig) AllSymbolsSelected() bool {
	for _, s := range SymbolCatalog {
		if !c.HasSymbol(s) {
			return false
		}
	}
	return true
}

// WithLength returns a copy with Length clamped into the accepted range.
func (c PasswordConfig) WithLength(n int) PasswordConfig {
	c.SelectedSymbols = slices.Clone(c.SelectedSymbols)
	c.Length = ClampLength(n)
	return c
}

// WithCount returns a copy with Count clamped into the accepted range.
func (c PasswordConfig) WithCount(n int) PasswordConfig {
	c.SelectedSymbols = slices.Clone(c.SelectedSymbols)
	c.Count = ClampCount(n)
	return c
}

// WithSymbolSelected returns a copy with sym added to or removed from the
// selection. Selection order is preserved.
func (c PasswordConfig) WithSymbolSelected(sym string, selected bool) PasswordConfig {
	out := make([]string, 0, len(c.SelectedSymbols)+1)
	for _, s := range c.SelectedSymbols {
		if s != sym {
			out = append(out, s)
		}
	}
	if selected {
		out = append(out, sym)
	}
	c.SelectedSymbols = out
	return c
}

// WithAllSymbols returns a copy selecting the whole catalog, or nothing.
func (c PasswordConfig) WithAllSymbols(selected bool) PasswordConfig {
	if selected {
		c.SelectedSymbols = slices.Clone(SymbolCatalog)
	} else {
		c.SelectedSymbols = nil
	}
	return c
}

// With returns a copy of c after applying fn to it. fn receives a copy whose
// SelectedSymbols slice it may modify freely.
func (c PasswordConfig) With(fn func(*PasswordConfig)) PasswordConfig {
	c.SelectedSymbols = slices.Clone(c.SelectedSymbols)
	fn(&c)
	return c
}

// ClampLength coerces n into [MinLength, MaxLength].
func ClampLength(n int) int {
	return min(max(n, MinLength), MaxLength)
}

// ClampCount coerces n into [MinCount, MaxCount].
func ClampCount(n int) int {
	return min(max(n, MinCount), MaxCount)
}

// SelectedSymbolsString joins the selection for display.
func (c PasswordConfig) SelectedSymbolsString() string {
	return strings.Join(c.SelectedSymbols, "")
}
