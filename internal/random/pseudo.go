// Copyright (c) 2026 Passgen Team
// Passgen - password generation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package random

import "math/rand/v2"

// Pseudo wraps a non-cryptographic PCG generator. It never falls back.
type Pseudo struct {
	rng *rand.Rand
}

// NewPseudo returns a PCG source seeded from the runtime's random state.
func NewPseudo() *Pseudo {
	return &Pseudo{rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

// NewPseudoSeeded returns a deterministic PCG source. Two instances built
// with the same seed produce the same sequence.
func NewPseudoSeeded(seed uint64) *Pseudo {
	return &Pseudo{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// IntN returns a uniform integer in [0, n).
func (p *Pseudo) IntN(n int) int {
	return p.rng.IntN(n)
}

// FallbackOccurred is always false: there is nothing weaker to fall back to.
func (p *Pseudo) FallbackOccurred() bool { return false }
