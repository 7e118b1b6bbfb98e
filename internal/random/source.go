// Copyright (c) 2026 Passgen Team
// Passgen - password generation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

// Package random provides the entropy sources used by the password generator.
//
// There are exactly three implementations of Source, selected by New from a
// model.RandomAlgorithm:
//
//   - Pseudo: math/rand/v2 PCG, fast and reproducible when seeded.
//   - Secure: the operating system CSPRNG, falling back to a ChaCha20
//     keystream when the CSPRNG read fails.
//   - Hardware: the kernel entropy pool (getrandom with GRND_RANDOM on Linux),
//     falling back to a Secure instance when the pool is unavailable.
//
// Every instance keeps its own sticky fallback flag. Instances are not safe for
// concurrent use; the generator creates one per request.
package random

import (
	"encoding/binary"

	"github.com/toeirei/passgen/internal/model"
)

// Source produces uniformly distributed integers.
type Source interface {
	// IntN returns a uniform integer in [0, n). It panics if n <= 0.
	IntN(n int) int
	// FallbackOccurred reports whether any draw so far had to use a weaker
	// source than the one requested. Once true it stays true.
	FallbackOccurred() bool
}

// New returns a fresh Source for the given algorithm. Unknown values get the
// secure source so that a corrupted setting never silently weakens output.
func New(alg model.RandomAlgorithm) Source {
	switch alg {
	case model.PseudoRandom:
		return NewPseudo()
	case model.HardwareRandom:
		return NewHardware()
	default:
		return NewSecure()
	}
}

// wordReader fills buf with random bytes.
type wordReader func(buf []byte) error

// uniform reduces 64-bit words from next into [0, n) without modulo bias by
// rejecting words below 2^64 mod n.
func uniform(n int, next func() (uint64, error)) (int, error) {
	if n <= 0 {
		panic("random: invalid argument to IntN")
	}
	bound := uint64(n)
	threshold := -bound % bound
	for {
		v, err := next()
		if err != nil {
			return 0, err
		}
		if v >= threshold {
			return int(v % bound), nil
		}
	}
}

// nextWord reads 8 bytes through read and decodes them as a uint64.
func nextWord(read wordReader) (uint64, error) {
	var b [8]byte
	if err := read(b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}
