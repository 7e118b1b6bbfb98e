// Copyright (c) 2026 Passgen Team
// Passgen - password generation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

// package model defines the core data structures shared by the generator,
// the persistence layer and the user interfaces.
package model // import "github.com/toeirei/passgen/internal/model"

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RandomAlgorithm selects the entropy source used for a generation request.
type RandomAlgorithm string

const (
	// PseudoRandom is a fast, non-cryptographic generator.
	PseudoRandom RandomAlgorithm = "pseudo_random"
	// CryptographicallySecure uses the operating system CSPRNG.
	CryptographicallySecure RandomAlgorithm = "cryptographically_secure"
	// HardwareRandom draws from the kernel entropy pool when available.
	HardwareRandom RandomAlgorithm = "hardware_random"
)

// RandomAlgorithms lists every supported algorithm in display order.
var RandomAlgorithms = []RandomAlgorithm{PseudoRandom, CryptographicallySecure, HardwareRandom}

// Valid reports whether a is one of the known algorithms.
func (a RandomAlgorithm) Valid() bool {
	for _, known := range RandomAlgorithms {
		if a == known {
			return true
		}
	}
	return false
}

// ShortName returns the CLI spelling of the algorithm.
func (a RandomAlgorithm) ShortName() string {
	switch a {
	case PseudoRandom:
		return "pseudo"
	case CryptographicallySecure:
		return "secure"
	case HardwareRandom:
		return "hardware"
	default:
		return string(a)
	}
}

// ParseRandomAlgorithm accepts either the stored name ("cryptographically_secure")
// or the short CLI name ("secure"), case-insensitively.
func ParseRandomAlgorithm(s string) (RandomAlgorithm, error) {
	in := strings.ToLower(strings.TrimSpace(s))
	for _, a := range RandomAlgorithms {
		if in == string(a) || in == a.ShortName() {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown random algorithm %q", s)
}

// GeneratedPassword is a single result of a generation batch.
type GeneratedPassword struct {
	ID    string
	Value string
	// HasFallback is true when the entropy source of the batch had to fall
	// back to a weaker source at least once.
	HasFallback bool
}

// NewGeneratedPassword wraps value with a fresh random identifier.
func NewGeneratedPassword(value string, hasFallback bool) GeneratedPassword {
	return GeneratedPassword{
		ID:          uuid.NewString(),
		Value:       value,
		HasFallback: hasFallback,
	}
}

// GenerationOutcomeOK marks a history entry whose batch completed.
const GenerationOutcomeOK = "ok"

// GenerationRecord is one entry of the generation history. It never holds
// password values.
type GenerationRecord struct {
	ID                  int             `json:"id"`
	CreatedAt           time.Time       `json:"created_at"`
	Algorithm           RandomAlgorithm `json:"algorithm"`
	Length              int             `json:"length"`
	Count               int             `json:"count"`
	AvoidRepeatingChars bool            `json:"avoid_repeating_chars"`
	HasFallback         bool            `json:"has_fallback"`
	Outcome             string          `json:"outcome"`
}
