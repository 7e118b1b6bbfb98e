// Copyright (c) 2026 Passgen Team
// Passgen - password generation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package ui

import (
	"errors"

	"github.com/toeirei/passgen/internal/generator"
	"github.com/toeirei/passgen/internal/i18n"
	"github.com/toeirei/passgen/internal/model"
)

// ErrorMessage renders err for the user in the active language. Validation
// failures name the broken rule; other generator errors use their kind.
func ErrorMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, model.ErrLengthOutOfRange):
		return i18n.T("config.error.length", model.MinLength, model.MaxLength)
	case errors.Is(err, model.ErrCountOutOfRange):
		return i18n.T("config.error.count", model.MinCount, model.MaxCount)
	case errors.Is(err, model.ErrNoCharacterClass):
		return i18n.T("config.error.no_class")
	case errors.Is(err, model.ErrNoSymbols):
		return i18n.T("config.error.no_symbols")
	}
	if k := generator.KindOf(err); k != 0 {
		return i18n.T(k.MessageID())
	}
	return err.Error()
}

// AlgorithmLabel is the localized display name of alg.
func AlgorithmLabel(alg model.RandomAlgorithm) string {
	return i18n.T("algorithm." + string(alg))
}

// FallbackWarning is shown whenever a batch used a fallback entropy source.
func FallbackWarning(alg model.RandomAlgorithm) string {
	return i18n.T("generate.fallback_warning", AlgorithmLabel(alg))
}
