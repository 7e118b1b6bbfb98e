// Copyright (c) 2026 Passgen Team
// Passgen - password generation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package generator

import (
	"errors"
	"fmt"

	"github.com/toeirei/passgen/internal/model"
)

// Kind classifies why a batch could not be generated.
type Kind int

const (
	// InvalidConfiguration means a length, count or class-selection rule was
	// violated.
	InvalidConfiguration Kind = iota + 1
	// EmptyCharacterUniverse means symbols were requested but none resolved.
	EmptyCharacterUniverse
	// ConstraintUnsatisfiable means avoid-repeat was requested with a universe
	// too small for it, or the per-position redraw cap was hit.
	ConstraintUnsatisfiable
)

// Sentinels for errors.Is matching against an *Error of the same kind.
var (
	ErrInvalidConfiguration    = errors.New("invalid password configuration")
	ErrEmptyCharacterUniverse  = errors.New("empty character universe")
	ErrConstraintUnsatisfiable = errors.New("constraint unsatisfiable")
)

func (k Kind) String() string {
	switch k {
	case InvalidConfiguration:
		return "invalid_configuration"
	case EmptyCharacterUniverse:
		return "empty_character_universe"
	case ConstraintUnsatisfiable:
		return "constraint_unsatisfiable"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// MessageID is the i18n key for a user-facing description of the kind.
func (k Kind) MessageID() string {
	return "generate.error." + k.String()
}

func (k Kind) sentinel() error {
	switch k {
	case InvalidConfiguration:
		return ErrInvalidConfiguration
	case EmptyCharacterUniverse:
		return ErrEmptyCharacterUniverse
	case ConstraintUnsatisfiable:
		return ErrConstraintUnsatisfiable
	default:
		return nil
	}
}

// Error is the typed failure returned by Generate.
type Error struct {
	Kind   Kind
	Reason string
	// Cause is the underlying validation error, if any.
	Cause error
}

func (e *Error) Error() string {
	msg := e.Kind.sentinel()
	if msg == nil {
		return e.Reason
	}
	if e.Reason == "" {
		return msg.Error()
	}
	return msg.Error() + ": " + e.Reason
}

// Is matches the sentinel of the same kind.
func (e *Error) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

// Unwrap exposes the validation cause, so errors.Is(err, model.ErrNoSymbols)
// works on generator errors.
func (e *Error) Unwrap() error { return e.Cause }

// KindOf returns the Kind of err, or 0 if err is not a generator error.
func KindOf(err error) Kind {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return 0
}

// Validate checks cfg and classifies the first violation.
func Validate(cfg model.PasswordConfig) error {
	err := cfg.Check()
	switch {
	case err == nil:
		return nil
	case errors.Is(err, model.ErrNoSymbols):
		return &Error{Kind: EmptyCharacterUniverse, Reason: err.Error(), Cause: err}
	default:
		return &Error{Kind: InvalidConfiguration, Reason: err.Error(), Cause: err}
	}
}
