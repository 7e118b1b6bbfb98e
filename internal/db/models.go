// Copyright (c) 2026 Passgen Team
// Passgen - password generation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"encoding/json"
	"time"

	"github.com/toeirei/passgen/internal/model"
	"github.com/uptrace/bun"
)

const (
	passwordConfigsTable = "password_configs"
	generationLogTable   = "generation_log"

	// savedConfigID is the row holding the single saved configuration.
	savedConfigID = 1
)

type passwordConfigModel struct {
	bun.BaseModel `bun:"table:password_configs"`

	ID                  int       `bun:"id,pk"`
	Length              int       `bun:"length,notnull"`
	Count               int       `bun:"password_count,notnull"`
	UseUppercase        bool      `bun:"use_uppercase,notnull"`
	UseLowercase        bool      `bun:"use_lowercase,notnull"`
	UseNumbers          bool      `bun:"use_numbers,notnull"`
	UseSymbols          bool      `bun:"use_symbols,notnull"`
	SelectedSymbols     string    `bun:"selected_symbols,notnull"`
	CustomSymbols       string    `bun:"custom_symbols,notnull"`
	AvoidRepeatingChars bool      `bun:"avoid_repeating_chars,notnull"`
	RandomAlgorithm     string    `bun:"random_algorithm,notnull"`
	UpdatedAt           time.Time `bun:"updated_at,notnull"`
}

type generationLogModel struct {
	bun.BaseModel `bun:"table:generation_log"`

	ID                  int64     `bun:"id,pk,autoincrement"`
	CreatedAt           time.Time `bun:"created_at,notnull"`
	Algorithm           string    `bun:"algorithm,notnull"`
	Length              int       `bun:"length,notnull"`
	Count               int       `bun:"password_count,notnull"`
	AvoidRepeatingChars bool      `bun:"avoid_repeating_chars,notnull"`
	HasFallback         bool      `bun:"has_fallback,notnull"`
	Outcome             string    `bun:"outcome,notnull"`
}

func configToModel(cfg model.PasswordConfig) passwordConfigModel {
	selected := cfg.SelectedSymbols
	if selected == nil {
		selected = []string{}
	}
	// Marshaling a []string cannot fail.
	raw, _ := json.Marshal(selected)
	return passwordConfigModel{
		ID:                  savedConfigID,
		Length:              cfg.Length,
		Count:               cfg.Count,
		UseUppercase:        cfg.UseUppercase,
		UseLowercase:        cfg.UseLowercase,
		UseNumbers:          cfg.UseNumbers,
		UseSymbols:          cfg.UseSymbols,
		SelectedSymbols:     string(raw),
		CustomSymbols:       cfg.CustomSymbols,
		AvoidRepeatingChars: cfg.AvoidRepeatingChars,
		RandomAlgorithm:     string(cfg.RandomAlgorithm),
		UpdatedAt:           time.Now().UTC(),
	}
}

// toConfig decodes a stored row. Unreadable symbol lists decode as empty and
// unknown algorithms as the pseudo-random default, so a damaged row still
// loads.
func (m passwordConfigModel) toConfig() model.PasswordConfig {
	var selected []string
	if err := json.Unmarshal([]byte(m.SelectedSymbols), &selected); err != nil {
		dbLogf("db: discarding unreadable selected_symbols %q: %v", m.SelectedSymbols, err)
		selected = nil
	}
	alg, err := model.ParseRandomAlgorithm(m.RandomAlgorithm)
	if err != nil {
		dbLogf("db: unknown random_algorithm %q, using %s", m.RandomAlgorithm, model.PseudoRandom)
		alg = model.PseudoRandom
	}
	return model.PasswordConfig{
		Length:              m.Length,
		Count:               m.Count,
		UseUppercase:        m.UseUppercase,
		UseLowercase:        m.UseLowercase,
		UseNumbers:          m.UseNumbers,
		UseSymbols:          m.UseSymbols,
		SelectedSymbols:     selected,
		CustomSymbols:       m.CustomSymbols,
		AvoidRepeatingChars: m.AvoidRepeatingChars,
		RandomAlgorithm:     alg,
	}
}

func recordToModel(r model.GenerationRecord) generationLogModel {
	created := r.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	return generationLogModel{
		CreatedAt:           created.UTC(),
		Algorithm:           string(r.Algorithm),
		Length:              r.Length,
		Count:               r.Count,
		AvoidRepeatingChars: r.AvoidRepeatingChars,
		HasFallback:         r.HasFallback,
		Outcome:             r.Outcome,
	}
}

func (m generationLogModel) toRecord() model.GenerationRecord {
	return model.GenerationRecord{
		ID:                  int(m.ID),
		CreatedAt:           m.CreatedAt,
		Algorithm:           model.RandomAlgorithm(m.Algorithm),
		Length:              m.Length,
		Count:               m.Count,
		AvoidRepeatingChars: m.AvoidRepeatingChars,
		HasFallback:         m.HasFallback,
		Outcome:             m.Outcome,
	}
}
