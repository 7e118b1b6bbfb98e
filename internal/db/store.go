// Copyright (c) 2026 Passgen Team
// Passgen - password generation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/toeirei/passgen/internal/model"
	"github.com/uptrace/bun"
)

// Store defines the persistence operations used by the rest of the
// application.
type Store interface {
	// SaveConfig replaces the saved password configuration.
	SaveConfig(ctx context.Context, cfg model.PasswordConfig) error
	// LoadConfig returns the saved configuration or ErrNotFound.
	LoadConfig(ctx context.Context) (model.PasswordConfig, error)
	// LogGeneration appends rec to the generation history and returns its id.
	LogGeneration(ctx context.Context, rec model.GenerationRecord) (int, error)
	// RecentGenerations returns up to limit records, newest first. A limit
	// of zero or less returns everything.
	RecentGenerations(ctx context.Context, limit int) ([]model.GenerationRecord, error)
	// ReplaceHistory drops the history and inserts recs in order.
	ReplaceHistory(ctx context.Context, recs []model.GenerationRecord) error
	// Restore replaces the saved configuration and the history in one
	// transaction. A nil cfg leaves no saved configuration behind.
	Restore(ctx context.Context, cfg *model.PasswordConfig, recs []model.GenerationRecord) error
	Close() error
}

// BunStore is the bun-backed Store shared by all supported engines.
type BunStore struct {
	bun    *bun.DB
	dbType string
}

var _ Store = (*BunStore)(nil)

// BunDB exposes the underlying *bun.DB.
func (s *BunStore) BunDB() *bun.DB { return s.bun }

// Type returns the database type the store was opened with.
func (s *BunStore) Type() string { return s.dbType }

// SaveConfig replaces the saved configuration row. Delete-then-insert keeps
// the upsert portable across the three dialects.
func (s *BunStore) SaveConfig(ctx context.Context, cfg model.PasswordConfig) error {
	m := configToModel(cfg)
	err := s.bun.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model((*passwordConfigModel)(nil)).Where("id = ?", savedConfigID).Exec(ctx); err != nil {
			return err
		}
		_, err := tx.NewInsert().Model(&m).Exec(ctx)
		return err
	})
	if err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	dbLogf("db: saved password config (length=%d count=%d algorithm=%s)", cfg.Length, cfg.Count, cfg.RandomAlgorithm)
	return nil
}

// LoadConfig returns the saved configuration.
func (s *BunStore) LoadConfig(ctx context.Context) (model.PasswordConfig, error) {
	var m passwordConfigModel
	err := s.bun.NewSelect().Model(&m).Where("id = ?", savedConfigID).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return model.PasswordConfig{}, ErrNotFound
	}
	if err != nil {
		return model.PasswordConfig{}, fmt.Errorf("load config: %w", err)
	}
	return m.toConfig(), nil
}

// LogGeneration appends one history record.
func (s *BunStore) LogGeneration(ctx context.Context, rec model.GenerationRecord) (int, error) {
	m := recordToModel(rec)
	if _, err := s.bun.NewInsert().Model(&m).Exec(ctx); err != nil {
		return 0, fmt.Errorf("log generation: %w", err)
	}
	return int(m.ID), nil
}

// RecentGenerations lists history records, newest first.
func (s *BunStore) RecentGenerations(ctx context.Context, limit int) ([]model.GenerationRecord, error) {
	var rows []generationLogModel
	q := s.bun.NewSelect().Model(&rows).Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("list generations: %w", err)
	}
	out := make([]model.GenerationRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toRecord())
	}
	return out, nil
}

// ReplaceHistory swaps the whole history in one transaction. Record ids are
// reassigned; insertion order follows recs.
func (s *BunStore) ReplaceHistory(ctx context.Context, recs []model.GenerationRecord) error {
	err := s.bun.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return replaceHistoryTx(ctx, tx, recs)
	})
	if err != nil {
		return fmt.Errorf("replace history: %w", err)
	}
	dbLogf("db: replaced generation history with %d record(s)", len(recs))
	return nil
}

// Restore writes a whole snapshot; nothing changes if any step fails.
func (s *BunStore) Restore(ctx context.Context, cfg *model.PasswordConfig, recs []model.GenerationRecord) error {
	err := s.bun.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model((*passwordConfigModel)(nil)).Where("id = ?", savedConfigID).Exec(ctx); err != nil {
			return err
		}
		if cfg != nil {
			m := configToModel(*cfg)
			if _, err := tx.NewInsert().Model(&m).Exec(ctx); err != nil {
				return err
			}
		}
		return replaceHistoryTx(ctx, tx, recs)
	})
	if err != nil {
		return fmt.Errorf("restore: %w", err)
	}
	dbLogf("db: restored config (present=%t) and %d history record(s)", cfg != nil, len(recs))
	return nil
}

func replaceHistoryTx(ctx context.Context, tx bun.Tx, recs []model.GenerationRecord) error {
	if _, err := tx.NewDelete().Model((*generationLogModel)(nil)).Where("1 = 1").Exec(ctx); err != nil {
		return err
	}
	for _, r := range recs {
		m := recordToModel(r)
		if _, err := tx.NewInsert().Model(&m).Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *BunStore) Close() error {
	return s.bun.Close()
}
