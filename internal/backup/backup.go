// Copyright (c) 2026 Passgen Team
// Passgen - password generation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

// Package backup exports and restores the saved configuration and the
// generation history as Zstandard-compressed JSON.
package backup // import "github.com/toeirei/passgen/internal/backup"

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/toeirei/passgen/internal/db"
	"github.com/toeirei/passgen/internal/model"
)

// Version is the snapshot format written by this package.
const Version = 1

// ErrUnsupportedVersion is returned by Read for snapshots from a newer or
// unknown format.
var ErrUnsupportedVersion = errors.New("unsupported backup version")

// Snapshot is the content of a backup file. Config is nil when no
// configuration had been saved.
type Snapshot struct {
	Version   int                      `json:"version"`
	CreatedAt time.Time                `json:"created_at"`
	Config    *model.PasswordConfig    `json:"config,omitempty"`
	History   []model.GenerationRecord `json:"history"`
}

// DefaultFilename returns the file name used when none is given.
func DefaultFilename(now time.Time) string {
	return fmt.Sprintf("passgen-backup-%s.json.zst", now.Format("2006-01-02"))
}

// Export reads everything worth keeping from st. History is oldest first.
func Export(ctx context.Context, st db.Store) (*Snapshot, error) {
	snap := &Snapshot{Version: Version, CreatedAt: time.Now().UTC()}

	cfg, err := st.LoadConfig(ctx)
	switch {
	case err == nil:
		snap.Config = &cfg
	case errors.Is(err, db.ErrNotFound):
	default:
		return nil, fmt.Errorf("export config: %w", err)
	}

	hist, err := st.RecentGenerations(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("export history: %w", err)
	}
	for i, j := 0, len(hist)-1; i < j; i, j = i+1, j-1 {
		hist[i], hist[j] = hist[j], hist[i]
	}
	snap.History = hist
	return snap, nil
}

// Import replaces the contents of st with snap in one transaction: either
// the saved configuration and the history both change, or neither does. A
// snapshot without a configuration leaves st without one. An invalid
// configuration is rejected before anything is written.
func Import(ctx context.Context, st db.Store, snap *Snapshot) error {
	if snap.Config != nil {
		if err := snap.Config.Check(); err != nil {
			return fmt.Errorf("backup holds an invalid configuration: %w", err)
		}
	}
	if err := st.Restore(ctx, snap.Config, snap.History); err != nil {
		return fmt.Errorf("import: %w", err)
	}
	return nil
}

// Migrate copies everything from src into dst.
func Migrate(ctx context.Context, src, dst db.Store) (*Snapshot, error) {
	snap, err := Export(ctx, src)
	if err != nil {
		return nil, err
	}
	if err := Import(ctx, dst, snap); err != nil {
		return nil, err
	}
	return snap, nil
}

// Write encodes snap as indented JSON through a zstd encoder.
func Write(w io.Writer, snap *Snapshot) error {
	zw, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("create zstd writer: %w", err)
	}
	enc := json.NewEncoder(zw)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		_ = zw.Close()
		return fmt.Errorf("encode backup: %w", err)
	}
	return zw.Close()
}

// Read decodes a snapshot written by Write.
func Read(r io.Reader) (*Snapshot, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("create zstd reader: %w", err)
	}
	defer zr.Close()

	var snap Snapshot
	if err := json.NewDecoder(zr).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode backup: %w", err)
	}
	if snap.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, snap.Version)
	}
	return &snap, nil
}
