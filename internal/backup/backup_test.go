// Copyright (c) 2026 Passgen Team
// Passgen - password generation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toeirei/passgen/internal/db"
	"github.com/toeirei/passgen/internal/model"
)

func memStore(t *testing.T, name string) *db.BunStore {
	t.Helper()
	s, err := db.NewStoreFromDSN("sqlite", "file:"+t.Name()+name+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func seed(t *testing.T, s db.Store) model.PasswordConfig {
	t.Helper()
	ctx := context.Background()
	cfg := model.DefaultPasswordConfig().WithLength(30).WithCount(2)
	require.NoError(t, s.SaveConfig(ctx, cfg))
	for _, l := range []int{8, 9, 10} {
		_, err := s.LogGeneration(ctx, model.GenerationRecord{Algorithm: model.PseudoRandom, Length: l, Count: 1, Outcome: "ok"})
		require.NoError(t, err)
	}
	return cfg
}

func TestExportWriteReadImport(t *testing.T) {
	ctx := context.Background()
	src := memStore(t, "src")
	cfg := seed(t, src)

	snap, err := Export(ctx, src)
	require.NoError(t, err)
	require.NotNil(t, snap.Config)
	assert.True(t, cfg.Equal(*snap.Config))
	require.Len(t, snap.History, 3)
	assert.Equal(t, 8, snap.History[0].Length, "history is oldest first")

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, snap))

	got, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, Version, got.Version)

	dst := memStore(t, "dst")
	_, err = dst.LogGeneration(ctx, model.GenerationRecord{Algorithm: model.HardwareRandom, Length: 99, Count: 1, Outcome: "ok"})
	require.NoError(t, err)
	require.NoError(t, Import(ctx, dst, got))

	loaded, err := dst.LoadConfig(ctx)
	require.NoError(t, err)
	assert.True(t, cfg.Equal(loaded))
	hist, err := dst.RecentGenerations(ctx, 0)
	require.NoError(t, err)
	require.Len(t, hist, 3)
	assert.Equal(t, 10, hist[0].Length)
}

func TestExport_WithoutSavedConfig(t *testing.T) {
	snap, err := Export(context.Background(), memStore(t, ""))
	require.NoError(t, err)
	assert.Nil(t, snap.Config)
	assert.Empty(t, snap.History)
}

func TestImport_RejectsInvalidConfig(t *testing.T) {
	dst := memStore(t, "")
	bad := model.DefaultPasswordConfig().WithLength(10)
	bad.Count = 0
	err := Import(context.Background(), dst, &Snapshot{Version: Version, Config: &bad})
	assert.ErrorIs(t, err, model.ErrCountOutOfRange)

	_, err = dst.LoadConfig(context.Background())
	assert.ErrorIs(t, err, db.ErrNotFound)
}

func TestImport_FailureLeavesStoreUntouched(t *testing.T) {
	ctx := context.Background()
	dst := memStore(t, "")
	before := seed(t, dst)
	_, err := dst.BunDB().ExecContext(ctx, "DROP TABLE generation_log")
	require.NoError(t, err)

	next := model.DefaultPasswordConfig().WithLength(77)
	snap := &Snapshot{
		Version: Version,
		Config:  &next,
		History: []model.GenerationRecord{{Algorithm: model.PseudoRandom, Length: 77, Count: 1, Outcome: "ok"}},
	}
	require.Error(t, Import(ctx, dst, snap))

	got, err := dst.LoadConfig(ctx)
	require.NoError(t, err)
	assert.True(t, before.Equal(got))
}

func TestImport_WithoutConfigClearsSavedConfig(t *testing.T) {
	ctx := context.Background()
	dst := memStore(t, "")
	seed(t, dst)

	require.NoError(t, Import(ctx, dst, &Snapshot{Version: Version}))

	_, err := dst.LoadConfig(ctx)
	assert.ErrorIs(t, err, db.ErrNotFound)
	hist, err := dst.RecentGenerations(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, hist)
}

func TestMigrate(t *testing.T) {
	ctx := context.Background()
	src, dst := memStore(t, "a"), memStore(t, "b")
	cfg := seed(t, src)

	snap, err := Migrate(ctx, src, dst)
	require.NoError(t, err)
	assert.Len(t, snap.History, 3)
	got, err := dst.LoadConfig(ctx)
	require.NoError(t, err)
	assert.True(t, cfg.Equal(got))
}

func TestRead_RejectsUnknownVersionAndGarbage(t *testing.T) {
	var buf bytes.Buffer
	zw, err := zstd.NewWriter(&buf)
	require.NoError(t, err)
	require.NoError(t, json.NewEncoder(zw).Encode(Snapshot{Version: 42}))
	require.NoError(t, zw.Close())

	_, err = Read(&buf)
	assert.ErrorIs(t, err, ErrUnsupportedVersion)

	_, err = Read(bytes.NewReader([]byte("not zstd at all")))
	assert.Error(t, err)
}

func TestDefaultFilename(t *testing.T) {
	assert.Equal(t, "passgen-backup-2026-05-04.json.zst", DefaultFilename(time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)))
}
