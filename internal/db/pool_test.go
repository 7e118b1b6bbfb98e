// Copyright (c) 2026 Passgen Team
// Passgen - password generation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

// TestDBPoolDefaultsSQLite verifies that NewStoreFromDSN applies the default
// MaxOpenConns for file-backed SQLite.
func TestDBPoolDefaultsSQLite(t *testing.T) {
	t.Setenv("PASSGEN_DB_MAX_OPEN_CONNS", "")
	t.Setenv("PASSGEN_DB_MAX_IDLE_CONNS", "")

	s, err := NewStoreFromDSN("sqlite", filepath.Join(t.TempDir(), "pool.db"))
	if err != nil {
		t.Fatalf("NewStoreFromDSN returned error: %v", err)
	}
	defer func() { _ = s.Close() }()
	if got := s.BunDB().DB.Stats().MaxOpenConnections; got != 25 {
		t.Fatalf("MaxOpenConnections = %d; want 25", got)
	}
}

func TestDBPoolEnvOverride(t *testing.T) {
	t.Setenv("PASSGEN_DB_MAX_OPEN_CONNS", "7")
	t.Setenv("PASSGEN_DB_MAX_IDLE_CONNS", "bogus")
	t.Setenv("PASSGEN_DB_CONN_MAX_LIFETIME_SECONDS", "30")

	maxOpen, maxIdle, connMax := poolSettings("postgres", "postgres://x")
	if maxOpen != 7 || maxIdle != 25 || connMax != 30*time.Second {
		t.Fatalf("poolSettings = %d, %d, %s", maxOpen, maxIdle, connMax)
	}
}

func TestDBPoolMemorySQLiteIsSingleConnection(t *testing.T) {
	t.Setenv("PASSGEN_DB_MAX_OPEN_CONNS", "50")
	for _, dsn := range []string{":memory:", "file:x?mode=memory&cache=shared"} {
		if maxOpen, maxIdle, _ := poolSettings("sqlite", dsn); maxOpen != 1 || maxIdle != 1 {
			t.Fatalf("%s: got open=%d idle=%d, want 1/1", dsn, maxOpen, maxIdle)
		}
	}
}

func TestCreateBunDB_VariousDialects(t *testing.T) {
	sqlDB, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite in-memory: %v", err)
	}
	defer func() { _ = sqlDB.Close() }()

	for _, c := range []string{"sqlite", "postgres", "mysql", "unknown"} {
		if b := createBunDB(sqlDB, c); b == nil {
			t.Fatalf("createBunDB returned nil for dialect %s", c)
		}
	}
}

func TestDriverName(t *testing.T) {
	cases := map[string]string{"postgres": "pgx", "mysql": "mysql", "sqlite": "sqlite"}
	for in, want := range cases {
		if got := driverName(in); got != want {
			t.Errorf("driverName(%q) = %q, want %q", in, got, want)
		}
	}
}
