// Copyright (c) 2026 Passgen Team
// Passgen - password generation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

// package db provides the data access layer for Passgen.
// It keeps the saved password configuration and the generation history behind
// one Store interface, with SQLite, PostgreSQL and MySQL backends driven by bun.
package db // import "github.com/toeirei/passgen/internal/db"

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mysqldialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// sqlOpenFunc allows tests to override database opening behavior.
var sqlOpenFunc = sql.Open

// SupportedTypes lists the accepted database.type values.
var SupportedTypes = []string{"sqlite", "postgres", "mysql"}

// New opens the database described by dbType and dsn and returns a ready Store.
func New(dbType, dsn string) (Store, error) {
	return NewStoreFromDSN(dbType, dsn)
}

// NewStoreFromDSN opens a sql.DB for the given DSN, creates missing tables and
// returns a Store backed by a long-lived *bun.DB.
func NewStoreFromDSN(dbType, dsn string) (*BunStore, error) {
	if !isSupported(dbType) {
		return nil, fmt.Errorf("unsupported database type: '%s'", dbType)
	}
	start := time.Now()
	sqlDB, err := sqlOpenFunc(driverName(dbType), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	maxOpen, maxIdle, connMax := poolSettings(dbType, dsn)
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetConnMaxLifetime(connMax)
	dbLogf("db: opened %s driver in %s (conn max open=%d, idle=%d, maxLifetime=%s)",
		driverName(dbType), time.Since(start), maxOpen, maxIdle, connMax)

	s, err := newBunStore(sqlDB, dbType)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return s, nil
}

func newBunStore(sqlDB *sql.DB, dbType string) (*BunStore, error) {
	bdb := createBunDB(sqlDB, dbType)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	start := time.Now()
	if err := createTables(ctx, bdb); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	dbLogf("db: schema for %s ready in %s", dbType, time.Since(start))
	return &BunStore{bun: bdb, dbType: dbType}, nil
}

func isSupported(dbType string) bool {
	for _, t := range SupportedTypes {
		if t == dbType {
			return true
		}
	}
	return false
}

// driverName maps a database type to its database/sql driver. The pgx stdlib
// registers itself as "pgx".
func driverName(dbType string) string {
	if dbType == "postgres" {
		return "pgx"
	}
	return dbType
}

// poolSettings returns the connection pool limits, honoring environment
// overrides. In-memory SQLite is pinned to a single connection because every
// new connection would otherwise see its own empty database.
func poolSettings(dbType, dsn string) (maxOpen, maxIdle int, connMax time.Duration) {
	const (
		defaultMaxOpenConns    = 25
		defaultMaxIdleConns    = 25
		defaultConnMaxLifetime = 5 * time.Minute
	)
	maxOpen = envInt("PASSGEN_DB_MAX_OPEN_CONNS", defaultMaxOpenConns)
	maxIdle = envInt("PASSGEN_DB_MAX_IDLE_CONNS", defaultMaxIdleConns)
	connMax = defaultConnMaxLifetime
	if n := envInt("PASSGEN_DB_CONN_MAX_LIFETIME_SECONDS", -1); n >= 0 {
		connMax = time.Duration(n) * time.Second
	}
	if dbType == "sqlite" && isMemoryDSN(dsn) {
		maxOpen, maxIdle = 1, 1
	}
	return maxOpen, maxIdle, connMax
}

func isMemoryDSN(dsn string) bool {
	return dsn == ":memory:" || strings.Contains(dsn, "mode=memory")
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		dbLogf("db: ignoring invalid %s=%q", key, v)
		return def
	}
	return n
}

// createBunDB constructs a *bun.DB for the provided *sql.DB and dbType.
// Statements are logged when SetDebug is on.
func createBunDB(sqlDB *sql.DB, dbType string) *bun.DB {
	var bdb *bun.DB
	switch dbType {
	case "postgres":
		bdb = bun.NewDB(sqlDB, pgdialect.New())
	case "mysql":
		bdb = bun.NewDB(sqlDB, mysqldialect.New())
	default:
		bdb = bun.NewDB(sqlDB, sqlitedialect.New())
	}
	bdb.AddQueryHook(queryLogHook{})
	return bdb
}

func createTables(ctx context.Context, bdb *bun.DB) error {
	for _, m := range []any{(*passwordConfigModel)(nil), (*generationLogModel)(nil)} {
		if _, err := bdb.NewCreateTable().Model(m).IfNotExists().Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

// RunDBMaintenance performs engine-specific housekeeping on the database.
func RunDBMaintenance(dbType, dsn string) error {
	sqlDB, err := sqlOpenFunc(driverName(dbType), dsn)
	if err != nil {
		return fmt.Errorf("failed to open database for maintenance: %w", err)
	}
	defer func() { _ = sqlDB.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	switch dbType {
	case "sqlite":
		// optimize is unsupported on some filesystems; not fatal.
		if _, err := sqlDB.ExecContext(ctx, "PRAGMA optimize;"); err != nil {
			dbLogf("db: sqlite optimize failed (ignored): %v", err)
		}
		if _, err := sqlDB.ExecContext(ctx, "VACUUM;"); err != nil {
			return fmt.Errorf("sqlite vacuum failed: %w", err)
		}
		var res string
		if err := sqlDB.QueryRowContext(ctx, "PRAGMA integrity_check;").Scan(&res); err != nil {
			return fmt.Errorf("sqlite integrity_check failed: %w", err)
		}
		if res != "ok" {
			return fmt.Errorf("sqlite integrity_check failed: %s", res)
		}
	case "postgres":
		if _, err := sqlDB.ExecContext(ctx, "VACUUM ANALYZE;"); err != nil {
			return fmt.Errorf("postgres vacuum failed: %w", err)
		}
	case "mysql":
		for _, table := range []string{passwordConfigsTable, generationLogTable} {
			if _, err := sqlDB.ExecContext(ctx, "OPTIMIZE TABLE "+table); err != nil {
				return fmt.Errorf("mysql optimize %s failed: %w", table, err)
			}
		}
	default:
		return fmt.Errorf("unsupported db type for maintenance: %s", dbType)
	}
	dbLogf("db: maintenance for %s completed", dbType)
	return nil
}
