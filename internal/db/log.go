// Copyright (c) 2026 Passgen Team
// Passgen - password generation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/toeirei/passgen/internal/logging"
	"github.com/uptrace/bun"
)

var debugEnabled atomic.Bool

// SetDebug enables or disables DB debug logging, including every SQL
// statement bun runs. Disabled by default.
func SetDebug(enabled bool) {
	debugEnabled.Store(enabled)
}

func dbLogf(format string, v ...any) {
	if debugEnabled.Load() {
		logging.Debugf(format, v...)
	}
}

// queryLogHook logs statements through dbLogf once they finish.
type queryLogHook struct{}

var _ bun.QueryHook = queryLogHook{}

func (queryLogHook) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

func (queryLogHook) AfterQuery(_ context.Context, event *bun.QueryEvent) {
	if !debugEnabled.Load() {
		return
	}
	took := time.Since(event.StartTime).Round(time.Microsecond)
	if event.Err != nil {
		dbLogf("db: %s (%s) failed: %v", event.Query, took, event.Err)
		return
	}
	dbLogf("db: %s (%s)", event.Query, took)
}
