// Copyright (c) 2026 Passgen Team
// Passgen - password generation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

// Package prefs holds the user's saved password configuration on top of a
// db.Store and notifies watchers when it changes.
package prefs // import "github.com/toeirei/passgen/internal/prefs"

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/toeirei/passgen/internal/db"
	"github.com/toeirei/passgen/internal/logging"
	"github.com/toeirei/passgen/internal/model"
)

// ConfigStore is the subset of db.Store the repository needs.
type ConfigStore interface {
	SaveConfig(ctx context.Context, cfg model.PasswordConfig) error
	LoadConfig(ctx context.Context) (model.PasswordConfig, error)
}

// Repository reads and writes the saved configuration.
type Repository struct {
	store ConfigStore

	mu       sync.Mutex
	watchers map[chan model.PasswordConfig]struct{}
}

// NewRepository wraps store.
func NewRepository(store ConfigStore) *Repository {
	return &Repository{store: store, watchers: make(map[chan model.PasswordConfig]struct{})}
}

// Load returns the saved configuration, or the defaults if nothing has been
// saved yet.
func (r *Repository) Load(ctx context.Context) (model.PasswordConfig, error) {
	cfg, err := r.store.LoadConfig(ctx)
	if errors.Is(err, db.ErrNotFound) {
		return model.DefaultPasswordConfig(), nil
	}
	if err != nil {
		return model.PasswordConfig{}, err
	}
	return cfg, nil
}

// Save validates and persists cfg, then notifies watchers. Invalid
// configurations are rejected without touching the store.
func (r *Repository) Save(ctx context.Context, cfg model.PasswordConfig) error {
	if err := cfg.Check(); err != nil {
		return fmt.Errorf("refusing to save configuration: %w", err)
	}
	if err := r.store.SaveConfig(ctx, cfg); err != nil {
		return err
	}
	r.publish(cfg)
	return nil
}

// Reset replaces the saved configuration with the defaults.
func (r *Repository) Reset(ctx context.Context) (model.PasswordConfig, error) {
	cfg := model.DefaultPasswordConfig()
	return cfg, r.Save(ctx, cfg)
}

// Watch emits the current configuration followed by every saved change until
// ctx is done. Slow receivers only ever see the latest value.
func (r *Repository) Watch(ctx context.Context) (<-chan model.PasswordConfig, error) {
	current, err := r.Load(ctx)
	if err != nil {
		return nil, err
	}
	ch := make(chan model.PasswordConfig, 1)
	ch <- current

	r.mu.Lock()
	r.watchers[ch] = struct{}{}
	r.mu.Unlock()

	go func() {
		<-ctx.Done()
		r.mu.Lock()
		delete(r.watchers, ch)
		close(ch)
		r.mu.Unlock()
	}()
	return ch, nil
}

func (r *Repository) publish(cfg model.PasswordConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for ch := range r.watchers {
		// Drop a stale pending value so the newest one always fits.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- cfg:
		default:
			logging.Debugf("prefs: watcher busy, dropping update")
		}
	}
}
