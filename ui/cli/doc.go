// Copyright (c) 2026 Passgen Team
// Passgen - password generation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.
//
// Package cli implements the command-line interface for Passgen using Cobra.
// It loads the application configuration, opens the store and hands the
// work to the internal packages. CLI code should remain thin: generation
// lives in internal/generator, persistence in internal/db and
// internal/prefs, backups in internal/backup.
package cli // import "github.com/toeirei/passgen/ui/cli"
