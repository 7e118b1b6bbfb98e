// Copyright (c) 2026 Passgen Team
// Passgen - password generation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/toeirei/passgen/internal/backup"
	"github.com/toeirei/passgen/internal/db"
	"github.com/toeirei/passgen/internal/i18n"
	"github.com/toeirei/passgen/internal/logging"
)

func (a *app) newBackupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backup [output-file]",
		Short: "Write a compressed (zstd) JSON backup of the configuration and history",
		Long: `Dumps the saved password configuration and the generation history into a
single, Zstandard-compressed JSON file.

If an output file is specified, '.zst' is appended to the name if it is not
already present. Without one, 'passgen-backup-YYYY-MM-DD.json.zst' is used.

Examples:
  # Backup to a default file (e.g., passgen-backup-2026-10-17.json.zst)
  passgen backup

  # Backup to a specific file
  passgen backup my-backup.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputFile := backup.DefaultFilename(time.Now())
			if len(args) > 0 {
				outputFile = args[0]
				if !strings.HasSuffix(outputFile, ".zst") {
					outputFile += ".zst"
				}
			}

			st, err := a.openStore()
			if err != nil {
				return err
			}
			snap, err := backup.Export(cmd.Context(), st)
			if err != nil {
				return fmt.Errorf("%s: %w", i18n.T("backup.error_export"), err)
			}

			f, err := os.OpenFile(outputFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
			if err != nil {
				return fmt.Errorf("%s: %w", i18n.T("backup.error_write"), err)
			}
			if err := backup.Write(f, snap); err != nil {
				_ = f.Close()
				return fmt.Errorf("%s: %w", i18n.T("backup.error_write"), err)
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("%s: %w", i18n.T("backup.error_write"), err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("backup.success", outputFile, len(snap.History)))
			return nil
		},
	}
}

func (a *app) newRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <backup-file>",
		Short: "Replace the configuration and history with a backup",
		Long: `Reads a backup written by 'passgen backup' and replaces the saved password
configuration and the whole generation history with its contents. A backup
taken before any configuration was saved clears the saved one, so the
defaults apply again. Both parts are written in one transaction.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("%s: %w", i18n.T("restore.error_read"), err)
			}
			defer func() { _ = f.Close() }()

			snap, err := backup.Read(f)
			if err != nil {
				return fmt.Errorf("%s: %w", i18n.T("restore.error_read"), err)
			}
			st, err := a.openStore()
			if err != nil {
				return err
			}
			if err := backup.Import(cmd.Context(), st, snap); err != nil {
				return fmt.Errorf("%s: %w", i18n.T("restore.error_import"), err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("restore.success", len(snap.History)))
			return nil
		},
	}
}

func (a *app) newMigrateCmd() *cobra.Command {
	var targetType, targetDSN string
	cmd := &cobra.Command{
		Use:   "migrate --type <db-type> --dsn <target-dsn>",
		Short: "Copy the configuration and history to another database",
		Long: `Exports everything from the current database and imports it into the target
database given by --type and --dsn. The target's tables are created if
needed; its history is replaced.

Example:
  passgen migrate --type postgres --dsn "postgres://passgen@localhost/passgen"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if targetType == "" || targetDSN == "" {
				return fmt.Errorf("%s", i18n.T("migrate.error_flags"))
			}
			src, err := a.openStore()
			if err != nil {
				return err
			}
			if targetType == "sqlite" {
				if err := ensureSQLiteDir(targetDSN); err != nil {
					return err
				}
			}
			dst, err := db.New(targetType, targetDSN)
			if err != nil {
				return fmt.Errorf("%s: %w", i18n.T("migrate.error_target"), err)
			}
			defer func() {
				if err := dst.Close(); err != nil {
					logging.Warnf("closing migration target: %v", err)
				}
			}()

			snap, err := backup.Migrate(cmd.Context(), src, dst)
			if err != nil {
				return fmt.Errorf("%s: %w", i18n.T("migrate.error"), err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, i18n.T("migrate.success", len(snap.History)))
			fmt.Fprintln(out, i18n.T("migrate.next_steps"))
			return nil
		},
	}
	cmd.Flags().StringVar(&targetType, "type", "", "Target database type (sqlite, postgres, mysql)")
	cmd.Flags().StringVar(&targetDSN, "dsn", "", "Target database connection string")
	return cmd
}

// maintain is swapped in tests.
var maintain = db.RunDBMaintenance

func (a *app) newDBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Database housekeeping",
	}

	var timeoutSec int
	maintainCmd := &cobra.Command{
		Use:   "maintain",
		Short: "Run database maintenance (VACUUM/OPTIMIZE) for the configured DB",
		Long:  `Runs engine-specific maintenance tasks (PRAGMA optimize, VACUUM, OPTIMIZE TABLE).`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if timeoutSec > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, time.Duration(timeoutSec)*time.Second)
				defer cancel()
			}

			done := make(chan error, 1)
			dbType, dsn := a.conf.Database.Type, a.conf.Database.Dsn
			go func() { done <- maintain(dbType, dsn) }()

			select {
			case err := <-done:
				if err != nil {
					return fmt.Errorf("%s: %w", i18n.T("maintain.failed"), err)
				}
			case <-ctx.Done():
				return fmt.Errorf("%s: %w", i18n.T("maintain.timeout"), ctx.Err())
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("maintain.success"))
			return nil
		},
	}
	maintainCmd.Flags().IntVar(&timeoutSec, "timeout", 0, "Timeout in seconds for maintenance (0 means no timeout)")

	cmd.AddCommand(maintainCmd)
	return cmd
}
