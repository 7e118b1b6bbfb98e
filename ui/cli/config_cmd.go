// Copyright (c) 2026 Passgen Team
// Passgen - password generation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/toeirei/passgen/internal/config"
	"github.com/toeirei/passgen/internal/i18n"
	"github.com/toeirei/passgen/internal/ui"
)

func (a *app) newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or reset the saved password configuration",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the saved password configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.openStore(); err != nil {
				return err
			}
			cfg, err := a.prefs.Load(cmd.Context())
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, string(data))
			if err := cfg.Check(); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), ui.ErrorMessage(err))
			}
			return nil
		},
	}

	reset := &cobra.Command{
		Use:   "reset",
		Short: "Restore the default password configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.openStore(); err != nil {
				return err
			}
			if _, err := a.prefs.Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.config_reset"))
			return nil
		},
	}

	path := &cobra.Command{
		Use:   "path",
		Short: "Print where the settings file and database live",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := config.GetConfigPath(false)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, i18n.T("cli.config_path", p))
			fmt.Fprintln(out, i18n.T("cli.database_path", a.conf.Database.Type, a.conf.Database.Dsn))
			return nil
		},
	}

	cmd.AddCommand(show, reset, path)
	return cmd
}

func (a *app) newHistoryCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent generation runs",
		Long: `Lists recent generation runs, newest first. Only the settings and the outcome
of a run are recorded, never the passwords themselves.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore()
			if err != nil {
				return err
			}
			recs, err := st.RecentGenerations(cmd.Context(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(recs) == 0 {
				fmt.Fprintln(out, i18n.T("cli.history_empty"))
				return nil
			}

			t := table.New().
				Border(lipgloss.NormalBorder()).
				StyleFunc(func(row, col int) lipgloss.Style { return historyCellStyle }).
				Headers(
					i18n.T("history.id"),
					i18n.T("history.time"),
					i18n.T("history.algorithm"),
					i18n.T("history.length"),
					i18n.T("history.count"),
					i18n.T("history.no_repeat"),
					i18n.T("history.fallback"),
					i18n.T("history.outcome"),
				)
			for _, r := range recs {
				t.Row(
					strconv.Itoa(r.ID),
					r.CreatedAt.Local().Format(time.DateTime),
					r.Algorithm.ShortName(),
					strconv.Itoa(r.Length),
					strconv.Itoa(r.Count),
					yesNo(r.AvoidRepeatingChars),
					yesNo(r.HasFallback),
					r.Outcome,
				)
			}
			fmt.Fprintln(out, t.Render())
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of entries (0 lists all)")
	return cmd
}

var historyCellStyle = lipgloss.NewStyle().Padding(0, 1)

func yesNo(b bool) string {
	if b {
		return i18n.T("yes")
	}
	return i18n.T("no")
}
