// Copyright (c) 2026 Passgen Team
// Passgen - password generation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/toeirei/passgen/internal/generator"
	"github.com/toeirei/passgen/internal/i18n"
	"github.com/toeirei/passgen/internal/model"
	"github.com/toeirei/passgen/internal/ui"
)

// generateOptions holds the generate flags. Only flags that were set on the
// command line override the saved configuration.
type generateOptions struct {
	length     int
	count      int
	upper      bool
	lower      bool
	digits     bool
	symbols    bool
	selected   string
	allSymbols bool
	custom     string
	noRepeat   bool
	algorithm  string
	seed       uint64
	copy       bool
	save       bool
}

func (o *generateOptions) bind(fs *pflag.FlagSet) {
	fs.IntVarP(&o.length, "length", "l", 0, fmt.Sprintf("Password length (%d-%d)", model.MinLength, model.MaxLength))
	fs.IntVarP(&o.count, "count", "n", 0, fmt.Sprintf("Number of passwords (%d-%d)", model.MinCount, model.MaxCount))
	fs.BoolVar(&o.upper, "upper", false, "Include uppercase letters")
	fs.BoolVar(&o.lower, "lower", false, "Include lowercase letters")
	fs.BoolVar(&o.digits, "digits", false, "Include digits")
	fs.BoolVar(&o.symbols, "symbols", false, "Include symbols")
	fs.StringVar(&o.selected, "select", "", "Catalog symbols to use, e.g. \"#$%\"")
	fs.BoolVar(&o.allSymbols, "all-symbols", false, "Select every catalog symbol")
	fs.StringVar(&o.custom, "custom", "", "Additional custom symbols")
	fs.BoolVar(&o.noRepeat, "no-repeat", false, "Never place the same character twice in a row")
	fs.StringVarP(&o.algorithm, "algorithm", "a", "", "Random source: pseudo, secure or hardware")
	fs.Uint64Var(&o.seed, "seed", 0, "Seed for reproducible pseudo-random output")
	fs.BoolVar(&o.copy, "copy", false, "Copy the first password to the clipboard")
	fs.BoolVar(&o.save, "save", false, "Save the resulting configuration")
}

// apply overlays the flags that were set onto cfg. Symbol selections turn
// symbols on unless --symbols was given explicitly.
func (o *generateOptions) apply(fs *pflag.FlagSet, cfg model.PasswordConfig) (model.PasswordConfig, error) {
	var symbols []string
	if fs.Changed("select") {
		for _, r := range o.selected {
			sym := string(r)
			if !slices.Contains(model.SymbolCatalog, sym) {
				return cfg, fmt.Errorf("%s", i18n.T("cli.error.unknown_symbol", sym))
			}
			symbols = append(symbols, sym)
		}
	}
	var alg model.RandomAlgorithm
	if fs.Changed("algorithm") {
		a, err := model.ParseRandomAlgorithm(o.algorithm)
		if err != nil {
			return cfg, fmt.Errorf("%s", i18n.T("cli.error.unknown_algorithm", o.algorithm))
		}
		alg = a
	}

	return cfg.With(func(c *model.PasswordConfig) {
		if fs.Changed("length") {
			c.Length = o.length
		}
		if fs.Changed("count") {
			c.Count = o.count
		}
		if fs.Changed("upper") {
			c.UseUppercase = o.upper
		}
		if fs.Changed("lower") {
			c.UseLowercase = o.lower
		}
		if fs.Changed("digits") {
			c.UseNumbers = o.digits
		}
		pickedSymbols := false
		if fs.Changed("select") {
			c.SelectedSymbols = symbols
			pickedSymbols = len(symbols) > 0
		}
		if fs.Changed("all-symbols") && o.allSymbols {
			c.SelectedSymbols = slices.Clone(model.SymbolCatalog)
			pickedSymbols = true
		}
		if fs.Changed("custom") {
			c.CustomSymbols = o.custom
			pickedSymbols = pickedSymbols || o.custom != ""
		}
		if fs.Changed("symbols") {
			c.UseSymbols = o.symbols
		} else if pickedSymbols {
			c.UseSymbols = true
		}
		if fs.Changed("no-repeat") {
			c.AvoidRepeatingChars = o.noRepeat
		}
		if alg != "" {
			c.RandomAlgorithm = alg
		}
	}), nil
}

func (a *app) newGenerateCmd() *cobra.Command {
	o := &generateOptions{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a batch of passwords",
		Long: `Generates passwords with the saved configuration. Flags override single
settings for this run; --save keeps them for the next one.

Examples:
  # Three 24 character passwords without symbols
  passgen generate -l 24 -n 3 --symbols=false

  # Digits and a few symbols, copied to the clipboard
  passgen generate --upper=false --lower=false --digits --select "#$%" --copy`,
		Aliases: []string{"gen"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runGenerate(cmd, o)
		},
	}
	o.bind(cmd.Flags())
	return cmd
}

func (a *app) runGenerate(cmd *cobra.Command, o *generateOptions) error {
	ctx := cmd.Context()
	if _, err := a.openStore(); err != nil {
		return err
	}
	saved, err := a.prefs.Load(ctx)
	if err != nil {
		return err
	}
	cfg, err := o.apply(cmd.Flags(), saved)
	if err != nil {
		return err
	}

	var opts []generator.Option
	if cmd.Flags().Changed("seed") {
		opts = append(opts, generator.WithSeed(o.seed))
	}
	passwords, err := a.generator(opts...).Run(ctx, cfg)
	if err != nil {
		return localizedError{err}
	}

	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	for _, p := range passwords {
		fmt.Fprintln(out, p.Value)
	}
	if ui.HasFallback(passwords) {
		fmt.Fprintln(errOut, ui.FallbackWarning(cfg.RandomAlgorithm))
	}

	if o.copy {
		if err := a.clip.Write(passwords[0].Value); err != nil {
			fmt.Fprintln(errOut, i18n.T("cli.copy_failed", ui.ErrorMessage(err)))
		} else {
			fmt.Fprintln(errOut, i18n.T("cli.copied"))
		}
	}
	if o.save && !cfg.Equal(saved) {
		if err := a.prefs.Save(ctx, cfg); err != nil {
			return err
		}
		fmt.Fprintln(errOut, i18n.T("cli.config_saved"))
	}
	return nil
}
