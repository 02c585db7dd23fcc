package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fintrack-dev/fintrack/internal/config"
	"github.com/fintrack-dev/fintrack/internal/sample"
	"github.com/fintrack-dev/fintrack/internal/storage"
	"github.com/fintrack-dev/fintrack/internal/tracker"
)

type initOptions struct {
	name            string
	currency        string
	caseInsensitive bool
	withSample      bool
}

func newInitCommand() *cobra.Command {
	var opts initOptions

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new tracker",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd.OutOrStdout(), absDir, opts)
		},
	}

	cmd.Flags().StringVar(&opts.name, "name", "", "tracker name (defaults to the directory name)")
	cmd.Flags().StringVar(&opts.currency, "currency", "$", "currency symbol shown before amounts")
	cmd.Flags().BoolVar(&opts.caseInsensitive, "case-insensitive", false, "treat category names case-insensitively")
	cmd.Flags().BoolVar(&opts.withSample, "sample", false, "seed the tracker with sample records")

	return cmd
}

func runInit(out io.Writer, dir string, opts initOptions) error {
	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("%s already exists", cfgPath)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", cfgPath, err)
	}

	name := opts.name
	if name == "" {
		name = filepath.Base(dir)
	}

	cfg := config.Default(name)
	cfg.Budget.Currency = opts.currency
	cfg.Categories.CaseInsensitive = opts.caseInsensitive
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	state := tracker.New(cfg.Categories.CaseInsensitive)
	if opts.withSample {
		state = sample.Tracker(cfg.Categories.CaseInsensitive)
	}
	store := storage.NewStore(
		resolve(dir, cfg.Storage.RecordsFile),
		resolve(dir, cfg.Storage.BudgetFile),
		cfg.Categories.CaseInsensitive,
	)
	if err := store.Save(state); err != nil {
		return fmt.Errorf("writing data files: %w", err)
	}

	fmt.Fprintf(out, "Initialized tracker %q at %s (%d records)\n", name, dir, state.Len())
	return nil
}
