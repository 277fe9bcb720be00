package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/betterqif/internal/config"
	"github.com/cleared-dev/betterqif/internal/tickers"
)

const tickersFile = "tickers.csv"

func newInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a default config and ticker list",
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

			return runInit(absDir, force, cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config")

	return cmd
}

func runInit(dir string, force bool, w io.Writer) error {
	cfgPath := filepath.Join(dir, config.DefaultFile)
	if _, err := os.Stat(cfgPath); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", cfgPath)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	// Write the ticker list.
	f, err := os.Create(filepath.Join(dir, tickersFile))
	if err != nil {
		return fmt.Errorf("creating ticker list: %w", err)
	}
	if err := tickers.WriteTickers(f, tickers.Default()); err != nil {
		f.Close()
		return fmt.Errorf("writing ticker list: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing ticker list: %w", err)
	}

	// Write betterqif.yaml.
	cfg := config.Default()
	cfg.TickersFile = tickersFile
	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Fprintf(w, "Initialized betterqif config at %s\n", cfgPath)
	return nil
}
