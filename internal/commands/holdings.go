package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/betterqif/internal/reconcile"
	"github.com/cleared-dev/betterqif/internal/statement"
)

func newHoldingsCommand(opts *rootOptions) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "holdings <statement>",
		Short: "List per-goal holdings from a statement's monthly overview",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.session(cmd)
			if err != nil {
				return err
			}
			return runHoldings(cmd.Context(), s, args[0], out, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "write CSV to a file instead of stdout")

	return cmd
}

func runHoldings(ctx context.Context, s *session, path, out string, w io.Writer) error {
	lines, err := s.lines(ctx, path)
	if err != nil {
		return err
	}
	holdings := statement.ParseHoldings(lines, s.cfg.Goals, s.dir)
	s.logger.Debug("holdings parsed", "count", len(holdings))

	if out == "" {
		return reconcile.WriteHoldings(w, holdings)
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("creating %s: %w", out, err)
	}
	defer f.Close()
	if err := reconcile.WriteHoldings(f, holdings); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	fmt.Fprintf(w, "Wrote %s (%d holdings)\n", out, len(holdings))
	return nil
}
