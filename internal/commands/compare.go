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

func newCompareCommand(opts *rootOptions) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "compare <statement> <export.csv|export.xlsx>",
		Short: "Compare ledger holdings against the statement",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.session(cmd)
			if err != nil {
				return err
			}
			if out == "" {
				out = s.cfg.Reconcile.Output
			}
			return runCompare(cmd.Context(), s, args[0], args[1], out, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "report path (default from config, compared.csv)")

	return cmd
}

func runCompare(ctx context.Context, s *session, stmtPath, exportPath, out string, w io.Writer) error {
	lines, err := s.lines(ctx, stmtPath)
	if err != nil {
		return err
	}
	stmt := statement.ParseHoldings(lines, s.cfg.Goals, s.dir)

	exportRows, err := reconcile.ReadExport(reconcile.DefaultRegistry(), exportPath)
	if err != nil {
		return err
	}
	ledger, err := reconcile.LedgerHoldings(exportRows, s.cfg.Goals)
	if err != nil {
		return err
	}

	rows := reconcile.Compare(ledger, stmt, s.dir)
	differ := 0
	for _, r := range rows {
		if !r.Diff.IsZero() {
			differ++
			s.logger.Debug("share mismatch", "goal", r.Goal, "ticker", r.Ticker, "diff", r.Diff.String())
		}
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("creating %s: %w", out, err)
	}
	defer f.Close()
	if err := reconcile.WriteReport(f, rows); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}

	fmt.Fprintf(w, "Wrote %s (%d of %d positions differ)\n", out, differ, len(rows))
	return nil
}
