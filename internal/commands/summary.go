package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/betterqif/internal/summary"
)

func newSummaryCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "summary <statement>",
		Short: "Print per-goal transaction totals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.session(cmd)
			if err != nil {
				return err
			}
			return runSummary(cmd.Context(), s, args[0], cmd.OutOrStdout())
		},
	}
}

func runSummary(ctx context.Context, s *session, path string, w io.Writer) error {
	lines, err := s.lines(ctx, path)
	if err != nil {
		return err
	}
	txns := s.machine().Parse(lines)
	return summary.Write(w, summary.Summarize(s.cfg.Goals, txns))
}
