package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/betterqif/internal/extract"
	"github.com/cleared-dev/betterqif/internal/qif"
)

func newConvertCommand(opts *rootOptions) *cobra.Command {
	var base string
	var dump bool

	cmd := &cobra.Command{
		Use:   "convert <statement>",
		Short: "Convert a statement PDF or text dump to one QIF file per goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.session(cmd)
			if err != nil {
				return err
			}
			return runConvert(cmd.Context(), s, args[0], base, dump, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&base, "out", "", "output path prefix (default: statement path without extension)")
	cmd.Flags().BoolVar(&dump, "dump", false, "also write the extracted text to <out>-debug.txt")

	return cmd
}

func runConvert(ctx context.Context, s *session, path, base string, dump bool, w io.Writer) error {
	if base == "" {
		base = extract.BaseName(path)
	}

	text, err := s.extractor().Read(ctx, path)
	if err != nil {
		return err
	}
	if dump {
		dumpPath := base + "-debug.txt"
		if err := extract.WriteDump(dumpPath, text); err != nil {
			return err
		}
		s.logger.Info("wrote text dump", "path", dumpPath)
	}

	txns := s.machine().Parse(extract.Lines(text))

	em := qif.NewEmitter(s.cfg.Goals, s.dir, s.cfg.Account.Prefix)
	var fatal int
	for _, e := range em.Validate(txns) {
		if !e.Fatal() {
			s.logger.Warn("suspect transaction", "error", e.Error())
			continue
		}
		s.logger.Error("invalid transaction", "error", e.Error())
		fatal++
	}
	if fatal > 0 {
		return fmt.Errorf("%d invalid transactions in %s", fatal, path)
	}

	docs, err := em.Render(txns)
	if err != nil {
		return err
	}
	paths, err := qif.WriteFiles(base, docs)
	if err != nil {
		return err
	}

	for i, p := range paths {
		fmt.Fprintf(w, "Wrote %s (%d records)\n", p, len(docs[i].Records)-1)
	}
	return nil
}
