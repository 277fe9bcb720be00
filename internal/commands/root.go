package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/betterqif/internal/buildinfo"
	"github.com/cleared-dev/betterqif/internal/config"
	"github.com/cleared-dev/betterqif/internal/extract"
	"github.com/cleared-dev/betterqif/internal/model"
	"github.com/cleared-dev/betterqif/internal/statement"
	"github.com/cleared-dev/betterqif/internal/tickers"
)

// rootOptions holds the persistent flags.
type rootOptions struct {
	configPath string
	debug      bool
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "betterqif",
		Short:   "Convert Betterment statements to QIF",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default ./"+config.DefaultFile+")")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newConvertCommand(opts))
	rootCmd.AddCommand(newHoldingsCommand(opts))
	rootCmd.AddCommand(newCompareCommand(opts))
	rootCmd.AddCommand(newSummaryCommand(opts))

	return rootCmd
}

// session is the resolved configuration shared by the statement commands.
type session struct {
	cfg    *config.Config
	dir    *tickers.Directory
	logger *slog.Logger
}

func (o *rootOptions) session(cmd *cobra.Command) (*session, error) {
	cfg, err := config.Resolve(o.configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	level := slog.LevelInfo
	if o.debug || cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: level,
	}))

	dir, err := cfg.Directory()
	if err != nil {
		return nil, fmt.Errorf("loading tickers: %w", err)
	}
	logger.Debug("config resolved", "goals", len(cfg.Goals), "tickers", dir.Len())

	return &session{cfg: cfg, dir: dir, logger: logger}, nil
}

func (s *session) extractor() *extract.Extractor {
	return extract.New(s.cfg.Extractor.Binary)
}

// lines reads and tokenizes a statement PDF or text dump.
func (s *session) lines(ctx context.Context, path string) ([]model.Line, error) {
	lines, err := s.extractor().Load(ctx, path)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("statement loaded", "path", path, "lines", len(lines))
	return lines, nil
}

func (s *session) machine() *statement.Machine {
	return statement.NewMachine(
		statement.NewParser(s.dir, s.logger),
		statement.MachineOptions{
			Goals:            s.cfg.Goals,
			DividendSections: s.cfg.Sections.Dividend,
			ActivitySections: s.cfg.Sections.Activity,
			ExitGoals:        s.cfg.Sections.ExitGoals,
		},
		s.logger,
	)
}
