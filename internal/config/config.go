package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/betterqif/internal/model"
	"github.com/cleared-dev/betterqif/internal/tickers"
)

// DefaultFile is the config file name looked up in the working directory.
const DefaultFile = "betterqif.yaml"

// Environment variables that override values from the config file.
const (
	EnvPdftotext     = "BETTERQIF_PDFTOTEXT"
	EnvAccountPrefix = "BETTERQIF_ACCOUNT_PREFIX"
	EnvDebug         = "BETTERQIF_DEBUG"
)

// Config represents the top-level betterqif.yaml configuration.
type Config struct {
	Account     AccountConfig    `yaml:"account"`
	Goals       []model.Goal     `yaml:"goals"`
	Sections    SectionsConfig   `yaml:"sections"`
	Extractor   ExtractorConfig  `yaml:"extractor"`
	Tickers     []tickers.Ticker `yaml:"tickers,omitempty"`
	TickersFile string           `yaml:"tickers_file,omitempty"`
	Reconcile   ReconcileConfig  `yaml:"reconcile"`
	Debug       bool             `yaml:"debug,omitempty"`
}

// AccountConfig names the brokerage in generated QIF account headers.
type AccountConfig struct {
	Prefix string `yaml:"prefix"` // "Betterment" -> "Betterment Build Wealth"
}

// SectionsConfig lists the phrases that switch the statement parser between
// sections. Matching is case-insensitive substring containment.
type SectionsConfig struct {
	Dividend []string `yaml:"dividend"`
	Activity []string `yaml:"activity"`

	// ExitGoals ends goal-scoped parsing when a line starts with it.
	ExitGoals string `yaml:"exit_goals"`
}

// ExtractorConfig controls the external PDF-to-text tool.
type ExtractorConfig struct {
	Binary string `yaml:"binary"`
}

// ReconcileConfig controls the holdings comparison report.
type ReconcileConfig struct {
	Output string `yaml:"output"`
}

// Load reads a betterqif.yaml file from disk and applies environment overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	// tickers_file is relative to the config file.
	if cfg.TickersFile != "" && !filepath.IsAbs(cfg.TickersFile) {
		cfg.TickersFile = filepath.Join(filepath.Dir(path), cfg.TickersFile)
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Resolve loads path when set, otherwise betterqif.yaml in the working
// directory if present, otherwise the defaults. A .env file in the working
// directory is loaded first so its values act as overrides.
func Resolve(path string) (*Config, error) {
	_ = godotenv.Load()

	if path != "" {
		return Load(path)
	}
	if _, err := os.Stat(DefaultFile); err == nil {
		return Load(DefaultFile)
	}
	cfg := Default()
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from BETTERQIF_* environment variables.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvPdftotext); v != "" {
		c.Extractor.Binary = v
	}
	if v := os.Getenv(EnvAccountPrefix); v != "" {
		c.Account.Prefix = v
	}
	if v := os.Getenv(EnvDebug); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvDebug, err)
		}
		c.Debug = debug
	}
	return nil
}

// Validate checks that the configuration can drive a parse.
func (c *Config) Validate() error {
	if len(c.Goals) == 0 {
		return fmt.Errorf("no goals configured")
	}
	seen := make(map[string]bool, len(c.Goals))
	for i, g := range c.Goals {
		if g.Key == "" {
			return fmt.Errorf("goal %d: missing key", i)
		}
		if seen[g.Key] {
			return fmt.Errorf("goal %q: duplicate key", g.Key)
		}
		seen[g.Key] = true
		if len(g.HeaderTokens()) == 0 {
			return fmt.Errorf("goal %q: missing header", g.Key)
		}
		if g.File == "" {
			return fmt.Errorf("goal %q: missing file", g.Key)
		}
	}
	if len(c.Sections.Dividend) == 0 || len(c.Sections.Activity) == 0 {
		return fmt.Errorf("section phrases must not be empty")
	}
	if c.Extractor.Binary == "" {
		return fmt.Errorf("extractor binary must not be empty")
	}
	return nil
}

// Directory builds the ticker directory: defaults, then tickers_file, then
// inline tickers.
func (c *Config) Directory() (*tickers.Directory, error) {
	dir := tickers.NewDirectory(tickers.Default())
	if c.TickersFile != "" {
		extra, err := tickers.Load(c.TickersFile)
		if err != nil {
			return nil, err
		}
		dir.Merge(extra.All())
	}
	dir.Merge(c.Tickers)
	return dir, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns the configuration for Betterment statements.
func Default() *Config {
	return &Config{
		Account: AccountConfig{
			Prefix: "Betterment",
		},
		Goals: []model.Goal{
			{Key: "build wealth", Name: "Build Wealth", Header: "build wealth", Keyword: "build", File: "build_wealth"},
			{Key: "safety net", Name: "Safety Net", Header: "safety net", Keyword: "safety", File: "safety_net"},
			{Key: "world cup", Name: "World Cup", Header: "world cup 2026", Keyword: "world", File: "world_cup"},
		},
		Sections: SectionsConfig{
			Dividend: []string{"dividend payment detail"},
			Activity: []string{
				"quarterly activity detail",
				"monthly activity detail",
				"snapshot activity detail",
			},
			ExitGoals: "smart saver",
		},
		Extractor: ExtractorConfig{
			Binary: "pdftotext",
		},
		Reconcile: ReconcileConfig{
			Output: "compared.csv",
		},
	}
}
