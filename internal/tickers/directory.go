package tickers

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// Ticker is a tradable instrument known to the statement parser.
type Ticker struct {
	Symbol string `yaml:"symbol"`
	Name   string `yaml:"name"`
}

// Directory provides case-insensitive lookup over known tickers.
type Directory struct {
	bySymbol map[string]Ticker
}

// NewDirectory creates a Directory from a slice of tickers. Later entries
// override earlier ones with the same symbol.
func NewDirectory(tickers []Ticker) *Directory {
	d := &Directory{bySymbol: make(map[string]Ticker, len(tickers))}
	d.Merge(tickers)
	return d
}

// Load reads a symbol,name CSV file and returns a Directory.
func Load(path string) (*Directory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening ticker file: %w", err)
	}
	defer f.Close()

	tickers, err := ReadTickers(f)
	if err != nil {
		return nil, fmt.Errorf("reading ticker file: %w", err)
	}
	return NewDirectory(tickers), nil
}

// Merge adds or replaces tickers.
func (d *Directory) Merge(tickers []Ticker) {
	for _, t := range tickers {
		sym := strings.ToUpper(strings.TrimSpace(t.Symbol))
		if sym == "" {
			continue
		}
		d.bySymbol[sym] = Ticker{Symbol: sym, Name: t.Name}
	}
}

// Lookup resolves a statement token to a ticker. The token is matched
// case-insensitively.
func (d *Directory) Lookup(token string) (Ticker, bool) {
	t, ok := d.bySymbol[strings.ToUpper(token)]
	return t, ok
}

// Has reports whether token names a known ticker.
func (d *Directory) Has(token string) bool {
	_, ok := d.Lookup(token)
	return ok
}

// Name returns the display name for a symbol, or "" if unknown.
func (d *Directory) Name(symbol string) string {
	t, _ := d.Lookup(symbol)
	return t.Name
}

// All returns every ticker sorted by symbol.
func (d *Directory) All() []Ticker {
	all := make([]Ticker, 0, len(d.bySymbol))
	for _, t := range d.bySymbol {
		all = append(all, t)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Symbol < all[j].Symbol })
	return all
}

// Len returns the number of known tickers.
func (d *Directory) Len() int {
	return len(d.bySymbol)
}
