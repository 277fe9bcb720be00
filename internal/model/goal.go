package model

import "strings"

// Goal is a named sub-account of the brokerage account.
type Goal struct {
	Key     string `yaml:"key"`     // "build wealth"
	Name    string `yaml:"name"`    // "Build Wealth", used in QIF account headers
	Header  string `yaml:"header"`  // phrase opening the goal's statement section
	Keyword string `yaml:"keyword"` // substring matched against ledger account names
	File    string `yaml:"file"`    // output file suffix, "build_wealth"
}

// HeaderTokens returns the lower-cased header phrase split on whitespace.
func (g Goal) HeaderTokens() []string {
	return strings.Fields(strings.ToLower(g.Header))
}
