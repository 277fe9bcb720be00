package tickers

// Default returns the funds that appear in Betterment statements.
//
// A new fund in a statement must be added here (or in the config file)
// before its lines are recognized; ledger software matches the QIF records
// on the display name, not the symbol.
func Default() []Ticker {
	return []Ticker{
		{Symbol: "BNDX", Name: "Total International Bond ETF"},
		{Symbol: "VBR", Name: "Vanguard Small-Cap Value ETF"},
		{Symbol: "VTI", Name: "Vanguard Total Stock Market ETF"},
		{Symbol: "VTV", Name: "Vanguard Value ETF"},
		{Symbol: "LQD", Name: "iShares iBoxx $ Investment Grade Corporate Bond ETF"},
		{Symbol: "VEA", Name: "FTSE Developed Markets ETF"},
		{Symbol: "VWO", Name: "Vanguard FTSE Emerging Markets ETF"},
		{Symbol: "MUB", Name: "Municipal Bonds ETF"},
		{Symbol: "VWOB", Name: "Vanguard Emerging Markets Government Bond ETF"},
		{Symbol: "VOE", Name: "Vanguard Mid-Cap Value ETF"},
		{Symbol: "VTIP", Name: "Vanguard Short-Term Inflation-Protected Securities ETF"},
		{Symbol: "SHV", Name: "iShares Short Treasury Bond ETF"},
		{Symbol: "EMB", Name: "Emerging Markets Bonds"},
		{Symbol: "IEMG", Name: "iShares Core MSCI Emerging Markets ETF"},
		{Symbol: "VCIT", Name: "Vanguard Intermediate-Term Corporate Bond ETF"},
		{Symbol: "TFI", Name: "SPDR Nuveen Barclays Municipal Bond ETF"},
		{Symbol: "SCHF", Name: "Schwab International Equity ETF"},
		{Symbol: "SCHB", Name: "Schwab U.S. Broad Market ETF"},
		{Symbol: "AGG", Name: "iShares Core Total US Bond Market ETF"},
		{Symbol: "IWS", Name: "iShares Russell Mid-Cap Value ETF"},
		{Symbol: "IWN", Name: "iShares Russell 2000 Value ETF"},
		{Symbol: "SCHV", Name: "Schwab US Large-Cap Value"},
		{Symbol: "SCHX", Name: "Schwab US Large-Cap ETF"},
		{Symbol: "ITOT", Name: "iShares Core S&P Total U.S. Stock Market ETF"},
		{Symbol: "IEFA", Name: "iShares Core MSCI EAFE ETF"},
		{Symbol: "JPST", Name: "JPMorgan Ultra-Short Income ETF (Aggregate Bond)"},
		{Symbol: "GBIL", Name: "Goldman Sachs TreasuryAccess 01 Year ETF"},
		{Symbol: "SPYV", Name: "SPDR S&P 500 Value ETF"},
		{Symbol: "STIP", Name: "iShares 0-5 Year TIPS Bond ETF"},
		{Symbol: "VO", Name: "Vanguard Mid-Cap Stock ETF"},
	}
}
