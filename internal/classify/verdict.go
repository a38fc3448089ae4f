package classify

import "strings"

// Category is the closed set of headline categories. Anything the model
// returns outside this set collapses to General.
type Category string

const (
	Stocks      Category = "Stocks"
	Economy     Category = "Economy"
	Forex       Category = "Forex"
	Crypto      Category = "Crypto"
	Geopolitics Category = "Geopolitics"
	Commodities Category = "Commodities"
	General     Category = "General"
	Unknown     Category = "Unknown"
)

// Verdict is the classifier's structured decision for one headline.
type Verdict struct {
	Significant bool
	Category    Category
	Reason      string
}

var categoryAliases = map[string]Category{
	"stock":            Stocks,
	"stocks":           Stocks,
	"equities":         Stocks,
	"economy":          Economy,
	"economic":         Economy,
	"macro":            Economy,
	"forex":            Forex,
	"fx":               Forex,
	"currency":         Forex,
	"currencies":       Forex,
	"crypto":           Crypto,
	"cryptocurrency":   Crypto,
	"cryptocurrencies": Crypto,
	"geopolitics":      Geopolitics,
	"geopolitical":     Geopolitics,
	"commodity":        Commodities,
	"commodities":      Commodities,
	"general":          General,
	"unknown":          Unknown,
}

// NormalizeCategory maps a raw model string into the closed enum,
// case-insensitively and tolerant of singular/plural variants.
func NormalizeCategory(raw string) Category {
	key := strings.ToLower(strings.TrimSpace(raw))
	if c, ok := categoryAliases[key]; ok {
		return c
	}
	if c, ok := categoryAliases[strings.TrimSuffix(key, "s")]; ok {
		return c
	}
	return General
}
