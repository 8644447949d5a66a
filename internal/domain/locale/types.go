package locale

// Package locale contains domain-level types for the language/currency pair
// that governs display formatting. It is pure and free of adapter concerns.

import (
	"time"

	"github.com/shopspring/decimal"
)

// FallbackLanguage is the designated fallback language tag.
const FallbackLanguage = "en"

// BaseCurrency is the reference currency; its conversion rate is 1 by definition.
const BaseCurrency = "USD"

// SupportedLanguages is the closed set of language tags the dashboard ships
// translation tables for.
var SupportedLanguages = []string{"en", "tr", "ur", "fr"}

// LanguageSupported reports whether tag is a member of the supported set.
func LanguageSupported(tag string) bool {
	for _, l := range SupportedLanguages {
		if l == tag {
			return true
		}
	}
	return false
}

// Currency describes the display conventions of a supported currency.
type Currency struct {
	Code          string
	Symbol        string
	DecimalDigits int32
}

// currencies is the closed set of supported currencies.
var currencies = map[string]Currency{
	"USD": {Code: "USD", Symbol: "$", DecimalDigits: 2},
	"EUR": {Code: "EUR", Symbol: "€", DecimalDigits: 2},
	"TRY": {Code: "TRY", Symbol: "₺", DecimalDigits: 2},
	"PKR": {Code: "PKR", Symbol: "₨", DecimalDigits: 0},
}

// CurrencyInfo returns the display conventions for code and whether it is supported.
func CurrencyInfo(code string) (Currency, bool) {
	c, ok := currencies[code]
	return c, ok
}

// CurrencySupported reports whether code is a member of the supported set.
func CurrencySupported(code string) bool {
	_, ok := currencies[code]
	return ok
}

// SupportedCurrencies returns the supported currency codes. Order is not stable.
func SupportedCurrencies() []string {
	codes := make([]string, 0, len(currencies))
	for code := range currencies {
		codes = append(codes, code)
	}
	return codes
}

// State is the active (language, currency) pair.
type State struct {
	Language string `json:"language"`
	Currency string `json:"currency"`
}

// Default returns the fallback locale state.
func Default() State {
	return State{Language: FallbackLanguage, Currency: BaseCurrency}
}

// RateTable is an immutable snapshot of conversion factors: units of each
// currency per one unit of the base currency. A formatting call always works
// against a single snapshot, never a table being refreshed underneath it.
type RateTable struct {
	rates     map[string]decimal.Decimal
	fetchedAt time.Time
}

// NewRateTable builds a snapshot from the given factors. The base currency
// rate is forced to 1 regardless of input.
func NewRateTable(rates map[string]decimal.Decimal, fetchedAt time.Time) RateTable {
	copied := make(map[string]decimal.Decimal, len(rates)+1)
	for code, rate := range rates {
		copied[code] = rate
	}
	copied[BaseCurrency] = decimal.NewFromInt(1)
	return RateTable{rates: copied, fetchedAt: fetchedAt}
}

// Rate returns the conversion factor for code and whether the snapshot has
// one. Factors must be positive to be usable.
func (t RateTable) Rate(code string) (decimal.Decimal, bool) {
	r, ok := t.rates[code]
	if !ok || !r.IsPositive() {
		return decimal.Decimal{}, false
	}
	return r, true
}

// FetchedAt reports when the snapshot was taken. Zero for the empty table.
func (t RateTable) FetchedAt() time.Time {
	return t.fetchedAt
}

// Empty reports whether the table carries no rates at all.
func (t RateTable) Empty() bool {
	return len(t.rates) == 0
}
