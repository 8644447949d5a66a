// Package money implements monetary conversion and display formatting.
// Arithmetic stays in decimal form end to end; rounding to a currency's
// canonical digit count happens only when a value is rendered, so repeated
// conversions do not compound rounding error.
package money

import (
	"github.com/shopspring/decimal"

	"github.com/syed-arham-coder/Pak-Turk-sub001/internal/domain/locale"
)

// conversionScale bounds intermediate division precision. Far beyond any
// supported currency's display digits.
const conversionScale = 12

// Convert translates amount from one currency to another using a single
// RateTable snapshot. Rates are units of each currency per one base unit,
// so the conversion is amount * rate(to) / rate(from).
//
// A code the snapshot has no usable rate for is treated as the base
// currency (rate 1). This is the defined degradation for display paths,
// never an error.
func Convert(table locale.RateTable, amount decimal.Decimal, from, to string) decimal.Decimal {
	fromRate := rateOrBase(table, from)
	toRate := rateOrBase(table, to)
	if fromRate.Equal(toRate) {
		return amount
	}
	return amount.Mul(toRate).DivRound(fromRate, conversionScale)
}

// Format renders amount using the currency's symbol and canonical decimal
// digit count, e.g. "€90.00" or "₨150".
func Format(amount decimal.Decimal, cur locale.Currency) string {
	return cur.Symbol + amount.StringFixed(cur.DecimalDigits)
}

func rateOrBase(table locale.RateTable, code string) decimal.Decimal {
	if r, ok := table.Rate(code); ok {
		return r
	}
	return decimal.NewFromInt(1)
}
