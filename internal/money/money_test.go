package money

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syed-arham-coder/Pak-Turk-sub001/internal/domain/locale"
)

func testRates(t *testing.T) locale.RateTable {
	t.Helper()
	return locale.NewRateTable(map[string]decimal.Decimal{
		"EUR": decimal.RequireFromString("0.9"),
		"TRY": decimal.RequireFromString("34.5"),
		"PKR": decimal.RequireFromString("278.25"),
	}, time.Now())
}

func TestConvert_BaseToActive(t *testing.T) {
	table := testRates(t)

	// 100 USD at rate(EUR)=0.9 → 90 EUR.
	got := Convert(table, decimal.NewFromInt(100), "USD", "EUR")
	assert.True(t, got.Equal(decimal.RequireFromString("90")), "got %s", got)
}

func TestConvert_SameCurrencyIsIdentity(t *testing.T) {
	table := testRates(t)
	amount := decimal.RequireFromString("123.456")

	got := Convert(table, amount, "EUR", "EUR")
	assert.True(t, got.Equal(amount))
}

func TestConvert_UnsupportedCodeFallsBackToBase(t *testing.T) {
	table := testRates(t)

	// "XAU" has no rate: treated as base, so this is USD→USD.
	got := Convert(table, decimal.NewFromInt(50), "XAU", "USD")
	assert.True(t, got.Equal(decimal.NewFromInt(50)))

	// Unsupported target likewise degrades to base-currency treatment:
	// 9 EUR at rate(EUR)=0.9 is 10 base units.
	got = Convert(table, decimal.NewFromInt(9), "EUR", "XAU")
	assert.True(t, got.Equal(decimal.NewFromInt(10)), "got %s", got)
}

func TestConvert_RoundTripBoundedByMinorUnit(t *testing.T) {
	table := testRates(t)
	pairs := [][2]string{
		{"USD", "EUR"}, {"EUR", "TRY"}, {"TRY", "PKR"}, {"USD", "PKR"},
	}
	amounts := []string{"0", "0.01", "1", "99.99", "1234.56", "1000000"}

	for _, pair := range pairs {
		for _, raw := range amounts {
			amount := decimal.RequireFromString(raw)
			there := Convert(table, amount, pair[0], pair[1])
			back := Convert(table, there, pair[1], pair[0])

			diff := back.Sub(amount).Abs()
			limit := decimal.RequireFromString("0.01")
			require.True(t, diff.LessThanOrEqual(limit),
				"%s %s→%s→%s drifted by %s", raw, pair[0], pair[1], pair[0], diff)
		}
	}
}

func TestFormat(t *testing.T) {
	eur, ok := locale.CurrencyInfo("EUR")
	require.True(t, ok)
	pkr, ok := locale.CurrencyInfo("PKR")
	require.True(t, ok)

	tests := []struct {
		name   string
		amount string
		cur    locale.Currency
		want   string
	}{
		{"two digits", "90", eur, "€90.00"},
		{"rounds at format time", "90.006", eur, "€90.01"},
		{"zero digit currency", "150.4", pkr, "₨150"},
		{"negative amount", "-3.5", eur, "€-3.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Format(decimal.RequireFromString(tt.amount), tt.cur)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConvert_RoundingOnlyAtFormat(t *testing.T) {
	table := testRates(t)
	eur, _ := locale.CurrencyInfo("EUR")

	// Chain of conversions keeps full precision; rounding applies once.
	amount := decimal.RequireFromString("10.005")
	step := Convert(table, amount, "USD", "EUR")
	step = Convert(table, step, "EUR", "TRY")
	step = Convert(table, step, "TRY", "EUR")

	direct := Convert(table, amount, "USD", "EUR")
	assert.Equal(t, Format(direct, eur), Format(step, eur))
}
