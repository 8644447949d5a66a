package httprate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/syed-arham-coder/Pak-Turk-sub001/internal/errors"
)

func TestNewSource_Validation(t *testing.T) {
	_, err := NewSource(Config{})
	assert.Error(t, err, "URL is required")

	_, err = NewSource(Config{URL: "http://rates", RatesExpr: "data.["})
	assert.Error(t, err, "bad JMESPath must be rejected at construction")
}

func TestSource_LoadRates_EnvelopeExtraction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"meta": {"provider": "test"},
			"data": {"rates": {"EUR": 0.9, "TRY": "32.5", "PKR": 278}}
		}`))
	}))
	defer srv.Close()

	src, err := NewSource(Config{URL: srv.URL, RatesExpr: "data.rates"})
	require.NoError(t, err)

	table, err := src.LoadRates(context.Background())
	require.NoError(t, err)

	eur, ok := table.Rate("EUR")
	require.True(t, ok)
	assert.True(t, eur.Equal(decimal.RequireFromString("0.9")))

	try, ok := table.Rate("TRY")
	require.True(t, ok)
	assert.True(t, try.Equal(decimal.RequireFromString("32.5")))

	// Base rate is forced to 1 even when absent from the payload.
	usd, ok := table.Rate("USD")
	require.True(t, ok)
	assert.True(t, usd.Equal(decimal.NewFromInt(1)))
}

func TestSource_LoadRates_FlatBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"eur": 0.9, "pkr": 278}`))
	}))
	defer srv.Close()

	src, err := NewSource(Config{URL: srv.URL})
	require.NoError(t, err)

	table, err := src.LoadRates(context.Background())
	require.NoError(t, err)

	// Codes are normalized to upper case.
	_, ok := table.Rate("EUR")
	assert.True(t, ok)
	_, ok = table.Rate("PKR")
	assert.True(t, ok)
}

func TestSource_LoadRates_SkipsUnusableEntries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"EUR": 0.9, "BAD": "not-a-number", "NEG": -2, "OBJ": {"x": 1}}`))
	}))
	defer srv.Close()

	src, err := NewSource(Config{URL: srv.URL})
	require.NoError(t, err)

	table, err := src.LoadRates(context.Background())
	require.NoError(t, err)

	_, ok := table.Rate("EUR")
	assert.True(t, ok)
	_, ok = table.Rate("BAD")
	assert.False(t, ok)
	_, ok = table.Rate("NEG")
	assert.False(t, ok)
	_, ok = table.Rate("OBJ")
	assert.False(t, ok)
}

func TestSource_LoadRates_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	src, err := NewSource(Config{URL: srv.URL})
	require.NoError(t, err)

	_, err = src.LoadRates(context.Background())
	assert.True(t, apperrors.IsServer(err))
}

func TestSource_LoadRates_Unreachable(t *testing.T) {
	src, err := NewSource(Config{
		URL:        "http://127.0.0.1:1/rates",
		HTTPClient: &http.Client{Timeout: 200 * time.Millisecond},
	})
	require.NoError(t, err)

	_, err = src.LoadRates(context.Background())
	assert.True(t, apperrors.IsNetwork(err))
}

func TestSource_LoadRates_NonObjectNode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"rates": [1, 2, 3]}`))
	}))
	defer srv.Close()

	src, err := NewSource(Config{URL: srv.URL, RatesExpr: "rates"})
	require.NoError(t, err)

	_, err = src.LoadRates(context.Background())
	assert.Error(t, err)
}

func TestSource_LoadRates_StampsFetchTime(t *testing.T) {
	fixed := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"EUR": 0.9}`))
	}))
	defer srv.Close()

	src, err := NewSource(Config{URL: srv.URL, Now: func() time.Time { return fixed }})
	require.NoError(t, err)

	table, err := src.LoadRates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fixed, table.FetchedAt())
}
