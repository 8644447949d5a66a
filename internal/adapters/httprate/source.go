// Package httprate loads currency conversion rates from an HTTP JSON
// endpoint. A JMESPath expression extracts the code→factor map from whatever
// envelope the rate provider wraps it in.
package httprate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	jmespath "github.com/jmespath-community/go-jmespath"
	"github.com/shopspring/decimal"

	domainlocale "github.com/syed-arham-coder/Pak-Turk-sub001/internal/domain/locale"
	apperrors "github.com/syed-arham-coder/Pak-Turk-sub001/internal/errors"
)

const maxResponseBytes = 1 << 20

// Config holds configuration for the HTTP rate source.
type Config struct {
	URL string
	// RatesExpr is a JMESPath expression selecting the object of
	// code→factor pairs in the response, e.g. "data.rates". Empty means
	// the response body is the object itself.
	RatesExpr  string
	HTTPClient *http.Client // Optional, defaults to a 10s-timeout client
	Now        func() time.Time
}

// Source implements the RateSource port over HTTP.
type Source struct {
	url        string
	expr       string
	httpClient *http.Client
	now        func() time.Time
}

// NewSource creates an HTTP rate source and validates the JMESPath expression.
func NewSource(cfg Config) (*Source, error) {
	if cfg.URL == "" {
		return nil, errors.New("rate source URL is required")
	}
	if strings.TrimSpace(cfg.RatesExpr) != "" {
		if _, err := jmespath.Compile(cfg.RatesExpr); err != nil {
			return nil, fmt.Errorf("compile rates expression: %w", err)
		}
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Source{
		url:        cfg.URL,
		expr:       strings.TrimSpace(cfg.RatesExpr),
		httpClient: httpClient,
		now:        now,
	}, nil
}

// LoadRates fetches and decodes a fresh rate snapshot.
func (s *Source) LoadRates(ctx context.Context) (domainlocale.RateTable, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return domainlocale.RateTable{}, fmt.Errorf("build rate request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return domainlocale.RateTable{}, apperrors.Wrapf(err, apperrors.ErrCodeNetwork, "fetch rates")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domainlocale.RateTable{}, apperrors.Serverf("rate service returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return domainlocale.RateTable{}, apperrors.Wrapf(err, apperrors.ErrCodeNetwork, "read rate response")
	}

	var payload any
	if unmarshalErr := json.Unmarshal(body, &payload); unmarshalErr != nil {
		return domainlocale.RateTable{}, fmt.Errorf("decode rate response: %w", unmarshalErr)
	}

	ratesNode := payload
	if s.expr != "" {
		ratesNode, err = jmespath.Search(s.expr, payload)
		if err != nil {
			return domainlocale.RateTable{}, fmt.Errorf("evaluate rates expression: %w", err)
		}
	}

	rates, err := toRateMap(ratesNode)
	if err != nil {
		return domainlocale.RateTable{}, err
	}
	return domainlocale.NewRateTable(rates, s.now()), nil
}

// toRateMap converts the extracted JSON node into decimal factors. Entries
// that are not positive numbers are skipped rather than failing the load.
func toRateMap(node any) (map[string]decimal.Decimal, error) {
	obj, ok := node.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("rates node is %T, want object", node)
	}

	rates := make(map[string]decimal.Decimal, len(obj))
	for code, v := range obj {
		var d decimal.Decimal
		switch val := v.(type) {
		case float64:
			d = decimal.NewFromFloat(val)
		case string:
			parsed, err := decimal.NewFromString(val)
			if err != nil {
				continue
			}
			d = parsed
		case json.Number:
			parsed, err := decimal.NewFromString(val.String())
			if err != nil {
				continue
			}
			d = parsed
		default:
			continue
		}
		if !d.IsPositive() {
			continue
		}
		rates[strings.ToUpper(code)] = d
	}
	return rates, nil
}
