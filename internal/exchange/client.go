// Package exchange looks up currency conversion rates from an external
// pair-rate API. It is called by the presentation path only; the ledger
// itself never depends on a rate being available.
package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"uchet/internal/cache"
	"uchet/internal/core"
)

// Currencies the bot accepts in convert commands, lower-cased.
var Currencies = []string{"usd", "eur", "uah"}

// Symbols for formatting converted amounts.
var Symbols = map[string]string{
	"usd": "$",
	"eur": "€",
	"uah": "₴",
}

type (
	Client struct {
		baseURL string
		apiKey  string
		http    *http.Client
		rates   *cache.LRU[decimal.Decimal]
	}

	// Result is a conversion outcome: the pair rate, and the converted
	// amount when one was requested.
	Result struct {
		Rate         decimal.Decimal
		Converted    decimal.Decimal
		HasConverted bool
	}

	pairResponse struct {
		Result         string          `json:"result"`
		ConversionRate decimal.Decimal `json:"conversion_rate"`
	}
)

const (
	requestTimeout = 10 * time.Second
	rateTTL        = 15 * time.Minute
	rateCacheSize  = 16
)

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: requestTimeout},
		rates:   cache.NewLRU[decimal.Decimal](rateCacheSize, rateTTL),
	}
}

// Pair returns the from→to rate. Rates are cached briefly so repeated
// balance overlays do not hammer the API. Transport and server failures come
// back as ErrExchangeUnavailable.
func (c *Client) Pair(ctx context.Context, from, to string) (decimal.Decimal, error) {
	key := from + "/" + to
	if rate, ok := c.rates.Get(key); ok {
		return rate, nil
	}

	url := fmt.Sprintf("%s/%s/pair/%s/%s", c.baseURL, c.apiKey, from, to)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("build rate request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %v", core.ErrExchangeUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Decimal{}, fmt.Errorf("%w: status %d", core.ErrExchangeUnavailable, resp.StatusCode)
	}

	var body pairResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: decode response: %v", core.ErrExchangeUnavailable, err)
	}
	if body.Result != "success" {
		return decimal.Decimal{}, fmt.Errorf("%w: result %q", core.ErrExchangeUnavailable, body.Result)
	}

	c.rates.Set(key, body.ConversionRate)
	return body.ConversionRate, nil
}

// Convert returns the pair rate and, when hasAmount is set, the amount
// multiplied through it.
func (c *Client) Convert(ctx context.Context, from, to string, amount decimal.Decimal, hasAmount bool) (Result, error) {
	rate, err := c.Pair(ctx, from, to)
	if err != nil {
		return Result{}, err
	}
	result := Result{Rate: rate}
	if hasAmount {
		result.Converted = amount.Mul(rate)
		result.HasConverted = true
	}
	return result, nil
}

// Supported reports whether a lower-cased currency code is accepted.
func Supported(code string) bool {
	for _, c := range Currencies {
		if c == code {
			return true
		}
	}
	return false
}
