package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/ktnkk/crosslist/internal/cache"
	"github.com/ktnkk/crosslist/internal/metrics"
)

const ratePrefix = "currency_rate_"

// HTTP converts using an external exchange-rate API. Fetched rates are
// cached per pair for the configured TTL.
type HTTP struct {
	endpoint string
	client   *http.Client
	cache    cache.Cache
	ttl      time.Duration
}

// HTTPOption configures the HTTP converter.
type HTTPOption func(*HTTP)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(h *HTTP) {
		h.client = c
	}
}

// NewHTTP creates an HTTP converter against the given exchange-rate
// endpoint. ttl bounds how long a fetched rate is reused.
func NewHTTP(endpoint string, rateCache cache.Cache, ttl time.Duration, opts ...HTTPOption) *HTTP {
	h := &HTTP{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
		cache:    rateCache,
		ttl:      ttl,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

type rateResponse struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

// Rate returns the exchange rate for the pair, serving from the cache
// when a fresh value is present.
func (h *HTTP) Rate(ctx context.Context, from, to string) (float64, error) {
	if from == to {
		return 1, nil
	}

	key := ratePrefix + Pair(from, to)
	if cached, ok := h.cache.Get(key); ok {
		rate, err := strconv.ParseFloat(cached, 64)
		if err == nil {
			return rate, nil
		}
		// An unparseable cached value falls through to a fresh fetch.
	}

	rate, err := h.fetch(ctx, from, to)
	if err != nil {
		return 0, err
	}

	h.cache.Set(key, strconv.FormatFloat(rate, 'f', -1, 64), h.ttl)
	metrics.CurrencyRateRefreshesTotal.Inc()

	return rate, nil
}

// Convert converts amount from one currency to another, rounded to two
// decimal places.
func (h *HTTP) Convert(ctx context.Context, amount float64, from, to string) (float64, error) {
	if from == to {
		return amount, nil
	}
	rate, err := h.Rate(ctx, from, to)
	if err != nil {
		return 0, err
	}
	metrics.CurrencyConversionsTotal.Inc()
	return round2(amount * rate), nil
}

// Refresh re-fetches and re-caches the given pairs, bypassing any
// cached values. Pairs are strings in Pair form.
func (h *HTTP) Refresh(ctx context.Context, pairs []string) error {
	for _, pair := range pairs {
		from, to, ok := splitPair(pair)
		if !ok {
			return fmt.Errorf("invalid currency pair %q", pair)
		}

		rate, err := h.fetch(ctx, from, to)
		if err != nil {
			return fmt.Errorf("refreshing %s: %w", pair, err)
		}

		h.cache.Set(ratePrefix+pair, strconv.FormatFloat(rate, 'f', -1, 64), h.ttl)
		metrics.CurrencyRateRefreshesTotal.Inc()
	}
	return nil
}

func splitPair(pair string) (from, to string, ok bool) {
	for i := range pair {
		if pair[i] == '/' {
			return pair[:i], pair[i+1:], pair[:i] != "" && pair[i+1:] != ""
		}
	}
	return "", "", false
}

func (h *HTTP) fetch(ctx context.Context, from, to string) (float64, error) {
	u, err := url.Parse(h.endpoint)
	if err != nil {
		return 0, fmt.Errorf("parsing endpoint: %w", err)
	}
	q := u.Query()
	q.Set("base", from)
	q.Set("symbols", to)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return 0, fmt.Errorf("creating rate request: %w", err)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("executing rate request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("reading rate response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, fmt.Errorf("rate request failed (status %d)", resp.StatusCode)
	}

	var parsed rateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return 0, fmt.Errorf("parsing rate response: %w", err)
	}

	rate, ok := parsed.Rates[to]
	if !ok {
		return 0, fmt.Errorf("rate response has no rate for %s", to)
	}
	if rate <= 0 {
		return 0, fmt.Errorf("rate response has non-positive rate for %s", to)
	}

	return rate, nil
}
