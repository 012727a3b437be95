// Package currency converts listing amounts between currencies, backed
// either by a fixed rate table from configuration or by an external
// exchange-rate HTTP API with cached rates.
package currency

import (
	"context"
	"fmt"
	"math"

	"github.com/ktnkk/crosslist/internal/metrics"
)

// Converter converts a monetary amount from one currency to another.
type Converter interface {
	Convert(ctx context.Context, amount float64, from, to string) (float64, error)
	Rate(ctx context.Context, from, to string) (float64, error)
}

// Pair renders a currency pair key, e.g. "JPY/USD".
func Pair(from, to string) string {
	return from + "/" + to
}

// round2 rounds to two decimal places, the precision marketplace
// amounts are expressed in.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Fixed converts using a static rate table keyed by Pair.
type Fixed struct {
	rates map[string]float64
}

// NewFixed creates a Fixed converter from a rate table.
func NewFixed(rates map[string]float64) *Fixed {
	return &Fixed{rates: rates}
}

// Rate returns the configured rate for the pair. The inverse pair is
// consulted when the direct one is absent.
func (f *Fixed) Rate(_ context.Context, from, to string) (float64, error) {
	if from == to {
		return 1, nil
	}
	if rate, ok := f.rates[Pair(from, to)]; ok {
		return rate, nil
	}
	if inverse, ok := f.rates[Pair(to, from)]; ok && inverse != 0 {
		return 1 / inverse, nil
	}
	return 0, fmt.Errorf("no exchange rate configured for %s", Pair(from, to))
}

// Convert converts amount from one currency to another, rounded to two
// decimal places.
func (f *Fixed) Convert(ctx context.Context, amount float64, from, to string) (float64, error) {
	if from == to {
		return amount, nil
	}
	rate, err := f.Rate(ctx, from, to)
	if err != nil {
		return 0, err
	}
	metrics.CurrencyConversionsTotal.Inc()
	return round2(amount * rate), nil
}
