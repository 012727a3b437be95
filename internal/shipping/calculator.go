// Package shipping computes international shipping quotes from the
// carrier reference tables: country to zone, zone and weight bracket to
// base price, plus whatever surcharges are in effect.
package shipping

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/ktnkk/crosslist/internal/store"
	domain "github.com/ktnkk/crosslist/pkg/types"
)

// Quotes are expressed in yen, matching the carrier tariff tables.
const quoteCurrency = "JPY"

// Calculator computes shipping quotes.
type Calculator struct {
	store   store.Store
	nowFunc func() time.Time
}

// Option configures the Calculator.
type Option func(*Calculator)

// WithNowFunc overrides the clock used to select active surcharges.
func WithNowFunc(f func() time.Time) Option {
	return func(c *Calculator) {
		c.nowFunc = f
	}
}

// NewCalculator creates a Calculator over the given store.
func NewCalculator(st store.Store, opts ...Option) *Calculator {
	c := &Calculator{
		store:   st,
		nowFunc: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Quote computes the shipping cost for a parcel of weightGrams sent to
// countryCode via the given carrier service. Percentage surcharges
// apply to the base price; fixed amounts are added as-is.
func (c *Calculator) Quote(
	ctx context.Context,
	serviceID int,
	countryCode string,
	weightGrams int,
) (*domain.ShippingQuote, error) {
	if weightGrams <= 0 {
		return nil, fmt.Errorf("weight must be positive, got %d", weightGrams)
	}

	country, err := c.store.GetCountry(ctx, serviceID, countryCode)
	if err != nil {
		return nil, fmt.Errorf("resolving zone: %w", err)
	}

	rate, err := c.store.GetShippingRate(ctx, serviceID, country.Zone, weightGrams)
	if err != nil {
		return nil, fmt.Errorf("resolving rate: %w", err)
	}

	surcharges, err := c.store.ListActiveSurcharges(ctx, serviceID, c.nowFunc())
	if err != nil {
		return nil, fmt.Errorf("listing surcharges: %w", err)
	}

	quote := &domain.ShippingQuote{
		ServiceID:   serviceID,
		CountryCode: countryCode,
		Zone:        country.Zone,
		WeightGrams: weightGrams,
		BasePrice:   rate.BasicPrice,
		Total:       rate.BasicPrice,
		Currency:    quoteCurrency,
	}

	for _, sc := range surcharges {
		amount := rate.BasicPrice * sc.Rate / 100
		if sc.FixedAmount != nil {
			amount += *sc.FixedAmount
		}
		amount = math.Round(amount*100) / 100

		quote.Surcharges = append(quote.Surcharges, domain.AppliedSurcharge{
			Type:   sc.Type,
			Amount: amount,
		})
		quote.Total += amount
	}

	quote.Total = math.Round(quote.Total*100) / 100
	return quote, nil
}
