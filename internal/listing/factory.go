package listing

import (
	"context"
	"net/http"

	"github.com/ktnkk/crosslist/internal/cache"
	"github.com/ktnkk/crosslist/internal/config"
	"github.com/ktnkk/crosslist/internal/currency"
	"github.com/ktnkk/crosslist/internal/ebay"
	"github.com/ktnkk/crosslist/internal/notify"
	"github.com/ktnkk/crosslist/internal/store"
)

// Factory builds per-seller listing services from stored credentials.
// The token cache and rate limiter are shared across all sellers.
type Factory struct {
	store     store.Store
	cache     cache.Cache
	converter currency.Converter
	cfg       config.EbayConfig
	limiter   *ebay.RateLimiter
	notifier  notify.Notifier
}

// FactoryOption configures the Factory.
type FactoryOption func(*Factory)

// WithFactoryNotifier makes every built service announce registrations
// through n.
func WithFactoryNotifier(n notify.Notifier) FactoryOption {
	return func(f *Factory) {
		f.notifier = n
	}
}

// NewFactory creates a Factory.
func NewFactory(
	st store.Store,
	tokenCache cache.Cache,
	conv currency.Converter,
	cfg config.EbayConfig,
	limiter *ebay.RateLimiter,
	opts ...FactoryOption,
) *Factory {
	f := &Factory{
		store:     st,
		cache:     tokenCache,
		converter: conv,
		cfg:       cfg,
		limiter:   limiter,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// ForUser loads the seller's stored credentials and assembles a listing
// service around them. Incomplete credentials surface as a
// *ebay.CredentialError.
func (f *Factory) ForUser(ctx context.Context, userID string) (*Service, error) {
	setting, err := f.store.GetSetting(ctx, userID)
	if err != nil {
		return nil, err
	}

	creds, err := ebay.CredentialsFromSetting(setting)
	if err != nil {
		return nil, err
	}

	baseURL, err := f.cfg.BaseURL()
	if err != nil {
		return nil, err
	}

	tokenOpts := []ebay.TokenOption{}
	if f.cfg.Scopes != "" {
		tokenOpts = append(tokenOpts, ebay.WithScopes(f.cfg.Scopes))
	}
	tokens := ebay.NewRefreshTokenProvider(creds, baseURL, f.cache, tokenOpts...)

	tradingOpts := []ebay.TradingOption{
		ebay.WithSiteID(f.cfg.SiteID),
		ebay.WithCompatibilityLevel(f.cfg.CompatibilityLevel),
	}
	if f.cfg.Timeout > 0 {
		tradingOpts = append(tradingOpts, ebay.WithTradingHTTPClient(
			&http.Client{Timeout: f.cfg.Timeout},
		))
	}
	if f.limiter != nil {
		tradingOpts = append(tradingOpts, ebay.WithRateLimiter(f.limiter))
	}
	client := ebay.NewTradingClient(creds, tokens, baseURL, tradingOpts...)

	svcOpts := []ServiceOption{}
	if f.notifier != nil {
		svcOpts = append(svcOpts, WithNotifier(f.notifier))
	}
	return NewService(client, f.converter, svcOpts...), nil
}
