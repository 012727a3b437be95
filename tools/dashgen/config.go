package main

import "errors"

// KnownMetrics is the set of metric names exported by crosslist plus
// recording rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// HTTP metrics.
	"crosslist_http_request_duration_seconds": true,
	"crosslist_http_requests_total":           true,

	// Health metrics.
	"crosslist_healthz_up": true,
	"crosslist_readyz_up":  true,

	// eBay Trading API metrics.
	"crosslist_ebay_api_calls_total":        true,
	"crosslist_ebay_api_errors_total":       true,
	"crosslist_ebay_token_refreshes_total":  true,
	"crosslist_ebay_daily_limit_hits_total": true,
	"crosslist_ebay_daily_usage":            true,

	// Listing metrics.
	"crosslist_listings_registered_total":       true,
	"crosslist_listing_register_failures_total": true,
	"crosslist_notification_failures_total":     true,

	// Currency metrics.
	"crosslist_currency_rate_refreshes_total": true,
	"crosslist_currency_conversions_total":    true,

	// Recording rules.
	"crosslist:http_requests:rate5m":             true,
	"crosslist:http_errors:rate5m":               true,
	"crosslist:ebay_api_calls:rate5m":            true,
	"crosslist:listings_registered:rate5m":       true,
	"crosslist:listing_register_failures:rate5m": true,
	"crosslist:currency_conversions:rate5m":      true,

	// Standard Prometheus metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
