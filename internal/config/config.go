// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Ebay     EbayConfig     `yaml:"ebay"`
	Currency CurrencyConfig `yaml:"currency"`
	Auth     AuthConfig     `yaml:"auth"`
	Notify   NotifyConfig   `yaml:"notify"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// DatabaseConfig defines PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	PoolSize int    `yaml:"pool_size"`
}

// DSN returns a PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		d.Host, d.Port, d.Name, d.User, d.Password, d.SSLMode,
	)
}

// EbayConfig defines eBay Trading API settings. The sandbox flag selects
// which base URL all outbound calls use.
type EbayConfig struct {
	Sandbox            bool            `yaml:"sandbox"`
	SandboxURL         string          `yaml:"sandbox_url"`
	ProductionURL      string          `yaml:"production_url"`
	SiteID             string          `yaml:"site_id"`
	CompatibilityLevel string          `yaml:"compatibility_level"`
	Scopes             string          `yaml:"scopes"`
	Timeout            time.Duration   `yaml:"timeout"`
	RateLimit          RateLimitConfig `yaml:"rate_limit"`
}

// BaseURL resolves the API base URL for the configured mode. It returns
// an error when no URL is configured for the selected mode.
func (e *EbayConfig) BaseURL() (string, error) {
	if e.Sandbox {
		if e.SandboxURL == "" {
			return "", errors.New("ebay.sandbox_url is not configured")
		}
		return e.SandboxURL, nil
	}
	if e.ProductionURL == "" {
		return "", errors.New("ebay.production_url is not configured")
	}
	return e.ProductionURL, nil
}

// RateLimitConfig defines eBay API rate limiting settings.
type RateLimitConfig struct {
	PerSecond  float64 `yaml:"per_second"`
	Burst      int     `yaml:"burst"`
	DailyLimit int64   `yaml:"daily_limit"`
}

// CurrencyConfig defines exchange rate settings. Backend "fixed" reads
// rates from the config itself; "http" fetches them from an exchange
// rate endpoint and refreshes on a schedule.
type CurrencyConfig struct {
	Backend         string             `yaml:"backend"` // fixed, http
	Endpoint        string             `yaml:"endpoint"`
	RefreshInterval time.Duration      `yaml:"refresh_interval"`
	CacheTTL        time.Duration      `yaml:"cache_ttl"`
	Rates           map[string]float64 `yaml:"rates"` // "JPY/USD": 0.0067
}

// AuthConfig defines JWT authentication settings.
type AuthConfig struct {
	JWTSecret     string        `yaml:"jwt_secret"`
	TokenLifetime time.Duration `yaml:"token_lifetime"`
}

// NotifyConfig defines listing event notification settings. An empty
// webhook URL disables delivery.
type NotifyConfig struct {
	DiscordWebhookURL string `yaml:"discord_webhook_url"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyDatabaseDefaults(&cfg.Database)
	applyEbayDefaults(&cfg.Ebay)
	applyCurrencyDefaults(&cfg.Currency)
	applyAuthDefaults(&cfg.Auth)
	applyLoggingDefaults(&cfg.Logging)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 30 * time.Second
	}
}

func applyDatabaseDefaults(d *DatabaseConfig) {
	if d.Port == 0 {
		d.Port = 5432
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}
	if d.PoolSize == 0 {
		d.PoolSize = 10
	}
}

func applyEbayDefaults(e *EbayConfig) {
	if e.SandboxURL == "" {
		e.SandboxURL = "https://api.sandbox.ebay.com"
	}
	if e.ProductionURL == "" {
		e.ProductionURL = "https://api.ebay.com"
	}
	if e.SiteID == "" {
		e.SiteID = "0"
	}
	if e.CompatibilityLevel == "" {
		e.CompatibilityLevel = "967"
	}
	if e.Scopes == "" {
		e.Scopes = "https://api.ebay.com/oauth/api_scope " +
			"https://api.ebay.com/oauth/api_scope/sell.inventory " +
			"https://api.ebay.com/oauth/api_scope/sell.marketing " +
			"https://api.ebay.com/oauth/api_scope/sell.account " +
			"https://api.ebay.com/oauth/api_scope/sell.fulfillment"
	}
	if e.Timeout == 0 {
		e.Timeout = 30 * time.Second
	}
	applyRateLimitDefaults(&e.RateLimit)
}

func applyRateLimitDefaults(r *RateLimitConfig) {
	if r.PerSecond == 0 {
		r.PerSecond = 5.0
	}
	if r.Burst == 0 {
		r.Burst = 10
	}
	if r.DailyLimit == 0 {
		r.DailyLimit = 5000
	}
}

func applyCurrencyDefaults(c *CurrencyConfig) {
	if c.Backend == "" {
		c.Backend = "fixed"
	}
	if c.RefreshInterval == 0 {
		c.RefreshInterval = 6 * time.Hour
	}
	if c.CacheTTL == 0 {
		c.CacheTTL = 12 * time.Hour
	}
}

func applyAuthDefaults(a *AuthConfig) {
	if a.TokenLifetime == 0 {
		a.TokenLifetime = time.Hour
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	if cfg.Database.Host == "" {
		errs = append(errs, fmt.Errorf("database.host is required"))
	}
	if cfg.Database.Name == "" {
		errs = append(errs, fmt.Errorf("database.name is required"))
	}
	if cfg.Database.User == "" {
		errs = append(errs, fmt.Errorf("database.user is required"))
	}

	if len(cfg.Auth.JWTSecret) < 32 {
		errs = append(errs, fmt.Errorf("auth.jwt_secret must be at least 32 characters"))
	}

	switch cfg.Currency.Backend {
	case "fixed":
		if len(cfg.Currency.Rates) == 0 {
			errs = append(
				errs,
				fmt.Errorf("currency.rates is required when backend is fixed"),
			)
		}
	case "http":
		if cfg.Currency.Endpoint == "" {
			errs = append(
				errs,
				fmt.Errorf("currency.endpoint is required when backend is http"),
			)
		}
	default:
		errs = append(
			errs,
			fmt.Errorf(
				"currency.backend must be one of: fixed, http (got %q)",
				cfg.Currency.Backend,
			),
		)
	}

	return errors.Join(errs...)
}
