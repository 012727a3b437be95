package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/ktnkk/crosslist/internal/api/handlers"
	"github.com/ktnkk/crosslist/internal/api/middleware"
	"github.com/ktnkk/crosslist/internal/auth"
	"github.com/ktnkk/crosslist/internal/cache"
	"github.com/ktnkk/crosslist/internal/config"
	"github.com/ktnkk/crosslist/internal/currency"
	"github.com/ktnkk/crosslist/internal/ebay"
	"github.com/ktnkk/crosslist/internal/listing"
	"github.com/ktnkk/crosslist/internal/notify"
	"github.com/ktnkk/crosslist/internal/shipping"
	"github.com/ktnkk/crosslist/internal/source"
	"github.com/ktnkk/crosslist/internal/store"
	"github.com/ktnkk/crosslist/pkg/logger"
)

const cacheJanitorInterval = time.Minute

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	st, err := store.NewPostgresStore(ctx, cfg.Database.DSN())
	cancel()
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer st.Close()

	appCache := cache.NewMemory(cacheJanitorInterval)
	defer appCache.Close()

	conv, refresher, err := buildConverter(cfg.Currency, appCache, log)
	if err != nil {
		return fmt.Errorf("configuring currency conversion: %w", err)
	}
	if refresher != nil {
		refresher.Start()
		defer refresher.Stop()
	}

	tokens, err := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifetime)
	if err != nil {
		return fmt.Errorf("configuring token service: %w", err)
	}

	limiter := ebay.NewRateLimiter(
		cfg.Ebay.RateLimit.PerSecond,
		cfg.Ebay.RateLimit.Burst,
		cfg.Ebay.RateLimit.DailyLimit,
	)

	var notifier notify.Notifier = notify.NewNoOpNotifier(log)
	if cfg.Notify.DiscordWebhookURL != "" {
		notifier = notify.NewDiscordNotifier(cfg.Notify.DiscordWebhookURL)
	}

	factory := listing.NewFactory(st, appCache, conv, cfg.Ebay, limiter,
		listing.WithFactoryNotifier(notifier))

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestLog(log))
	e.Use(middleware.Recovery(log))
	e.Use(middleware.Metrics())

	handlers.RegisterRoutes(e, &handlers.Handlers{
		Health:      handlers.NewHealthHandler(st),
		Token:       handlers.NewTokenHandler(st, tokens),
		Users:       handlers.NewUserHandler(st),
		Settings:    handlers.NewSettingHandler(st),
		Listings:    handlers.NewListingHandler(handlers.ResolveWithFactory(factory)),
		ProductData: handlers.NewProductDataHandler(source.NewIntake()),
		Shipping:    handlers.NewShippingHandler(st, shipping.NewCalculator(st)),
	}, tokens)

	// Prometheus metrics.
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("starting server", "addr", addr, "sandbox", cfg.Ebay.Sandbox)

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "err", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	log.Info("server stopped")
	return nil
}

// buildConverter assembles the currency converter from config. The http
// backend gets a background refresher when a refresh interval is set.
func buildConverter(
	cfg config.CurrencyConfig,
	rateCache cache.Cache,
	log *slog.Logger,
) (currency.Converter, *currency.Refresher, error) {
	if cfg.Backend != "http" {
		return currency.NewFixed(cfg.Rates), nil, nil
	}

	conv := currency.NewHTTP(cfg.Endpoint, rateCache, cfg.CacheTTL)
	if cfg.RefreshInterval <= 0 {
		return conv, nil, nil
	}

	pairs := make([]string, 0, len(cfg.Rates))
	for pair := range cfg.Rates {
		pairs = append(pairs, pair)
	}
	if len(pairs) == 0 {
		pairs = []string{"JPY/USD"}
	}

	refresher, err := currency.NewRefresher(conv, pairs, cfg.RefreshInterval, log)
	if err != nil {
		return nil, nil, err
	}
	return conv, refresher, nil
}
