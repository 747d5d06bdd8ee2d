package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/watchlab/storefront-backend/api/routes"
	adminsvc "github.com/watchlab/storefront-backend/internal/admin"
	"github.com/watchlab/storefront-backend/internal/auth"
	cartsvc "github.com/watchlab/storefront-backend/internal/cart"
	checkoutsvc "github.com/watchlab/storefront-backend/internal/checkout"
	"github.com/watchlab/storefront-backend/internal/orders"
	supportsvc "github.com/watchlab/storefront-backend/internal/support"
	"github.com/watchlab/storefront-backend/pkg/config"
	"github.com/watchlab/storefront-backend/pkg/db"
	"github.com/watchlab/storefront-backend/pkg/genai"
	"github.com/watchlab/storefront-backend/pkg/logger"
	"github.com/watchlab/storefront-backend/pkg/metrics"
	"github.com/watchlab/storefront-backend/pkg/migrate"
	"github.com/watchlab/storefront-backend/pkg/redis"
)

const sweepInterval = 10 * time.Minute

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	ordersRepo := orders.NewRepository(dbClient.DB())
	chatRepo := supportsvc.NewRepository(dbClient.DB())

	magicLink, err := auth.NewClient(cfg.Auth)
	if err != nil {
		logg.Error(context.Background(), "failed to create magic link client", err)
		os.Exit(1)
	}

	cartService, err := cartsvc.NewService(cfg.Session.TTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	checkoutService, err := checkoutsvc.NewService(dbClient, cartService, ordersRepo, magicLink, logg, cfg.Session.TTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	supportService, err := supportsvc.NewService(dbClient, chatRepo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create support service", err)
		os.Exit(1)
	}

	// The dashboard works without the draft collaborator; it degrades to the
	// canned fallback when no API key is configured.
	var genaiClient *genai.Client
	if cfg.Gemini.APIKey != "" {
		genaiClient, err = genai.New(context.Background(), cfg.Gemini)
		if err != nil {
			logg.Error(context.Background(), "failed to create gemini client", err)
			os.Exit(1)
		}
	}

	adminService, err := adminsvc.NewService(ordersRepo, chatRepo, genaiClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create admin service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	shutdownCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go runSweeper(shutdownCtx, logg, cartService, checkoutService)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:          cfg,
			Logger:          logg,
			DB:              dbClient,
			Redis:           redisClient,
			Metrics:         httpMetrics,
			MetricsGatherer: registry,
			Cart:            cartService,
			Checkout:        checkoutService,
			Support:         supportService,
			Admin:           adminService,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-shutdownCtx.Done():
		logg.Info(ctx, "shutting down api server")
		drainCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(drainCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}
}

// runSweeper reclaims idle in-memory carts and checkout sessions.
func runSweeper(ctx context.Context, logg *logger.Logger, cart cartsvc.Service, checkout checkoutsvc.Service) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			carts := cart.Sweep(now)
			sessions := checkout.Sweep(now)
			if carts > 0 || sessions > 0 {
				sweepCtx := logg.WithFields(ctx, map[string]any{
					"carts":    carts,
					"sessions": sessions,
				})
				logg.Info(sweepCtx, "idle session state reclaimed")
			}
		}
	}
}
