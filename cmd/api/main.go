package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/luxuryconcept/storefront-backend/api/routes"
	"github.com/luxuryconcept/storefront-backend/internal/access"
	"github.com/luxuryconcept/storefront-backend/internal/catalog"
	"github.com/luxuryconcept/storefront-backend/internal/orders"
	"github.com/luxuryconcept/storefront-backend/internal/waitlist"
	"github.com/luxuryconcept/storefront-backend/pkg/config"
	"github.com/luxuryconcept/storefront-backend/pkg/db"
	"github.com/luxuryconcept/storefront-backend/pkg/logger"
	"github.com/luxuryconcept/storefront-backend/pkg/metrics"
	"github.com/luxuryconcept/storefront-backend/pkg/migrate"
	"github.com/luxuryconcept/storefront-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

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
		Format:      cfg.App.LogFormat,
	})

	if err := run(cfg, logg); err != nil {
		logg.Error(context.Background(), "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logg *logger.Logger) (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, dbClient.Close())
	}()

	if err := migrate.MaybeRun(ctx, cfg, logg, dbClient); err != nil {
		return err
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return err
		}
		defer func() {
			err = multierr.Append(err, redisClient.Close())
		}()
	} else {
		logg.Warn(ctx, "redis not configured; idempotency and rate limiting disabled")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	storeMetrics := metrics.NewStoreMetrics(reg)

	productRepo := catalog.NewRepository(dbClient.DB())
	catalogService, err := catalog.NewService(productRepo, dbClient, logg)
	if err != nil {
		return err
	}
	if cfg.FeatureFlags.SeedCatalog {
		if _, err := catalogService.SeedIfEmpty(ctx); err != nil {
			return err
		}
	}
	ordersService, err := orders.NewService(orders.NewRepository(dbClient.DB()), productRepo, dbClient, logg, storeMetrics)
	if err != nil {
		return err
	}
	waitlistService, err := waitlist.NewService(waitlist.NewRepository(dbClient.DB()), logg, storeMetrics)
	if err != nil {
		return err
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx = logg.WithFields(ctx, map[string]any{
		"env":    cfg.App.Env,
		"addr":   addr,
		"driver": dbClient.Driver(),
	})

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			access.NewStaticSecret(cfg.Admin.Key),
			catalogService,
			ordersService,
			waitlistService,
			promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
			metrics.NewHTTPMetrics(reg),
		),
		ReadHeaderTimeout: 10 * time.Second,
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logg.Info(ctx, "starting api server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		logg.Info(ctx, "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return group.Wait()
}
