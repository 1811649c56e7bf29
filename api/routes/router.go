package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/luxuryconcept/storefront-backend/api/controllers"
	"github.com/luxuryconcept/storefront-backend/api/middleware"
	"github.com/luxuryconcept/storefront-backend/internal/access"
	"github.com/luxuryconcept/storefront-backend/internal/catalog"
	"github.com/luxuryconcept/storefront-backend/internal/orders"
	"github.com/luxuryconcept/storefront-backend/internal/waitlist"
	"github.com/luxuryconcept/storefront-backend/pkg/config"
	"github.com/luxuryconcept/storefront-backend/pkg/db"
	"github.com/luxuryconcept/storefront-backend/pkg/logger"
	"github.com/luxuryconcept/storefront-backend/pkg/metrics"
	"github.com/luxuryconcept/storefront-backend/pkg/redis"
)

// NewRouter mounts the storefront API. redisClient, metricsHandler and
// httpMetrics are optional; without redis the idempotency and rate limit
// middleware pass requests through.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	gate access.Gate,
	catalogService catalog.Service,
	ordersService orders.Service,
	waitlistService waitlist.Service,
	metricsHandler http.Handler,
	httpMetrics *metrics.HTTPMetrics,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg, httpMetrics),
		middleware.CORS(cfg.CORS.AllowedOrigins, cfg.Admin.Header),
	)

	var (
		idempotencyStore redis.IdempotencyStore
		rateStore        interface {
			IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
		}
		readyDeps = map[string]controllers.Pinger{"db": dbP}
	)
	if redisClient != nil {
		idempotencyStore = redisClient
		rateStore = redisClient
		readyDeps["redis"] = redisClient
	}

	waitlistPolicy := middleware.NewRateLimitPolicy(
		"waitlist",
		cfg.Waitlist.RateLimitWindow,
		cfg.Waitlist.RateLimitIP,
		cfg.Waitlist.RateLimitEmail,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, readyDeps, logg))
	})

	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", controllers.ListProducts(catalogService, logg))
		r.Get("/products/{id}", controllers.GetProduct(catalogService, logg))
		r.With(middleware.RateLimit(waitlistPolicy, rateStore, logg)).Post("/waitlist", controllers.JoinWaitlist(waitlistService, logg))
		r.With(middleware.Idempotency(idempotencyStore, logg)).Post("/orders", controllers.PlaceOrder(ordersService, logg))

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdmin(gate, cfg.Admin.Header, logg))
			r.Post("/products", controllers.AdminCreateProduct(catalogService, logg))
			r.Put("/products/{id}", controllers.AdminUpdateProduct(catalogService, logg))
			r.Delete("/products/{id}", controllers.AdminDeleteProduct(catalogService, logg))
			r.Get("/orders", controllers.AdminListOrders(ordersService, logg))
		})
	})

	return r
}
