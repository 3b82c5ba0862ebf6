package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/pharmacy-pos-backend/api/controllers"
	"github.com/angelmondragon/pharmacy-pos-backend/api/middleware"
	"github.com/angelmondragon/pharmacy-pos-backend/api/responses"
	"github.com/angelmondragon/pharmacy-pos-backend/internal/inventory"
	"github.com/angelmondragon/pharmacy-pos-backend/internal/sales"
	"github.com/angelmondragon/pharmacy-pos-backend/pkg/config"
	"github.com/angelmondragon/pharmacy-pos-backend/pkg/db"
	pkgerrors "github.com/angelmondragon/pharmacy-pos-backend/pkg/errors"
	"github.com/angelmondragon/pharmacy-pos-backend/pkg/logger"
	"github.com/angelmondragon/pharmacy-pos-backend/pkg/metrics"
	"github.com/angelmondragon/pharmacy-pos-backend/pkg/redis"
)

// NewRouter wires the HTTP surface. redisClient may be nil, which disables
// idempotent replay and drops redis from the readiness probe.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	httpMetrics *metrics.HTTPMetrics,
	metricsHandler http.Handler,
	inventoryService inventory.Service,
	salesService sales.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Recoverer(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(cfg.HTTP.CORSOrigins),
	)

	var idempotencyStore redis.IdempotencyStore
	readyDeps := map[string]controllers.Pinger{"database": dbP}
	if redisClient != nil {
		idempotencyStore = redisClient
		readyDeps["redis"] = redisClient
	}
	idempotent := middleware.Idempotency(idempotencyStore, cfg.HTTP.IdempotencyTTL, logg)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "route not found"))
	})

	r.Get("/", controllers.Root())

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readyDeps))
	})

	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	r.Route("/products", func(r chi.Router) {
		r.Get("/", controllers.ListProducts(inventoryService, logg))
		r.With(idempotent).Post("/", controllers.CreateProduct(inventoryService, logg))
		r.Get("/{productId}", controllers.GetProduct(inventoryService, logg))
	})

	r.Route("/sales", func(r chi.Router) {
		r.Get("/", controllers.ListSales(salesService, logg))
		r.With(idempotent).Post("/", controllers.CreateSale(salesService, logg))
	})

	return r
}
