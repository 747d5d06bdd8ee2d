package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/watchlab/storefront-backend/api/controllers"
	"github.com/watchlab/storefront-backend/api/middleware"
	adminsvc "github.com/watchlab/storefront-backend/internal/admin"
	cartsvc "github.com/watchlab/storefront-backend/internal/cart"
	checkoutsvc "github.com/watchlab/storefront-backend/internal/checkout"
	supportsvc "github.com/watchlab/storefront-backend/internal/support"
	"github.com/watchlab/storefront-backend/pkg/config"
	"github.com/watchlab/storefront-backend/pkg/db"
	"github.com/watchlab/storefront-backend/pkg/logger"
	"github.com/watchlab/storefront-backend/pkg/metrics"
	"github.com/watchlab/storefront-backend/pkg/redis"
)

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Config          *config.Config
	Logger          *logger.Logger
	DB              db.Pinger
	Redis           *redis.Client
	Metrics         *metrics.HTTPMetrics
	MetricsGatherer prometheus.Gatherer
	Cart            cartsvc.Service
	Checkout        checkoutsvc.Service
	Support         supportsvc.Service
	Admin           adminsvc.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
		deps.Metrics.Middleware(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})

	if deps.MetricsGatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.MetricsGatherer, promhttp.HandlerOpts{}))
	}

	checkoutPolicy := middleware.NewCheckoutRateLimitPolicy(cfg.CheckoutRate)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Session(cfg.Session, logg))

		r.Get("/product", controllers.ProductGet())

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartList(deps.Cart, logg))
			r.Post("/", controllers.CartAdd(deps.Cart, logg))
			r.Delete("/", controllers.CartClear(deps.Cart, logg))
		})

		r.Route("/checkout", func(r chi.Router) {
			r.With(middleware.CheckoutRateLimit(checkoutPolicy, deps.Redis, logg)).
				Post("/", controllers.CheckoutSubmit(deps.Checkout, logg))
			r.Post("/retry", controllers.CheckoutRetry(deps.Checkout, logg))
			r.Get("/state", controllers.CheckoutState(deps.Checkout, logg))
		})

		r.Route("/support/messages", func(r chi.Router) {
			r.Get("/", controllers.SupportHistory(deps.Support, logg))
			r.Post("/", controllers.SupportSend(deps.Support, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.AdminToken(cfg.Admin, logg))

		r.Get("/overview", controllers.AdminOverview(deps.Admin, logg))
		r.Get("/orders/{orderNumber}", controllers.AdminGetOrder(deps.Admin, logg))
		r.Post("/support/draft", controllers.AdminDraftReply(deps.Admin, logg))
	})

	return r
}
