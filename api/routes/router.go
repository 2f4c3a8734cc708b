package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Demmynile/hanniefoods/api/controllers"
	"github.com/Demmynile/hanniefoods/api/middleware"
	cartsvc "github.com/Demmynile/hanniefoods/internal/cart"
	checkoutsvc "github.com/Demmynile/hanniefoods/internal/checkout"
	ordersvc "github.com/Demmynile/hanniefoods/internal/orders"
	productsvc "github.com/Demmynile/hanniefoods/internal/products"
	reviewsvc "github.com/Demmynile/hanniefoods/internal/reviews"
	"github.com/Demmynile/hanniefoods/pkg/config"
	"github.com/Demmynile/hanniefoods/pkg/logger"
	"github.com/Demmynile/hanniefoods/pkg/metrics"
)

// Deps bundles everything the HTTP surface needs. Readiness pings are
// keyed by dependency name so a failing check names its subsystem.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	Registry    *prometheus.Registry
	HTTPMetrics *metrics.HTTPMetrics
	Ready       map[string]controllers.Pinger

	Products productsvc.Service
	Cart     cartsvc.Service
	Checkout checkoutsvc.Service
	Orders   ordersvc.Service
	Reviews  reviewsvc.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.Ready))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", controllers.ListProducts(deps.Products, logg))
		r.Get("/products/{productId}", controllers.GetProduct(deps.Products, logg))
		r.Get("/products/slug/{slug}", controllers.GetProductBySlug(deps.Products, logg))
		r.Get("/categories", controllers.ListCategories(deps.Products, logg))
		r.Get("/reviews/{productId}", controllers.ReviewsList(deps.Reviews, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.Auth, logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartFetch(deps.Cart, logg))
				r.Delete("/", controllers.CartClear(deps.Cart, logg))
				r.Post("/items", controllers.CartAddItem(deps.Cart, logg))
				r.Patch("/items/{productId}", controllers.CartUpdateItem(deps.Cart, logg))
				r.Delete("/items/{productId}", controllers.CartRemoveItem(deps.Cart, logg))
			})

			r.Route("/checkout", func(r chi.Router) {
				r.Post("/session", controllers.CheckoutSession(deps.Checkout, logg))
				r.Post("/confirm", controllers.CheckoutConfirm(deps.Checkout, logg))
				r.Post("/cancel", controllers.CheckoutCancel(deps.Checkout, logg))
				r.Post("/retry", controllers.CheckoutRetry(deps.Checkout, logg))
			})

			r.Get("/orders", controllers.OrdersList(deps.Orders, logg))
			r.Post("/orders/create", controllers.OrderCreate(deps.Orders, logg))
			r.Post("/reviews/{productId}", controllers.ReviewSubmit(deps.Reviews, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.AdminKey(cfg.Admin, logg))

		r.Get("/orders", controllers.AdminOrdersList(deps.Orders, logg))
		r.Patch("/orders/{orderId}", controllers.AdminOrderUpdateStatus(deps.Orders, logg))

		r.Post("/products", controllers.AdminProductCreate(deps.Products, logg))
		r.Patch("/products/{productId}", controllers.AdminProductUpdate(deps.Products, logg))
		r.Delete("/products/{productId}", controllers.AdminProductDelete(deps.Products, logg))
	})

	return r
}
