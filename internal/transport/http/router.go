// Package http is the HTTP transport layer: chi router, middleware and
// per-resource handlers over the catalog use cases.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"

	"github.com/light-bringer/sellerhub-service/internal/config"
	"github.com/light-bringer/sellerhub-service/pkg/logger"
)

// Handlers groups the per-resource handlers mounted by the router.
type Handlers struct {
	Products  *ProductHandler
	Bundles   *BundleHandler
	Discounts *DiscountHandler
	Sales     *SaleHandler
	Events    *EventsHandler
}

// NewRouter assembles the middleware stack and mounts the API routes.
// Middleware order matters: identity and request ID run before logging so
// every log line carries both.
func NewRouter(cfg config.ServerConfig, log *logger.Logger, h Handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(RealIP)
	r.Use(RequestID)
	r.Use(RequestLogger(log))
	r.Use(Recoverer(log))
	r.Use(Timeout(cfg.RequestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", RequestIDHeader, SellerIDHeader},
		ExposedHeaders:   []string{RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(RateLimiter(cfg.RateLimit, cfg.RateBurst))

	r.Get("/health", handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(Auth)
		r.Route("/products", h.Products.Routes)
		r.Route("/bundles", h.Bundles.Routes)
		r.Route("/discounts", h.Discounts.Routes)
		r.Route("/sales", h.Sales.Routes)
		r.Route("/events", h.Events.Routes)
	})

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "ok"})
}
