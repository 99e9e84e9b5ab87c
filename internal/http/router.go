package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type RouterConfig struct {
	Logger         logrus.FieldLogger
	RequestTimeout time.Duration
}

func newRouter(cfg RouterConfig) chi.Router {
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggerMiddleware(cfg.Logger))
	r.Use(middleware.Recoverer)
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return r
}

// NewCartRouter mounts the JSON cart API, the HTML review page and, when inv
// is set, product and stock reads served through the cart's own inventory.
func NewCartRouter(cfg RouterConfig, cart *CartHandler, pages *PageHandler, inv *InventoryHandler) http.Handler {
	r := newRouter(cfg)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cart.GetCart)
			r.Post("/items", cart.AddItem)
			r.Put("/items/{product_id}", cart.UpdateAmount)
			r.Post("/items/{product_id}/increment", cart.Increment)
			r.Post("/items/{product_id}/decrement", cart.Decrement)
			r.Delete("/items/{product_id}", cart.RemoveItem)
		})
		if inv != nil {
			r.Get("/stock/{id}", inv.GetStock)
			r.Get("/products", inv.ListProducts)
			r.Get("/products/{id}", inv.GetProduct)
		}
	})

	r.Get("/cart", pages.Show)
	r.Post("/cart/items/{product_id}/{action}", pages.Action)

	return otelhttp.NewHandler(r, "cart-store")
}

// NewInventoryRouter mounts the REST inventory read API.
func NewInventoryRouter(cfg RouterConfig, inv *InventoryHandler) http.Handler {
	r := newRouter(cfg)

	r.Get("/stock/{id}", inv.GetStock)
	r.Get("/products", inv.ListProducts)
	r.Get("/products/{id}", inv.GetProduct)

	return otelhttp.NewHandler(r, "inventory")
}
