package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pixelcart/pixelcart-backend/api/controllers"
	"github.com/pixelcart/pixelcart-backend/api/middleware"
	"github.com/pixelcart/pixelcart-backend/internal/analytics"
	"github.com/pixelcart/pixelcart-backend/internal/catalog"
	"github.com/pixelcart/pixelcart-backend/internal/orders"
	"github.com/pixelcart/pixelcart-backend/pkg/logger"
	"github.com/pixelcart/pixelcart-backend/pkg/metrics"
)

func baseRouter(logg *logger.Logger, m *metrics.Service, pinger controllers.Pinger) chi.Router {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg, m),
	)
	r.Get("/health", controllers.Health(pinger, logg))
	r.Method(http.MethodGet, "/metrics", m.Handler())
	return r
}

// NewCatalogRouter builds the catalog service handler.
func NewCatalogRouter(logg *logger.Logger, m *metrics.Service, pinger controllers.Pinger, svc catalog.Service) http.Handler {
	r := baseRouter(logg, m, pinger)

	r.Route("/games", func(r chi.Router) {
		r.Get("/", controllers.ListGames(svc, logg))
		r.Post("/", controllers.CreateGame(svc, logg))
		r.Get("/featured", controllers.ListFeaturedGames(svc, logg))
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", controllers.GetGame(svc, logg))
			r.Put("/", controllers.UpdateGame(svc, logg))
			r.Delete("/", controllers.DeleteGame(svc, logg))
		})
	})

	return r
}

// NewOrdersRouter builds the order service handler.
func NewOrdersRouter(logg *logger.Logger, m *metrics.Service, pinger controllers.Pinger, svc orders.Service) http.Handler {
	r := baseRouter(logg, m, pinger)

	r.Route("/orders", func(r chi.Router) {
		r.Get("/", controllers.ListOrders(svc, logg))
		r.Post("/", controllers.CreateOrder(svc, logg))
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", controllers.GetOrder(svc, logg))
			r.Put("/", controllers.UpdateOrder(svc, logg))
			r.Delete("/", controllers.DeleteOrder(svc, logg))
		})
	})

	return r
}

// NewAnalyticsRouter builds the analytics service handler.
func NewAnalyticsRouter(logg *logger.Logger, m *metrics.Service, pinger controllers.Pinger, svc analytics.Service) http.Handler {
	r := baseRouter(logg, m, pinger)

	r.Route("/analytics", func(r chi.Router) {
		r.Post("/", controllers.IngestEvent(svc, logg))
		r.Get("/", controllers.ListEvents(svc, logg))
		r.Delete("/", controllers.EraseEvents(svc, logg))
		r.Get("/dashboard", controllers.Dashboard(svc, logg))
	})

	return r
}
