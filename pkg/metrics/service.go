package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Service is a per-process metrics registry. Each binary constructs one in
// main and passes it to the router and services it wires; nothing in this
// package is a module-level singleton.
type Service struct {
	registry *prometheus.Registry

	requests *prometheus.CounterVec

	ordersCreated  prometheus.Counter
	ordersDeleted  prometheus.Counter
	gamesCreated   prometheus.Counter
	eventsIngested prometheus.Counter
	eventsErased   prometheus.Counter
}

// NewService builds a registry labelled with the service name and registers
// the request and domain counters on it.
func NewService(name string) *Service {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	reg := prometheus.WrapRegistererWith(prometheus.Labels{"service": name}, registry)

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests handled, by method and status class.",
	}, []string{"method", "status"})

	ordersCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Orders committed successfully.",
	})
	ordersDeleted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_deleted_total",
		Help: "Orders deleted together with their items.",
	})
	gamesCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "games_created_total",
		Help: "Catalog entries created.",
	})
	eventsIngested := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "analytics_events_ingested_total",
		Help: "Analytics events accepted for storage.",
	})
	eventsErased := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "analytics_events_erased_total",
		Help: "Analytics events removed by bulk erasure requests.",
	})

	reg.MustRegister(requests, ordersCreated, ordersDeleted, gamesCreated, eventsIngested, eventsErased)

	return &Service{
		registry:       registry,
		requests:       requests,
		ordersCreated:  ordersCreated,
		ordersDeleted:  ordersDeleted,
		gamesCreated:   gamesCreated,
		eventsIngested: eventsIngested,
		eventsErased:   eventsErased,
	}
}

// Handler serves the text exposition for this registry only.
func (s *Service) Handler() http.Handler {
	if s == nil || s.registry == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})
}

// Gather exposes the registry's gatherer surface for tests.
func (s *Service) Gather() prometheus.Gatherer {
	if s == nil {
		return nil
	}
	return s.registry
}

// IncRequest counts one handled request.
func (s *Service) IncRequest(method, status string) {
	if s == nil || s.requests == nil {
		return
	}
	s.requests.WithLabelValues(method, status).Inc()
}

// IncOrdersCreated increments the order-creation counter.
func (s *Service) IncOrdersCreated() {
	if s == nil || s.ordersCreated == nil {
		return
	}
	s.ordersCreated.Inc()
}

// IncOrdersDeleted increments the order-deletion counter.
func (s *Service) IncOrdersDeleted() {
	if s == nil || s.ordersDeleted == nil {
		return
	}
	s.ordersDeleted.Inc()
}

// IncGamesCreated increments the catalog-creation counter.
func (s *Service) IncGamesCreated() {
	if s == nil || s.gamesCreated == nil {
		return
	}
	s.gamesCreated.Inc()
}

// IncEventsIngested increments the ingestion counter.
func (s *Service) IncEventsIngested() {
	if s == nil || s.eventsIngested == nil {
		return
	}
	s.eventsIngested.Inc()
}

// AddEventsErased records rows removed by a bulk erasure.
func (s *Service) AddEventsErased(n int64) {
	if s == nil || s.eventsErased == nil || n <= 0 {
		return
	}
	s.eventsErased.Add(float64(n))
}
