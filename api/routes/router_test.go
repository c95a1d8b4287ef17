package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/pixelcart/pixelcart-backend/internal/catalog"
	"github.com/pixelcart/pixelcart-backend/pkg/db/models"
	"github.com/pixelcart/pixelcart-backend/pkg/logger"
	"github.com/pixelcart/pixelcart-backend/pkg/metrics"
)

type okPinger struct{}

func (okPinger) Ping(ctx context.Context) error { return nil }

type noopCatalog struct{}

func (noopCatalog) Create(ctx context.Context, input catalog.CreateGameInput) (*models.Game, error) {
	return &models.Game{}, nil
}
func (noopCatalog) Get(ctx context.Context, id uuid.UUID) (*models.Game, error) {
	return &models.Game{}, nil
}
func (noopCatalog) List(ctx context.Context, filters catalog.ListFilters) ([]models.Game, error) {
	return nil, nil
}
func (noopCatalog) ListFeatured(ctx context.Context, limit int) ([]models.Game, error) {
	return nil, nil
}
func (noopCatalog) Update(ctx context.Context, id uuid.UUID, input catalog.UpdateGameInput) (*models.Game, error) {
	return &models.Game{}, nil
}
func (noopCatalog) Delete(ctx context.Context, id uuid.UUID) (*models.Game, error) {
	return &models.Game{}, nil
}

func TestCatalogRouterRoutes(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	handler := NewCatalogRouter(logg, metrics.NewService("test"), okPinger{}, noopCatalog{})

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/metrics", http.StatusOK},
		{http.MethodGet, "/games", http.StatusOK},
		{http.MethodGet, "/games/featured", http.StatusOK},
		{http.MethodGet, "/games/" + uuid.NewString(), http.StatusOK},
		{http.MethodPatch, "/games", http.StatusMethodNotAllowed},
		{http.MethodGet, "/unknown", http.StatusNotFound},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != tt.want {
			t.Fatalf("%s %s: expected %d, got %d", tt.method, tt.path, tt.want, rec.Code)
		}
	}
}

func TestRouterSetsRequestID(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	handler := NewCatalogRouter(logg, metrics.NewService("test"), okPinger{}, noopCatalog{})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Header().Get("X-Request-Id") == "" {
		t.Fatalf("expected request id header on every response")
	}
}
