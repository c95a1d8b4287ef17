package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pixelcart/pixelcart-backend/internal/catalog"
	"github.com/pixelcart/pixelcart-backend/pkg/db/models"
	pkgerrors "github.com/pixelcart/pixelcart-backend/pkg/errors"
	"github.com/pixelcart/pixelcart-backend/pkg/logger"
)

type stubCatalogService struct {
	createErr error
	getErr    error
	game      *models.Game
	games     []models.Game

	lastFilters catalog.ListFilters
}

func (s *stubCatalogService) Create(ctx context.Context, input catalog.CreateGameInput) (*models.Game, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return s.game, nil
}

func (s *stubCatalogService) Get(ctx context.Context, id uuid.UUID) (*models.Game, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.game, nil
}

func (s *stubCatalogService) List(ctx context.Context, filters catalog.ListFilters) ([]models.Game, error) {
	s.lastFilters = filters
	return s.games, nil
}

func (s *stubCatalogService) ListFeatured(ctx context.Context, limit int) ([]models.Game, error) {
	return s.games, nil
}

func (s *stubCatalogService) Update(ctx context.Context, id uuid.UUID, input catalog.UpdateGameInput) (*models.Game, error) {
	return s.game, nil
}

func (s *stubCatalogService) Delete(ctx context.Context, id uuid.UUID) (*models.Game, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.game, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, routeCtx))
}

func TestCreateGameReturns201(t *testing.T) {
	stub := &stubCatalogService{game: &models.Game{ID: uuid.New(), Name: "Starfall"}}
	req := httptest.NewRequest(http.MethodPost, "/games",
		strings.NewReader(`{"name":"Starfall","category":"strategy","price":"29.99"}`))
	rec := httptest.NewRecorder()

	CreateGame(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body)
	}
}

func TestCreateGameRejectsUnknownFields(t *testing.T) {
	stub := &stubCatalogService{}
	req := httptest.NewRequest(http.MethodPost, "/games",
		strings.NewReader(`{"name":"A","category":"rpg","price":"1.00","rating":5}`))
	rec := httptest.NewRecorder()

	CreateGame(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown field, got %d", rec.Code)
	}
}

func TestCreateGameConflict(t *testing.T) {
	stub := &stubCatalogService{createErr: pkgerrors.New(pkgerrors.CodeConflict, "a game with this name already exists")}
	req := httptest.NewRequest(http.MethodPost, "/games",
		strings.NewReader(`{"name":"A","category":"rpg","price":"1.00"}`))
	rec := httptest.NewRecorder()

	CreateGame(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestGetGameInvalidID(t *testing.T) {
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/games/nope", nil), "id", "nope")
	rec := httptest.NewRecorder()

	GetGame(&stubCatalogService{}, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid uuid, got %d", rec.Code)
	}
}

func TestGetGameNotFound(t *testing.T) {
	stub := &stubCatalogService{getErr: pkgerrors.New(pkgerrors.CodeNotFound, "game not found")}
	id := uuid.NewString()
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/games/"+id, nil), "id", id)
	rec := httptest.NewRecorder()

	GetGame(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestListGamesPassesFilters(t *testing.T) {
	stub := &stubCatalogService{games: []models.Game{{Name: "A"}, {Name: "B"}}}
	req := httptest.NewRequest(http.MethodGet, "/games?featured=true&category=rpg&limit=10", nil)
	rec := httptest.NewRecorder()

	ListGames(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if stub.lastFilters.Featured == nil || !*stub.lastFilters.Featured {
		t.Fatalf("featured filter not forwarded: %+v", stub.lastFilters)
	}
	if stub.lastFilters.Category != "rpg" || stub.lastFilters.Limit != 10 {
		t.Fatalf("filters not forwarded: %+v", stub.lastFilters)
	}

	var body struct {
		Meta struct {
			Count int `json:"count"`
			Limit int `json:"limit"`
		} `json:"meta"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Meta.Count != 2 || body.Meta.Limit != 10 {
		t.Fatalf("unexpected meta %+v", body.Meta)
	}
}

func TestListGamesRejectsBadLimit(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/games?limit=-5", nil)
	rec := httptest.NewRecorder()

	ListGames(&stubCatalogService{}, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestDeleteGameReturnsRow(t *testing.T) {
	id := uuid.New()
	stub := &stubCatalogService{game: &models.Game{ID: id, Name: "Gone"}}
	req := withURLParam(httptest.NewRequest(http.MethodDelete, "/games/"+id.String(), nil), "id", id.String())
	rec := httptest.NewRecorder()

	DeleteGame(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Gone") {
		t.Fatalf("deleted row not in response: %s", rec.Body)
	}
}
