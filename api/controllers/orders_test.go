package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pixelcart/pixelcart-backend/internal/orders"
	"github.com/pixelcart/pixelcart-backend/pkg/db/models"
	"github.com/pixelcart/pixelcart-backend/pkg/enums"
	pkgerrors "github.com/pixelcart/pixelcart-backend/pkg/errors"
)

type stubOrdersService struct {
	createErr error
	updateErr error
	deleteErr error
	order     *models.Order
	orders    []models.Order

	lastCreate orders.CreateOrderInput
	lastUpdate orders.UpdateOrderInput
}

func (s *stubOrdersService) Create(ctx context.Context, input orders.CreateOrderInput) (*models.Order, error) {
	s.lastCreate = input
	if s.createErr != nil {
		return nil, s.createErr
	}
	return s.order, nil
}

func (s *stubOrdersService) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return s.order, nil
}

func (s *stubOrdersService) List(ctx context.Context, filters orders.ListFilters) ([]models.Order, error) {
	return s.orders, nil
}

func (s *stubOrdersService) Update(ctx context.Context, id uuid.UUID, input orders.UpdateOrderInput) (*models.Order, error) {
	s.lastUpdate = input
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	return s.order, nil
}

func (s *stubOrdersService) Delete(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if s.deleteErr != nil {
		return nil, s.deleteErr
	}
	return s.order, nil
}

func TestCreateOrderReturns201(t *testing.T) {
	stub := &stubOrdersService{order: &models.Order{
		ID:     uuid.New(),
		Status: enums.OrderStatusPending,
		Total:  decimal.RequireFromString("44.98"),
	}}
	body := `{
		"user_id": "u1",
		"items": [
			{"product_title": "Game A", "product_price": "19.99", "quantity": 2},
			{"product_title": "Game B", "product_price": "5.00", "quantity": 1}
		]
	}`
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body))
	rec := httptest.NewRecorder()

	CreateOrder(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body)
	}
	if stub.lastCreate.UserID != "u1" {
		t.Fatalf("user id not decoded: %+v", stub.lastCreate)
	}
	if len(stub.lastCreate.Items) != 2 {
		t.Fatalf("items not forwarded: %+v", stub.lastCreate)
	}
	first := stub.lastCreate.Items[0]
	if first.ProductTitle != "Game A" || first.ProductPrice == nil || !first.ProductPrice.Equal(decimal.RequireFromString("19.99")) {
		t.Fatalf("item snapshot not decoded: %+v", first)
	}
	if !strings.Contains(rec.Body.String(), "44.98") {
		t.Fatalf("total missing from response: %s", rec.Body)
	}
}

func TestCreateOrderValidationFailureIs400(t *testing.T) {
	stub := &stubOrdersService{createErr: pkgerrors.New(pkgerrors.CodeValidation, "items must be a non-empty list")}
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`{"user_id":"u1","items":[]}`))
	rec := httptest.NewRecorder()

	CreateOrder(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCreateOrderMalformedBodyIs400(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`{"user_id":`))
	rec := httptest.NewRecorder()

	CreateOrder(&stubOrdersService{}, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUpdateOrderInvalidStatusIs400WithDetails(t *testing.T) {
	stub := &stubOrdersService{updateErr: pkgerrors.New(pkgerrors.CodeValidation, "invalid status").
		WithDetails(map[string]any{"valid_statuses": enums.ValidOrderStatusStrings()})}
	id := uuid.NewString()
	req := withURLParam(
		httptest.NewRequest(http.MethodPut, "/orders/"+id, strings.NewReader(`{"status":"refunded"}`)),
		"id", id)
	rec := httptest.NewRecorder()

	UpdateOrder(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "valid_statuses") {
		t.Fatalf("expected valid statuses in details: %s", rec.Body)
	}
}

func TestUpdateOrderForwardsCustomerEmail(t *testing.T) {
	stub := &stubOrdersService{order: &models.Order{ID: uuid.New(), Status: enums.OrderStatusPending}}
	id := uuid.NewString()
	req := withURLParam(
		httptest.NewRequest(http.MethodPut, "/orders/"+id, strings.NewReader(`{"customer_email":"buyer@example.com"}`)),
		"id", id)
	rec := httptest.NewRecorder()

	UpdateOrder(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}
	if stub.lastUpdate.CustomerEmail == nil || *stub.lastUpdate.CustomerEmail != "buyer@example.com" {
		t.Fatalf("customer email not decoded: %+v", stub.lastUpdate)
	}
	if stub.lastUpdate.Status != nil {
		t.Fatalf("status should stay nil: %+v", stub.lastUpdate)
	}
}

func TestDeleteOrderNotFoundIs404(t *testing.T) {
	stub := &stubOrdersService{deleteErr: pkgerrors.New(pkgerrors.CodeNotFound, "order not found")}
	id := uuid.NewString()
	req := withURLParam(httptest.NewRequest(http.MethodDelete, "/orders/"+id, nil), "id", id)
	rec := httptest.NewRecorder()

	DeleteOrder(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestListOrdersReturnsEnvelope(t *testing.T) {
	stub := &stubOrdersService{orders: []models.Order{{UserID: "u1"}}}
	req := httptest.NewRequest(http.MethodGet, "/orders?user_id=u1", nil)
	rec := httptest.NewRecorder()

	ListOrders(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"meta"`) {
		t.Fatalf("expected meta block: %s", rec.Body)
	}
}
