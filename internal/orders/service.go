package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pixelcart/pixelcart-backend/pkg/db/models"
	"github.com/pixelcart/pixelcart-backend/pkg/enums"
	pkgerrors "github.com/pixelcart/pixelcart-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Counters is the observability surface the service increments. It is
// injected from main so there is no package-level registry.
type Counters interface {
	IncOrdersCreated()
	IncOrdersDeleted()
}

type service struct {
	repo     Repository
	tx       txRunner
	counters Counters
	numberFn func() string
}

// NewService builds the order service with its required dependencies.
func NewService(repo Repository, tx txRunner, counters Counters) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if counters == nil {
		return nil, fmt.Errorf("order counters required")
	}
	return &service{
		repo:     repo,
		tx:       tx,
		counters: counters,
		numberFn: NewOrderNumber,
	}, nil
}

// Create inserts the order header and all of its line items in a single
// transaction. Any failure rolls everything back; no partial order is ever
// visible to readers. The total is the sum of price x quantity captured
// here and is never recomputed afterwards.
func (s *service) Create(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	total := decimal.Zero
	items := make([]models.OrderItem, 0, len(input.Items))
	for _, in := range input.Items {
		qty := 1
		if in.Quantity != nil {
			qty = *in.Quantity
		}
		price := decimal.Zero
		if in.ProductPrice != nil {
			price = *in.ProductPrice
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(qty))))
		items = append(items, models.OrderItem{
			GameID:       in.GameID,
			ProductTitle: in.ProductTitle,
			ProductPrice: price,
			Quantity:     qty,
		})
	}

	order := &models.Order{
		OrderNumber:   s.numberFn(),
		UserID:        strings.TrimSpace(input.UserID),
		Status:        enums.OrderStatusPending,
		Total:         total,
		CustomerEmail: input.CustomerEmail,
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.CreateOrder(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert order header")
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := repo.CreateOrderItems(ctx, items); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert order items")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.counters.IncOrdersCreated()
	order.Items = items
	return order, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	order, err := s.repo.FindOrder(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

func (s *service) List(ctx context.Context, filters ListFilters) ([]models.Order, error) {
	orders, err := s.repo.ListOrders(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return orders, nil
}

// Update applies a partial update: only provided fields change. A requested
// status must belong to the fixed six-value set, but transition legality is
// deliberately not enforced.
func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateOrderInput) (*models.Order, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if input.Status == nil && input.CustomerEmail == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one of status or customer_email is required")
	}

	updates := map[string]any{}
	if input.Status != nil {
		status, err := enums.ParseOrderStatus(*input.Status)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status").
				WithDetails(map[string]any{"valid_statuses": enums.ValidOrderStatusStrings()})
		}
		updates["status"] = status
	}
	if input.CustomerEmail != nil {
		updates["customer_email"] = *input.CustomerEmail
	}

	if _, err := s.repo.FindOrderHeader(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}

	if err := s.repo.UpdateOrder(ctx, id, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order")
	}

	order, err := s.repo.FindOrderHeader(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload order")
	}
	return order, nil
}

// Delete removes the header and, through the cascade constraint, every item,
// inside one transaction. The deleted header is returned as confirmation.
func (s *service) Delete(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	var deleted *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := repo.FindOrderHeader(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}
		if err := repo.DeleteOrder(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete order")
		}
		deleted = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.counters.IncOrdersDeleted()
	return deleted, nil
}

func validateCreateInput(input CreateOrderInput) error {
	if strings.TrimSpace(input.UserID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "user_id is required")
	}
	if len(input.Items) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "items must be a non-empty list")
	}
	for i, item := range input.Items {
		if item.Quantity != nil && *item.Quantity <= 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("items[%d].quantity must be positive", i))
		}
		if item.ProductPrice != nil && item.ProductPrice.IsNegative() {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("items[%d].product_price must not be negative", i))
		}
	}
	return nil
}
