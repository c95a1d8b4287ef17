package orders

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateOrderInput carries a validated-but-untrusted order creation request.
type CreateOrderInput struct {
	UserID        string                 `json:"user_id" validate:"required"`
	CustomerEmail *string                `json:"customer_email"`
	Items         []CreateOrderItemInput `json:"items"`
}

// CreateOrderItemInput is one requested line item. Title and price are
// snapshots supplied by the caller; GameID is an optional catalog reference
// and is never used to re-price the item.
type CreateOrderItemInput struct {
	GameID       *uuid.UUID `json:"game_id"`
	ProductTitle string     `json:"product_title"`
	// ProductPrice contributes zero to the total when absent. This leniency
	// is deliberate; only negative prices are rejected.
	ProductPrice *decimal.Decimal `json:"product_price"`
	// Quantity defaults to 1 when absent and must be positive when present.
	Quantity *int `json:"quantity"`
}

// UpdateOrderInput is a partial update: nil fields are left unchanged.
// Supplying no fields at all is a validation error.
type UpdateOrderInput struct {
	Status        *string `json:"status"`
	CustomerEmail *string `json:"customer_email"`
}

// ListFilters constrains the order listing.
type ListFilters struct {
	UserID string
	Limit  int
}
