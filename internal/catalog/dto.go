package catalog

import "github.com/shopspring/decimal"

// CreateGameInput carries a validated create request into the service.
type CreateGameInput struct {
	Name        string           `json:"name" validate:"required"`
	Category    string           `json:"category" validate:"required"`
	Price       *decimal.Decimal `json:"price" validate:"required"`
	Description *string          `json:"description"`
	Featured    *bool            `json:"featured"`
}

// UpdateGameInput is a partial update: nil fields are left untouched.
type UpdateGameInput struct {
	Name        *string          `json:"name"`
	Category    *string          `json:"category"`
	Price       *decimal.Decimal `json:"price"`
	Description *string          `json:"description"`
	Featured    *bool            `json:"featured"`
}

// ListFilters narrows the catalog listing.
type ListFilters struct {
	Featured *bool
	Category string
	Limit    int
}
