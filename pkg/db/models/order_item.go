package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItem is a line item belonging to exactly one order. Title and price
// are snapshots captured at order time; deleting the referenced game (or
// changing its price) never touches existing items.
type OrderItem struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID      uuid.UUID       `gorm:"column:order_id;type:uuid;not null" json:"order_id"`
	GameID       *uuid.UUID      `gorm:"column:game_id;type:uuid" json:"game_id,omitempty"`
	ProductTitle string          `gorm:"column:product_title;not null" json:"product_title"`
	ProductPrice decimal.Decimal `gorm:"column:product_price;type:numeric(12,2);not null" json:"product_price"`
	Quantity     int             `gorm:"column:quantity;not null;default:1" json:"quantity"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
