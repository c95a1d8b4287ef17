package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pixelcart/pixelcart-backend/pkg/enums"
)

// Order is the order header. Total is a snapshot of the line items'
// price x quantity sums captured at creation; it is never recomputed.
type Order struct {
	ID            uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderNumber   string            `gorm:"column:order_number;not null;uniqueIndex:orders_number_key" json:"order_number"`
	UserID        string            `gorm:"column:user_id;not null" json:"user_id"`
	Status        enums.OrderStatus `gorm:"column:status;not null;default:'pending'" json:"status"`
	Total         decimal.Decimal   `gorm:"column:total;type:numeric(12,2);not null" json:"total"`
	CustomerEmail *string           `gorm:"column:customer_email" json:"customer_email,omitempty"`
	Items         []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt     time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
