package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Game is a purchasable catalog entry. It has no lifecycle coupling to
// orders: order items snapshot title and price at purchase time.
type Game struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string          `gorm:"column:name;not null;uniqueIndex:games_name_key" json:"name"`
	Category    string          `gorm:"column:category;not null" json:"category"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null" json:"price"`
	Description *string         `gorm:"column:description" json:"description,omitempty"`
	Featured    bool            `gorm:"column:featured;not null;default:false" json:"featured"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
