package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type MovementType string

const (
	MovementSale        MovementType = "sale"
	MovementPurchase    MovementType = "purchase"
	MovementManufacture MovementType = "manufacture"
	MovementAdjustment  MovementType = "adjustment"
	MovementReversal    MovementType = "reversal"
)

// StockMovement records a signed stock delta against a product. Every
// write to products.in_stock leaves exactly one of these behind.
type StockMovement struct {
	ID          snowflake.ID  `gorm:"primaryKey" json:"id"`
	TenantID    snowflake.ID  `gorm:"not null;index" json:"-"`
	ProductID   snowflake.ID  `gorm:"not null;index" json:"product_id"`
	Type        MovementType  `gorm:"not null" json:"type"`
	Quantity    float64       `gorm:"not null" json:"quantity"`
	ReferenceID *snowflake.ID `json:"reference_id"`
	Description string        `gorm:"not null;default:''" json:"description"`
	CreatedAt   time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (StockMovement) TableName() string { return "stock_movements" }
