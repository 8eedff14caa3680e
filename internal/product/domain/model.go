package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Product struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	TenantID    snowflake.ID `gorm:"not null;index" json:"-"`
	Name        string       `gorm:"not null" json:"name"`
	Description *string      `json:"description"`
	Unit        string       `gorm:"not null;default:''" json:"unit"`
	Category    string       `gorm:"not null;default:''" json:"category"`
	Price       float64      `gorm:"not null;default:0" json:"price"`
	CostPrice   float64      `gorm:"not null;default:0" json:"cost_price"`
	InStock     float64      `gorm:"not null;default:0" json:"in_stock"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Product) TableName() string { return "products" }
