package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type OrderType string

const (
	TypeSale     OrderType = "sale"
	TypePurchase OrderType = "purchase"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

type Order struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	TenantID    snowflake.ID `gorm:"not null;index" json:"-"`
	AccountID   snowflake.ID `gorm:"not null;index" json:"account_id"`
	TotalAmount float64      `gorm:"not null;default:0" json:"total_amount"`
	Status      OrderStatus  `gorm:"not null;default:pending" json:"status"`
	Type        OrderType    `gorm:"not null" json:"type"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Order) TableName() string { return "orders" }

type OrderItem struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	OrderID   snowflake.ID `gorm:"not null;index" json:"order_id"`
	ProductID snowflake.ID `gorm:"not null;index" json:"product_id"`
	Quantity  float64      `gorm:"not null" json:"quantity"`
	Price     float64      `gorm:"not null" json:"price"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (OrderItem) TableName() string { return "order_items" }

// Summary is the list/detail view joined with the account and the paired
// financial entry.
type Summary struct {
	Order
	AccountName   string  `json:"account_name"`
	PaidAmount    float64 `json:"paid_amount"`
	PaymentStatus string  `json:"payment_status"`
}

// ItemView is an order line joined with its product.
type ItemView struct {
	OrderItem
	ProductName string `json:"product_name"`
	ProductUnit string `json:"product_unit"`
}

func ValidType(t OrderType) bool {
	return t == TypeSale || t == TypePurchase
}

func ValidStatus(s OrderStatus) bool {
	return s == StatusPending || s == StatusCompleted || s == StatusCancelled
}

func (s OrderStatus) Active() bool {
	return s == StatusPending || s == StatusCompleted
}
