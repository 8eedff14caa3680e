package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

type TransactionStatus string

const (
	StatusPaid    TransactionStatus = "paid"
	StatusPartial TransactionStatus = "partial"
	StatusUnpaid  TransactionStatus = "unpaid"
)

const (
	CategorySelling  = "selling"
	CategoryPurchase = "purchase"
)

type Transaction struct {
	ID          snowflake.ID      `gorm:"primaryKey" json:"id"`
	TenantID    snowflake.ID      `gorm:"not null;index" json:"-"`
	OrderID     *snowflake.ID     `gorm:"uniqueIndex" json:"order_id"`
	Description string            `gorm:"not null;default:''" json:"description"`
	Category    string            `gorm:"not null;default:''" json:"category"`
	Type        TransactionType   `gorm:"not null" json:"type"`
	Amount      float64           `gorm:"not null;default:0" json:"amount"`
	PaidAmount  float64           `gorm:"not null;default:0" json:"paid_amount"`
	Status      TransactionStatus `gorm:"not null;default:unpaid" json:"status"`
	CreatedAt   time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Transaction) TableName() string { return "transactions" }

func ValidType(t TransactionType) bool {
	return t == TypeIncome || t == TypeExpense
}

// DeriveStatus computes payment status from amounts. Status is never set
// directly; every write site derives it from the pair it is persisting.
func DeriveStatus(paid, amount float64) TransactionStatus {
	switch {
	case paid >= amount:
		return StatusPaid
	case paid > 0:
		return StatusPartial
	default:
		return StatusUnpaid
	}
}
