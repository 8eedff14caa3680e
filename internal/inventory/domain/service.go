package domain

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Ledger is the single gateway for stock mutation. Callers run it inside
// their own gorm transaction so stock deltas commit or roll back together
// with the records that caused them.
type Ledger interface {
	Apply(ctx context.Context, tx *gorm.DB, change Change) (*StockMovement, error)
}

type Service interface {
	Ledger
	ListMovements(ctx context.Context, req ListRequest) ([]StockMovement, error)
	Adjust(ctx context.Context, req AdjustRequest) (*StockMovement, error)
}

type Change struct {
	TenantID    snowflake.ID
	ProductID   snowflake.ID
	Delta       float64
	Type        MovementType
	ReferenceID *snowflake.ID
	Description string
}

type ListRequest struct {
	ProductID string
	Type      MovementType
	Limit     int
}

type AdjustRequest struct {
	ProductID   string
	Delta       float64
	Description string
}

var (
	ErrInvalidTenant   = errors.New("invalid_tenant")
	ErrInvalidID       = errors.New("invalid_id")
	ErrInvalidQuantity = errors.New("invalid_quantity")
	ErrProductNotFound = errors.New("product_not_found")
)

// InsufficientStockError reports lines that would drive stock below zero.
type InsufficientStockError struct {
	Lines []InsufficientLine
}

type InsufficientLine struct {
	ProductID   snowflake.ID
	ProductName string
	Requested   float64
	Available   float64
}

func (e *InsufficientStockError) Error() string {
	if len(e.Lines) == 1 {
		l := e.Lines[0]
		return fmt.Sprintf("insufficient stock for %s: requested %g, available %g", l.ProductName, l.Requested, l.Available)
	}
	return fmt.Sprintf("insufficient stock for %d products", len(e.Lines))
}
