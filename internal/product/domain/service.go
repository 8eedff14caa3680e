package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Product, error)
	List(ctx context.Context, req ListRequest) ([]Product, error)
	Get(ctx context.Context, id string) (*Product, error)
	Update(ctx context.Context, req UpdateRequest) (*Product, error)
	Delete(ctx context.Context, id string) error
}

type ListRequest struct {
	Category string
	Search   string
}

type CreateRequest struct {
	Name        string
	Description *string
	Unit        string
	Category    string
	Price       float64
	CostPrice   float64
	InStock     float64
}

// UpdateRequest deliberately carries no stock field. Stock only moves
// through orders, manufacturing and manual adjustments, each of which
// leaves a movement row behind.
type UpdateRequest struct {
	ID          string
	Name        *string
	Description *string
	Unit        *string
	Category    *string
	Price       *float64
	CostPrice   *float64
}

var (
	ErrInvalidTenant = errors.New("invalid_tenant")
	ErrInvalidName   = errors.New("invalid_name")
	ErrInvalidPrice  = errors.New("invalid_price")
	ErrInvalidStock  = errors.New("invalid_stock")
	ErrInvalidID     = errors.New("invalid_id")
	ErrNotFound      = errors.New("product_not_found")
)

// InUseError blocks deletion of a product referenced by order lines.
type InUseError struct {
	ProductID snowflake.ID
	Items     int64
}

func (e *InUseError) Error() string {
	return "product is referenced by existing orders and cannot be deleted"
}
