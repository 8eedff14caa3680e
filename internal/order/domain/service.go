package domain

import (
	"context"
	"errors"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Order, error)
	List(ctx context.Context, req ListRequest) ([]Summary, error)
	Get(ctx context.Context, id string) (*Summary, error)
	Update(ctx context.Context, req UpdateRequest) (*Order, error)
	Delete(ctx context.Context, id string) error
	ListItems(ctx context.Context, orderID string) ([]ItemView, error)
}

type ListRequest struct {
	Type   OrderType
	Status OrderStatus
}

type LineRequest struct {
	ProductID string   `json:"product_id"`
	Quantity  float64  `json:"quantity"`
	Price     float64  `json:"price"`
	SellPrice *float64 `json:"sell_price"`
}

type CreateRequest struct {
	AccountID   string
	Type        OrderType
	Lines       []LineRequest
	TotalAmount float64
	PaidAmount  float64
}

type UpdateRequest struct {
	ID         string
	Status     *OrderStatus
	PaidAmount *float64
}

var (
	ErrInvalidTenant   = errors.New("invalid_tenant")
	ErrInvalidID       = errors.New("invalid_id")
	ErrInvalidType     = errors.New("invalid_order_type")
	ErrInvalidStatus   = errors.New("invalid_order_status")
	ErrEmptyOrder      = errors.New("order_has_no_lines")
	ErrInvalidQuantity = errors.New("invalid_quantity")
	ErrInvalidPrice    = errors.New("invalid_price")
	ErrNotFound        = errors.New("order_not_found")
	ErrAccountNotFound = errors.New("account_not_found")
	ErrNoTransaction   = errors.New("order_has_no_transaction")
)
