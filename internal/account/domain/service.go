package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Account, error)
	List(ctx context.Context, req ListRequest) ([]Account, error)
	Get(ctx context.Context, id string) (*Account, error)
	Update(ctx context.Context, req UpdateRequest) (*Account, error)
	Delete(ctx context.Context, id string) error
	HasOrders(ctx context.Context, id string) (bool, error)
}

type ListRequest struct {
	Type   AccountType
	Status AccountStatus
}

type CreateRequest struct {
	Name   string
	Email  *string
	Phone  *string
	Status AccountStatus
	Type   AccountType
}

type UpdateRequest struct {
	ID     string
	Name   *string
	Email  *string
	Phone  *string
	Status *AccountStatus
	Type   *AccountType
}

var (
	ErrInvalidTenant = errors.New("invalid_tenant")
	ErrInvalidName   = errors.New("invalid_name")
	ErrInvalidType   = errors.New("invalid_account_type")
	ErrInvalidStatus = errors.New("invalid_account_status")
	ErrInvalidID     = errors.New("invalid_id")
	ErrNotFound      = errors.New("account_not_found")
)

// HasOrdersError blocks deletion of an account still referenced by orders.
type HasOrdersError struct {
	AccountID snowflake.ID
	Orders    int64
}

func (e *HasOrdersError) Error() string {
	return "account has existing orders; set it to inactive instead of deleting"
}
