package domain

import (
	"context"
	"errors"
	"fmt"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Transaction, error)
	List(ctx context.Context, req ListRequest) ([]Transaction, error)
	Get(ctx context.Context, id string) (*Transaction, error)
	Update(ctx context.Context, req UpdateRequest) (*Transaction, error)
	Delete(ctx context.Context, id string) error
}

type ListRequest struct {
	Type     TransactionType
	Category string
	Status   TransactionStatus
}

type CreateRequest struct {
	Description string
	Category    string
	Type        TransactionType
	Amount      float64
	PaidAmount  float64
}

type UpdateRequest struct {
	ID          string
	Description *string
	Category    *string
	Amount      *float64
	PaidAmount  *float64
}

var (
	ErrInvalidTenant = errors.New("invalid_tenant")
	ErrInvalidID     = errors.New("invalid_id")
	ErrInvalidType   = errors.New("invalid_transaction_type")
	ErrInvalidAmount = errors.New("invalid_amount")
	ErrNotFound      = errors.New("transaction_not_found")
	ErrOrderLinked   = errors.New("transaction_linked_to_order")
)

// PaymentError rejects a paid amount outside [0, amount].
type PaymentError struct {
	Amount    float64
	Paid      float64
	Remaining float64
}

func (e *PaymentError) Error() string {
	if e.Paid < 0 {
		return "paid amount cannot be negative"
	}
	return fmt.Sprintf("paid amount %g exceeds total %g; remaining owed is %g", e.Paid, e.Amount, e.Remaining)
}
