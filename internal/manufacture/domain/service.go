package domain

import (
	"context"
	"errors"
)

type Service interface {
	Convert(ctx context.Context, req ConvertRequest) (*Batch, error)
	List(ctx context.Context) ([]Batch, error)
}

type LineRequest struct {
	ProductID string  `json:"product_id"`
	Quantity  float64 `json:"quantity"`
}

// ConvertRequest consumes raw materials and produces finished goods in a
// single batch.
type ConvertRequest struct {
	Raw      []LineRequest
	Finished []LineRequest
}

var (
	ErrInvalidTenant   = errors.New("invalid_tenant")
	ErrInvalidID       = errors.New("invalid_id")
	ErrEmptyBatch      = errors.New("batch_requires_raw_and_finished_lines")
	ErrInvalidQuantity = errors.New("invalid_quantity")
)
