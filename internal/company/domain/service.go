package domain

import (
	"context"
	"errors"

	"gorm.io/datatypes"
)

type Service interface {
	Get(ctx context.Context) (*Company, error)
	Upsert(ctx context.Context, req UpsertRequest) (*Company, error)
}

type UpsertRequest struct {
	Name     *string
	Address  *string
	Phone    *string
	Email    *string
	Currency *string
	Metadata datatypes.JSONMap
}

var (
	ErrInvalidTenant = errors.New("invalid_tenant")
	ErrNotFound      = errors.New("company_not_found")
)
