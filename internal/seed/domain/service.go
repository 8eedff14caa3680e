package domain

import (
	"context"
	"errors"
)

type Service interface {
	Generate(ctx context.Context) (*Report, error)
	Delete(ctx context.Context) error
}

// Report counts what a demo run created or removed.
type Report struct {
	Products     int `json:"products"`
	Accounts     int `json:"accounts"`
	Orders       int `json:"orders"`
	Transactions int `json:"transactions"`
}

var ErrInvalidTenant = errors.New("invalid_tenant")
