package domain

import (
	"context"
	"errors"
)

type Service interface {
	Summary(ctx context.Context) (*Summary, error)
	RevenueByCategory(ctx context.Context) (map[string]float64, error)
}

// Summary is the dashboard aggregate view. Monetary figures come from the
// transactions ledger, stock figures from products, order counts from
// orders.
type Summary struct {
	TotalRevenue       float64            `json:"totalRevenue"`
	RevenueByCategory  map[string]float64 `json:"revenueByCategory"`
	TotalExpenses      float64            `json:"totalExpenses"`
	ExpensesByCategory map[string]float64 `json:"expensesByCategory"`
	NetProfit          float64            `json:"netProfit"`
	ProfitMargin       float64            `json:"profitMargin"`
	CashFlow           float64            `json:"cashFlow"`
	SalesThisMonth     float64            `json:"salesThisMonth"`
	OrdersPending      int64              `json:"ordersPending"`
	TotalInventory     float64            `json:"totalInventory"`
	OutOfStockItems    int64              `json:"outOfStockItems"`
	LowStockItems      int64              `json:"lowStockItems"`
	CreditToCollect    float64            `json:"creditToCollect"`
	DebitToPay         float64            `json:"debitToPay"`
	COGS               float64            `json:"cogs"`
	GrossProfit        float64            `json:"grossProfit"`
	IncomeInHand       float64            `json:"incomeInHand"`
}

var ErrInvalidTenant = errors.New("invalid_tenant")
