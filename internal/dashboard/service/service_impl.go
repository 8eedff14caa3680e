package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	"github.com/smallbiznis/backoffice/internal/config"
	"github.com/smallbiznis/backoffice/internal/dashboard/domain"
	"github.com/smallbiznis/backoffice/pkg/tenantctx"
)

type service struct {
	db        *gorm.DB
	reporting *config.ReportingConfigHolder
}

func New(db *gorm.DB, reporting *config.ReportingConfigHolder) domain.Service {
	return &service{db: db, reporting: reporting}
}

type moneyAggregate struct {
	Amount float64
	Paid   float64
}

func (s *service) Summary(ctx context.Context) (*domain.Summary, error) {
	tenantID, ok := tenantctx.TenantID(ctx)
	if !ok {
		return nil, domain.ErrInvalidTenant
	}

	income, err := s.sumTransactions(ctx, tenantID, "income")
	if err != nil {
		return nil, err
	}
	expense, err := s.sumTransactions(ctx, tenantID, "expense")
	if err != nil {
		return nil, err
	}

	revenueByCategory, err := s.paidByCategory(ctx, tenantID, "income")
	if err != nil {
		return nil, err
	}
	expensesByCategory, err := s.paidByCategory(ctx, tenantID, "expense")
	if err != nil {
		return nil, err
	}

	monthStart := time.Date(time.Now().Year(), time.Now().Month(), 1, 0, 0, 0, 0, time.UTC)
	var salesThisMonth float64
	err = s.db.WithContext(ctx).
		Table("transactions").
		Where("tenant_id = ? AND type = ? AND created_at >= ?", tenantID, "income", monthStart).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&salesThisMonth).Error
	if err != nil {
		return nil, err
	}

	var ordersPending int64
	err = s.db.WithContext(ctx).
		Table("orders").
		Where("tenant_id = ? AND status = ?", tenantID, "pending").
		Count(&ordersPending).Error
	if err != nil {
		return nil, err
	}

	var totalInventory float64
	err = s.db.WithContext(ctx).
		Table("products").
		Where("tenant_id = ?", tenantID).
		Select("COALESCE(SUM(in_stock * cost_price), 0)").
		Scan(&totalInventory).Error
	if err != nil {
		return nil, err
	}

	thresholds := s.reporting.Get()
	var outOfStock int64
	err = s.db.WithContext(ctx).
		Table("products").
		Where("tenant_id = ? AND in_stock <= ?", tenantID, thresholds.OutOfStockLevel).
		Count(&outOfStock).Error
	if err != nil {
		return nil, err
	}
	var lowStock int64
	err = s.db.WithContext(ctx).
		Table("products").
		Where("tenant_id = ? AND in_stock > ? AND in_stock <= ?", tenantID, thresholds.OutOfStockLevel, thresholds.LowStockThreshold).
		Count(&lowStock).Error
	if err != nil {
		return nil, err
	}

	// cost of goods sold over sale lines still on the books
	var cogs float64
	err = s.db.WithContext(ctx).
		Table("order_items").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("orders.tenant_id = ? AND orders.type = ? AND orders.status <> ?", tenantID, "sale", "cancelled").
		Select("COALESCE(SUM(order_items.quantity * products.cost_price), 0)").
		Scan(&cogs).Error
	if err != nil {
		return nil, err
	}

	summary := &domain.Summary{
		TotalRevenue:       income.Amount,
		RevenueByCategory:  revenueByCategory,
		TotalExpenses:      expense.Amount,
		ExpensesByCategory: expensesByCategory,
		NetProfit:          income.Amount - expense.Amount,
		CashFlow:           income.Paid - expense.Paid,
		SalesThisMonth:     salesThisMonth,
		OrdersPending:      ordersPending,
		TotalInventory:     totalInventory,
		OutOfStockItems:    outOfStock,
		LowStockItems:      lowStock,
		CreditToCollect:    income.Amount - income.Paid,
		DebitToPay:         expense.Amount - expense.Paid,
		COGS:               cogs,
		GrossProfit:        income.Amount - cogs,
		IncomeInHand:       income.Paid,
	}
	if income.Amount > 0 {
		summary.ProfitMargin = summary.NetProfit / income.Amount * 100
	}
	return summary, nil
}

func (s *service) RevenueByCategory(ctx context.Context) (map[string]float64, error) {
	tenantID, ok := tenantctx.TenantID(ctx)
	if !ok {
		return nil, domain.ErrInvalidTenant
	}
	return s.paidByCategory(ctx, tenantID, "income")
}

func (s *service) sumTransactions(ctx context.Context, tenantID snowflake.ID, txnType string) (moneyAggregate, error) {
	var agg moneyAggregate
	err := s.db.WithContext(ctx).
		Table("transactions").
		Where("tenant_id = ? AND type = ?", tenantID, txnType).
		Select("COALESCE(SUM(amount), 0) AS amount, COALESCE(SUM(paid_amount), 0) AS paid").
		Scan(&agg).Error
	return agg, err
}

// paidByCategory sums fully paid entries per category, skipping rows with
// no category.
func (s *service) paidByCategory(ctx context.Context, tenantID snowflake.ID, txnType string) (map[string]float64, error) {
	type row struct {
		Category string
		Total    float64
	}
	var rows []row
	err := s.db.WithContext(ctx).
		Table("transactions").
		Where("tenant_id = ? AND type = ? AND status = ? AND category <> ''", tenantID, txnType, "paid").
		Select("category, COALESCE(SUM(amount), 0) AS total").
		Group("category").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	byCategory := make(map[string]float64, len(rows))
	for _, r := range rows {
		byCategory[r.Category] = r.Total
	}
	return byCategory, nil
}
