package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/smallbiznis/backoffice/internal/config"
	"github.com/smallbiznis/backoffice/internal/dashboard/domain"
	ledgerdomain "github.com/smallbiznis/backoffice/internal/ledger/domain"
	orderdomain "github.com/smallbiznis/backoffice/internal/order/domain"
	productdomain "github.com/smallbiznis/backoffice/internal/product/domain"
	"github.com/smallbiznis/backoffice/pkg/tenantctx"
)

type fixture struct {
	svc      domain.Service
	db       *gorm.DB
	ctx      context.Context
	tenantID snowflake.ID
	node     *snowflake.Node
}

func setup(t *testing.T) *fixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_loc=auto", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&ledgerdomain.Transaction{},
		&orderdomain.Order{},
		&orderdomain.OrderItem{},
		&productdomain.Product{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	tenantID := node.Generate()
	reporting := config.StaticReportingConfigHolder(config.ReportingConfig{
		LowStockThreshold: 10,
		OutOfStockLevel:   0,
	})

	return &fixture{
		svc:      New(db, reporting),
		db:       db,
		ctx:      tenantctx.WithTenantID(context.Background(), tenantID),
		tenantID: tenantID,
		node:     node,
	}
}

func (f *fixture) addTransaction(t *testing.T, txnType ledgerdomain.TransactionType, category string, amount, paid float64) {
	t.Helper()
	require.NoError(t, f.db.Create(&ledgerdomain.Transaction{
		ID:         f.node.Generate(),
		TenantID:   f.tenantID,
		Type:       txnType,
		Category:   category,
		Amount:     amount,
		PaidAmount: paid,
		Status:     ledgerdomain.DeriveStatus(paid, amount),
	}).Error)
}

func (f *fixture) addProduct(t *testing.T, costPrice, inStock float64) productdomain.Product {
	t.Helper()
	product := productdomain.Product{
		ID:        f.node.Generate(),
		TenantID:  f.tenantID,
		Name:      "Item",
		CostPrice: costPrice,
		InStock:   inStock,
	}
	require.NoError(t, f.db.Create(&product).Error)
	return product
}

func (f *fixture) addOrder(t *testing.T, orderType orderdomain.OrderType, status orderdomain.OrderStatus, productID snowflake.ID, quantity float64) {
	t.Helper()
	order := orderdomain.Order{
		ID:        f.node.Generate(),
		TenantID:  f.tenantID,
		AccountID: f.node.Generate(),
		Type:      orderType,
		Status:    status,
	}
	require.NoError(t, f.db.Create(&order).Error)
	if quantity > 0 {
		require.NoError(t, f.db.Create(&orderdomain.OrderItem{
			ID:        f.node.Generate(),
			OrderID:   order.ID,
			ProductID: productID,
			Quantity:  quantity,
			Price:     1,
		}).Error)
	}
}

func TestSummary(t *testing.T) {
	f := setup(t)

	f.addTransaction(t, ledgerdomain.TypeIncome, ledgerdomain.CategorySelling, 100, 100)
	f.addTransaction(t, ledgerdomain.TypeIncome, ledgerdomain.CategorySelling, 50, 20)
	f.addTransaction(t, ledgerdomain.TypeExpense, ledgerdomain.CategoryPurchase, 30, 30)
	f.addTransaction(t, ledgerdomain.TypeExpense, "", 40, 0)

	stocked := f.addProduct(t, 2, 20)
	low := f.addProduct(t, 5, 3)
	f.addProduct(t, 4, 0)

	f.addOrder(t, orderdomain.TypeSale, orderdomain.StatusCompleted, stocked.ID, 4)
	f.addOrder(t, orderdomain.TypeSale, orderdomain.StatusCancelled, low.ID, 10)
	f.addOrder(t, orderdomain.TypePurchase, orderdomain.StatusPending, 0, 0)

	// rows of another tenant never leak in
	require.NoError(t, f.db.Create(&ledgerdomain.Transaction{
		ID:       f.node.Generate(),
		TenantID: f.node.Generate(),
		Type:     ledgerdomain.TypeIncome,
		Amount:   999,
		Status:   ledgerdomain.StatusUnpaid,
	}).Error)

	summary, err := f.svc.Summary(f.ctx)
	require.NoError(t, err)

	assert.Equal(t, 150.0, summary.TotalRevenue)
	assert.Equal(t, 70.0, summary.TotalExpenses)
	assert.Equal(t, 80.0, summary.NetProfit)
	assert.InDelta(t, 53.333, summary.ProfitMargin, 0.001)
	assert.Equal(t, 90.0, summary.CashFlow)
	assert.Equal(t, 150.0, summary.SalesThisMonth)
	assert.Equal(t, int64(1), summary.OrdersPending)
	assert.Equal(t, 55.0, summary.TotalInventory)
	assert.Equal(t, int64(1), summary.OutOfStockItems)
	assert.Equal(t, int64(1), summary.LowStockItems)
	assert.Equal(t, 30.0, summary.CreditToCollect)
	assert.Equal(t, 40.0, summary.DebitToPay)
	assert.Equal(t, 8.0, summary.COGS)
	assert.Equal(t, 142.0, summary.GrossProfit)
	assert.Equal(t, 120.0, summary.IncomeInHand)

	assert.Equal(t, map[string]float64{"selling": 100}, summary.RevenueByCategory)
	assert.Equal(t, map[string]float64{"purchase": 30}, summary.ExpensesByCategory)
}

func TestSummaryEmptyTenant(t *testing.T) {
	f := setup(t)

	summary, err := f.svc.Summary(f.ctx)
	require.NoError(t, err)
	assert.Zero(t, summary.TotalRevenue)
	assert.Zero(t, summary.ProfitMargin)
	assert.Empty(t, summary.RevenueByCategory)
}

func TestRevenueByCategorySkipsUnpaid(t *testing.T) {
	f := setup(t)

	f.addTransaction(t, ledgerdomain.TypeIncome, "consulting", 200, 200)
	f.addTransaction(t, ledgerdomain.TypeIncome, "consulting", 80, 0)
	f.addTransaction(t, ledgerdomain.TypeIncome, "", 60, 60)

	byCategory, err := f.svc.RevenueByCategory(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"consulting": 200}, byCategory)
}
