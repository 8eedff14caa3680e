package service

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	accountdomain "github.com/smallbiznis/backoffice/internal/account/domain"
	"github.com/smallbiznis/backoffice/internal/observability/logger"
	orderdomain "github.com/smallbiznis/backoffice/internal/order/domain"
	productdomain "github.com/smallbiznis/backoffice/internal/product/domain"
	"github.com/smallbiznis/backoffice/internal/seed/domain"
	"github.com/smallbiznis/backoffice/pkg/tenantctx"
)

type service struct {
	db       *gorm.DB
	accounts accountdomain.Service
	products productdomain.Service
	orders   orderdomain.Service
}

func New(db *gorm.DB, accounts accountdomain.Service, products productdomain.Service, orders orderdomain.Service) domain.Service {
	return &service{db: db, accounts: accounts, products: products, orders: orders}
}

type demoProduct struct {
	name      string
	unit      string
	category  string
	price     float64
	costPrice float64
	inStock   float64
}

var demoProducts = []demoProduct{
	{name: "Arabica Beans", unit: "kg", category: "Raw Material", price: 0, costPrice: 8, inStock: 50},
	{name: "Robusta Beans", unit: "kg", category: "Raw Material", price: 0, costPrice: 5, inStock: 40},
	{name: "Ground Coffee 250g", unit: "pack", category: "Finished Goods", price: 6.5, costPrice: 3, inStock: 30},
	{name: "Drip Bag Box", unit: "box", category: "Finished Goods", price: 12, costPrice: 7, inStock: 20},
}

// Generate builds the demo data through the regular services so stock
// movements and paired transactions come out exactly as real usage would
// produce them.
func (s *service) Generate(ctx context.Context) (*domain.Report, error) {
	if _, ok := tenantctx.TenantID(ctx); !ok {
		return nil, domain.ErrInvalidTenant
	}

	report := &domain.Report{}

	products := make([]*productdomain.Product, 0, len(demoProducts))
	for _, p := range demoProducts {
		created, err := s.products.Create(ctx, productdomain.CreateRequest{
			Name:      p.name,
			Unit:      p.unit,
			Category:  p.category,
			Price:     p.price,
			CostPrice: p.costPrice,
			InStock:   p.inStock,
		})
		if err != nil {
			return nil, err
		}
		products = append(products, created)
		report.Products++
	}

	customer, err := s.accounts.Create(ctx, accountdomain.CreateRequest{
		Name: "Corner Cafe",
		Type: accountdomain.TypeCustomer,
	})
	if err != nil {
		return nil, err
	}
	supplier, err := s.accounts.Create(ctx, accountdomain.CreateRequest{
		Name: "Highland Estate",
		Type: accountdomain.TypeSupplier,
	})
	if err != nil {
		return nil, err
	}
	report.Accounts = 2

	purchase, err := s.orders.Create(ctx, orderdomain.CreateRequest{
		AccountID: supplier.ID.String(),
		Type:      orderdomain.TypePurchase,
		Lines: []orderdomain.LineRequest{
			{ProductID: products[0].ID.String(), Quantity: 10, Price: 8},
			{ProductID: products[1].ID.String(), Quantity: 10, Price: 5},
		},
		PaidAmount: 130,
	})
	if err != nil {
		return nil, err
	}
	completed := orderdomain.StatusCompleted
	if _, err := s.orders.Update(ctx, orderdomain.UpdateRequest{ID: purchase.ID.String(), Status: &completed}); err != nil {
		return nil, err
	}

	sale, err := s.orders.Create(ctx, orderdomain.CreateRequest{
		AccountID: customer.ID.String(),
		Type:      orderdomain.TypeSale,
		Lines: []orderdomain.LineRequest{
			{ProductID: products[2].ID.String(), Quantity: 12, Price: 6.5},
			{ProductID: products[3].ID.String(), Quantity: 5, Price: 12},
		},
		PaidAmount: 78,
	})
	if err != nil {
		return nil, err
	}
	if _, err := s.orders.Update(ctx, orderdomain.UpdateRequest{ID: sale.ID.String(), Status: &completed}); err != nil {
		return nil, err
	}
	report.Orders = 2
	report.Transactions = 2

	logger.FromContext(ctx).Info("demo data generated",
		zap.Int("products", report.Products),
		zap.Int("orders", report.Orders),
	)
	return report, nil
}

// Delete wipes every tenant-owned row in dependency order.
func (s *service) Delete(ctx context.Context) error {
	tenantID, ok := tenantctx.TenantID(ctx)
	if !ok {
		return domain.ErrInvalidTenant
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		steps := []struct {
			sql  string
			args []any
		}{
			{"DELETE FROM stock_movements WHERE tenant_id = ?", []any{tenantID}},
			{"DELETE FROM production_raw WHERE production_batch_id IN (SELECT id FROM production_batches WHERE tenant_id = ?)", []any{tenantID}},
			{"DELETE FROM production_finished WHERE production_batch_id IN (SELECT id FROM production_batches WHERE tenant_id = ?)", []any{tenantID}},
			{"DELETE FROM production_batches WHERE tenant_id = ?", []any{tenantID}},
			{"DELETE FROM transactions WHERE tenant_id = ?", []any{tenantID}},
			{"DELETE FROM order_items WHERE order_id IN (SELECT id FROM orders WHERE tenant_id = ?)", []any{tenantID}},
			{"DELETE FROM orders WHERE tenant_id = ?", []any{tenantID}},
			{"DELETE FROM products WHERE tenant_id = ?", []any{tenantID}},
			{"DELETE FROM accounts WHERE tenant_id = ?", []any{tenantID}},
			{"DELETE FROM companies WHERE tenant_id = ?", []any{tenantID}},
		}
		for _, step := range steps {
			if err := tx.WithContext(ctx).Exec(step.sql, step.args...).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.FromContext(ctx).Info("demo data deleted", zap.String("tenant_id", tenantID.String()))
	return nil
}
