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

	accountdomain "github.com/smallbiznis/backoffice/internal/account/domain"
	accountrepo "github.com/smallbiznis/backoffice/internal/account/repository"
	accountservice "github.com/smallbiznis/backoffice/internal/account/service"
	companydomain "github.com/smallbiznis/backoffice/internal/company/domain"
	inventorydomain "github.com/smallbiznis/backoffice/internal/inventory/domain"
	inventoryservice "github.com/smallbiznis/backoffice/internal/inventory/service"
	ledgerdomain "github.com/smallbiznis/backoffice/internal/ledger/domain"
	manufacturedomain "github.com/smallbiznis/backoffice/internal/manufacture/domain"
	orderdomain "github.com/smallbiznis/backoffice/internal/order/domain"
	orderservice "github.com/smallbiznis/backoffice/internal/order/service"
	productdomain "github.com/smallbiznis/backoffice/internal/product/domain"
	productrepo "github.com/smallbiznis/backoffice/internal/product/repository"
	productservice "github.com/smallbiznis/backoffice/internal/product/service"
	"github.com/smallbiznis/backoffice/internal/seed/domain"
	"github.com/smallbiznis/backoffice/pkg/tenantctx"
)

func setup(t *testing.T) (domain.Service, *gorm.DB, context.Context) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_loc=auto", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&accountdomain.Account{},
		&productdomain.Product{},
		&orderdomain.Order{},
		&orderdomain.OrderItem{},
		&ledgerdomain.Transaction{},
		&inventorydomain.StockMovement{},
		&manufacturedomain.Batch{},
		&manufacturedomain.RawLine{},
		&manufacturedomain.FinishedLine{},
		&companydomain.Company{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(
		db,
		accountservice.New(db, accountrepo.New(), node),
		productservice.New(db, productrepo.New(), node),
		orderservice.New(db, node, inventoryservice.New(db, node)),
	)

	ctx := tenantctx.WithTenantID(context.Background(), node.Generate())
	return svc, db, ctx
}

func TestGenerate(t *testing.T) {
	svc, db, ctx := setup(t)

	report, err := svc.Generate(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, report.Products)
	assert.Equal(t, 2, report.Accounts)
	assert.Equal(t, 2, report.Orders)
	assert.Equal(t, 2, report.Transactions)

	var transactions int64
	require.NoError(t, db.Model(&ledgerdomain.Transaction{}).Count(&transactions).Error)
	assert.Equal(t, int64(2), transactions)

	var movements int64
	require.NoError(t, db.Model(&inventorydomain.StockMovement{}).Count(&movements).Error)
	assert.Equal(t, int64(4), movements)

	// the purchase order restocks raw beans on top of the seeded quantity
	var beans productdomain.Product
	require.NoError(t, db.Where("name = ?", "Arabica Beans").First(&beans).Error)
	assert.Equal(t, 60.0, beans.InStock)

	var sold productdomain.Product
	require.NoError(t, db.Where("name = ?", "Ground Coffee 250g").First(&sold).Error)
	assert.Equal(t, 18.0, sold.InStock)
}

func TestDeleteWipesTenantRows(t *testing.T) {
	svc, db, ctx := setup(t)

	_, err := svc.Generate(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx))

	for _, model := range []any{
		&accountdomain.Account{},
		&productdomain.Product{},
		&orderdomain.Order{},
		&orderdomain.OrderItem{},
		&ledgerdomain.Transaction{},
		&inventorydomain.StockMovement{},
	} {
		var count int64
		require.NoError(t, db.Model(model).Count(&count).Error)
		assert.Zero(t, count, "%T rows left behind", model)
	}
}

func TestDeleteLeavesOtherTenantsAlone(t *testing.T) {
	svc, db, ctx := setup(t)

	_, err := svc.Generate(ctx)
	require.NoError(t, err)

	node, err := snowflake.NewNode(2)
	require.NoError(t, err)
	otherCtx := tenantctx.WithTenantID(context.Background(), node.Generate())
	_, err = svc.Generate(otherCtx)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx))

	var products int64
	require.NoError(t, db.Model(&productdomain.Product{}).Count(&products).Error)
	assert.Equal(t, int64(4), products)
}
