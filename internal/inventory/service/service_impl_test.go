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

	"github.com/smallbiznis/backoffice/internal/inventory/domain"
	productdomain "github.com/smallbiznis/backoffice/internal/product/domain"
	"github.com/smallbiznis/backoffice/pkg/tenantctx"
)

func setup(t *testing.T) (domain.Service, *gorm.DB, context.Context, snowflake.ID, *snowflake.Node) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_loc=auto", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&productdomain.Product{}, &domain.StockMovement{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	tenantID := node.Generate()
	ctx := tenantctx.WithTenantID(context.Background(), tenantID)
	return New(db, node), db, ctx, tenantID, node
}

func addProduct(t *testing.T, db *gorm.DB, node *snowflake.Node, tenantID snowflake.ID, inStock float64) productdomain.Product {
	t.Helper()
	product := productdomain.Product{
		ID:       node.Generate(),
		TenantID: tenantID,
		Name:     "Widget",
		InStock:  inStock,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func TestAdjustStock(t *testing.T) {
	svc, db, ctx, tenantID, node := setup(t)
	product := addProduct(t, db, node, tenantID, 10)

	movement, err := svc.Adjust(ctx, domain.AdjustRequest{
		ProductID:   product.ID.String(),
		Delta:       -3,
		Description: "damaged in storage",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.MovementAdjustment, movement.Type)
	assert.Equal(t, -3.0, movement.Quantity)

	var updated productdomain.Product
	require.NoError(t, db.Where("id = ?", product.ID).First(&updated).Error)
	assert.Equal(t, 7.0, updated.InStock)
}

func TestAdjustNeverDrivesStockNegative(t *testing.T) {
	svc, db, ctx, tenantID, node := setup(t)
	product := addProduct(t, db, node, tenantID, 2)

	_, err := svc.Adjust(ctx, domain.AdjustRequest{
		ProductID: product.ID.String(),
		Delta:     -5,
	})
	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	require.Len(t, stockErr.Lines, 1)
	assert.Equal(t, 2.0, stockErr.Lines[0].Available)

	var updated productdomain.Product
	require.NoError(t, db.Where("id = ?", product.ID).First(&updated).Error)
	assert.Equal(t, 2.0, updated.InStock)

	var movementCount int64
	require.NoError(t, db.Model(&domain.StockMovement{}).Count(&movementCount).Error)
	assert.Zero(t, movementCount)
}

func TestAdjustUnknownProduct(t *testing.T) {
	svc, _, ctx, _, node := setup(t)

	_, err := svc.Adjust(ctx, domain.AdjustRequest{
		ProductID: node.Generate().String(),
		Delta:     1,
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestAdjustRejectsZeroDelta(t *testing.T) {
	svc, db, ctx, tenantID, node := setup(t)
	product := addProduct(t, db, node, tenantID, 2)

	_, err := svc.Adjust(ctx, domain.AdjustRequest{ProductID: product.ID.String()})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestListMovementsFilters(t *testing.T) {
	svc, db, ctx, tenantID, node := setup(t)
	product := addProduct(t, db, node, tenantID, 10)
	other := addProduct(t, db, node, tenantID, 10)

	_, err := svc.Adjust(ctx, domain.AdjustRequest{ProductID: product.ID.String(), Delta: -1})
	require.NoError(t, err)
	_, err = svc.Adjust(ctx, domain.AdjustRequest{ProductID: other.ID.String(), Delta: 2})
	require.NoError(t, err)

	movements, err := svc.ListMovements(ctx, domain.ListRequest{ProductID: product.ID.String()})
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, product.ID, movements[0].ProductID)

	all, err := svc.ListMovements(ctx, domain.ListRequest{Type: domain.MovementAdjustment})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
