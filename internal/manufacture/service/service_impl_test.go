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

	inventorydomain "github.com/smallbiznis/backoffice/internal/inventory/domain"
	inventoryservice "github.com/smallbiznis/backoffice/internal/inventory/service"
	"github.com/smallbiznis/backoffice/internal/manufacture/domain"
	productdomain "github.com/smallbiznis/backoffice/internal/product/domain"
	"github.com/smallbiznis/backoffice/pkg/tenantctx"
)

type fixture struct {
	db       *gorm.DB
	node     *snowflake.Node
	svc      domain.Service
	ctx      context.Context
	tenantID snowflake.ID
}

func setup(t *testing.T) *fixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_loc=auto", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&productdomain.Product{},
		&domain.Batch{},
		&domain.RawLine{},
		&domain.FinishedLine{},
		&inventorydomain.StockMovement{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	tenantID := node.Generate()
	return &fixture{
		db:       db,
		node:     node,
		svc:      New(db, node, inventoryservice.New(db, node)),
		ctx:      tenantctx.WithTenantID(context.Background(), tenantID),
		tenantID: tenantID,
	}
}

func (f *fixture) addProduct(t *testing.T, name string, inStock float64) productdomain.Product {
	t.Helper()
	product := productdomain.Product{
		ID:       f.node.Generate(),
		TenantID: f.tenantID,
		Name:     name,
		InStock:  inStock,
	}
	require.NoError(t, f.db.Create(&product).Error)
	return product
}

func (f *fixture) productStock(t *testing.T, id snowflake.ID) float64 {
	t.Helper()
	var product productdomain.Product
	require.NoError(t, f.db.Where("id = ?", id).First(&product).Error)
	return product.InStock
}

func TestConvert(t *testing.T) {
	f := setup(t)
	beans := f.addProduct(t, "Beans", 50)
	ground := f.addProduct(t, "Ground Coffee", 0)

	batch, err := f.svc.Convert(f.ctx, domain.ConvertRequest{
		Raw: []domain.LineRequest{
			{ProductID: beans.ID.String(), Quantity: 10},
		},
		Finished: []domain.LineRequest{
			{ProductID: ground.ID.String(), Quantity: 2},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 40.0, f.productStock(t, beans.ID))
	assert.Equal(t, 2.0, f.productStock(t, ground.ID))
	require.Len(t, batch.Raw, 1)
	require.Len(t, batch.Finished, 1)

	var movements []inventorydomain.StockMovement
	require.NoError(t, f.db.Where("reference_id = ?", batch.ID).Order("quantity ASC").Find(&movements).Error)
	require.Len(t, movements, 2)
	assert.Equal(t, inventorydomain.MovementManufacture, movements[0].Type)
	assert.Equal(t, -10.0, movements[0].Quantity)
	assert.Equal(t, 2.0, movements[1].Quantity)
}

func TestConvertInsufficientRawStock(t *testing.T) {
	f := setup(t)
	beans := f.addProduct(t, "Beans", 5)
	ground := f.addProduct(t, "Ground Coffee", 0)

	_, err := f.svc.Convert(f.ctx, domain.ConvertRequest{
		Raw: []domain.LineRequest{
			{ProductID: beans.ID.String(), Quantity: 10},
		},
		Finished: []domain.LineRequest{
			{ProductID: ground.ID.String(), Quantity: 2},
		},
	})

	var stockErr *inventorydomain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	require.Len(t, stockErr.Lines, 1)
	assert.Equal(t, "Beans", stockErr.Lines[0].ProductName)

	assert.Equal(t, 5.0, f.productStock(t, beans.ID))
	assert.Equal(t, 0.0, f.productStock(t, ground.ID))

	var batchCount int64
	require.NoError(t, f.db.Model(&domain.Batch{}).Count(&batchCount).Error)
	assert.Zero(t, batchCount)
}

func TestConvertRequiresBothSides(t *testing.T) {
	f := setup(t)
	beans := f.addProduct(t, "Beans", 5)

	_, err := f.svc.Convert(f.ctx, domain.ConvertRequest{
		Raw: []domain.LineRequest{
			{ProductID: beans.ID.String(), Quantity: 1},
		},
	})
	assert.ErrorIs(t, err, domain.ErrEmptyBatch)
}

func TestListBatches(t *testing.T) {
	f := setup(t)
	beans := f.addProduct(t, "Beans", 50)
	ground := f.addProduct(t, "Ground Coffee", 0)

	_, err := f.svc.Convert(f.ctx, domain.ConvertRequest{
		Raw:      []domain.LineRequest{{ProductID: beans.ID.String(), Quantity: 10}},
		Finished: []domain.LineRequest{{ProductID: ground.ID.String(), Quantity: 2}},
	})
	require.NoError(t, err)

	batches, err := f.svc.List(f.ctx)
	require.NoError(t, err)
	require.Len(t, batches, 1)
	assert.Len(t, batches[0].Raw, 1)
	assert.Len(t, batches[0].Finished, 1)
}
