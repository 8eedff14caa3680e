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

	orderdomain "github.com/smallbiznis/backoffice/internal/order/domain"
	"github.com/smallbiznis/backoffice/internal/product/domain"
	"github.com/smallbiznis/backoffice/internal/product/repository"
	"github.com/smallbiznis/backoffice/pkg/tenantctx"
)

func setup(t *testing.T) (domain.Service, *gorm.DB, context.Context, snowflake.ID) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_loc=auto", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Product{}, &orderdomain.Order{}, &orderdomain.OrderItem{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	tenantID := node.Generate()
	ctx := tenantctx.WithTenantID(context.Background(), tenantID)
	return New(db, repository.New(), node), db, ctx, tenantID
}

func TestCreateProduct(t *testing.T) {
	svc, _, ctx, _ := setup(t)

	product, err := svc.Create(ctx, domain.CreateRequest{
		Name:      "Widget",
		Unit:      "pcs",
		Category:  "Goods",
		Price:     5,
		CostPrice: 2,
		InStock:   10,
	})
	require.NoError(t, err)
	assert.Equal(t, 10.0, product.InStock)

	_, err = svc.Create(ctx, domain.CreateRequest{Name: "Bad", Price: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)

	_, err = svc.Create(ctx, domain.CreateRequest{Name: "Bad", InStock: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidStock)
}

func TestUpdateNeverTouchesStock(t *testing.T) {
	svc, _, ctx, _ := setup(t)

	product, err := svc.Create(ctx, domain.CreateRequest{Name: "Widget", InStock: 10})
	require.NoError(t, err)

	name := "Widget Pro"
	price := 9.0
	updated, err := svc.Update(ctx, domain.UpdateRequest{
		ID:    product.ID.String(),
		Name:  &name,
		Price: &price,
	})
	require.NoError(t, err)
	assert.Equal(t, "Widget Pro", updated.Name)
	assert.Equal(t, 9.0, updated.Price)
	assert.Equal(t, 10.0, updated.InStock)
}

func TestDeleteBlockedByOrderItems(t *testing.T) {
	svc, db, ctx, tenantID := setup(t)

	product, err := svc.Create(ctx, domain.CreateRequest{Name: "Widget", InStock: 10})
	require.NoError(t, err)

	order := orderdomain.Order{
		ID:        snowflake.ID(1),
		TenantID:  tenantID,
		AccountID: snowflake.ID(2),
		Status:    orderdomain.StatusPending,
		Type:      orderdomain.TypeSale,
	}
	require.NoError(t, db.Create(&order).Error)
	require.NoError(t, db.Create(&orderdomain.OrderItem{
		ID:        snowflake.ID(3),
		OrderID:   order.ID,
		ProductID: product.ID,
		Quantity:  1,
		Price:     5,
	}).Error)

	err = svc.Delete(ctx, product.ID.String())
	var inUse *domain.InUseError
	require.ErrorAs(t, err, &inUse)
	assert.Equal(t, int64(1), inUse.Items)
}

func TestDeleteProduct(t *testing.T) {
	svc, _, ctx, _ := setup(t)

	product, err := svc.Create(ctx, domain.CreateRequest{Name: "Widget"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, product.ID.String()))
	err = svc.Delete(ctx, product.ID.String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListFiltersByCategoryAndSearch(t *testing.T) {
	svc, _, ctx, _ := setup(t)

	_, err := svc.Create(ctx, domain.CreateRequest{Name: "Arabica Beans", Category: "Raw"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, domain.CreateRequest{Name: "Drip Bag", Category: "Finished"})
	require.NoError(t, err)

	raw, err := svc.List(ctx, domain.ListRequest{Category: "Raw"})
	require.NoError(t, err)
	require.Len(t, raw, 1)
	assert.Equal(t, "Arabica Beans", raw[0].Name)

	found, err := svc.List(ctx, domain.ListRequest{Search: "Drip"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Drip Bag", found[0].Name)
}
