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

	"github.com/smallbiznis/backoffice/internal/account/domain"
	"github.com/smallbiznis/backoffice/internal/account/repository"
	orderdomain "github.com/smallbiznis/backoffice/internal/order/domain"
	"github.com/smallbiznis/backoffice/pkg/tenantctx"
)

func setup(t *testing.T) (domain.Service, *gorm.DB, context.Context, snowflake.ID) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_loc=auto", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Account{}, &orderdomain.Order{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	tenantID := node.Generate()
	ctx := tenantctx.WithTenantID(context.Background(), tenantID)
	return New(db, repository.New(), node), db, ctx, tenantID
}

func TestCreateAndGetAccount(t *testing.T) {
	svc, _, ctx, _ := setup(t)

	created, err := svc.Create(ctx, domain.CreateRequest{
		Name: "Corner Cafe",
		Type: domain.TypeCustomer,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, created.Status)

	found, err := svc.Get(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Corner Cafe", found.Name)
}

func TestCreateValidation(t *testing.T) {
	svc, _, ctx, _ := setup(t)

	_, err := svc.Create(ctx, domain.CreateRequest{Name: "  ", Type: domain.TypeCustomer})
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	_, err = svc.Create(ctx, domain.CreateRequest{Name: "X", Type: "reseller"})
	assert.ErrorIs(t, err, domain.ErrInvalidType)
}

func TestListFiltersByType(t *testing.T) {
	svc, _, ctx, _ := setup(t)

	_, err := svc.Create(ctx, domain.CreateRequest{Name: "Cafe", Type: domain.TypeCustomer})
	require.NoError(t, err)
	_, err = svc.Create(ctx, domain.CreateRequest{Name: "Estate", Type: domain.TypeSupplier})
	require.NoError(t, err)

	suppliers, err := svc.List(ctx, domain.ListRequest{Type: domain.TypeSupplier})
	require.NoError(t, err)
	require.Len(t, suppliers, 1)
	assert.Equal(t, "Estate", suppliers[0].Name)
}

func TestDeleteBlockedByOrders(t *testing.T) {
	svc, db, ctx, tenantID := setup(t)

	account, err := svc.Create(ctx, domain.CreateRequest{Name: "Cafe", Type: domain.TypeCustomer})
	require.NoError(t, err)

	require.NoError(t, db.Create(&orderdomain.Order{
		ID:        snowflake.ID(1),
		TenantID:  tenantID,
		AccountID: account.ID,
		Status:    orderdomain.StatusPending,
		Type:      orderdomain.TypeSale,
	}).Error)

	err = svc.Delete(ctx, account.ID.String())
	var hasOrders *domain.HasOrdersError
	require.ErrorAs(t, err, &hasOrders)
	assert.Equal(t, int64(1), hasOrders.Orders)

	ok, err := svc.HasOrders(ctx, account.ID.String())
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDeleteAccount(t *testing.T) {
	svc, _, ctx, _ := setup(t)

	account, err := svc.Create(ctx, domain.CreateRequest{Name: "Cafe", Type: domain.TypeCustomer})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, account.ID.String()))
	_, err = svc.Get(ctx, account.ID.String())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = svc.Delete(ctx, account.ID.String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAccountsScopedToTenant(t *testing.T) {
	svc, _, ctx, _ := setup(t)

	account, err := svc.Create(ctx, domain.CreateRequest{Name: "Cafe", Type: domain.TypeCustomer})
	require.NoError(t, err)

	otherCtx := tenantctx.WithTenantID(context.Background(), snowflake.ID(999))
	_, err = svc.Get(otherCtx, account.ID.String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
