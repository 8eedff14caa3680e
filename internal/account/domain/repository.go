package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, account *Account) error
	FindByID(ctx context.Context, db *gorm.DB, tenantID, id snowflake.ID) (*Account, error)
	List(ctx context.Context, db *gorm.DB, tenantID snowflake.ID, filter ListRequest) ([]Account, error)
	Update(ctx context.Context, db *gorm.DB, account *Account) error
	Delete(ctx context.Context, db *gorm.DB, tenantID, id snowflake.ID) (int64, error)
	CountOrders(ctx context.Context, db *gorm.DB, tenantID, id snowflake.ID) (int64, error)
}
