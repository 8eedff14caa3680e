package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	"github.com/smallbiznis/backoffice/internal/account/domain"
)

type repository struct{}

func New() domain.Repository {
	return &repository{}
}

func (r *repository) Create(ctx context.Context, db *gorm.DB, account *domain.Account) error {
	return db.WithContext(ctx).Create(account).Error
}

func (r *repository) FindByID(ctx context.Context, db *gorm.DB, tenantID, id snowflake.ID) (*domain.Account, error) {
	var account domain.Account
	err := db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *repository) List(ctx context.Context, db *gorm.DB, tenantID snowflake.ID, filter domain.ListRequest) ([]domain.Account, error) {
	q := db.WithContext(ctx).Where("tenant_id = ?", tenantID)
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var accounts []domain.Account
	if err := q.Order("created_at DESC").Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *repository) Update(ctx context.Context, db *gorm.DB, account *domain.Account) error {
	return db.WithContext(ctx).Save(account).Error
}

func (r *repository) Delete(ctx context.Context, db *gorm.DB, tenantID, id snowflake.ID) (int64, error) {
	res := db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&domain.Account{})
	return res.RowsAffected, res.Error
}

func (r *repository) CountOrders(ctx context.Context, db *gorm.DB, tenantID, id snowflake.ID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Table("orders").
		Where("tenant_id = ? AND account_id = ?", tenantID, id).
		Count(&count).Error
	return count, err
}
