package service

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/smallbiznis/backoffice/internal/company/domain"
	"github.com/smallbiznis/backoffice/internal/observability/logger"
	"github.com/smallbiznis/backoffice/pkg/tenantctx"
)

type service struct {
	db   *gorm.DB
	node *snowflake.Node
}

func New(db *gorm.DB, node *snowflake.Node) domain.Service {
	return &service{db: db, node: node}
}

func (s *service) Get(ctx context.Context) (*domain.Company, error) {
	tenantID, ok := tenantctx.TenantID(ctx)
	if !ok {
		return nil, domain.ErrInvalidTenant
	}

	var company domain.Company
	err := s.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		First(&company).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &company, nil
}

func (s *service) Upsert(ctx context.Context, req domain.UpsertRequest) (*domain.Company, error) {
	tenantID, ok := tenantctx.TenantID(ctx)
	if !ok {
		return nil, domain.ErrInvalidTenant
	}

	var company domain.Company
	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.WithContext(ctx).
			Where("tenant_id = ?", tenantID).
			First(&company).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			company = domain.Company{
				ID:       s.node.Generate(),
				TenantID: tenantID,
			}
		} else if err != nil {
			return err
		}

		if req.Name != nil {
			company.Name = *req.Name
		}
		if req.Address != nil {
			company.Address = *req.Address
		}
		if req.Phone != nil {
			company.Phone = *req.Phone
		}
		if req.Email != nil {
			company.Email = *req.Email
		}
		if req.Currency != nil {
			company.Currency = *req.Currency
		}
		if req.Metadata != nil {
			company.Metadata = req.Metadata
		}
		return tx.WithContext(ctx).Save(&company).Error
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("company settings saved", zap.String("company_id", company.ID.String()))
	return &company, nil
}
