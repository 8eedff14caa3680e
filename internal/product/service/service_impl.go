package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/smallbiznis/backoffice/internal/observability/logger"
	"github.com/smallbiznis/backoffice/internal/product/domain"
	"github.com/smallbiznis/backoffice/pkg/tenantctx"
)

type service struct {
	db   *gorm.DB
	repo domain.Repository
	node *snowflake.Node
}

func New(db *gorm.DB, repo domain.Repository, node *snowflake.Node) domain.Service {
	return &service{db: db, repo: repo, node: node}
}

func (s *service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Product, error) {
	tenantID, ok := tenantctx.TenantID(ctx)
	if !ok {
		return nil, domain.ErrInvalidTenant
	}

	if strings.TrimSpace(req.Name) == "" {
		return nil, domain.ErrInvalidName
	}
	if req.Price < 0 || req.CostPrice < 0 {
		return nil, domain.ErrInvalidPrice
	}
	if req.InStock < 0 {
		return nil, domain.ErrInvalidStock
	}

	product := &domain.Product{
		ID:          s.node.Generate(),
		TenantID:    tenantID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Unit:        req.Unit,
		Category:    req.Category,
		Price:       req.Price,
		CostPrice:   req.CostPrice,
		InStock:     req.InStock,
	}
	if err := s.repo.Create(ctx, s.db, product); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("product created",
		zap.String("product_id", product.ID.String()),
		zap.String("category", product.Category),
	)
	return product, nil
}

func (s *service) List(ctx context.Context, req domain.ListRequest) ([]domain.Product, error) {
	tenantID, ok := tenantctx.TenantID(ctx)
	if !ok {
		return nil, domain.ErrInvalidTenant
	}
	return s.repo.List(ctx, s.db, tenantID, req)
}

func (s *service) Get(ctx context.Context, id string) (*domain.Product, error) {
	tenantID, ok := tenantctx.TenantID(ctx)
	if !ok {
		return nil, domain.ErrInvalidTenant
	}
	productID, err := snowflake.ParseString(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	return s.repo.FindByID(ctx, s.db, tenantID, productID)
}

func (s *service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Product, error) {
	tenantID, ok := tenantctx.TenantID(ctx)
	if !ok {
		return nil, domain.ErrInvalidTenant
	}
	productID, err := snowflake.ParseString(req.ID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	product, err := s.repo.FindByID(ctx, s.db, tenantID, productID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, domain.ErrInvalidName
		}
		product.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		product.Description = req.Description
	}
	if req.Unit != nil {
		product.Unit = *req.Unit
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, domain.ErrInvalidPrice
		}
		product.Price = *req.Price
	}
	if req.CostPrice != nil {
		if *req.CostPrice < 0 {
			return nil, domain.ErrInvalidPrice
		}
		product.CostPrice = *req.CostPrice
	}

	if err := s.repo.Update(ctx, s.db, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	tenantID, ok := tenantctx.TenantID(ctx)
	if !ok {
		return domain.ErrInvalidTenant
	}
	productID, err := snowflake.ParseString(id)
	if err != nil {
		return domain.ErrInvalidID
	}

	items, err := s.repo.CountOrderItems(ctx, s.db, tenantID, productID)
	if err != nil {
		return err
	}
	if items > 0 {
		return &domain.InUseError{ProductID: productID, Items: items}
	}

	affected, err := s.repo.Delete(ctx, s.db, tenantID, productID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	logger.FromContext(ctx).Info("product deleted", zap.String("product_id", productID.String()))
	return nil
}
