package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/smallbiznis/backoffice/internal/inventory/domain"
	"github.com/smallbiznis/backoffice/internal/observability/logger"
	"github.com/smallbiznis/backoffice/pkg/tenantctx"
)

const defaultMovementLimit = 100

type service struct {
	db   *gorm.DB
	node *snowflake.Node
}

func New(db *gorm.DB, node *snowflake.Node) domain.Service {
	return &service{db: db, node: node}
}

// Apply adjusts stock with a guarded update so two concurrent writers can
// never drive in_stock below zero. A zero row count means either the
// product is gone or the guard refused the delta; a follow-up read tells
// the two apart.
func (s *service) Apply(ctx context.Context, tx *gorm.DB, change domain.Change) (*domain.StockMovement, error) {
	res := tx.WithContext(ctx).Exec(
		"UPDATE products SET in_stock = in_stock + ?, updated_at = CURRENT_TIMESTAMP WHERE tenant_id = ? AND id = ? AND in_stock + ? >= 0",
		change.Delta, change.TenantID, change.ProductID, change.Delta,
	)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		var product struct {
			Name    string
			InStock float64
		}
		err := tx.WithContext(ctx).
			Table("products").
			Select("name", "in_stock").
			Where("tenant_id = ? AND id = ?", change.TenantID, change.ProductID).
			Take(&product).Error
		if err != nil {
			return nil, domain.ErrProductNotFound
		}
		return nil, &domain.InsufficientStockError{Lines: []domain.InsufficientLine{{
			ProductID:   change.ProductID,
			ProductName: product.Name,
			Requested:   -change.Delta,
			Available:   product.InStock,
		}}}
	}

	movement := &domain.StockMovement{
		ID:          s.node.Generate(),
		TenantID:    change.TenantID,
		ProductID:   change.ProductID,
		Type:        change.Type,
		Quantity:    change.Delta,
		ReferenceID: change.ReferenceID,
		Description: change.Description,
	}
	if err := tx.WithContext(ctx).Create(movement).Error; err != nil {
		return nil, err
	}
	return movement, nil
}

func (s *service) ListMovements(ctx context.Context, req domain.ListRequest) ([]domain.StockMovement, error) {
	tenantID, ok := tenantctx.TenantID(ctx)
	if !ok {
		return nil, domain.ErrInvalidTenant
	}

	q := s.db.WithContext(ctx).Where("tenant_id = ?", tenantID)
	if req.ProductID != "" {
		productID, err := snowflake.ParseString(req.ProductID)
		if err != nil {
			return nil, domain.ErrInvalidID
		}
		q = q.Where("product_id = ?", productID)
	}
	if req.Type != "" {
		q = q.Where("type = ?", req.Type)
	}
	limit := req.Limit
	if limit <= 0 {
		limit = defaultMovementLimit
	}

	var movements []domain.StockMovement
	if err := q.Order("created_at DESC").Limit(limit).Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

func (s *service) Adjust(ctx context.Context, req domain.AdjustRequest) (*domain.StockMovement, error) {
	tenantID, ok := tenantctx.TenantID(ctx)
	if !ok {
		return nil, domain.ErrInvalidTenant
	}
	productID, err := snowflake.ParseString(req.ProductID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	if req.Delta == 0 {
		return nil, domain.ErrInvalidQuantity
	}

	change := domain.Change{
		TenantID:    tenantID,
		ProductID:   productID,
		Delta:       req.Delta,
		Type:        domain.MovementAdjustment,
		Description: req.Description,
	}
	var movement *domain.StockMovement
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		movement, txErr = s.Apply(ctx, tx, change)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("stock adjusted",
		zap.String("product_id", productID.String()),
		zap.Float64("delta", req.Delta),
	)
	return movement, nil
}
