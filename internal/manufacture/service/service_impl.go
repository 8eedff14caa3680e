package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/gorm"

	inventorydomain "github.com/smallbiznis/backoffice/internal/inventory/domain"
	"github.com/smallbiznis/backoffice/internal/manufacture/domain"
	"github.com/smallbiznis/backoffice/internal/observability/logger"
	productdomain "github.com/smallbiznis/backoffice/internal/product/domain"
	"github.com/smallbiznis/backoffice/pkg/tenantctx"
)

type service struct {
	db    *gorm.DB
	node  *snowflake.Node
	stock inventorydomain.Ledger
}

func New(db *gorm.DB, node *snowflake.Node, stock inventorydomain.Ledger) domain.Service {
	return &service{db: db, node: node, stock: stock}
}

type parsedLine struct {
	productID snowflake.ID
	quantity  float64
}

func (s *service) Convert(ctx context.Context, req domain.ConvertRequest) (*domain.Batch, error) {
	tenantID, ok := tenantctx.TenantID(ctx)
	if !ok {
		return nil, domain.ErrInvalidTenant
	}
	if len(req.Raw) == 0 || len(req.Finished) == 0 {
		return nil, domain.ErrEmptyBatch
	}

	raw, err := parseLines(req.Raw)
	if err != nil {
		return nil, err
	}
	finished, err := parseLines(req.Finished)
	if err != nil {
		return nil, err
	}

	if err := s.checkRawStock(ctx, tenantID, raw); err != nil {
		return nil, err
	}

	batch := &domain.Batch{
		ID:       s.node.Generate(),
		TenantID: tenantID,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.WithContext(ctx).Create(batch).Error; err != nil {
			return err
		}

		batchID := batch.ID
		for _, l := range raw {
			line := domain.RawLine{
				ID:                s.node.Generate(),
				ProductionBatchID: batchID,
				ProductID:         l.productID,
				Quantity:          l.quantity,
			}
			if err := tx.WithContext(ctx).Create(&line).Error; err != nil {
				return err
			}
			_, err := s.stock.Apply(ctx, tx, inventorydomain.Change{
				TenantID:    tenantID,
				ProductID:   l.productID,
				Delta:       -l.quantity,
				Type:        inventorydomain.MovementManufacture,
				ReferenceID: &batchID,
				Description: "raw material consumed",
			})
			if err != nil {
				return err
			}
			batch.Raw = append(batch.Raw, line)
		}

		for _, l := range finished {
			line := domain.FinishedLine{
				ID:                s.node.Generate(),
				ProductionBatchID: batchID,
				ProductID:         l.productID,
				Quantity:          l.quantity,
			}
			if err := tx.WithContext(ctx).Create(&line).Error; err != nil {
				return err
			}
			_, err := s.stock.Apply(ctx, tx, inventorydomain.Change{
				TenantID:    tenantID,
				ProductID:   l.productID,
				Delta:       l.quantity,
				Type:        inventorydomain.MovementManufacture,
				ReferenceID: &batchID,
				Description: "finished goods produced",
			})
			if err != nil {
				return err
			}
			batch.Finished = append(batch.Finished, line)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("production batch converted",
		zap.String("batch_id", batch.ID.String()),
		zap.Int("raw_lines", len(batch.Raw)),
		zap.Int("finished_lines", len(batch.Finished)),
	)
	return batch, nil
}

func parseLines(lines []domain.LineRequest) ([]parsedLine, error) {
	parsed := make([]parsedLine, 0, len(lines))
	for _, l := range lines {
		productID, err := snowflake.ParseString(l.ProductID)
		if err != nil {
			return nil, domain.ErrInvalidID
		}
		if l.Quantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
		parsed = append(parsed, parsedLine{productID: productID, quantity: l.Quantity})
	}
	return parsed, nil
}

func (s *service) checkRawStock(ctx context.Context, tenantID snowflake.ID, raw []parsedLine) error {
	ids := make([]snowflake.ID, 0, len(raw))
	for _, l := range raw {
		ids = append(ids, l.productID)
	}

	var products []productdomain.Product
	err := s.db.WithContext(ctx).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Find(&products).Error
	if err != nil {
		return err
	}
	byID := make(map[snowflake.ID]productdomain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	var short []inventorydomain.InsufficientLine
	for _, l := range raw {
		p, ok := byID[l.productID]
		if !ok {
			return inventorydomain.ErrProductNotFound
		}
		if p.InStock < l.quantity {
			short = append(short, inventorydomain.InsufficientLine{
				ProductID:   p.ID,
				ProductName: p.Name,
				Requested:   l.quantity,
				Available:   p.InStock,
			})
		}
	}
	if len(short) > 0 {
		return &inventorydomain.InsufficientStockError{Lines: short}
	}
	return nil
}

func (s *service) List(ctx context.Context) ([]domain.Batch, error) {
	tenantID, ok := tenantctx.TenantID(ctx)
	if !ok {
		return nil, domain.ErrInvalidTenant
	}

	var batches []domain.Batch
	err := s.db.WithContext(ctx).
		Preload("Raw").
		Preload("Finished").
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Find(&batches).Error
	if err != nil {
		return nil, err
	}
	return batches, nil
}
