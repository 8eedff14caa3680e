package service

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/smallbiznis/backoffice/internal/ledger/domain"
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

func (s *service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Transaction, error) {
	tenantID, ok := tenantctx.TenantID(ctx)
	if !ok {
		return nil, domain.ErrInvalidTenant
	}
	if !domain.ValidType(req.Type) {
		return nil, domain.ErrInvalidType
	}
	if req.Amount < 0 {
		return nil, domain.ErrInvalidAmount
	}
	if req.PaidAmount < 0 || req.PaidAmount > req.Amount {
		return nil, &domain.PaymentError{
			Amount:    req.Amount,
			Paid:      req.PaidAmount,
			Remaining: req.Amount - req.PaidAmount,
		}
	}

	txn := &domain.Transaction{
		ID:          s.node.Generate(),
		TenantID:    tenantID,
		Description: req.Description,
		Category:    req.Category,
		Type:        req.Type,
		Amount:      req.Amount,
		PaidAmount:  req.PaidAmount,
		Status:      domain.DeriveStatus(req.PaidAmount, req.Amount),
	}
	if err := s.db.WithContext(ctx).Create(txn).Error; err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("transaction created",
		zap.String("transaction_id", txn.ID.String()),
		zap.String("type", string(txn.Type)),
		zap.Float64("amount", txn.Amount),
	)
	return txn, nil
}

func (s *service) List(ctx context.Context, req domain.ListRequest) ([]domain.Transaction, error) {
	tenantID, ok := tenantctx.TenantID(ctx)
	if !ok {
		return nil, domain.ErrInvalidTenant
	}

	q := s.db.WithContext(ctx).Where("tenant_id = ?", tenantID)
	if req.Type != "" {
		if !domain.ValidType(req.Type) {
			return nil, domain.ErrInvalidType
		}
		q = q.Where("type = ?", req.Type)
	}
	if req.Category != "" {
		q = q.Where("category = ?", req.Category)
	}
	if req.Status != "" {
		q = q.Where("status = ?", req.Status)
	}

	var txns []domain.Transaction
	if err := q.Order("created_at DESC").Find(&txns).Error; err != nil {
		return nil, err
	}
	return txns, nil
}

func (s *service) Get(ctx context.Context, id string) (*domain.Transaction, error) {
	tenantID, ok := tenantctx.TenantID(ctx)
	if !ok {
		return nil, domain.ErrInvalidTenant
	}
	txnID, err := snowflake.ParseString(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	return s.find(ctx, tenantID, txnID)
}

func (s *service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Transaction, error) {
	tenantID, ok := tenantctx.TenantID(ctx)
	if !ok {
		return nil, domain.ErrInvalidTenant
	}
	txnID, err := snowflake.ParseString(req.ID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	txn, err := s.find(ctx, tenantID, txnID)
	if err != nil {
		return nil, err
	}

	if req.Description != nil {
		txn.Description = *req.Description
	}
	if req.Category != nil {
		txn.Category = *req.Category
	}
	if req.Amount != nil {
		// order-linked entries mirror the order total and are only
		// re-priced through the order itself
		if txn.OrderID != nil {
			return nil, domain.ErrOrderLinked
		}
		if *req.Amount < 0 {
			return nil, domain.ErrInvalidAmount
		}
		txn.Amount = *req.Amount
	}
	if req.PaidAmount != nil {
		txn.PaidAmount = *req.PaidAmount
	}
	if txn.PaidAmount < 0 || txn.PaidAmount > txn.Amount {
		return nil, &domain.PaymentError{
			Amount:    txn.Amount,
			Paid:      txn.PaidAmount,
			Remaining: txn.Amount - txn.PaidAmount,
		}
	}
	txn.Status = domain.DeriveStatus(txn.PaidAmount, txn.Amount)

	if err := s.db.WithContext(ctx).Save(txn).Error; err != nil {
		return nil, err
	}
	return txn, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	tenantID, ok := tenantctx.TenantID(ctx)
	if !ok {
		return domain.ErrInvalidTenant
	}
	txnID, err := snowflake.ParseString(id)
	if err != nil {
		return domain.ErrInvalidID
	}

	txn, err := s.find(ctx, tenantID, txnID)
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Delete(txn).Error; err != nil {
		return err
	}

	logger.FromContext(ctx).Info("transaction deleted", zap.String("transaction_id", txnID.String()))
	return nil
}

func (s *service) find(ctx context.Context, tenantID, id snowflake.ID) (*domain.Transaction, error) {
	var txn domain.Transaction
	err := s.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&txn).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &txn, nil
}
