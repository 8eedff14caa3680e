package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/smallbiznis/backoffice/internal/account/domain"
	"github.com/smallbiznis/backoffice/internal/observability/logger"
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

func (s *service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Account, error) {
	tenantID, ok := tenantctx.TenantID(ctx)
	if !ok {
		return nil, domain.ErrInvalidTenant
	}

	if strings.TrimSpace(req.Name) == "" {
		return nil, domain.ErrInvalidName
	}
	if !domain.ValidType(req.Type) {
		return nil, domain.ErrInvalidType
	}
	status := req.Status
	if status == "" {
		status = domain.StatusActive
	}
	if !domain.ValidStatus(status) {
		return nil, domain.ErrInvalidStatus
	}

	account := &domain.Account{
		ID:       s.node.Generate(),
		TenantID: tenantID,
		Name:     strings.TrimSpace(req.Name),
		Email:    req.Email,
		Phone:    req.Phone,
		Status:   status,
		Type:     req.Type,
	}
	if err := s.repo.Create(ctx, s.db, account); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("account created",
		zap.String("account_id", account.ID.String()),
		zap.String("account_type", string(account.Type)),
	)
	return account, nil
}

func (s *service) List(ctx context.Context, req domain.ListRequest) ([]domain.Account, error) {
	tenantID, ok := tenantctx.TenantID(ctx)
	if !ok {
		return nil, domain.ErrInvalidTenant
	}
	if req.Type != "" && !domain.ValidType(req.Type) {
		return nil, domain.ErrInvalidType
	}
	if req.Status != "" && !domain.ValidStatus(req.Status) {
		return nil, domain.ErrInvalidStatus
	}
	return s.repo.List(ctx, s.db, tenantID, req)
}

func (s *service) Get(ctx context.Context, id string) (*domain.Account, error) {
	tenantID, ok := tenantctx.TenantID(ctx)
	if !ok {
		return nil, domain.ErrInvalidTenant
	}
	accountID, err := snowflake.ParseString(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	return s.repo.FindByID(ctx, s.db, tenantID, accountID)
}

func (s *service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Account, error) {
	tenantID, ok := tenantctx.TenantID(ctx)
	if !ok {
		return nil, domain.ErrInvalidTenant
	}
	accountID, err := snowflake.ParseString(req.ID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	account, err := s.repo.FindByID(ctx, s.db, tenantID, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, domain.ErrInvalidName
		}
		account.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		account.Email = req.Email
	}
	if req.Phone != nil {
		account.Phone = req.Phone
	}
	if req.Status != nil {
		if !domain.ValidStatus(*req.Status) {
			return nil, domain.ErrInvalidStatus
		}
		account.Status = *req.Status
	}
	if req.Type != nil {
		if !domain.ValidType(*req.Type) {
			return nil, domain.ErrInvalidType
		}
		account.Type = *req.Type
	}

	if err := s.repo.Update(ctx, s.db, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	tenantID, ok := tenantctx.TenantID(ctx)
	if !ok {
		return domain.ErrInvalidTenant
	}
	accountID, err := snowflake.ParseString(id)
	if err != nil {
		return domain.ErrInvalidID
	}

	orders, err := s.repo.CountOrders(ctx, s.db, tenantID, accountID)
	if err != nil {
		return err
	}
	if orders > 0 {
		return &domain.HasOrdersError{AccountID: accountID, Orders: orders}
	}

	affected, err := s.repo.Delete(ctx, s.db, tenantID, accountID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	logger.FromContext(ctx).Info("account deleted", zap.String("account_id", accountID.String()))
	return nil
}

func (s *service) HasOrders(ctx context.Context, id string) (bool, error) {
	tenantID, ok := tenantctx.TenantID(ctx)
	if !ok {
		return false, domain.ErrInvalidTenant
	}
	accountID, err := snowflake.ParseString(id)
	if err != nil {
		return false, domain.ErrInvalidID
	}
	if _, err := s.repo.FindByID(ctx, s.db, tenantID, accountID); err != nil {
		return false, err
	}
	orders, err := s.repo.CountOrders(ctx, s.db, tenantID, accountID)
	if err != nil {
		return false, err
	}
	return orders > 0, nil
}
