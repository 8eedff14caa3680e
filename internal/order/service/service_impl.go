package service

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/gorm"

	inventorydomain "github.com/smallbiznis/backoffice/internal/inventory/domain"
	ledgerdomain "github.com/smallbiznis/backoffice/internal/ledger/domain"
	"github.com/smallbiznis/backoffice/internal/observability/logger"
	"github.com/smallbiznis/backoffice/internal/order/domain"
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
	price     float64
	sellPrice *float64
}

func (s *service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Order, error) {
	tenantID, ok := tenantctx.TenantID(ctx)
	if !ok {
		return nil, domain.ErrInvalidTenant
	}
	accountID, err := snowflake.ParseString(req.AccountID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	if !domain.ValidType(req.Type) {
		return nil, domain.ErrInvalidType
	}
	if len(req.Lines) == 0 {
		return nil, domain.ErrEmptyOrder
	}

	lines := make([]parsedLine, 0, len(req.Lines))
	var lineTotal float64
	for _, l := range req.Lines {
		productID, err := snowflake.ParseString(l.ProductID)
		if err != nil {
			return nil, domain.ErrInvalidID
		}
		if l.Quantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
		if l.Price < 0 {
			return nil, domain.ErrInvalidPrice
		}
		lines = append(lines, parsedLine{
			productID: productID,
			quantity:  l.Quantity,
			price:     l.Price,
			sellPrice: l.SellPrice,
		})
		lineTotal += l.Quantity * l.Price
	}

	total := req.TotalAmount
	if total <= 0 {
		total = lineTotal
	}
	if req.PaidAmount < 0 || req.PaidAmount > total {
		return nil, &ledgerdomain.PaymentError{
			Amount:    total,
			Paid:      req.PaidAmount,
			Remaining: total - req.PaidAmount,
		}
	}

	if req.Type == domain.TypeSale {
		if err := s.checkStock(ctx, tenantID, lines); err != nil {
			return nil, err
		}
	}

	order := &domain.Order{
		ID:          s.node.Generate(),
		TenantID:    tenantID,
		AccountID:   accountID,
		TotalAmount: total,
		Status:      domain.StatusPending,
		Type:        req.Type,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var account struct{ ID snowflake.ID }
		err := tx.WithContext(ctx).
			Table("accounts").
			Select("id").
			Where("tenant_id = ? AND id = ?", tenantID, accountID).
			Take(&account).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrAccountNotFound
			}
			return err
		}

		if err := tx.WithContext(ctx).Create(order).Error; err != nil {
			return err
		}

		for _, l := range lines {
			item := domain.OrderItem{
				ID:        s.node.Generate(),
				OrderID:   order.ID,
				ProductID: l.productID,
				Quantity:  l.quantity,
				Price:     l.price,
			}
			if err := tx.WithContext(ctx).Create(&item).Error; err != nil {
				return err
			}

			if req.Type == domain.TypePurchase {
				if err := s.repriceProduct(ctx, tx, tenantID, l); err != nil {
					return err
				}
			}

			if err := s.applyLine(ctx, tx, order, l.productID, l.quantity, false); err != nil {
				return err
			}
		}

		txn := pairedTransaction(s.node.Generate(), order, req.PaidAmount)
		return tx.WithContext(ctx).Create(txn).Error
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("order created",
		zap.String("order_id", order.ID.String()),
		zap.String("order_type", string(order.Type)),
		zap.Float64("total_amount", order.TotalAmount),
		zap.Int("lines", len(lines)),
	)
	return order, nil
}

// checkStock reports every short line at once so the caller can fix the
// whole order in one go. The guarded update in Apply still protects
// against races after this passes.
func (s *service) checkStock(ctx context.Context, tenantID snowflake.ID, lines []parsedLine) error {
	ids := make([]snowflake.ID, 0, len(lines))
	for _, l := range lines {
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
	for _, l := range lines {
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

// repriceProduct refreshes cost price from the purchase line and, when the
// caller supplied one, the sell price.
func (s *service) repriceProduct(ctx context.Context, tx *gorm.DB, tenantID snowflake.ID, l parsedLine) error {
	updates := map[string]any{"cost_price": l.price}
	if l.sellPrice != nil && *l.sellPrice >= 0 {
		updates["price"] = *l.sellPrice
	}
	return tx.WithContext(ctx).
		Table("products").
		Where("tenant_id = ? AND id = ?", tenantID, l.productID).
		Updates(updates).Error
}

// applyLine moves stock for one order line. reverse undoes the original
// direction when an order is cancelled or deleted.
func (s *service) applyLine(ctx context.Context, tx *gorm.DB, order *domain.Order, productID snowflake.ID, quantity float64, reverse bool) error {
	delta := quantity
	if order.Type == domain.TypeSale {
		delta = -quantity
	}
	movementType := inventorydomain.MovementSale
	if order.Type == domain.TypePurchase {
		movementType = inventorydomain.MovementPurchase
	}
	description := string(order.Type) + " order"
	if reverse {
		delta = -delta
		movementType = inventorydomain.MovementReversal
		description = string(order.Type) + " order reversed"
	}

	orderID := order.ID
	_, err := s.stock.Apply(ctx, tx, inventorydomain.Change{
		TenantID:    order.TenantID,
		ProductID:   productID,
		Delta:       delta,
		Type:        movementType,
		ReferenceID: &orderID,
		Description: description,
	})
	return err
}

func pairedTransaction(id snowflake.ID, order *domain.Order, paid float64) *ledgerdomain.Transaction {
	txnType := ledgerdomain.TypeIncome
	category := ledgerdomain.CategorySelling
	description := "Sale order"
	if order.Type == domain.TypePurchase {
		txnType = ledgerdomain.TypeExpense
		category = ledgerdomain.CategoryPurchase
		description = "Purchase order"
	}
	orderID := order.ID
	return &ledgerdomain.Transaction{
		ID:          id,
		TenantID:    order.TenantID,
		OrderID:     &orderID,
		Description: description,
		Category:    category,
		Type:        txnType,
		Amount:      order.TotalAmount,
		PaidAmount:  paid,
		Status:      ledgerdomain.DeriveStatus(paid, order.TotalAmount),
	}
}

func (s *service) List(ctx context.Context, req domain.ListRequest) ([]domain.Summary, error) {
	tenantID, ok := tenantctx.TenantID(ctx)
	if !ok {
		return nil, domain.ErrInvalidTenant
	}

	q := s.db.WithContext(ctx).
		Table("orders").
		Select("orders.*, accounts.name AS account_name, COALESCE(transactions.paid_amount, 0) AS paid_amount, COALESCE(transactions.status, '') AS payment_status").
		Joins("JOIN accounts ON accounts.id = orders.account_id").
		Joins("LEFT JOIN transactions ON transactions.order_id = orders.id").
		Where("orders.tenant_id = ?", tenantID)
	if req.Type != "" {
		if !domain.ValidType(req.Type) {
			return nil, domain.ErrInvalidType
		}
		q = q.Where("orders.type = ?", req.Type)
	}
	if req.Status != "" {
		if !domain.ValidStatus(req.Status) {
			return nil, domain.ErrInvalidStatus
		}
		q = q.Where("orders.status = ?", req.Status)
	}

	var summaries []domain.Summary
	if err := q.Order("orders.created_at DESC").Scan(&summaries).Error; err != nil {
		return nil, err
	}
	return summaries, nil
}

func (s *service) Get(ctx context.Context, id string) (*domain.Summary, error) {
	tenantID, ok := tenantctx.TenantID(ctx)
	if !ok {
		return nil, domain.ErrInvalidTenant
	}
	orderID, err := snowflake.ParseString(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	var summary domain.Summary
	err = s.db.WithContext(ctx).
		Table("orders").
		Select("orders.*, accounts.name AS account_name, COALESCE(transactions.paid_amount, 0) AS paid_amount, COALESCE(transactions.status, '') AS payment_status").
		Joins("JOIN accounts ON accounts.id = orders.account_id").
		Joins("LEFT JOIN transactions ON transactions.order_id = orders.id").
		Where("orders.tenant_id = ? AND orders.id = ?", tenantID, orderID).
		Take(&summary).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &summary, nil
}

func (s *service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Order, error) {
	tenantID, ok := tenantctx.TenantID(ctx)
	if !ok {
		return nil, domain.ErrInvalidTenant
	}
	orderID, err := snowflake.ParseString(req.ID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	if req.Status != nil && !domain.ValidStatus(*req.Status) {
		return nil, domain.ErrInvalidStatus
	}

	var order domain.Order
	err = s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.WithContext(ctx).
			Where("tenant_id = ? AND id = ?", tenantID, orderID).
			First(&order).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}

		if req.Status != nil && *req.Status != order.Status {
			if err := s.transition(ctx, tx, &order, *req.Status); err != nil {
				return err
			}
		}

		if req.PaidAmount != nil {
			if err := s.setPaidAmount(ctx, tx, &order, *req.PaidAmount); err != nil {
				return err
			}
		}

		return tx.WithContext(ctx).Save(&order).Error
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("order updated",
		zap.String("order_id", order.ID.String()),
		zap.String("status", string(order.Status)),
	)
	return &order, nil
}

// transition moves the order through the pending/completed/cancelled state
// machine. Cancelling undoes the stock deltas and removes the paired
// financial entry; leaving cancelled re-applies the deltas and recreates
// the entry as unpaid.
func (s *service) transition(ctx context.Context, tx *gorm.DB, order *domain.Order, target domain.OrderStatus) error {
	switch {
	case order.Status.Active() && target == domain.StatusCancelled:
		if err := s.moveStockForOrder(ctx, tx, order, true); err != nil {
			return err
		}
		err := tx.WithContext(ctx).
			Where("order_id = ?", order.ID).
			Delete(&ledgerdomain.Transaction{}).Error
		if err != nil {
			return err
		}
	case order.Status == domain.StatusCancelled && target.Active():
		if err := s.moveStockForOrder(ctx, tx, order, false); err != nil {
			return err
		}
		txn := pairedTransaction(s.node.Generate(), order, 0)
		if err := tx.WithContext(ctx).Create(txn).Error; err != nil {
			return err
		}
	}
	order.Status = target
	return nil
}

func (s *service) moveStockForOrder(ctx context.Context, tx *gorm.DB, order *domain.Order, reverse bool) error {
	var items []domain.OrderItem
	err := tx.WithContext(ctx).
		Where("order_id = ?", order.ID).
		Find(&items).Error
	if err != nil {
		return err
	}
	for _, item := range items {
		if err := s.applyLine(ctx, tx, order, item.ProductID, item.Quantity, reverse); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) setPaidAmount(ctx context.Context, tx *gorm.DB, order *domain.Order, paid float64) error {
	var txn ledgerdomain.Transaction
	err := tx.WithContext(ctx).
		Where("order_id = ?", order.ID).
		First(&txn).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNoTransaction
		}
		return err
	}

	if paid < 0 || paid > txn.Amount {
		return &ledgerdomain.PaymentError{
			Amount:    txn.Amount,
			Paid:      paid,
			Remaining: txn.Amount - paid,
		}
	}
	txn.PaidAmount = paid
	txn.Status = ledgerdomain.DeriveStatus(paid, txn.Amount)
	return tx.WithContext(ctx).Save(&txn).Error
}

func (s *service) Delete(ctx context.Context, id string) error {
	tenantID, ok := tenantctx.TenantID(ctx)
	if !ok {
		return domain.ErrInvalidTenant
	}
	orderID, err := snowflake.ParseString(id)
	if err != nil {
		return domain.ErrInvalidID
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var order domain.Order
		err := tx.WithContext(ctx).
			Where("tenant_id = ? AND id = ?", tenantID, orderID).
			First(&order).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}

		// a cancelled order already had its deltas undone
		if order.Status.Active() {
			if err := s.moveStockForOrder(ctx, tx, &order, true); err != nil {
				return err
			}
		}

		err = tx.WithContext(ctx).
			Where("order_id = ?", order.ID).
			Delete(&ledgerdomain.Transaction{}).Error
		if err != nil {
			return err
		}
		err = tx.WithContext(ctx).
			Where("order_id = ?", order.ID).
			Delete(&domain.OrderItem{}).Error
		if err != nil {
			return err
		}
		return tx.WithContext(ctx).Delete(&order).Error
	})
	if err != nil {
		return err
	}

	logger.FromContext(ctx).Info("order deleted", zap.String("order_id", orderID.String()))
	return nil
}

func (s *service) ListItems(ctx context.Context, id string) ([]domain.ItemView, error) {
	tenantID, ok := tenantctx.TenantID(ctx)
	if !ok {
		return nil, domain.ErrInvalidTenant
	}
	orderID, err := snowflake.ParseString(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	var exists struct{ ID snowflake.ID }
	err = s.db.WithContext(ctx).
		Table("orders").
		Select("id").
		Where("tenant_id = ? AND id = ?", tenantID, orderID).
		Take(&exists).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	var items []domain.ItemView
	err = s.db.WithContext(ctx).
		Table("order_items").
		Select("order_items.*, products.name AS product_name, products.unit AS product_unit").
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("order_items.order_id = ?", orderID).
		Order("order_items.created_at ASC").
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
