package service

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"go.uber.org/zap"

	"stockroom/internal/domain"
	"stockroom/internal/errors"
)

type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

type StockOutRepository interface {
	FindByIDForUpdate(ctx context.Context, tx *sql.Tx, id uint) (*domain.StockOut, error)
	MarkConfirmed(ctx context.Context, tx *sql.Tx, id uint) (time.Time, error)
}

type ProductRepository interface {
	FindByIDForUpdate(ctx context.Context, tx *sql.Tx, id int) (*domain.Product, error)
	DecrementStock(ctx context.Context, tx *sql.Tx, id int, quantity int) (bool, error)
}

// ConfirmationService commits a pending order's inventory decrements. The
// whole confirmation runs in one transaction: every line item either applies
// or the order stays PENDING with stock untouched.
type ConfirmationService struct {
	db           TransactionManager
	stockOutRepo StockOutRepository
	productRepo  ProductRepository
	logger       *zap.Logger
	txTimeout    time.Duration
}

func NewConfirmationService(
	db TransactionManager,
	stockOutRepo StockOutRepository,
	productRepo ProductRepository,
	logger *zap.Logger,
	txTimeout time.Duration,
) *ConfirmationService {
	return &ConfirmationService{
		db:           db,
		stockOutRepo: stockOutRepo,
		productRepo:  productRepo,
		logger:       logger,
		txTimeout:    txTimeout,
	}
}

func (s *ConfirmationService) Confirm(ctx context.Context, orderID uint) (*domain.StockOut, error) {
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Uint("orderId", orderID), zap.Error(err))
		return nil, err
	}
	// Rollback is a no-op once the transaction is committed.
	defer tx.Rollback()

	// Locking the header row serializes concurrent confirmations of the
	// same order.
	order, err := s.stockOutRepo.FindByIDForUpdate(txCtx, tx, orderID)
	if err != nil {
		return nil, err
	}

	if order.IsConfirmed() {
		return nil, errors.NewAlreadyConfirmedError("stock-out order is already confirmed")
	}

	// Lock products in ascending id order so two confirmations touching the
	// same products cannot deadlock each other.
	items := make([]domain.StockOutItem, len(order.Items))
	copy(items, order.Items)
	sort.Slice(items, func(i, j int) bool { return items[i].ProductID < items[j].ProductID })

	for _, item := range items {
		if err := s.confirmItem(txCtx, tx, item); err != nil {
			s.logger.Warn("confirmation aborted",
				zap.Uint("orderId", orderID),
				zap.Int("productId", item.ProductID),
				zap.Error(err))
			return nil, err
		}
	}

	confirmedAt, err := s.stockOutRepo.MarkConfirmed(txCtx, tx, orderID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit confirmation", zap.Uint("orderId", orderID), zap.Error(err))
		return nil, err
	}

	order.Status = domain.StockOutStatusConfirmed
	order.UpdatedAt = confirmedAt
	s.logger.Info("stock-out order confirmed",
		zap.Uint("orderId", orderID),
		zap.Int("itemCount", len(order.Items)),
		zap.Float64("totalAmount", order.TotalAmount))

	return order, nil
}

func (s *ConfirmationService) confirmItem(ctx context.Context, tx *sql.Tx, item domain.StockOutItem) error {
	product, err := s.productRepo.FindByIDForUpdate(ctx, tx, item.ProductID)
	if err != nil {
		// A line item referencing a vanished product fails the whole
		// confirmation rather than being skipped silently.
		return err
	}

	if !product.HasSufficientStock(item.Quantity) {
		return errors.NewInsufficientStockError(product.ID, product.Name, item.Quantity, product.QuantityInStock)
	}

	ok, err := s.productRepo.DecrementStock(ctx, tx, item.ProductID, item.Quantity)
	if err != nil {
		return err
	}
	if !ok {
		// The conditional update refused the decrement; report with the
		// locked row's quantity.
		return errors.NewInsufficientStockError(product.ID, product.Name, item.Quantity, product.QuantityInStock)
	}

	return nil
}
