package usecase

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"stockroom/internal/domain"
	apperrors "stockroom/internal/errors"
)

type ConfirmationService interface {
	Confirm(ctx context.Context, orderID uint) (*domain.StockOut, error)
}

type StockOutCache interface {
	Delete(ctx context.Context, orderID uint)
}

type ConfirmStockOutUseCase struct {
	stockOutRepo     StockOutRepository
	confirmationSvc  ConfirmationService
	cache            StockOutCache
	logger           *zap.Logger
	maxRetryAttempts int
}

func NewConfirmStockOutUseCase(
	stockOutRepo StockOutRepository,
	confirmationSvc ConfirmationService,
	cache StockOutCache,
	logger *zap.Logger,
	maxRetryAttempts int,
) *ConfirmStockOutUseCase {
	return &ConfirmStockOutUseCase{
		stockOutRepo:     stockOutRepo,
		confirmationSvc:  confirmationSvc,
		cache:            cache,
		logger:           logger,
		maxRetryAttempts: maxRetryAttempts,
	}
}

func (uc *ConfirmStockOutUseCase) Confirm(ctx context.Context, orderID uint) (*domain.StockOut, error) {
	uc.logger.Info("stock-out confirmation started", zap.Uint("orderId", orderID))

	// Pre-check outside the transaction for the cheap failure cases. The
	// authoritative checks run again under the row lock.
	order, err := uc.stockOutRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.IsConfirmed() {
		return nil, apperrors.NewAlreadyConfirmedError("stock-out order is already confirmed")
	}

	confirmed, err := uc.confirmWithRetry(ctx, orderID)
	if err != nil {
		return nil, err
	}

	uc.cache.Delete(ctx, orderID)

	return confirmed, nil
}

func (uc *ConfirmStockOutUseCase) confirmWithRetry(ctx context.Context, orderID uint) (*domain.StockOut, error) {
	maxAttempts := uc.maxRetryAttempts
	// Backoff intervals: attempt 1 (0ms), attempt 2 (100ms), attempt 3 (200ms).
	backoffs := []time.Duration{0, 100 * time.Millisecond, 200 * time.Millisecond}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		order, err := uc.confirmationSvc.Confirm(ctx, orderID)
		if err == nil {
			return order, nil
		}

		if isDeadlockError(err) {
			if attempt < maxAttempts {
				backoff := backoffs[(attempt-1)%len(backoffs)]
				// Jitter: ±20% of the backoff base.
				jitter := time.Duration(float64(backoff) * (0.8 + rand.Float64()*0.4))
				time.Sleep(jitter)
				uc.logger.Warn("deadlock detected, retrying",
					zap.Int("attempt", attempt),
					zap.Int("maxAttempts", maxAttempts),
					zap.Uint("orderId", orderID))
				continue
			}
			break
		}

		return nil, err
	}

	return nil, apperrors.NewDeadlockError("max retries exceeded")
}

func isDeadlockError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1213 || mysqlErr.Number == 1205
	}
	return false
}
