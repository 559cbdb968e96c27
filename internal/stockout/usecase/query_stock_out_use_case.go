package usecase

import (
	"context"

	"go.uber.org/zap"

	"stockroom/internal/domain"
)

type QueryCache interface {
	Get(ctx context.Context, orderID uint) (*domain.StockOut, bool)
	Set(ctx context.Context, order *domain.StockOut)
}

type QueryStockOutUseCase struct {
	stockOutRepo StockOutRepository
	cache        QueryCache
	logger       *zap.Logger
}

func NewQueryStockOutUseCase(stockOutRepo StockOutRepository, cache QueryCache, logger *zap.Logger) *QueryStockOutUseCase {
	return &QueryStockOutUseCase{
		stockOutRepo: stockOutRepo,
		cache:        cache,
		logger:       logger,
	}
}

// Get is cache-aside: cache hit short-circuits, miss falls through to the
// database and backfills.
func (uc *QueryStockOutUseCase) Get(ctx context.Context, orderID uint) (*domain.StockOut, error) {
	if order, ok := uc.cache.Get(ctx, orderID); ok {
		uc.logger.Debug("stock-out cache hit", zap.Uint("orderId", orderID))
		return order, nil
	}

	order, err := uc.stockOutRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	uc.cache.Set(ctx, order)
	return order, nil
}

func (uc *QueryStockOutUseCase) List(ctx context.Context) ([]domain.StockOut, error) {
	return uc.stockOutRepo.FindAll(ctx)
}
