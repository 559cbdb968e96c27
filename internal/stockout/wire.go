package stockout

import (
	"database/sql"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"stockroom/internal/config"
	productrepo "stockroom/internal/product/repository"
	"stockroom/internal/stockout/cache"
	"stockroom/internal/stockout/controller"
	stockoutrepo "stockroom/internal/stockout/repository"
	"stockroom/internal/stockout/service"
	"stockroom/internal/stockout/usecase"
)

// NewModule wires the stock-out workflow. redisClient may be nil, which
// disables the read cache.
func NewModule(db *sql.DB, redisClient *goredis.Client, cfg *config.Config, logger *zap.Logger) *controller.StockOutController {
	stockOutRepo := stockoutrepo.NewMySQLStockOutRepository(db)
	productRepo := productrepo.NewMySQLRepository(db)
	orderCache := cache.New(redisClient, cfg.Redis.CacheTTL, logger)

	confirmationSvc := service.NewConfirmationService(
		db,
		stockOutRepo,
		productRepo,
		logger,
		cfg.StockOut.ConfirmTxTimeout,
	)

	createUC := usecase.NewCreateStockOutUseCase(
		stockOutRepo,
		productRepo,
		logger,
		cfg.StockOut.TechnicalCustomerRef,
	)
	confirmUC := usecase.NewConfirmStockOutUseCase(
		stockOutRepo,
		confirmationSvc,
		orderCache,
		logger,
		cfg.StockOut.MaxRetryAttempts,
	)
	queryUC := usecase.NewQueryStockOutUseCase(stockOutRepo, orderCache, logger)

	return controller.NewStockOutController(createUC, confirmUC, queryUC, logger)
}
