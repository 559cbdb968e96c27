package purchaserequest

import (
	"database/sql"

	"go.uber.org/zap"

	"stockroom/internal/purchaserequest/repository"
)

func NewModule(db *sql.DB, logger *zap.Logger) *Controller {
	repo := repository.NewMySQLPurchaseRequestRepository(db)
	return NewController(repo, logger)
}
