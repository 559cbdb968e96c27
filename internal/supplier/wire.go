package supplier

import (
	"database/sql"

	"go.uber.org/zap"

	"stockroom/internal/supplier/repository"
)

func NewModule(db *sql.DB, logger *zap.Logger) *Controller {
	repo := repository.NewMySQLSupplierRepository(db)
	return NewController(repo, logger)
}
