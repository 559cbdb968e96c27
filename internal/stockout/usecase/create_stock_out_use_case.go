package usecase

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"stockroom/internal/domain"
	"stockroom/internal/dto"
	apperrors "stockroom/internal/errors"
)

type StockOutRepository interface {
	Create(ctx context.Context, order *domain.StockOut) error
	FindByID(ctx context.Context, id uint) (*domain.StockOut, error)
	FindAll(ctx context.Context) ([]domain.StockOut, error)
}

type ProductFinder interface {
	FindByIDs(ctx context.Context, ids []int) ([]domain.Product, error)
}

type CreateStockOutUseCase struct {
	stockOutRepo         StockOutRepository
	productFinder        ProductFinder
	logger               *zap.Logger
	technicalCustomerRef string
}

func NewCreateStockOutUseCase(
	stockOutRepo StockOutRepository,
	productFinder ProductFinder,
	logger *zap.Logger,
	technicalCustomerRef string,
) *CreateStockOutUseCase {
	return &CreateStockOutUseCase{
		stockOutRepo:         stockOutRepo,
		productFinder:        productFinder,
		logger:               logger,
		technicalCustomerRef: technicalCustomerRef,
	}
}

const (
	maxItemsPerOrder   = 100
	maxQuantityPerItem = 10000
)

// Create persists a new PENDING order. No stock is touched here; creation and
// confirmation are separate phases so an order can be reviewed before any
// inventory commitment. Validation lives here, not in the transport layer, so
// every caller gets the same contract.
func (uc *CreateStockOutUseCase) Create(ctx context.Context, req dto.CreateStockOutRequest) (*domain.StockOut, error) {
	uc.logger.Info("stock-out creation started",
		zap.String("orderKind", req.OrderKind),
		zap.Int("itemCount", len(req.Items)))

	kind, customerRef, err := uc.validateRequest(req)
	if err != nil {
		return nil, err
	}

	items, total, err := uc.buildItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	order := &domain.StockOut{
		CustomerRef: customerRef,
		Kind:        kind,
		Status:      domain.StockOutStatusPending,
		TotalAmount: total,
		Items:       items,
	}

	if err := uc.stockOutRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	uc.logger.Info("stock-out order created",
		zap.Uint("orderId", order.ID),
		zap.Float64("totalAmount", order.TotalAmount))

	return order, nil
}

// validateRequest checks the request shape and resolves the order kind and
// customer reference. Nothing is persisted when any detail fails.
func (uc *CreateStockOutUseCase) validateRequest(req dto.CreateStockOutRequest) (string, string, error) {
	var details []apperrors.ValidationDetail

	kind := strings.ToLower(req.OrderKind)
	if kind == "" {
		kind = dto.OrderKindCustomer
	}
	if kind != dto.OrderKindCustomer && kind != dto.OrderKindTechnical {
		details = append(details, apperrors.ValidationDetail{
			Field:   "orderKind",
			Message: "orderKind must be either customer or technical",
		})
	}

	customerRef := req.CustomerRef
	if kind == dto.OrderKindTechnical {
		customerRef = uc.technicalCustomerRef
	} else if strings.TrimSpace(customerRef) == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "customerRef",
			Message: "customerRef is required for customer orders",
		})
	}

	if len(req.Items) == 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "items",
			Message: "items must not be empty",
		})
	}
	if len(req.Items) > maxItemsPerOrder {
		details = append(details, apperrors.ValidationDetail{
			Field:   "items",
			Message: fmt.Sprintf("items exceeds maximum of %d", maxItemsPerOrder),
		})
	}

	for idx, item := range req.Items {
		if item.ProductID <= 0 {
			details = append(details, apperrors.ValidationDetail{
				Field:   fmt.Sprintf("items[%d].productId", idx),
				Message: "each productId must be a positive integer",
			})
		}
		if item.Quantity < 1 || item.Quantity > maxQuantityPerItem {
			details = append(details, apperrors.ValidationDetail{
				Field:   fmt.Sprintf("items[%d].quantity", idx),
				Message: fmt.Sprintf("quantity must be between 1 and %d", maxQuantityPerItem),
			})
		}
		if item.UnitPrice < 0 {
			details = append(details, apperrors.ValidationDetail{
				Field:   fmt.Sprintf("items[%d].unitPrice", idx),
				Message: "unitPrice must be non-negative",
			})
		}
	}

	if len(details) > 0 {
		return "", "", apperrors.NewValidationError("validation failed", details...)
	}

	domainKind := domain.StockOutKindCustomer
	if kind == dto.OrderKindTechnical {
		domainKind = domain.StockOutKindTechnical
	}
	return domainKind, customerRef, nil
}

// buildItems snapshots product names and the caller-supplied unit prices into
// line items. Prices are locked at order time, not re-derived later.
func (uc *CreateStockOutUseCase) buildItems(ctx context.Context, reqItems []dto.CreateStockOutItem) ([]domain.StockOutItem, float64, error) {
	ids := make([]int, 0, len(reqItems))
	for _, item := range reqItems {
		ids = append(ids, item.ProductID)
	}

	products, err := uc.productFinder.FindByIDs(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	namesByID := make(map[int]string, len(products))
	for _, p := range products {
		namesByID[p.ID] = p.Name
	}

	items := make([]domain.StockOutItem, 0, len(reqItems))
	total := 0.0
	for idx, reqItem := range reqItems {
		name, ok := namesByID[reqItem.ProductID]
		if !ok {
			return nil, 0, apperrors.NewValidationError("unknown product", apperrors.ValidationDetail{
				Field:   fmt.Sprintf("items[%d].productId", idx),
				Message: fmt.Sprintf("product with id %d does not exist", reqItem.ProductID),
			})
		}

		items = append(items, domain.StockOutItem{
			ProductID:   reqItem.ProductID,
			ProductName: name,
			Quantity:    reqItem.Quantity,
			UnitPrice:   reqItem.UnitPrice,
		})
		total += float64(reqItem.Quantity) * reqItem.UnitPrice
	}

	return items, total, nil
}
