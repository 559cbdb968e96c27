package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"stockroom/internal/domain"
	"stockroom/internal/dto"
	apperrors "stockroom/internal/errors"
)

type CreateUseCase interface {
	Create(ctx context.Context, req dto.CreateStockOutRequest) (*domain.StockOut, error)
}

type ConfirmUseCase interface {
	Confirm(ctx context.Context, orderID uint) (*domain.StockOut, error)
}

type QueryUseCase interface {
	Get(ctx context.Context, orderID uint) (*domain.StockOut, error)
	List(ctx context.Context) ([]domain.StockOut, error)
}

type StockOutController struct {
	createUC  CreateUseCase
	confirmUC ConfirmUseCase
	queryUC   QueryUseCase
	logger    *zap.Logger
}

func NewStockOutController(createUC CreateUseCase, confirmUC ConfirmUseCase, queryUC QueryUseCase, logger *zap.Logger) *StockOutController {
	return &StockOutController{
		createUC:  createUC,
		confirmUC: confirmUC,
		queryUC:   queryUC,
		logger:    logger,
	}
}

func (c *StockOutController) Create(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req dto.CreateStockOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	order, err := c.createUC.Create(r.Context(), req)
	if err != nil {
		c.handleError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusCreated, toStockOutResponse(order))
}

func (c *StockOutController) Confirm(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	orderID, ok := c.parseOrderID(w, r)
	if !ok {
		return
	}

	order, err := c.confirmUC.Confirm(r.Context(), orderID)
	if err != nil {
		c.handleError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, toStockOutResponse(order))
}

func (c *StockOutController) Get(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	orderID, ok := c.parseOrderID(w, r)
	if !ok {
		return
	}

	order, err := c.queryUC.Get(r.Context(), orderID)
	if err != nil {
		c.handleError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, toStockOutResponse(order))
}

func (c *StockOutController) List(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	orders, err := c.queryUC.List(r.Context())
	if err != nil {
		c.handleError(w, traceID, err, logger)
		return
	}

	responses := make([]dto.StockOutResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, toStockOutResponse(&orders[i]))
	}

	c.writeJSON(w, http.StatusOK, responses)
}

func (c *StockOutController) parseOrderID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil || id == 0 {
		c.writeValidationError(w, "invalid order id", apperrors.ValidationDetail{
			Field:   "id",
			Message: "id must be a positive integer",
		})
		return 0, false
	}
	return uint(id), true
}

func (c *StockOutController) handleError(w http.ResponseWriter, traceID string, err error, logger *zap.Logger) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}

	if _, ok := apperrors.IsNotFoundError(err); ok {
		c.writeErrorResponse(w, traceID, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
		return
	}

	if _, ok := apperrors.IsAlreadyConfirmedError(err); ok {
		c.writeErrorResponse(w, traceID, http.StatusBadRequest, "ALREADY_CONFIRMED", err.Error(), nil)
		return
	}

	if ise, ok := apperrors.IsInsufficientStockError(err); ok {
		c.writeErrorResponse(w, traceID, http.StatusBadRequest, "INSUFFICIENT_STOCK", err.Error(), &dto.StockOutErrorDetails{
			ProductID: ise.ProductID,
			Requested: ise.Requested,
			Available: ise.Available,
		})
		return
	}

	if _, ok := apperrors.IsDeadlockError(err); ok {
		c.writeErrorResponse(w, traceID, http.StatusConflict, "DEADLOCK", err.Error(), nil)
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	c.writeErrorResponse(w, traceID, http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred", nil)
}

func toStockOutResponse(order *domain.StockOut) dto.StockOutResponse {
	items := make([]dto.StockOutItemDTO, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, dto.StockOutItemDTO{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}

	kind := dto.OrderKindCustomer
	if order.Kind == domain.StockOutKindTechnical {
		kind = dto.OrderKindTechnical
	}

	return dto.StockOutResponse{
		ID:          order.ID,
		CustomerRef: order.CustomerRef,
		OrderKind:   kind,
		Status:      order.Status,
		TotalAmount: order.TotalAmount,
		Items:       items,
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
	}
}

type validationErrorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func (c *StockOutController) writeValidationError(w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *StockOutController) writeErrorResponse(w http.ResponseWriter, traceID string, statusCode int, code string, message string, details *dto.StockOutErrorDetails) {
	c.writeJSON(w, statusCode, dto.StockOutErrorResponse{
		TraceID:   traceID,
		Status:    statusCode,
		Code:      code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now().UTC(),
	})
}

func (c *StockOutController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
