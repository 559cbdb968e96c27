package purchaserequest

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"stockroom/internal/domain"
	apperrors "stockroom/internal/errors"
)

type Repository interface {
	Create(ctx context.Context, request *domain.PurchaseRequest) error
	FindByID(ctx context.Context, id int) (*domain.PurchaseRequest, error)
	FindAll(ctx context.Context) ([]domain.PurchaseRequest, error)
	UpdateStatus(ctx context.Context, id int, status string) error
}

type PurchaseRequestRequest struct {
	SupplierName string    `json:"supplierName"`
	ProductItem  string    `json:"productItem"`
	Quantity     int       `json:"quantity"`
	NeedDate     time.Time `json:"needDate"`
	UnitPrice    float64   `json:"unitPrice"`
	Remark       string    `json:"remark"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type PurchaseRequestDTO struct {
	ID            int       `json:"id"`
	SupplierName  string    `json:"supplierName"`
	ProductItem   string    `json:"productItem"`
	Quantity      int       `json:"quantity"`
	NeedDate      time.Time `json:"needDate"`
	UnitPrice     float64   `json:"unitPrice"`
	TotalCost     float64   `json:"totalCost"`
	Remark        string    `json:"remark"`
	RequestStatus string    `json:"requestStatus"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type Controller struct {
	repo   Repository
	logger *zap.Logger
}

func NewController(repo Repository, logger *zap.Logger) *Controller {
	return &Controller{
		repo:   repo,
		logger: logger,
	}
}

func (c *Controller) Create(w http.ResponseWriter, r *http.Request) {
	var req PurchaseRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if err := c.validateCreateRequest(req); err != nil {
		ve, _ := apperrors.IsValidationError(err)
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}

	request := domain.PurchaseRequest{
		SupplierName: req.SupplierName,
		ProductItem:  req.ProductItem,
		Quantity:     req.Quantity,
		NeedDate:     req.NeedDate,
		UnitPrice:    req.UnitPrice,
		// Frozen at creation time.
		TotalCost:     float64(req.Quantity) * req.UnitPrice,
		Remark:        req.Remark,
		RequestStatus: domain.PurchaseRequestStatusPending,
	}

	if err := c.repo.Create(r.Context(), &request); err != nil {
		c.handleError(w, err)
		return
	}

	created, err := c.repo.FindByID(r.Context(), request.ID)
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusCreated, toPurchaseRequestDTO(*created))
}

func (c *Controller) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := c.parseID(w, r)
	if !ok {
		return
	}

	request, err := c.repo.FindByID(r.Context(), id)
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, toPurchaseRequestDTO(*request))
}

func (c *Controller) List(w http.ResponseWriter, r *http.Request) {
	requests, err := c.repo.FindAll(r.Context())
	if err != nil {
		c.handleError(w, err)
		return
	}

	dtos := make([]PurchaseRequestDTO, 0, len(requests))
	for _, pr := range requests {
		dtos = append(dtos, toPurchaseRequestDTO(pr))
	}

	c.writeJSON(w, http.StatusOK, dtos)
}

func (c *Controller) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := c.parseID(w, r)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	status := strings.ToUpper(strings.TrimSpace(req.Status))
	if !domain.ValidPurchaseRequestStatus(status) {
		c.writeValidationError(w, "invalid status", apperrors.ValidationDetail{
			Field:   "status",
			Message: "status must be one of PENDING, APPROVED, REJECTED, RECEIVED",
		})
		return
	}

	if err := c.repo.UpdateStatus(r.Context(), id, status); err != nil {
		c.handleError(w, err)
		return
	}

	updated, err := c.repo.FindByID(r.Context(), id)
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, toPurchaseRequestDTO(*updated))
}

func (c *Controller) parseID(w http.ResponseWriter, r *http.Request) (int, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		c.writeValidationError(w, "invalid purchase request id", apperrors.ValidationDetail{
			Field:   "id",
			Message: "id must be a positive integer",
		})
		return 0, false
	}
	return id, true
}

func (c *Controller) validateCreateRequest(req PurchaseRequestRequest) error {
	var details []apperrors.ValidationDetail

	if strings.TrimSpace(req.SupplierName) == "" {
		details = append(details, apperrors.ValidationDetail{Field: "supplierName", Message: "supplierName is required"})
	}
	if strings.TrimSpace(req.ProductItem) == "" {
		details = append(details, apperrors.ValidationDetail{Field: "productItem", Message: "productItem is required"})
	}
	if req.Quantity < 1 {
		details = append(details, apperrors.ValidationDetail{Field: "quantity", Message: "quantity must be at least 1"})
	}
	if req.NeedDate.IsZero() {
		details = append(details, apperrors.ValidationDetail{Field: "needDate", Message: "needDate is required"})
	}
	if req.UnitPrice < 0 {
		details = append(details, apperrors.ValidationDetail{Field: "unitPrice", Message: "unitPrice must be non-negative"})
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}

	return nil
}

func (c *Controller) handleError(w http.ResponseWriter, err error) {
	if _, ok := apperrors.IsNotFoundError(err); ok {
		c.writeJSON(w, http.StatusNotFound, map[string]string{
			"error":   "NOT_FOUND",
			"message": err.Error(),
		})
		return
	}

	c.logger.Error("purchase request failed", zap.Error(err))
	c.writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error":   "INTERNAL_ERROR",
		"message": "an unexpected error occurred",
	})
}

func toPurchaseRequestDTO(pr domain.PurchaseRequest) PurchaseRequestDTO {
	return PurchaseRequestDTO{
		ID:            pr.ID,
		SupplierName:  pr.SupplierName,
		ProductItem:   pr.ProductItem,
		Quantity:      pr.Quantity,
		NeedDate:      pr.NeedDate,
		UnitPrice:     pr.UnitPrice,
		TotalCost:     pr.TotalCost,
		Remark:        pr.Remark,
		RequestStatus: pr.RequestStatus,
		CreatedAt:     pr.CreatedAt,
		UpdatedAt:     pr.UpdatedAt,
	}
}

type validationErrorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func (c *Controller) writeValidationError(w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *Controller) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
