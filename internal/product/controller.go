package product

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"stockroom/internal/domain"
	apperrors "stockroom/internal/errors"
	"stockroom/internal/product/repository"
)

type Controller struct {
	service Service
	logger  *zap.Logger
}

func NewController(service Service, logger *zap.Logger) *Controller {
	return &Controller{
		service: service,
		logger:  logger,
	}
}

func (c *Controller) Create(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if err := c.validateProductRequest(req); err != nil {
		ve, _ := apperrors.IsValidationError(err)
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}

	product := requestToDomain(req)
	if err := c.service.CreateProduct(r.Context(), &product); err != nil {
		c.handleError(w, err)
		return
	}

	created, err := c.service.GetProduct(r.Context(), product.ID)
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusCreated, toProductDTO(*created))
}

func (c *Controller) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := c.parseID(w, r)
	if !ok {
		return
	}

	product, err := c.service.GetProduct(r.Context(), id)
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, toProductDTO(*product))
}

func (c *Controller) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := repository.ListFilter{
		Category:  query.Get("category"),
		Status:    query.Get("status"),
		LowStock:  query.Get("lowStock") == "true",
		SortBy:    query.Get("sortBy"),
		SortOrder: query.Get("sortOrder"),
	}

	products, err := c.service.ListProducts(r.Context(), filter)
	if err != nil {
		c.handleError(w, err)
		return
	}

	dtos := make([]ProductDTO, 0, len(products))
	for _, p := range products {
		dtos = append(dtos, toProductDTO(p))
	}

	c.writeJSON(w, http.StatusOK, dtos)
}

func (c *Controller) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := c.parseID(w, r)
	if !ok {
		return
	}

	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if err := c.validateProductRequest(req); err != nil {
		ve, _ := apperrors.IsValidationError(err)
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}

	product := requestToDomain(req)
	product.ID = id
	if err := c.service.UpdateProduct(r.Context(), &product); err != nil {
		c.handleError(w, err)
		return
	}

	updated, err := c.service.GetProduct(r.Context(), id)
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, toProductDTO(*updated))
}

func (c *Controller) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := c.parseID(w, r)
	if !ok {
		return
	}

	if err := c.service.DeleteProduct(r.Context(), id); err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}

func (c *Controller) parseID(w http.ResponseWriter, r *http.Request) (int, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		c.writeValidationError(w, "invalid product id", apperrors.ValidationDetail{
			Field:   "id",
			Message: "id must be a positive integer",
		})
		return 0, false
	}
	return id, true
}

func (c *Controller) validateProductRequest(req ProductRequest) error {
	var details []apperrors.ValidationDetail

	if strings.TrimSpace(req.SerialNumber) == "" {
		details = append(details, apperrors.ValidationDetail{Field: "serialNumber", Message: "serialNumber is required"})
	}
	if strings.TrimSpace(req.Name) == "" {
		details = append(details, apperrors.ValidationDetail{Field: "name", Message: "name is required"})
	}
	if strings.TrimSpace(req.Category) == "" {
		details = append(details, apperrors.ValidationDetail{Field: "category", Message: "category is required"})
	}
	if req.QuantityInStock < 0 {
		details = append(details, apperrors.ValidationDetail{Field: "quantityInStock", Message: "quantityInStock must be non-negative"})
	}
	if req.ReOrderLevel < 0 {
		details = append(details, apperrors.ValidationDetail{Field: "reOrderLevel", Message: "reOrderLevel must be non-negative"})
	}
	if req.PurchasePrice < 0 {
		details = append(details, apperrors.ValidationDetail{Field: "purchasePrice", Message: "purchasePrice must be non-negative"})
	}
	if req.SellingPrice < 0 {
		details = append(details, apperrors.ValidationDetail{Field: "sellingPrice", Message: "sellingPrice must be non-negative"})
	}
	if req.Status != "" && req.Status != domain.ProductStatusAvailable && req.Status != domain.ProductStatusNotAvailable {
		details = append(details, apperrors.ValidationDetail{Field: "status", Message: "status must be Available or Not-Available"})
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}

	return nil
}

func (c *Controller) handleError(w http.ResponseWriter, err error) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}

	if _, ok := apperrors.IsNotFoundError(err); ok {
		c.writeJSON(w, http.StatusNotFound, map[string]string{
			"error":   "NOT_FOUND",
			"message": err.Error(),
		})
		return
	}

	c.logger.Error("product request failed", zap.Error(err))
	c.writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error":   "INTERNAL_ERROR",
		"message": "an unexpected error occurred",
	})
}

func requestToDomain(req ProductRequest) domain.Product {
	return domain.Product{
		SerialNumber:    req.SerialNumber,
		Name:            req.Name,
		Category:        req.Category,
		Description:     req.Description,
		QuantityInStock: req.QuantityInStock,
		ReOrderLevel:    req.ReOrderLevel,
		SupplierID:      req.SupplierID,
		PurchasePrice:   req.PurchasePrice,
		SellingPrice:    req.SellingPrice,
		Status:          req.Status,
		Remark:          req.Remark,
	}
}

func toProductDTO(p domain.Product) ProductDTO {
	return ProductDTO{
		ID:              p.ID,
		SerialNumber:    p.SerialNumber,
		Name:            p.Name,
		Category:        p.Category,
		Description:     p.Description,
		QuantityInStock: p.QuantityInStock,
		ReOrderLevel:    p.ReOrderLevel,
		SupplierID:      p.SupplierID,
		PurchasePrice:   p.PurchasePrice,
		SellingPrice:    p.SellingPrice,
		Status:          p.Status,
		Remark:          p.Remark,
		LowStock:        p.LowStock(),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
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
