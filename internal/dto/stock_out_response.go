package dto

import "time"

type StockOutResponse struct {
	ID          uint               `json:"id"`
	CustomerRef string             `json:"customerRef"`
	OrderKind   string             `json:"orderKind"`
	Status      string             `json:"status"`
	TotalAmount float64            `json:"totalAmount"`
	Items       []StockOutItemDTO  `json:"items"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

type StockOutItemDTO struct {
	ProductID   int     `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

type StockOutErrorResponse struct {
	TraceID   string                 `json:"traceId"`
	Status    int                    `json:"status"`
	Code      string                 `json:"code"`
	Message   string                 `json:"message"`
	Details   *StockOutErrorDetails  `json:"details,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

type StockOutErrorDetails struct {
	ProductID int `json:"productId,omitempty"`
	Requested int `json:"requested,omitempty"`
	Available int `json:"available,omitempty"`
}
