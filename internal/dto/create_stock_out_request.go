package dto

type CreateStockOutRequest struct {
	CustomerRef string               `json:"customerRef"`
	OrderKind   string               `json:"orderKind"`
	Items       []CreateStockOutItem `json:"items"`
}

type CreateStockOutItem struct {
	ProductID int     `json:"productId"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

const (
	OrderKindCustomer  = "customer"
	OrderKindTechnical = "technical"
)
