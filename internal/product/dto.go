package product

import "time"

type ProductRequest struct {
	SerialNumber    string  `json:"serialNumber"`
	Name            string  `json:"name"`
	Category        string  `json:"category"`
	Description     string  `json:"description"`
	QuantityInStock int     `json:"quantityInStock"`
	ReOrderLevel    int     `json:"reOrderLevel"`
	SupplierID      *int    `json:"supplierId"`
	PurchasePrice   float64 `json:"purchasePrice"`
	SellingPrice    float64 `json:"sellingPrice"`
	Status          string  `json:"status"`
	Remark          string  `json:"remark"`
}

type ProductDTO struct {
	ID              int       `json:"id"`
	SerialNumber    string    `json:"serialNumber"`
	Name            string    `json:"name"`
	Category        string    `json:"category"`
	Description     string    `json:"description"`
	QuantityInStock int       `json:"quantityInStock"`
	ReOrderLevel    int       `json:"reOrderLevel"`
	SupplierID      *int      `json:"supplierId"`
	PurchasePrice   float64   `json:"purchasePrice"`
	SellingPrice    float64   `json:"sellingPrice"`
	Status          string    `json:"status"`
	Remark          string    `json:"remark"`
	LowStock        bool      `json:"lowStock"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
