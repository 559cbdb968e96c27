package domain

import "time"

type Product struct {
	ID              int
	SerialNumber    string
	Name            string
	Category        string
	Description     string
	QuantityInStock int
	ReOrderLevel    int
	SupplierID      *int
	PurchasePrice   float64
	SellingPrice    float64
	Status          string
	Remark          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

const (
	ProductStatusAvailable    = "Available"
	ProductStatusNotAvailable = "Not-Available"
)

// LowStock reports whether the product is at or below its re-order level.
func (p Product) LowStock() bool {
	return p.QuantityInStock <= p.ReOrderLevel
}

func (p Product) HasSufficientStock(quantity int) bool {
	return p.QuantityInStock >= quantity
}
