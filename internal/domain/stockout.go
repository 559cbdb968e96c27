package domain

import "time"

type StockOut struct {
	ID          uint
	CustomerRef string
	Kind        string
	Status      string
	TotalAmount float64
	Items       []StockOutItem
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type StockOutItem struct {
	ID         uint
	StockOutID uint
	ProductID  int
	// ProductName is snapshotted at order creation so later renames do not
	// rewrite history.
	ProductName string
	Quantity    int
	// UnitPrice is the selling price at order time, never re-read from the
	// product at confirmation.
	UnitPrice float64
}

const (
	StockOutKindCustomer  = "CUSTOMER"
	StockOutKindTechnical = "TECHNICAL"
)

const (
	StockOutStatusPending   = "PENDING"
	StockOutStatusConfirmed = "CONFIRMED"
)

// Total computes the order total from its items. The persisted TotalAmount
// is written once at creation and never recomputed.
func (s StockOut) Total() float64 {
	total := 0.0
	for _, item := range s.Items {
		total += float64(item.Quantity) * item.UnitPrice
	}
	return total
}

func (s StockOut) IsConfirmed() bool {
	return s.Status == StockOutStatusConfirmed
}
