package domain

import "time"

type PurchaseRequest struct {
	ID           int
	SupplierName string
	ProductItem  string
	Quantity     int
	NeedDate     time.Time
	UnitPrice    float64
	// TotalCost is computed once at creation time.
	TotalCost     float64
	Remark        string
	RequestStatus string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

const (
	PurchaseRequestStatusPending  = "PENDING"
	PurchaseRequestStatusApproved = "APPROVED"
	PurchaseRequestStatusRejected = "REJECTED"
	PurchaseRequestStatusReceived = "RECEIVED"
)

func ValidPurchaseRequestStatus(status string) bool {
	switch status {
	case PurchaseRequestStatusPending,
		PurchaseRequestStatusApproved,
		PurchaseRequestStatusRejected,
		PurchaseRequestStatusReceived:
		return true
	}
	return false
}
