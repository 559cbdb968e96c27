package domain

import "time"

type Supplier struct {
	ID            int
	Name          string
	ContactNumber *string
	Email         *string
	Address       *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
