package domain

import "time"

// Purchase is an immutable record of a product bought at checkout.
type Purchase struct {
	ID          int64
	UserID      int64
	ProductID   int64
	PurchasedAt time.Time
}
