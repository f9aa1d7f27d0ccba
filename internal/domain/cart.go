package domain

import "time"

// CartItem is one product placed in a user's cart. Adding the same product
// twice yields two items.
type CartItem struct {
	ID        int64
	UserID    int64
	ProductID int64
	Quantity  int
	AddedAt   time.Time
}
