package repository

import (
	"context"
	"time"

	"ecofinds/internal/domain"
)

// CartRepository manages owner-scoped cart items.
type CartRepository interface {
	Add(ctx context.Context, item *domain.CartItem) (int64, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.CartItem, error)
	// DeleteForUser removes the item only when it belongs to userID and
	// returns ErrNotFound otherwise.
	DeleteForUser(ctx context.Context, id, userID int64) error
}

// PurchaseRepository exposes the append-only purchase log.
type PurchaseRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]domain.Purchase, error)
	// CheckoutCart converts every cart item of userID into a purchase and
	// empties the cart in a single transaction. It returns ErrCartEmpty when
	// there is nothing to buy and ErrConflict when a concurrent checkout
	// consumed an item first; in both cases nothing is written.
	CheckoutCart(ctx context.Context, userID int64, purchasedAt time.Time) ([]domain.Purchase, error)
}
