package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"ecofinds/internal/domain"
	"ecofinds/internal/repository"
)

type cartRepository struct {
	s *Store
}

func (r cartRepository) Add(ctx context.Context, item *domain.CartItem) (int64, error) {
	r.s.Lock()
	defer r.s.Unlock()

	if _, ok := r.s.products[item.ProductID]; !ok {
		return 0, fmt.Errorf("product %d: %w", item.ProductID, repository.ErrNotFound)
	}

	r.s.lastCartItemID++
	item.ID = r.s.lastCartItemID
	item.AddedAt = time.Now().UTC()
	if item.Quantity <= 0 {
		item.Quantity = 1
	}
	r.s.cartItems[item.ID] = *item
	return item.ID, nil
}

func (r cartRepository) ListByUser(ctx context.Context, userID int64) ([]domain.CartItem, error) {
	r.s.Lock()
	defer r.s.Unlock()

	return r.s.cartOf(userID), nil
}

func (r cartRepository) DeleteForUser(ctx context.Context, id, userID int64) error {
	r.s.Lock()
	defer r.s.Unlock()

	item, ok := r.s.cartItems[id]
	if !ok || item.UserID != userID {
		return fmt.Errorf("cart item %d: %w", id, repository.ErrNotFound)
	}
	delete(r.s.cartItems, id)
	return nil
}

// cartOf must be called with the store locked.
func (s *Store) cartOf(userID int64) []domain.CartItem {
	items := []domain.CartItem{}
	for _, item := range s.cartItems {
		if item.UserID == userID {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items
}

type purchaseRepository struct {
	s *Store
}

func (r purchaseRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Purchase, error) {
	r.s.Lock()
	defer r.s.Unlock()

	purchases := []domain.Purchase{}
	for _, p := range r.s.purchases {
		if p.UserID == userID {
			purchases = append(purchases, p)
		}
	}
	sort.Slice(purchases, func(i, j int) bool { return purchases[i].ID < purchases[j].ID })
	return purchases, nil
}

func (r purchaseRepository) CheckoutCart(ctx context.Context, userID int64, purchasedAt time.Time) ([]domain.Purchase, error) {
	r.s.Lock()
	defer r.s.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	items := r.s.cartOf(userID)
	if len(items) == 0 {
		return nil, repository.ErrCartEmpty
	}

	purchasedAt = purchasedAt.UTC()
	purchases := make([]domain.Purchase, 0, len(items))
	for _, item := range items {
		r.s.lastPurchaseID++
		p := domain.Purchase{
			ID:          r.s.lastPurchaseID,
			UserID:      userID,
			ProductID:   item.ProductID,
			PurchasedAt: purchasedAt,
		}
		r.s.purchases[p.ID] = p
		delete(r.s.cartItems, item.ID)
		purchases = append(purchases, p)
	}
	return purchases, nil
}
