package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecofinds/internal/domain"
	"ecofinds/internal/repository"
)

func TestCartService(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.register(t, "a@example.com")
	bob := f.register(t, "b@example.com")
	product := f.listing(t, bob, "Lamp", "home")

	item, err := f.cart.Add(ctx, product.ID, alice)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, item.UserID)
	assert.Equal(t, 1, item.Quantity)

	_, err = f.cart.Add(ctx, 999, alice)
	assert.ErrorIs(t, err, ErrProductNotFound)

	items, err := f.cart.List(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, items)

	assert.ErrorIs(t, f.cart.Remove(ctx, item.ID, bob), ErrCartItemNotFound)
	items, err = f.cart.List(ctx, alice)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	require.NoError(t, f.cart.Remove(ctx, item.ID, alice))
	assert.ErrorIs(t, f.cart.Remove(ctx, item.ID, alice), ErrCartItemNotFound)
}

func TestCheckoutService(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.register(t, "a@example.com")
	lamp := f.listing(t, alice, "Lamp", "home")
	chair := f.listing(t, alice, "Chair", "home")

	_, err := f.checkout.Checkout(ctx, alice)
	assert.ErrorIs(t, err, ErrCartEmpty)

	for _, id := range []int64{lamp.ID, chair.ID, lamp.ID} {
		_, err := f.cart.Add(ctx, id, alice)
		require.NoError(t, err)
	}

	purchases, err := f.checkout.Checkout(ctx, alice)
	require.NoError(t, err)
	require.Len(t, purchases, 3)
	assert.Equal(t, []int64{lamp.ID, chair.ID, lamp.ID}, []int64{purchases[0].ProductID, purchases[1].ProductID, purchases[2].ProductID})

	items, err := f.cart.List(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, items)

	history, err := f.purchases.List(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, purchases, history)

	_, err = f.checkout.Checkout(ctx, alice)
	assert.ErrorIs(t, err, ErrCartEmpty)
}

func TestCheckoutService_Concurrent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.register(t, "a@example.com")
	lamp := f.listing(t, alice, "Lamp", "home")
	_, err := f.cart.Add(ctx, lamp.ID, alice)
	require.NoError(t, err)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		empty     int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.checkout.Checkout(ctx, alice)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, ErrCartEmpty):
				empty++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 7, empty)

	history, err := f.purchases.List(ctx, alice)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

type conflictingPurchases struct {
	repository.PurchaseRepository
	conflicts int
	calls     int
}

func (r *conflictingPurchases) CheckoutCart(ctx context.Context, userID int64, purchasedAt time.Time) ([]domain.Purchase, error) {
	r.calls++
	if r.calls <= r.conflicts {
		return nil, repository.ErrConflict
	}
	return []domain.Purchase{{ID: 1, UserID: userID, ProductID: 7, PurchasedAt: purchasedAt}}, nil
}

func TestCheckoutService_RetriesConflictOnce(t *testing.T) {
	ctx := context.Background()
	user := &domain.User{ID: 1}

	repo := &conflictingPurchases{conflicts: 1}
	purchases, err := NewCheckoutService(repo).Checkout(ctx, user)
	require.NoError(t, err)
	assert.Len(t, purchases, 1)
	assert.Equal(t, 2, repo.calls)

	repo = &conflictingPurchases{conflicts: 2}
	_, err = NewCheckoutService(repo).Checkout(ctx, user)
	assert.ErrorIs(t, err, ErrCheckoutConflict)
	assert.Equal(t, 2, repo.calls)
}
