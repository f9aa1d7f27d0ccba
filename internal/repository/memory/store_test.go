package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecofinds/internal/domain"
	"ecofinds/internal/repository"
)

func seedProduct(t *testing.T, s *Store, ownerID int64, title string) domain.Product {
	t.Helper()
	p := domain.Product{Title: title, Category: "misc", Price: decimal.NewFromInt(5), OwnerID: ownerID}
	_, err := s.Products().Create(context.Background(), &p)
	require.NoError(t, err)
	return p
}

func TestStore_Users(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	u := domain.User{Email: "a@example.com", PasswordHash: "h"}
	id, err := s.Users().Create(ctx, &u)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	_, err = s.Users().Create(ctx, &domain.User{Email: "a@example.com"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	got, err := s.Users().GetByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)

	_, err = s.Users().GetByEmail(ctx, "A@example.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	got.Username = "alice"
	require.NoError(t, s.Users().Update(ctx, got))
	again, err := s.Users().GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "alice", again.Username)
	assert.Equal(t, "h", again.PasswordHash)
}

func TestStore_ProductsReturnCopies(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	desc := "original"
	p := domain.Product{Title: "Lamp", Description: &desc, Price: decimal.NewFromInt(1)}
	_, err := s.Products().Create(ctx, &p)
	require.NoError(t, err)

	got, err := s.Products().Get(ctx, p.ID)
	require.NoError(t, err)
	*got.Description = "mutated"

	again, err := s.Products().Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", *again.Description)
}

func TestStore_ListPaging(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	for _, title := range []string{"Bike", "Lamp", "bike bell"} {
		seedProduct(t, s, 1, title)
	}

	got, err := s.Products().List(ctx, domain.ProductFilter{Search: "BIKE", Limit: 10})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Bike", got[0].Title)
	assert.Equal(t, "bike bell", got[1].Title)

	got, err = s.Products().List(ctx, domain.ProductFilter{Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "bike bell", got[0].Title)

	got, err = s.Products().List(ctx, domain.ProductFilter{Limit: 2, Offset: 5})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStore_SearchFoldsNonASCII(t *testing.T) {
	s := NewStore()
	elan := seedProduct(t, s, 1, "ÉLAN Bike")
	seedProduct(t, s, 1, "Elan skis")

	for _, search := range []string{"élan", "ÉLAN", "Élan b"} {
		got, err := s.Products().List(context.Background(), domain.ProductFilter{Search: search, Limit: 10})
		require.NoError(t, err)
		require.Len(t, got, 1, search)
		assert.Equal(t, elan.ID, got[0].ID)
	}
}

func TestStore_CartRequiresProduct(t *testing.T) {
	s := NewStore()
	_, err := s.Cart().Add(context.Background(), &domain.CartItem{UserID: 1, ProductID: 42})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestStore_ConcurrentCheckoutConsumesEachItemOnce(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	p1 := seedProduct(t, s, 2, "p1")
	p2 := seedProduct(t, s, 2, "p2")
	for _, pid := range []int64{p1.ID, p2.ID} {
		_, err := s.Cart().Add(ctx, &domain.CartItem{UserID: 1, ProductID: pid})
		require.NoError(t, err)
	}

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		empty     int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Purchases().CheckoutCart(ctx, 1, time.Now())
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, repository.ErrCartEmpty):
				empty++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, empty)

	purchases, err := s.Purchases().ListByUser(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, purchases, 2)
}

func TestStore_CartIsolationUnderConcurrentAdds(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	p := seedProduct(t, s, 9, "shared")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		for _, uid := range []int64{1, 2} {
			wg.Add(1)
			go func(uid int64) {
				defer wg.Done()
				_, err := s.Cart().Add(ctx, &domain.CartItem{UserID: uid, ProductID: p.ID})
				assert.NoError(t, err)
			}(uid)
		}
	}
	wg.Wait()

	items, err := s.Cart().ListByUser(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, items, 50)
	for _, item := range items {
		assert.Equal(t, int64(1), item.UserID)
	}
}
