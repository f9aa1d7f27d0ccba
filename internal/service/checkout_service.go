package service

import (
	"context"
	"errors"
	"time"

	"ecofinds/internal/domain"
	"ecofinds/internal/repository"
)

// CheckoutService turns the requester's whole cart into purchases.
type CheckoutService interface {
	Checkout(ctx context.Context, requester *domain.User) ([]domain.Purchase, error)
}

type checkoutService struct {
	purchases repository.PurchaseRepository
	now       func() time.Time
}

func NewCheckoutService(purchases repository.PurchaseRepository) CheckoutService {
	return &checkoutService{purchases: purchases, now: time.Now}
}

// Checkout is all-or-nothing. A conflicting concurrent checkout is retried
// once against whatever is left in the cart.
func (s *checkoutService) Checkout(ctx context.Context, requester *domain.User) ([]domain.Purchase, error) {
	if requester == nil {
		return nil, ErrUnauthorized
	}

	var err error
	for attempt := 0; attempt < 2; attempt++ {
		var purchases []domain.Purchase
		purchases, err = s.purchases.CheckoutCart(ctx, requester.ID, s.now())
		switch {
		case err == nil:
			return purchases, nil
		case errors.Is(err, repository.ErrCartEmpty):
			return nil, ErrCartEmpty
		case errors.Is(err, repository.ErrConflict):
			continue
		default:
			return nil, err
		}
	}
	return nil, ErrCheckoutConflict
}

// PurchaseService is the read-only purchase history.
type PurchaseService interface {
	List(ctx context.Context, requester *domain.User) ([]domain.Purchase, error)
}

type purchaseService struct {
	purchases repository.PurchaseRepository
}

func NewPurchaseService(purchases repository.PurchaseRepository) PurchaseService {
	return &purchaseService{purchases: purchases}
}

func (s *purchaseService) List(ctx context.Context, requester *domain.User) ([]domain.Purchase, error) {
	if requester == nil {
		return nil, ErrUnauthorized
	}
	return s.purchases.ListByUser(ctx, requester.ID)
}
