package service

import (
	"context"
	"errors"

	"ecofinds/internal/domain"
	"ecofinds/internal/repository"
)

// CartService manages the requester's own cart. Items of other users are
// never visible or removable.
type CartService interface {
	Add(ctx context.Context, productID int64, requester *domain.User) (*domain.CartItem, error)
	List(ctx context.Context, requester *domain.User) ([]domain.CartItem, error)
	Remove(ctx context.Context, itemID int64, requester *domain.User) error
}

type cartService struct {
	cart     repository.CartRepository
	products repository.ProductRepository
}

func NewCartService(cart repository.CartRepository, products repository.ProductRepository) CartService {
	return &cartService{cart: cart, products: products}
}

func (s *cartService) Add(ctx context.Context, productID int64, requester *domain.User) (*domain.CartItem, error) {
	if requester == nil {
		return nil, ErrUnauthorized
	}
	if _, err := s.products.Get(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	item := &domain.CartItem{
		UserID:    requester.ID,
		ProductID: productID,
		Quantity:  1,
	}
	if _, err := s.cart.Add(ctx, item); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *cartService) List(ctx context.Context, requester *domain.User) ([]domain.CartItem, error) {
	if requester == nil {
		return nil, ErrUnauthorized
	}
	return s.cart.ListByUser(ctx, requester.ID)
}

// Remove reports ErrCartItemNotFound both for unknown items and for items of
// another user.
func (s *cartService) Remove(ctx context.Context, itemID int64, requester *domain.User) error {
	if requester == nil {
		return ErrUnauthorized
	}
	if err := s.cart.DeleteForUser(ctx, itemID, requester.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCartItemNotFound
		}
		return err
	}
	return nil
}
