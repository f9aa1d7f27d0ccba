package repository

import (
	"context"

	"ecofinds/internal/domain"
)

// ProductRepository defines persistence operations for catalog listings.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) (int64, error)
	Get(ctx context.Context, id int64) (*domain.Product, error)
	// List returns products matching filter in ascending id order.
	List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	// Delete removes the product together with any cart items that reference it.
	Delete(ctx context.Context, id int64) error
}
