package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"ecofinds/internal/domain"
	"ecofinds/internal/repository"
)

type productRepository struct {
	s *Store
}

func (r productRepository) Create(ctx context.Context, product *domain.Product) (int64, error) {
	r.s.Lock()
	defer r.s.Unlock()

	now := time.Now().UTC()
	r.s.lastProductID++
	product.ID = r.s.lastProductID
	product.CreatedAt = now
	product.UpdatedAt = now
	r.s.products[product.ID] = cloneProduct(*product)
	return product.ID, nil
}

func (r productRepository) Get(ctx context.Context, id int64) (*domain.Product, error) {
	r.s.Lock()
	defer r.s.Unlock()

	p, ok := r.s.products[id]
	if !ok {
		return nil, fmt.Errorf("product: %w", repository.ErrNotFound)
	}
	p = cloneProduct(p)
	return &p, nil
}

func (r productRepository) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	r.s.Lock()
	defer r.s.Unlock()

	search := strings.ToLower(filter.Search)
	matched := []domain.Product{}
	for _, p := range r.s.products {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Title), search) {
			continue
		}
		if filter.OwnerID != 0 && p.OwnerID != filter.OwnerID {
			continue
		}
		matched = append(matched, cloneProduct(p))
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	return page(matched, filter.Limit, filter.Offset), nil
}

func (r productRepository) Update(ctx context.Context, product *domain.Product) error {
	r.s.Lock()
	defer r.s.Unlock()

	stored, ok := r.s.products[product.ID]
	if !ok {
		return fmt.Errorf("product %d: %w", product.ID, repository.ErrNotFound)
	}

	product.UpdatedAt = time.Now().UTC()
	stored.Title = product.Title
	stored.Description = product.Description
	stored.Category = product.Category
	stored.Price = product.Price
	stored.ImageURL = product.ImageURL
	stored.UpdatedAt = product.UpdatedAt
	r.s.products[product.ID] = cloneProduct(stored)
	return nil
}

func (r productRepository) Delete(ctx context.Context, id int64) error {
	r.s.Lock()
	defer r.s.Unlock()

	if _, ok := r.s.products[id]; !ok {
		return fmt.Errorf("product %d: %w", id, repository.ErrNotFound)
	}
	delete(r.s.products, id)
	for itemID, item := range r.s.cartItems {
		if item.ProductID == id {
			delete(r.s.cartItems, itemID)
		}
	}
	return nil
}

func cloneProduct(p domain.Product) domain.Product {
	if p.Description != nil {
		desc := *p.Description
		p.Description = &desc
	}
	return p
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return items[:0]
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
