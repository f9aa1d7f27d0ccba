package service

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"ecofinds/internal/domain"
	"ecofinds/internal/repository"
)

const (
	// DefaultPageLimit is the catalog page size when the caller sets none.
	DefaultPageLimit = 10
	// DefaultPlaceholderImage is used for listings created without an image.
	DefaultPlaceholderImage = "placeholder.png"
)

// ProductInput carries the fields of a new listing.
type ProductInput struct {
	Title       string
	Description *string
	Category    string
	Price       decimal.Decimal
	ImageURL    string
}

// ProductService manages catalog listings. Reads are public; writes require
// the requester to own the listing.
type ProductService interface {
	Create(ctx context.Context, in ProductInput, owner *domain.User) (*domain.Product, error)
	List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	Get(ctx context.Context, id int64) (*domain.Product, error)
	Update(ctx context.Context, id int64, patch domain.ProductPatch, requester *domain.User) (*domain.Product, error)
	Delete(ctx context.Context, id int64, requester *domain.User) error
}

type productService struct {
	products    repository.ProductRepository
	placeholder string
}

func NewProductService(products repository.ProductRepository, placeholderImage string) ProductService {
	placeholderImage = strings.TrimSpace(placeholderImage)
	if placeholderImage == "" {
		placeholderImage = DefaultPlaceholderImage
	}
	return &productService{
		products:    products,
		placeholder: placeholderImage,
	}
}

func (s *productService) Create(ctx context.Context, in ProductInput, owner *domain.User) (*domain.Product, error) {
	if owner == nil {
		return nil, ErrUnauthorized
	}

	product := &domain.Product{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Category:    strings.TrimSpace(in.Category),
		Price:       in.Price,
		ImageURL:    strings.TrimSpace(in.ImageURL),
		OwnerID:     owner.ID,
	}
	if product.ImageURL == "" {
		product.ImageURL = s.placeholder
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}

	if _, err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	if filter.Limit < 1 {
		return nil, invalidInput("limit must be at least 1")
	}
	if filter.Offset < 0 {
		return nil, invalidInput("offset must not be negative")
	}
	return s.products.List(ctx, filter)
}

func (s *productService) Get(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := s.products.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *productService) Update(ctx context.Context, id int64, patch domain.ProductPatch, requester *domain.User) (*domain.Product, error) {
	product, err := s.owned(ctx, id, requester)
	if err != nil {
		return nil, err
	}

	patch.Apply(product)
	product.Title = strings.TrimSpace(product.Title)
	product.Category = strings.TrimSpace(product.Category)
	product.ImageURL = strings.TrimSpace(product.ImageURL)
	if product.ImageURL == "" {
		product.ImageURL = s.placeholder
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}

	if err := s.products.Update(ctx, product); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *productService) Delete(ctx context.Context, id int64, requester *domain.User) error {
	if _, err := s.owned(ctx, id, requester); err != nil {
		return err
	}
	if err := s.products.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	return nil
}

// owned loads the product and checks existence before ownership.
func (s *productService) owned(ctx context.Context, id int64, requester *domain.User) (*domain.Product, error) {
	if requester == nil {
		return nil, ErrUnauthorized
	}
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if product.OwnerID != requester.ID {
		return nil, ErrForbidden
	}
	return product, nil
}

func validateProduct(p *domain.Product) error {
	if p.Title == "" {
		return invalidInput("title is required")
	}
	if p.Category == "" {
		return invalidInput("category is required")
	}
	if p.Price.IsNegative() {
		return invalidInput("price must not be negative")
	}
	return nil
}
