package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"ecofinds/internal/auth"
	"ecofinds/internal/domain"
	"ecofinds/internal/repository/memory"
)

type fixture struct {
	store     *memory.Store
	tokens    *auth.TokenService
	users     UserService
	identity  IdentityResolver
	products  ProductService
	cart      CartService
	checkout  CheckoutService
	purchases PurchaseService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	tokens := auth.NewTokenService("test-secret", auth.DefaultTokenTTL)
	users, err := NewUserService(store.Users(), auth.NewPasswordHasher(bcrypt.MinCost), tokens)
	require.NoError(t, err)

	return &fixture{
		store:     store,
		tokens:    tokens,
		users:     users,
		identity:  NewIdentityResolver(tokens, store.Users()),
		products:  NewProductService(store.Products(), ""),
		cart:      NewCartService(store.Cart(), store.Products()),
		checkout:  NewCheckoutService(store.Purchases()),
		purchases: NewPurchaseService(store.Purchases()),
	}
}

func (f *fixture) register(t *testing.T, email string) *domain.User {
	t.Helper()
	user, err := f.users.Register(context.Background(), RegisterInput{Email: email, Username: "user", Password: "secret"})
	require.NoError(t, err)
	return user
}

func (f *fixture) listing(t *testing.T, owner *domain.User, title, category string) *domain.Product {
	t.Helper()
	product, err := f.products.Create(context.Background(), ProductInput{
		Title:    title,
		Category: category,
		Price:    decimal.RequireFromString("12.50"),
	}, owner)
	require.NoError(t, err)
	return product
}
