// Package memory is an in-process repository.Store. All collections share one
// mutex, so every operation (checkout included) is atomic with respect to the
// others.
package memory

import (
	"sync"

	"ecofinds/internal/domain"
	"ecofinds/internal/repository"
)

type Store struct {
	sync.Mutex

	users     map[int64]domain.User
	products  map[int64]domain.Product
	cartItems map[int64]domain.CartItem
	purchases map[int64]domain.Purchase

	lastUserID     int64
	lastProductID  int64
	lastCartItemID int64
	lastPurchaseID int64
}

func NewStore() *Store {
	return &Store{
		users:     make(map[int64]domain.User),
		products:  make(map[int64]domain.Product),
		cartItems: make(map[int64]domain.CartItem),
		purchases: make(map[int64]domain.Purchase),
	}
}

func (s *Store) Users() repository.UserRepository         { return userRepository{s} }
func (s *Store) Products() repository.ProductRepository   { return productRepository{s} }
func (s *Store) Cart() repository.CartRepository          { return cartRepository{s} }
func (s *Store) Purchases() repository.PurchaseRepository { return purchaseRepository{s} }

func (s *Store) Close() error {
	return nil
}

var _ repository.Store = (*Store)(nil)
