package repository

import "errors"

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a unique constraint would be violated.
	ErrDuplicate = errors.New("duplicate")
	// ErrCartEmpty is returned by checkout when the user's cart has no items.
	ErrCartEmpty = errors.New("cart is empty")
	// ErrConflict is returned when a concurrent writer changed the rows a
	// transaction depends on.
	ErrConflict = errors.New("conflict")
)

// Store bundles the repositories of one persistence backend. It is created at
// startup and closed on shutdown.
type Store interface {
	Users() UserRepository
	Products() ProductRepository
	Cart() CartRepository
	Purchases() PurchaseRepository
	Close() error
}
