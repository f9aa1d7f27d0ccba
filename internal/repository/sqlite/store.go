package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"ecofinds/internal/repository"
)

// Store is the relational persistence backend.
type Store struct {
	db        *sql.DB
	users     repository.UserRepository
	products  repository.ProductRepository
	cart      repository.CartRepository
	purchases repository.PurchaseRepository
}

// NewStore opens the database at path and brings its schema up to date.
func NewStore(ctx context.Context, path string) (*Store, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		db.Close()
		return nil, err
	}
	if err := Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate %s: %w", path, err)
	}
	return NewStoreFromDB(db), nil
}

// NewStoreFromDB wraps an already migrated database handle.
func NewStoreFromDB(db *sql.DB) *Store {
	return &Store{
		db:        db,
		users:     NewUserRepository(db),
		products:  NewProductRepository(db),
		cart:      NewCartRepository(db),
		purchases: NewPurchaseRepository(db),
	}
}

func (s *Store) Users() repository.UserRepository         { return s.users }
func (s *Store) Products() repository.ProductRepository   { return s.products }
func (s *Store) Cart() repository.CartRepository          { return s.cart }
func (s *Store) Purchases() repository.PurchaseRepository { return s.purchases }

func (s *Store) Close() error {
	return s.db.Close()
}

var _ repository.Store = (*Store)(nil)
