package repository

import (
	"context"

	"ecofinds/internal/domain"
)

// UserRepository defines persistence operations for User entities.
type UserRepository interface {
	// Create stores a new user and returns ErrDuplicate when the email is taken.
	Create(ctx context.Context, user *domain.User) (int64, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	// Update rewrites the mutable profile fields of an existing user.
	Update(ctx context.Context, user *domain.User) error
}
