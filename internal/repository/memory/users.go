package memory

import (
	"context"
	"fmt"
	"time"

	"ecofinds/internal/domain"
	"ecofinds/internal/repository"
)

type userRepository struct {
	s *Store
}

func (r userRepository) Create(ctx context.Context, user *domain.User) (int64, error) {
	r.s.Lock()
	defer r.s.Unlock()

	if r.s.emailTaken(user.Email, 0) {
		return 0, fmt.Errorf("user %s: %w", user.Email, repository.ErrDuplicate)
	}

	now := time.Now().UTC()
	r.s.lastUserID++
	user.ID = r.s.lastUserID
	user.CreatedAt = now
	user.UpdatedAt = now
	r.s.users[user.ID] = *user
	return user.ID, nil
}

func (r userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.s.Lock()
	defer r.s.Unlock()

	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, fmt.Errorf("user: %w", repository.ErrNotFound)
}

func (r userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	r.s.Lock()
	defer r.s.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, fmt.Errorf("user: %w", repository.ErrNotFound)
	}
	return &u, nil
}

func (r userRepository) Update(ctx context.Context, user *domain.User) error {
	r.s.Lock()
	defer r.s.Unlock()

	stored, ok := r.s.users[user.ID]
	if !ok {
		return fmt.Errorf("user %d: %w", user.ID, repository.ErrNotFound)
	}
	if r.s.emailTaken(user.Email, user.ID) {
		return fmt.Errorf("user %s: %w", user.Email, repository.ErrDuplicate)
	}

	user.UpdatedAt = time.Now().UTC()
	stored.Email = user.Email
	stored.Username = user.Username
	stored.UpdatedAt = user.UpdatedAt
	r.s.users[user.ID] = stored
	return nil
}

// emailTaken must be called with the store locked.
func (s *Store) emailTaken(email string, exceptID int64) bool {
	for id, u := range s.users {
		if id != exceptID && u.Email == email {
			return true
		}
	}
	return false
}
