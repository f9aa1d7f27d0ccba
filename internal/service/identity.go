package service

import (
	"context"
	"errors"
	"strings"

	"ecofinds/internal/domain"
	"ecofinds/internal/repository"
)

// TokenValidator returns the subject of a valid token.
type TokenValidator interface {
	Validate(token string) (string, error)
}

// IdentityResolver turns a bearer token into the canonical user record. It is
// the only authorization source: ownership checks compare against the
// returned user's ID.
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (*domain.User, error)
}

type identityResolver struct {
	tokens TokenValidator
	users  repository.UserRepository
}

func NewIdentityResolver(tokens TokenValidator, users repository.UserRepository) IdentityResolver {
	return &identityResolver{tokens: tokens, users: users}
}

func (r *identityResolver) Resolve(ctx context.Context, token string) (*domain.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrTokenInvalid
	}

	email, err := r.tokens.Validate(token)
	if err != nil {
		return nil, ErrTokenInvalid
	}

	user, err := r.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrIdentityNotFound
		}
		return nil, err
	}
	return sanitizeUser(user), nil
}
