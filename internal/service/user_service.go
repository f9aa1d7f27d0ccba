package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ecofinds/internal/domain"
	"ecofinds/internal/repository"
)

// PasswordHasher is the one-way password function used for credentials.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) (bool, error)
}

// TokenIssuer signs access tokens for a subject.
type TokenIssuer interface {
	Issue(subject string) (string, error)
}

// RegisterInput carries the fields accepted at registration.
type RegisterInput struct {
	Email    string
	Username string
	Password string
}

// UserService describes user lifecycle operations.
type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	// Login authenticates and returns a signed access token.
	Login(ctx context.Context, email, password string) (string, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	UpdateProfile(ctx context.Context, id int64, patch domain.UserPatch) (*domain.User, error)
}

type userService struct {
	users     repository.UserRepository
	passwords PasswordHasher
	tokens    TokenIssuer
	dummyHash string
}

func NewUserService(users repository.UserRepository, passwords PasswordHasher, tokens TokenIssuer) (UserService, error) {
	// compared against when the email is unknown so both login failures cost one hash check
	dummy, err := passwords.Hash("ecofinds-unknown-user")
	if err != nil {
		return nil, fmt.Errorf("prepare dummy hash: %w", err)
	}
	return &userService{
		users:     users,
		passwords: passwords,
		tokens:    tokens,
		dummyHash: dummy,
	}, nil
}

func (s *userService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" {
		return nil, invalidInput("email is required")
	}
	if in.Password == "" {
		return nil, invalidInput("password is required")
	}

	hash, err := s.passwords.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		Username:     strings.TrimSpace(in.Username),
		PasswordHash: hash,
	}

	if _, err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return sanitizeUser(user), nil
}

func (s *userService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			_, _ = s.passwords.Verify(password, s.dummyHash)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := s.passwords.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	return sanitizeUser(user), nil
}

func (s *userService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return "", err
	}
	token, err := s.tokens.Issue(user.Email)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return sanitizeUser(user), nil
}

func (s *userService) UpdateProfile(ctx context.Context, id int64, patch domain.UserPatch) (*domain.User, error) {
	if patch.Email != nil {
		email := strings.TrimSpace(*patch.Email)
		if email == "" {
			return nil, invalidInput("email must not be empty")
		}
		patch.Email = &email
	}
	if patch.Username != nil {
		username := strings.TrimSpace(*patch.Username)
		patch.Username = &username
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	patch.Apply(user)
	if err := s.users.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrEmailTaken
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return sanitizeUser(user), nil
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	return &domain.User{
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
