package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials indicates that provided login credentials are incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailTaken is returned when registering or switching to an email that is already in use.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidInput is wrapped with the reason the input was rejected.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized is the parent of every identity resolution failure.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrTokenInvalid covers missing, malformed, badly signed and expired tokens.
	ErrTokenInvalid = fmt.Errorf("%w: invalid or expired token", ErrUnauthorized)
	// ErrIdentityNotFound is returned when a valid token names an unknown user.
	ErrIdentityNotFound = fmt.Errorf("%w: user not found", ErrUnauthorized)

	// ErrForbidden is returned when the requester does not own the resource.
	ErrForbidden = errors.New("not enough permissions")

	ErrUserNotFound     = errors.New("user not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrCartItemNotFound = errors.New("cart item not found")

	// ErrCartEmpty is returned by checkout when there is nothing to buy.
	ErrCartEmpty = errors.New("cart is empty")
	// ErrCheckoutConflict is returned when concurrent checkouts kept colliding.
	ErrCheckoutConflict = errors.New("checkout conflict")
)

func invalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
