package domain

import "time"

// User represents a registered account. Email is the identity claim carried
// in access tokens and is unique across users.
type User struct {
	ID           int64
	Email        string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserPatch lists the profile fields a user may change. Nil fields are left
// untouched.
type UserPatch struct {
	Email    *string
	Username *string
}

// Apply copies the set fields of the patch onto u.
func (p UserPatch) Apply(u *User) {
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Username != nil {
		u.Username = *p.Username
	}
}
