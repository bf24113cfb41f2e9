package model

import (
	"time"

	"storefront/internal/core/util"
)

// Session is one logical login: an opaque refresh token and its expiry
// as unix seconds. Sessions are append-only; expiry is checked lazily
// at verification time, there is no background sweep.
type Session struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
}

// Expired reports whether the session's expiry lies before the given
// unix-seconds instant.
func (s Session) Expired(at int64) bool {
	return s.ExpiresAt < at
}

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"` // bcrypt hash, never the plaintext
	IsAdmin   bool      `json:"isAdmin"`
	Sessions  []Session `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewUser builds a user record. The password must already be hashed;
// the service layer owns the hashing path.
func NewUser(name, email, passwordHash string, admin bool) *User {
	return &User{
		ID:        util.GenerateID(),
		Name:      name,
		Email:     email,
		Password:  passwordHash,
		IsAdmin:   admin,
		CreatedAt: time.Now(),
	}
}
