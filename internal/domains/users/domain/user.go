package domain

import (
	"errors"
	"net/mail"
	"strings"
	"time"
)

const (
	MinPasswordLength = 6
	maxFieldLength    = 255
)

var (
	ErrEmptyName     = errors.New("name is required")
	ErrNameTooLong   = errors.New("name must not exceed 255 characters")
	ErrEmptyEmail    = errors.New("email is required")
	ErrInvalidEmail  = errors.New("email must be a valid address")
	ErrEmptyPassword = errors.New("password is required")
	ErrWeakPassword  = errors.New("password must be at least 6 characters")
)

// User is an account that can request travel orders. Admins may also approve and cancel them.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser builds a regular (non-admin) user. The password must already be hashed.
func NewUser(id, name, email, passwordHash string, now time.Time) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if len(name) > maxFieldLength {
		return nil, ErrNameTooLong
	}
	normalized, err := NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if passwordHash == "" {
		return nil, ErrEmptyPassword
	}
	now = now.UTC()
	return &User{
		ID:           id,
		Name:         name,
		Email:        normalized,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// NormalizeEmail trims, lowercases and checks the address.
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", ErrEmptyEmail
	}
	if len(email) > maxFieldLength {
		return "", ErrInvalidEmail
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", ErrInvalidEmail
	}
	return email, nil
}

// ValidatePassword checks a plaintext password before hashing.
func ValidatePassword(plain string) error {
	if strings.TrimSpace(plain) == "" {
		return ErrEmptyPassword
	}
	if len(plain) < MinPasswordLength {
		return ErrWeakPassword
	}
	return nil
}

// PromoteToAdmin grants the admin flag. It reports false when the user already had it.
func (u *User) PromoteToAdmin(now time.Time) bool {
	if u.IsAdmin {
		return false
	}
	u.IsAdmin = true
	u.UpdatedAt = now.UTC()
	return true
}

func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
