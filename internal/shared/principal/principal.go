// Package principal models the authenticated caller passed into use cases.
package principal

import (
	"errors"
	"strings"
)

var (
	// ErrUnauthenticated means no usable identity accompanied the call.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrForbidden means the caller is authenticated but lacks privilege.
	ErrForbidden = errors.New("access denied")
)

// Principal is the identity making a request.
type Principal struct {
	UserID  string
	IsAdmin bool
}

// Authenticated reports whether p identifies a user.
func (p Principal) Authenticated() bool {
	return strings.TrimSpace(p.UserID) != ""
}

// RequireAuthenticated fails with ErrUnauthenticated for anonymous callers.
func RequireAuthenticated(p Principal) error {
	if !p.Authenticated() {
		return ErrUnauthenticated
	}
	return nil
}

// RequireAdmin gates privileged operations.
func RequireAdmin(p Principal) error {
	if err := RequireAuthenticated(p); err != nil {
		return err
	}
	if !p.IsAdmin {
		return ErrForbidden
	}
	return nil
}
