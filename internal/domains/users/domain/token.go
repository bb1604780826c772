package domain

import "time"

// Token is an issued bearer credential. ID is the revocable jti.
type Token struct {
	Value     string
	ID        string
	UserID    string
	ExpiresAt time.Time
}

// Expired reports whether the token is past its expiry at now.
func (t Token) Expired(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}
