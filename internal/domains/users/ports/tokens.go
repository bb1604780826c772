package ports

import (
	"context"
	"errors"
	"time"

	"github.com/Apurer/go-gin-travel-orders/internal/domains/users/domain"
)

// ErrInvalidToken covers malformed, expired and badly signed tokens.
var ErrInvalidToken = errors.New("invalid token")

// TokenIssuer signs and verifies bearer tokens.
type TokenIssuer interface {
	Issue(userID string) (domain.Token, error)
	Verify(raw string) (domain.Token, error)
}

// PasswordHasher hashes and checks passwords. Compare returns an error on mismatch.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) error
}

// RevocationStore remembers logged-out token ids until they expire.
type RevocationStore interface {
	Revoke(ctx context.Context, token domain.Token) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}
