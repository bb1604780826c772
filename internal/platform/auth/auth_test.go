package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	userports "github.com/Apurer/go-gin-travel-orders/internal/domains/users/ports"
)

func TestJWTIssuer_RoundTrip(t *testing.T) {
	issuer, err := NewJWTIssuer("s3cret", 30*time.Minute)
	require.NoError(t, err)

	tok, err := issuer.Issue("user-1")
	require.NoError(t, err)
	assert.NotEmpty(t, tok.ID)

	verified, err := issuer.Verify(tok.Value)
	require.NoError(t, err)
	assert.Equal(t, tok.ID, verified.ID)
	assert.Equal(t, "user-1", verified.UserID)
	assert.WithinDuration(t, tok.ExpiresAt, verified.ExpiresAt, time.Second)
}

func TestJWTIssuer_UniqueTokenIDs(t *testing.T) {
	issuer, err := NewJWTIssuer("s3cret", 0)
	require.NoError(t, err)
	a, _ := issuer.Issue("user-1")
	b, _ := issuer.Issue("user-1")
	assert.NotEqual(t, a.ID, b.ID)
}

func TestJWTIssuer_Rejections(t *testing.T) {
	issuer, err := NewJWTIssuer("s3cret", time.Minute)
	require.NoError(t, err)
	other, err := NewJWTIssuer("different", time.Minute)
	require.NoError(t, err)

	foreign, _ := other.Issue("user-1")
	_, err = issuer.Verify(foreign.Value)
	assert.ErrorIs(t, err, userports.ErrInvalidToken)

	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, _ := issuer.Issue("user-1")
	issuer.now = time.Now
	_, err = issuer.Verify(expired.Value)
	assert.ErrorIs(t, err, userports.ErrInvalidToken)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "user-1", ID: "x"})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = issuer.Verify(unsigned)
	assert.ErrorIs(t, err, userports.ErrInvalidToken)

	_, err = issuer.Verify("not.a.jwt")
	assert.ErrorIs(t, err, userports.ErrInvalidToken)
}

func TestNewJWTIssuer_RequiresSecret(t *testing.T) {
	_, err := NewJWTIssuer("", time.Minute)
	assert.Error(t, err)
}

func TestBcryptHasher(t *testing.T) {
	h := BcryptHasher{Cost: bcrypt.MinCost}
	hash, err := h.Hash("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)
	assert.NoError(t, h.Compare(hash, "secret1"))
	assert.Error(t, h.Compare(hash, "secret2"))
}
