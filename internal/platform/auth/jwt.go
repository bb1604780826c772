package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	userdomain "github.com/Apurer/go-gin-travel-orders/internal/domains/users/domain"
	userports "github.com/Apurer/go-gin-travel-orders/internal/domains/users/ports"
)

const (
	DefaultTokenTTL = time.Hour
	defaultIssuer   = "travel-orders-api"
)

var _ userports.TokenIssuer = (*JWTIssuer)(nil)

// JWTIssuer signs HS256 tokens carrying the user id as subject and a random jti.
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

func NewJWTIssuer(secret string, ttl time.Duration) (*JWTIssuer, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is empty")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &JWTIssuer{secret: []byte(secret), ttl: ttl, issuer: defaultIssuer, now: time.Now}, nil
}

func (j *JWTIssuer) Issue(userID string) (userdomain.Token, error) {
	if userID == "" {
		return userdomain.Token{}, errors.New("user id is empty")
	}
	now := j.now().UTC()
	expiresAt := now.Add(j.ttl)
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   userID,
		Issuer:    j.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
	if err != nil {
		return userdomain.Token{}, fmt.Errorf("sign token: %w", err)
	}
	return userdomain.Token{Value: signed, ID: claims.ID, UserID: userID, ExpiresAt: expiresAt.Truncate(time.Second)}, nil
}

func (j *JWTIssuer) Verify(raw string) (userdomain.Token, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return j.secret, nil
	})
	if err != nil || !parsed.Valid {
		return userdomain.Token{}, fmt.Errorf("%w: %v", userports.ErrInvalidToken, err)
	}
	if !claims.VerifyIssuer(j.issuer, true) || claims.Subject == "" || claims.ID == "" || claims.ExpiresAt == nil {
		return userdomain.Token{}, userports.ErrInvalidToken
	}
	return userdomain.Token{Value: raw, ID: claims.ID, UserID: claims.Subject, ExpiresAt: claims.ExpiresAt.Time.UTC()}, nil
}
