package travelordersserver

import (
	"strings"

	"github.com/gin-gonic/gin"

	userdomain "github.com/Apurer/go-gin-travel-orders/internal/domains/users/domain"
	userports "github.com/Apurer/go-gin-travel-orders/internal/domains/users/ports"
	"github.com/Apurer/go-gin-travel-orders/internal/shared/principal"
)

const (
	principalKey = "travelorders.principal"
	tokenKey     = "travelorders.token"
	bearerPrefix = "bearer "
)

// AuthMiddleware turns bearer tokens into principals.
type AuthMiddleware struct {
	users userports.Service
}

func NewAuthMiddleware(users userports.Service) AuthMiddleware {
	return AuthMiddleware{users: users}
}

func (m AuthMiddleware) chain(access Access) []gin.HandlerFunc {
	switch access {
	case Authenticated:
		return []gin.HandlerFunc{m.RequireAuth()}
	case Admin:
		return []gin.HandlerFunc{m.RequireAuth(), m.RequireAdmin()}
	default:
		return nil
	}
}

// RequireAuth rejects requests without a valid, unrevoked bearer token.
func (m AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok || m.users == nil {
			respondError(c, principal.ErrUnauthenticated)
			c.Abort()
			return
		}
		p, token, err := m.users.Authenticate(c.Request.Context(), raw)
		if err != nil {
			respondError(c, err)
			c.Abort()
			return
		}
		c.Set(principalKey, p)
		c.Set(tokenKey, token)
		c.Next()
	}
}

// RequireAdmin rejects authenticated callers without the admin flag.
func (m AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := principal.RequireAdmin(principalFrom(c)); err != nil {
			respondError(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}
	raw := strings.TrimSpace(header[len(bearerPrefix):])
	return raw, raw != ""
}

func principalFrom(c *gin.Context) principal.Principal {
	if v, ok := c.Get(principalKey); ok {
		if p, ok := v.(principal.Principal); ok {
			return p
		}
	}
	return principal.Principal{}
}

func tokenFrom(c *gin.Context) userdomain.Token {
	if v, ok := c.Get(tokenKey); ok {
		if t, ok := v.(userdomain.Token); ok {
			return t
		}
	}
	return userdomain.Token{}
}
