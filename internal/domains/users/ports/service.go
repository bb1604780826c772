package ports

import (
	"context"

	"github.com/Apurer/go-gin-travel-orders/internal/domains/users/domain"
	"github.com/Apurer/go-gin-travel-orders/internal/shared/principal"
)

//go:generate mockgen -destination=mocks/service_mock.go -package=mocks . Service

// RegisterInput carries a new account's credentials.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Service exposes account and authentication use cases to adapters.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (domain.Token, error)
	// Authenticate resolves a bearer token to a principal with the user's current admin flag.
	Authenticate(ctx context.Context, raw string) (principal.Principal, domain.Token, error)
	Me(ctx context.Context, caller principal.Principal) (*domain.User, error)
	Logout(ctx context.Context, token domain.Token) error
	Refresh(ctx context.Context, token domain.Token) (domain.Token, error)
	// PromoteToAdmin reports false when the target was already an admin.
	PromoteToAdmin(ctx context.Context, caller principal.Principal, userID string) (bool, error)
}
