package mapper

import (
	"time"

	userdomain "github.com/Apurer/go-gin-travel-orders/internal/domains/users/domain"
	userports "github.com/Apurer/go-gin-travel-orders/internal/domains/users/ports"
)

// RegisterRequest is the transport payload for account creation.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the transport payload for credential exchange.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PromoteRequest names the user to promote.
type PromoteRequest struct {
	UserID string `json:"user_id"`
}

// User is the public user representation. The password hash never leaves the service.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TokenResponse carries an issued bearer token.
type TokenResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
}

func ToRegisterInput(req RegisterRequest) userports.RegisterInput {
	return userports.RegisterInput{Name: req.Name, Email: req.Email, Password: req.Password}
}

func FromDomainUser(user *userdomain.User) User {
	if user == nil {
		return User{}
	}
	return User{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		IsAdmin:   user.IsAdmin,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func FromToken(token userdomain.Token) TokenResponse {
	return TokenResponse{Token: token.Value, TokenType: "bearer", ExpiresAt: token.ExpiresAt.UTC()}
}
