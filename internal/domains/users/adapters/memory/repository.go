package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/Apurer/go-gin-travel-orders/internal/domains/users/domain"
	"github.com/Apurer/go-gin-travel-orders/internal/domains/users/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository keeps users in process memory, indexed by id and email.
type Repository struct {
	mu      sync.RWMutex
	byID    map[string]*domain.User
	byEmail map[string]string
}

func NewRepository() *Repository {
	return &Repository{byID: map[string]*domain.User{}, byEmail: map[string]string{}}
}

func (r *Repository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	email := strings.ToLower(user.Email)
	if _, exists := r.byEmail[email]; exists {
		return nil, ports.ErrDuplicateEmail
	}
	stored := user.Clone()
	r.byID[stored.ID] = stored
	r.byEmail[email] = stored.ID
	return stored.Clone(), nil
}

func (r *Repository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return u.Clone(), nil
}

func (r *Repository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return r.byID[id].Clone(), nil
}

func (r *Repository) SetAdmin(_ context.Context, id string, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return ports.ErrNotFound
	}
	u.IsAdmin = true
	u.UpdatedAt = updatedAt
	return nil
}
