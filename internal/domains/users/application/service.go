package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Apurer/go-gin-travel-orders/internal/domains/users/domain"
	"github.com/Apurer/go-gin-travel-orders/internal/domains/users/ports"
	"github.com/Apurer/go-gin-travel-orders/internal/shared/principal"
)

// Service implements account and authentication use cases.
type Service struct {
	repo        ports.Repository
	hasher      ports.PasswordHasher
	tokens      ports.TokenIssuer
	revocations ports.RevocationStore
	logger      *slog.Logger
	now         func() time.Time
	newID       func() string
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		if newID != nil {
			s.newID = newID
		}
	}
}

func NewService(repo ports.Repository, hasher ports.PasswordHasher, tokens ports.TokenIssuer, revocations ports.RevocationStore, opts ...Option) *Service {
	s := &Service{
		repo:        repo,
		hasher:      hasher,
		tokens:      tokens,
		revocations: revocations,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:         time.Now,
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Service) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	if err := domain.ValidatePassword(input.Password); err != nil {
		return nil, mapError(err)
	}
	if _, err := domain.NormalizeEmail(input.Email); err != nil {
		return nil, mapError(err)
	}
	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user, err := domain.NewUser(s.newID(), input.Name, input.Email, hash, s.now())
	if err != nil {
		return nil, mapError(err)
	}
	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, mapError(err)
	}
	return created, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (domain.Token, error) {
	normalized, err := domain.NormalizeEmail(email)
	if err != nil {
		return domain.Token{}, mapError(err)
	}
	if err := domain.ValidatePassword(password); err != nil {
		return domain.Token{}, mapError(err)
	}
	user, err := s.repo.FindByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return domain.Token{}, ErrInvalidCredentials
		}
		return domain.Token{}, err
	}
	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return domain.Token{}, ErrInvalidCredentials
	}
	return s.tokens.Issue(user.ID)
}

// Authenticate rejects revoked tokens and deleted users. The admin flag is read from storage on every call.
func (s *Service) Authenticate(ctx context.Context, raw string) (principal.Principal, domain.Token, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return principal.Principal{}, domain.Token{}, ErrUnauthenticated
	}
	token, err := s.tokens.Verify(raw)
	if err != nil {
		return principal.Principal{}, domain.Token{}, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}
	revoked, err := s.revocations.IsRevoked(ctx, token.ID)
	if err != nil {
		return principal.Principal{}, domain.Token{}, err
	}
	if revoked {
		return principal.Principal{}, domain.Token{}, fmt.Errorf("%w: token revoked", ErrUnauthenticated)
	}
	user, err := s.repo.FindByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return principal.Principal{}, domain.Token{}, ErrUnauthenticated
		}
		return principal.Principal{}, domain.Token{}, err
	}
	return principal.Principal{UserID: user.ID, IsAdmin: user.IsAdmin}, token, nil
}

func (s *Service) Me(ctx context.Context, caller principal.Principal) (*domain.User, error) {
	if err := principal.RequireAuthenticated(caller); err != nil {
		return nil, err
	}
	user, err := s.repo.FindByID(ctx, caller.UserID)
	if errors.Is(err, ports.ErrNotFound) {
		return nil, ErrUnauthenticated
	}
	return user, err
}

func (s *Service) Logout(ctx context.Context, token domain.Token) error {
	if token.ID == "" {
		return ErrUnauthenticated
	}
	return s.revocations.Revoke(ctx, token)
}

// Refresh issues a new token and revokes the presented one.
func (s *Service) Refresh(ctx context.Context, token domain.Token) (domain.Token, error) {
	if token.ID == "" || token.UserID == "" {
		return domain.Token{}, ErrUnauthenticated
	}
	next, err := s.tokens.Issue(token.UserID)
	if err != nil {
		return domain.Token{}, err
	}
	if err := s.revocations.Revoke(ctx, token); err != nil {
		return domain.Token{}, err
	}
	return next, nil
}

func (s *Service) PromoteToAdmin(ctx context.Context, caller principal.Principal, userID string) (bool, error) {
	if err := principal.RequireAdmin(caller); err != nil {
		return false, err
	}
	userID = strings.TrimSpace(userID)
	if _, err := uuid.Parse(userID); err != nil {
		return false, invalidField("user_id", ErrInvalidUserID)
	}
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return false, err
	}
	now := s.now()
	if !user.PromoteToAdmin(now) {
		return false, nil
	}
	if err := s.repo.SetAdmin(ctx, user.ID, user.UpdatedAt); err != nil {
		return false, err
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "user promoted to admin",
		slog.String("user.id", user.ID),
		slog.String("promoted_by", caller.UserID))
	return true, nil
}

var _ ports.Service = (*Service)(nil)
