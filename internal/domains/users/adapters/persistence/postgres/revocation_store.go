package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-gin-travel-orders/internal/domains/users/domain"
	"github.com/Apurer/go-gin-travel-orders/internal/domains/users/ports"
)

var _ ports.RevocationStore = (*RevocationStore)(nil)

// RevocationStore persists revoked token ids in PostgreSQL. Caller owns DB lifecycle.
type RevocationStore struct {
	db *gorm.DB
}

func NewRevocationStore(db *gorm.DB) *RevocationStore {
	return &RevocationStore{db: db}
}

type revokedTokenRecord struct {
	TokenID   string    `gorm:"primaryKey;column:token_id;size:64"`
	UserID    string    `gorm:"column:user_id;type:uuid"`
	ExpiresAt time.Time `gorm:"column:expires_at"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (revokedTokenRecord) TableName() string { return "revoked_tokens" }

// Revoke records the token id. Revoking twice is a no-op.
func (s *RevocationStore) Revoke(ctx context.Context, token domain.Token) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	tokenID := strings.TrimSpace(token.ID)
	if tokenID == "" {
		return errors.New("token id is required")
	}
	rec := revokedTokenRecord{TokenID: tokenID, UserID: token.UserID, ExpiresAt: token.ExpiresAt}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "token_id"}}, DoNothing: true}).
		Create(&rec).Error
}

func (s *RevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if err := s.ensureDB(); err != nil {
		return false, err
	}
	var count int64
	if err := s.db.WithContext(ctx).Model(&revokedTokenRecord{}).Where("token_id = ?", tokenID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// PurgeExpired removes revocations whose tokens could no longer verify anyway.
func (s *RevocationStore) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	if err := s.ensureDB(); err != nil {
		return 0, err
	}
	result := s.db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&revokedTokenRecord{})
	return result.RowsAffected, result.Error
}

func (s *RevocationStore) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("postgres revocation store not configured")
	}
	return nil
}
