package migrations

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Run applies the schema for the users and travel orders contexts.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	if err := db.AutoMigrate(
		&userRecord{},
		&travelOrderRecord{},
		&revokedTokenRecord{},
	); err != nil {
		return err
	}
	return ensureOwnerForeignKey(db)
}

// User schema mirrors the users Postgres adapter.
type userRecord struct {
	ID           string    `gorm:"primaryKey;column:id;type:uuid"`
	Name         string    `gorm:"column:name;size:255;not null"`
	Email        string    `gorm:"column:email;size:255;not null;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	IsAdmin      bool      `gorm:"column:is_admin;not null;default:false"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }

// Travel order schema mirrors the travel orders Postgres adapter.
type travelOrderRecord struct {
	ID            string         `gorm:"primaryKey;column:id;type:uuid"`
	OwnerID       string         `gorm:"column:owner_id;type:uuid;not null;index:idx_travel_orders_owner_status"`
	Destination   string         `gorm:"column:destination;size:255;not null"`
	DepartureDate time.Time      `gorm:"column:departure_date;type:date;not null"`
	ReturnDate    time.Time      `gorm:"column:return_date;type:date;not null"`
	Status        string         `gorm:"column:status;type:varchar(16);not null;index:idx_travel_orders_owner_status"`
	CanceledAt    *time.Time     `gorm:"column:cancelled_at"`
	CreatedAt     time.Time      `gorm:"column:created_at;index"`
	UpdatedAt     time.Time      `gorm:"column:updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (travelOrderRecord) TableName() string { return "travel_orders" }

// Revoked token schema mirrors the revocation store.
type revokedTokenRecord struct {
	TokenID   string    `gorm:"primaryKey;column:token_id;size:64"`
	UserID    string    `gorm:"column:user_id;type:uuid;index"`
	ExpiresAt time.Time `gorm:"column:expires_at;index"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (revokedTokenRecord) TableName() string { return "revoked_tokens" }

const ownerForeignKey = "fk_travel_orders_owner"

func ensureOwnerForeignKey(db *gorm.DB) error {
	var exists bool
	if err := db.Raw(
		"SELECT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = ?)", ownerForeignKey,
	).Scan(&exists).Error; err != nil {
		return err
	}
	if exists {
		return nil
	}
	return db.Exec(fmt.Sprintf(
		"ALTER TABLE travel_orders ADD CONSTRAINT %s FOREIGN KEY (owner_id) REFERENCES users(id) ON DELETE CASCADE",
		ownerForeignKey,
	)).Error
}
