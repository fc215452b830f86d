package store

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseModel contains common fields for all database models.
type BaseModel struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// BeforeCreate generates a UUID if not already set.
func (b *BaseModel) BeforeCreate(_ *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// User is a stored identity: login email, password hash, and role.
// Email is stored lower-cased; lookups normalize the same way, so the
// identifier is effectively case-insensitive with one canonical form.
type User struct {
	BaseModel
	FirstName    string `gorm:"not null"`
	LastName     string
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"not null"`
}

// ManagerProfile extends a MANAGER user with department data.
type ManagerProfile struct {
	BaseModel
	UserID     uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Department string
	Region     string
}

// AdministratorProfile extends an ADMINISTRATOR user with access level data.
type AdministratorProfile struct {
	BaseModel
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Level  int
}
