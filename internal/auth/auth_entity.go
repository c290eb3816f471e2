package auth

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the credential record. Role and company linkage live on the
// profile row, which is created in a separate completion step after the
// first login.
type User struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email      string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Password   string    `gorm:"type:varchar(255);not null"`
	IsActive   bool      `gorm:"default:true"`
	LastSignIn *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
