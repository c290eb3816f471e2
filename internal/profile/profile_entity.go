package profile

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the identity record behind every authenticated user. The ID is
// the auth user id; one profile per user, created once via the completion
// step and never deleted in-band.
type Profile struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email    string    `gorm:"type:varchar(255);not null"`
	FullName string    `gorm:"type:varchar(255);not null"`
	Role     string    `gorm:"type:varchar(20);not null;index"`

	AvatarURL  *string `gorm:"type:text"`
	Department *string `gorm:"type:varchar(100)"`
	Position   *string `gorm:"type:varchar(100)"`
	Phone      *string `gorm:"type:varchar(30)"`

	// Set only for client-role profiles.
	ClientCompanyID *uuid.UUID `gorm:"type:uuid;index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
