package client

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClientCompany struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_client_companies_name"`

	ContactEmail string `gorm:"type:varchar(255)"`
	Phone        string `gorm:"type:varchar(50)"`
	Address      string `gorm:"type:text"`

	// Inactive companies stay referenced by old projects and invoices but
	// cannot be attached to new ones.
	IsActive bool `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (ClientCompany) TableName() string { return "client_companies" }
