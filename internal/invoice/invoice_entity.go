package invoice

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusDraft     = "draft"
	StatusSent      = "sent"
	StatusPaid      = "paid"
	StatusOverdue   = "overdue"
	StatusCancelled = "cancelled"
)

type Invoice struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	InvoiceNumber string    `gorm:"type:varchar(40);not null;uniqueIndex:idx_invoices_number"`

	ClientCompanyID uuid.UUID  `gorm:"type:uuid;not null;index:idx_invoices_client_company"`
	ProjectID       *uuid.UUID `gorm:"type:uuid;index:idx_invoices_project"`

	Status   string    `gorm:"type:varchar(20);not null;default:'draft';index:idx_invoices_status"`
	Currency string    `gorm:"type:char(3);not null;default:'USD'"`
	IssuedAt time.Time `gorm:"type:date;not null"`
	DueDate  time.Time `gorm:"type:date;not null"`

	// TotalCents is denormalized from the items at write time.
	TotalCents int64     `gorm:"not null;default:0"`
	CreatedBy  uuid.UUID `gorm:"type:uuid;not null"`

	Items []InvoiceItem `gorm:"foreignKey:InvoiceID"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

type InvoiceItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	InvoiceID uuid.UUID `gorm:"type:uuid;not null;index:idx_invoice_items_invoice"`

	Description string `gorm:"type:varchar(255);not null"`
	Quantity    int    `gorm:"not null;default:1"`
	UnitCents   int64  `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (InvoiceItem) TableName() string { return "invoice_items" }
