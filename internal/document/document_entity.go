package document

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Document is upload bookkeeping only; the bytes live in object storage
// under StorageKey.
type Document struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index:idx_documents_project"`

	FileName    string `gorm:"type:varchar(255);not null"`
	ContentType string `gorm:"type:varchar(120);not null"`
	SizeBytes   int64  `gorm:"not null"`
	StorageKey  string `gorm:"type:varchar(512);not null;uniqueIndex:idx_documents_storage_key"`

	UploadedBy uuid.UUID `gorm:"type:uuid;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
