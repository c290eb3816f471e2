package leave

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LeaveRequest moves pending -> approved | rejected; both end states are
// terminal. Duration is derived from the dates, never stored.
type LeaveRequest struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_user"`

	LeaveType string    `gorm:"type:varchar(30);not null;default:'annual'"`
	StartDate time.Time `gorm:"type:date;not null"`
	EndDate   time.Time `gorm:"type:date;not null"`
	Reason    string    `gorm:"type:text"`

	Status     string     `gorm:"type:varchar(20);not null;default:'pending';index:idx_leave_requests_status"`
	ReviewedBy *uuid.UUID `gorm:"type:uuid"`
	ReviewedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
