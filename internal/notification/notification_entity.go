package notification

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeLeaveDecided = "leave.decided"
	TypeTaskAssigned = "task.assigned"
	TypeTaskDueSoon  = "task.due_soon"
)

// Notification rows are written by the event consumer, never by request
// handlers.
type Notification struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index:idx_notifications_user"`

	Type  string `gorm:"type:varchar(40);not null"`
	Title string `gorm:"type:varchar(255);not null"`
	Body  string `gorm:"type:text"`

	ReadAt    *time.Time
	CreatedAt time.Time
}
