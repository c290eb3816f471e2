package project

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusNotStarted = "not_started"
	StatusInProgress = "in_progress"
	StatusOnHold     = "on_hold"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

type Project struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text"`
	Status      string    `gorm:"type:varchar(20);not null;default:'not_started';index:idx_projects_status"`

	// ClientCompanyID is nullable: internal projects have no client.
	ClientCompanyID *uuid.UUID `gorm:"type:uuid;index:idx_projects_client_company"`

	StartDate *time.Time `gorm:"type:date"`
	Deadline  *time.Time `gorm:"type:date"`
	CreatedBy uuid.UUID  `gorm:"type:uuid;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// ProjectMember rows are the authorization fact behind team visibility:
// a team caller sees a project iff a row (project_id, user_id) exists.
type ProjectMember struct {
	ProjectID uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey;index:idx_project_members_user"`
	CreatedAt time.Time
}

func (ProjectMember) TableName() string { return "project_members" }
