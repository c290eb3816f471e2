package task

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusNotStarted = "not_started"
	StatusInProgress = "in_progress"
	StatusReview     = "review"
	StatusCompleted  = "completed"
	StatusBlocked    = "blocked"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

type Task struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index:idx_tasks_project"`

	Title       string `gorm:"type:varchar(255);not null"`
	Description string `gorm:"type:text"`
	Status      string `gorm:"type:varchar(20);not null;default:'not_started';index:idx_tasks_status"`
	Priority    string `gorm:"type:varchar(10);not null;default:'medium'"`

	// AssigneeID nullable: unassigned tasks are visible to every team member.
	AssigneeID *uuid.UUID `gorm:"type:uuid;index:idx_tasks_assignee"`
	DueDate    *time.Time `gorm:"type:date"`
	CreatedBy  uuid.UUID  `gorm:"type:uuid;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

type Comment struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TaskID   uuid.UUID `gorm:"type:uuid;not null;index:idx_task_comments_task"`
	AuthorID uuid.UUID `gorm:"type:uuid;not null"`
	Body     string    `gorm:"type:text;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Comment) TableName() string { return "task_comments" }
