package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EmployeeRecord is the HR view of a person. UserID is nullable: records may
// exist before the person ever signs in.
type EmployeeRecord struct {
	ID     uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_employee_records_user"`

	FullName string `gorm:"type:varchar(255);not null"`
	Email    string `gorm:"type:varchar(255);not null;uniqueIndex:idx_employee_records_email"`
	Phone    string `gorm:"type:varchar(50)"`

	DepartmentID *uuid.UUID `gorm:"type:uuid;index:idx_employee_records_department"`
	Position     string     `gorm:"type:varchar(120)"`
	HireDate     *time.Time `gorm:"type:date"`
	IsActive     bool       `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (EmployeeRecord) TableName() string { return "employee_records" }
