package bootstrap

import (
	"go-worksuite/internal/auth"
	"go-worksuite/internal/client"
	"go-worksuite/internal/department"
	"go-worksuite/internal/document"
	"go-worksuite/internal/employee"
	"go-worksuite/internal/invoice"
	"go-worksuite/internal/leave"
	"go-worksuite/internal/notification"
	"go-worksuite/internal/profile"
	"go-worksuite/internal/project"
	"go-worksuite/internal/shared/counter"
	"go-worksuite/internal/task"

	"gorm.io/gorm"
)

// outbox_events is read through database/sql, not gorm, so it gets plain DDL.
const outboxDDL = `
CREATE TABLE IF NOT EXISTS outbox_events (
    id             UUID PRIMARY KEY,
    request_id     VARCHAR(64),
    aggregate_type VARCHAR(40)  NOT NULL,
    aggregate_id   UUID         NOT NULL,
    event_type     VARCHAR(60)  NOT NULL,
    topic          VARCHAR(120) NOT NULL,
    payload        JSONB        NOT NULL,
    status         VARCHAR(20)  NOT NULL DEFAULT 'pending',
    retry_count    INT          NOT NULL DEFAULT 0,
    next_retry_at  TIMESTAMPTZ,
    last_error     VARCHAR(500),
    created_at     TIMESTAMPTZ  NOT NULL DEFAULT now(),
    sent_at        TIMESTAMPTZ
);
CREATE INDEX IF NOT EXISTS idx_outbox_events_status ON outbox_events (status, next_retry_at);
`

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&auth.User{},
		&profile.Profile{},
		&client.ClientCompany{},
		&department.Department{},
		&employee.EmployeeRecord{},
		&project.Project{},
		&project.ProjectMember{},
		&task.Task{},
		&task.Comment{},
		&leave.LeaveRequest{},
		&invoice.Invoice{},
		&invoice.InvoiceItem{},
		&document.Document{},
		&notification.Notification{},
		&counter.SequenceCounter{},
	); err != nil {
		return err
	}

	return db.Exec(outboxDDL).Error
}
