package dashboard

import (
	"context"

	"go-worksuite/internal/employee"
	"go-worksuite/internal/invoice"
	"go-worksuite/internal/leave"
	"go-worksuite/internal/notification"
	"go-worksuite/internal/project"
	"go-worksuite/internal/task"

	"gorm.io/gorm"
)

//go:generate mockgen -source=dashboard_repo.go -destination=mock/dashboard_repo_mock.go -package=mock
type Repository interface {
	ProjectStatusCounts(ctx context.Context, scope func(db *gorm.DB) *gorm.DB) (map[string]int64, error)
	TaskStatusCounts(ctx context.Context, scope func(db *gorm.DB) *gorm.DB) (map[string]int64, error)
	PendingLeaveCount(ctx context.Context, scope func(db *gorm.DB) *gorm.DB) (int64, error)
	ActiveEmployeeCount(ctx context.Context) (int64, error)
	OutstandingInvoices(ctx context.Context, scope func(db *gorm.DB) *gorm.DB) (InvoiceSummary, error)
	UnreadNotificationCount(ctx context.Context, userID string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

type statusCount struct {
	Status string
	Count  int64
}

func (r *repository) ProjectStatusCounts(ctx context.Context, scope func(db *gorm.DB) *gorm.DB) (map[string]int64, error) {
	var rows []statusCount
	err := r.db.WithContext(ctx).
		Model(&project.Project{}).
		Scopes(scope).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toCountMap(rows), nil
}

func (r *repository) TaskStatusCounts(ctx context.Context, scope func(db *gorm.DB) *gorm.DB) (map[string]int64, error) {
	var rows []statusCount
	err := r.db.WithContext(ctx).
		Model(&task.Task{}).
		Scopes(scope).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toCountMap(rows), nil
}

func (r *repository) PendingLeaveCount(ctx context.Context, scope func(db *gorm.DB) *gorm.DB) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&leave.LeaveRequest{}).
		Scopes(scope).
		Where("leave_requests.status = ?", leave.StatusPending).
		Count(&count).Error
	return count, err
}

func (r *repository) ActiveEmployeeCount(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&employee.EmployeeRecord{}).
		Where("is_active = ?", true).
		Count(&count).Error
	return count, err
}

func (r *repository) OutstandingInvoices(ctx context.Context, scope func(db *gorm.DB) *gorm.DB) (InvoiceSummary, error) {
	type row struct {
		Outstanding      int64
		Overdue          int64
		OutstandingCents int64
	}

	var res row
	err := r.db.WithContext(ctx).
		Model(&invoice.Invoice{}).
		Scopes(scope).
		Select(
			"COUNT(*) AS outstanding, "+
				"COUNT(*) FILTER (WHERE invoices.status = ?) AS overdue, "+
				"COALESCE(SUM(invoices.total_cents), 0) AS outstanding_cents",
			invoice.StatusOverdue,
		).
		Where("invoices.status IN ?", []string{invoice.StatusSent, invoice.StatusOverdue}).
		Scan(&res).Error
	if err != nil {
		return InvoiceSummary{}, err
	}
	return InvoiceSummary{
		Outstanding:      res.Outstanding,
		Overdue:          res.Overdue,
		OutstandingCents: res.OutstandingCents,
	}, nil
}

func (r *repository) UnreadNotificationCount(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&notification.Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Count(&count).Error
	return count, err
}

func toCountMap(rows []statusCount) map[string]int64 {
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Count
	}
	return out
}
