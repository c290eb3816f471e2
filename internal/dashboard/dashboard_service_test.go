package dashboard

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"go-worksuite/internal/access"
	"go-worksuite/internal/project"
	"go-worksuite/internal/task"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeDashboardRepository struct {
	projectStatusCountsFn     func(ctx context.Context, scope func(db *gorm.DB) *gorm.DB) (map[string]int64, error)
	taskStatusCountsFn        func(ctx context.Context, scope func(db *gorm.DB) *gorm.DB) (map[string]int64, error)
	pendingLeaveCountFn       func(ctx context.Context, scope func(db *gorm.DB) *gorm.DB) (int64, error)
	activeEmployeeCountFn     func(ctx context.Context) (int64, error)
	outstandingInvoicesFn     func(ctx context.Context, scope func(db *gorm.DB) *gorm.DB) (InvoiceSummary, error)
	unreadNotificationCountFn func(ctx context.Context, userID string) (int64, error)

	calls int
}

func (f *fakeDashboardRepository) ProjectStatusCounts(ctx context.Context, scope func(db *gorm.DB) *gorm.DB) (map[string]int64, error) {
	f.calls++
	if f.projectStatusCountsFn != nil {
		return f.projectStatusCountsFn(ctx, scope)
	}
	return map[string]int64{}, nil
}

func (f *fakeDashboardRepository) TaskStatusCounts(ctx context.Context, scope func(db *gorm.DB) *gorm.DB) (map[string]int64, error) {
	if f.taskStatusCountsFn != nil {
		return f.taskStatusCountsFn(ctx, scope)
	}
	return map[string]int64{}, nil
}

func (f *fakeDashboardRepository) PendingLeaveCount(ctx context.Context, scope func(db *gorm.DB) *gorm.DB) (int64, error) {
	if f.pendingLeaveCountFn != nil {
		return f.pendingLeaveCountFn(ctx, scope)
	}
	return 0, nil
}

func (f *fakeDashboardRepository) ActiveEmployeeCount(ctx context.Context) (int64, error) {
	if f.activeEmployeeCountFn != nil {
		return f.activeEmployeeCountFn(ctx)
	}
	return 0, nil
}

func (f *fakeDashboardRepository) OutstandingInvoices(ctx context.Context, scope func(db *gorm.DB) *gorm.DB) (InvoiceSummary, error) {
	if f.outstandingInvoicesFn != nil {
		return f.outstandingInvoicesFn(ctx, scope)
	}
	return InvoiceSummary{}, nil
}

func (f *fakeDashboardRepository) UnreadNotificationCount(ctx context.Context, userID string) (int64, error) {
	if f.unreadNotificationCountFn != nil {
		return f.unreadNotificationCountFn(ctx, userID)
	}
	return 0, nil
}

func staffCaller(role access.Role) access.Caller {
	return access.Caller{ID: uuid.New(), Role: role}
}

func TestDashboardService_Summary_AdminGetsEveryBucket(t *testing.T) {
	repo := &fakeDashboardRepository{
		projectStatusCountsFn: func(_ context.Context, _ func(db *gorm.DB) *gorm.DB) (map[string]int64, error) {
			return map[string]int64{
				project.StatusNotStarted: 2,
				project.StatusInProgress: 3,
				project.StatusCompleted:  1,
			}, nil
		},
		taskStatusCountsFn: func(_ context.Context, _ func(db *gorm.DB) *gorm.DB) (map[string]int64, error) {
			return map[string]int64{
				task.StatusNotStarted: 4,
				task.StatusInProgress: 2,
				task.StatusReview:     1,
				task.StatusBlocked:    2,
				task.StatusCompleted:  10,
			}, nil
		},
		pendingLeaveCountFn: func(_ context.Context, _ func(db *gorm.DB) *gorm.DB) (int64, error) {
			return 5, nil
		},
		activeEmployeeCountFn: func(_ context.Context) (int64, error) {
			return 42, nil
		},
		outstandingInvoicesFn: func(_ context.Context, _ func(db *gorm.DB) *gorm.DB) (InvoiceSummary, error) {
			return InvoiceSummary{Outstanding: 6, Overdue: 2, OutstandingCents: 1_250_000}, nil
		},
		unreadNotificationCountFn: func(_ context.Context, _ string) (int64, error) {
			return 3, nil
		},
	}
	svc := NewService(repo, nil, zap.NewNop())

	resp, err := svc.Summary(context.Background(), staffCaller(access.RoleAdmin))

	assert.NoError(t, err)
	assert.Equal(t, int64(6), resp.Projects.Total)
	assert.Equal(t, int64(3), resp.Projects.InProgress)
	assert.Equal(t, int64(1), resp.Projects.Completed)
	assert.Equal(t, int64(7), resp.Tasks.Open)
	assert.Equal(t, int64(2), resp.Tasks.Blocked)
	assert.Equal(t, int64(5), resp.Leave.Pending)
	if assert.NotNil(t, resp.Employees) {
		assert.Equal(t, int64(42), *resp.Employees)
	}
	assert.Equal(t, int64(2), resp.Invoices.Overdue)
	assert.Equal(t, int64(3), resp.UnreadNotifications)
}

func TestDashboardService_Summary_TeamSkipsEmployeeCount(t *testing.T) {
	employeeCalled := false
	repo := &fakeDashboardRepository{
		activeEmployeeCountFn: func(_ context.Context) (int64, error) {
			employeeCalled = true
			return 0, nil
		},
	}
	svc := NewService(repo, nil, zap.NewNop())

	resp, err := svc.Summary(context.Background(), staffCaller(access.RoleTeam))

	assert.NoError(t, err)
	assert.Nil(t, resp.Employees)
	assert.False(t, employeeCalled)
}

func TestDashboardService_Summary_CacheHitSkipsRepo(t *testing.T) {
	caller := staffCaller(access.RoleHR)
	cached := DashboardResponse{
		Projects:            ProjectSummary{Total: 9},
		UnreadNotifications: 1,
	}
	payload, _ := json.Marshal(cached)

	rdb, redisMock := redismock.NewClientMock()
	redisMock.ExpectGet(cacheKey(caller)).SetVal(string(payload))

	repo := &fakeDashboardRepository{}
	svc := NewService(repo, rdb, zap.NewNop())

	resp, err := svc.Summary(context.Background(), caller)

	assert.NoError(t, err)
	assert.Equal(t, int64(9), resp.Projects.Total)
	assert.Equal(t, 0, repo.calls)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestDashboardService_Summary_CacheMissWritesBack(t *testing.T) {
	caller := staffCaller(access.RoleClient)

	rdb, redisMock := redismock.NewClientMock()
	redisMock.ExpectGet(cacheKey(caller)).RedisNil()
	redisMock.Regexp().ExpectSet(cacheKey(caller), `.*`, 60*time.Second).SetVal("OK")

	repo := &fakeDashboardRepository{
		outstandingInvoicesFn: func(_ context.Context, _ func(db *gorm.DB) *gorm.DB) (InvoiceSummary, error) {
			return InvoiceSummary{Outstanding: 1, OutstandingCents: 50_000}, nil
		},
	}
	svc := NewService(repo, rdb, zap.NewNop())

	resp, err := svc.Summary(context.Background(), caller)

	assert.NoError(t, err)
	assert.Equal(t, int64(1), resp.Invoices.Outstanding)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestDashboardService_Summary_RepoErrorPropagates(t *testing.T) {
	repo := &fakeDashboardRepository{
		projectStatusCountsFn: func(_ context.Context, _ func(db *gorm.DB) *gorm.DB) (map[string]int64, error) {
			return nil, assert.AnError
		},
	}
	svc := NewService(repo, nil, zap.NewNop())

	_, err := svc.Summary(context.Background(), staffCaller(access.RoleAdmin))

	assert.ErrorIs(t, err, assert.AnError)
}
