package dashboard

import (
	"context"
	"encoding/json"
	"time"

	"go-worksuite/internal/access"
	"go-worksuite/internal/project"
	"go-worksuite/internal/task"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	cacheKeyPrefix = "dashboard:"
	cacheTTL       = 60 * time.Second
)

func cacheKey(caller access.Caller) string {
	return cacheKeyPrefix + string(caller.Role) + ":" + caller.ID.String()
}

//go:generate mockgen -source=dashboard_service.go -destination=mock/dashboard_service_mock.go -package=mock
type Service interface {
	Summary(ctx context.Context, caller access.Caller) (DashboardResponse, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("dashboard.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("dashboard.service")
	}
	return &service{
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) Summary(ctx context.Context, caller access.Caller) (DashboardResponse, error) {
	key := cacheKey(caller)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, key).Result(); err == nil {
			var resp DashboardResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		resp, err := s.build(ctx, caller)
		if err != nil {
			return nil, err
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, key, jsonData, cacheTTL)
			}
		}

		return resp, nil
	})
	if err != nil {
		return DashboardResponse{}, err
	}

	return v.(DashboardResponse), nil
}

func (s *service) build(ctx context.Context, caller access.Caller) (DashboardResponse, error) {
	var resp DashboardResponse

	projectCounts, err := s.repo.ProjectStatusCounts(ctx, access.ProjectScope(caller))
	if err != nil {
		s.logger.Error("dashboard project counts failed", zap.Error(err))
		return DashboardResponse{}, err
	}
	for _, count := range projectCounts {
		resp.Projects.Total += count
	}
	resp.Projects.InProgress = projectCounts[project.StatusInProgress]
	resp.Projects.OnHold = projectCounts[project.StatusOnHold]
	resp.Projects.Completed = projectCounts[project.StatusCompleted]

	taskCounts, err := s.repo.TaskStatusCounts(ctx, access.TaskScope(caller))
	if err != nil {
		s.logger.Error("dashboard task counts failed", zap.Error(err))
		return DashboardResponse{}, err
	}
	resp.Tasks.Open = taskCounts[task.StatusNotStarted] +
		taskCounts[task.StatusInProgress] +
		taskCounts[task.StatusReview]
	resp.Tasks.Blocked = taskCounts[task.StatusBlocked]

	resp.Leave.Pending, err = s.repo.PendingLeaveCount(ctx, access.LeaveScope(caller))
	if err != nil {
		s.logger.Error("dashboard leave count failed", zap.Error(err))
		return DashboardResponse{}, err
	}

	if caller.Role.IsStaff() {
		employees, err := s.repo.ActiveEmployeeCount(ctx)
		if err != nil {
			s.logger.Error("dashboard employee count failed", zap.Error(err))
			return DashboardResponse{}, err
		}
		resp.Employees = &employees
	}

	resp.Invoices, err = s.repo.OutstandingInvoices(ctx, access.InvoiceScope(caller))
	if err != nil {
		s.logger.Error("dashboard invoice totals failed", zap.Error(err))
		return DashboardResponse{}, err
	}

	resp.UnreadNotifications, err = s.repo.UnreadNotificationCount(ctx, caller.ID.String())
	if err != nil {
		s.logger.Error("dashboard notification count failed", zap.Error(err))
		return DashboardResponse{}, err
	}

	return resp, nil
}
