package leave

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-worksuite/internal/access"
	leaveerrors "go-worksuite/internal/leave/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// DurationDays is the displayed length of a leave, inclusive of both
// endpoints: 2024-01-01..2024-01-05 is 5 days. The calendar dates are
// compared, so a time-of-day component on either endpoint cannot shave
// a day off the count.
func DurationDays(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(s).Hours()/24) + 1
}

// EventSink receives a notification-worthy fact about a reviewed request.
// Satisfied by the outbox publisher; a no-op sink is used in tests.
type EventSink interface {
	LeaveDecided(ctx context.Context, tx *sql.Tx, l LeaveRequest) error
}

type noopEventSink struct{}

func (noopEventSink) LeaveDecided(context.Context, *sql.Tx, LeaveRequest) error { return nil }

func NoopEventSink() EventSink { return noopEventSink{} }

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, caller access.Caller, req CreateLeaveRequest) (LeaveResponse, error)
	GetAll(ctx context.Context, caller access.Caller) ([]LeaveResponse, error)
	GetByID(ctx context.Context, caller access.Caller, id string) (LeaveResponse, error)
	Approve(ctx context.Context, caller access.Caller, id string) (LeaveResponse, error)
	Reject(ctx context.Context, caller access.Caller, id string) (LeaveResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	events EventSink
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, events EventSink, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	if events == nil {
		events = noopEventSink{}
	}
	return &service{db: db, repo: repo, events: events, logger: l}
}

func (s *service) Create(ctx context.Context, caller access.Caller, req CreateLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("create leave requested",
		zap.String("caller_id", caller.ID.String()),
		zap.String("role", caller.Role.String()),
	)

	userID := caller.ID
	if req.UserID != "" && req.UserID != caller.ID.String() {
		if !caller.Role.IsStaff() {
			return LeaveResponse{}, leaveerrors.ErrCreateForOtherForbidden
		}
		parsed, err := uuid.Parse(req.UserID)
		if err != nil {
			return LeaveResponse{}, leaveerrors.ErrInvalidUserID
		}
		userID = parsed
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	if startDate.After(endDate) {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	overlap, err := qtx.HasOverlappingPeriod(ctx, userID.String(), startDate, endDate)
	if err != nil {
		s.logger.Error("create leave overlap check failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if overlap {
		s.logger.Warn("create leave overlap detected",
			zap.String("user_id", userID.String()),
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
		)
		return LeaveResponse{}, leaveerrors.ErrLeaveOverlap
	}

	l := &LeaveRequest{
		ID:        uuid.New(),
		UserID:    userID,
		LeaveType: req.LeaveType,
		StartDate: startDate,
		EndDate:   endDate,
		Reason:    req.Reason,
		Status:    StatusPending,
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("create leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("create leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("user_id", userID.String()),
	)
	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context, caller access.Caller) ([]LeaveResponse, error) {
	requests, err := s.repo.FindAll(ctx, access.LeaveScope(caller))
	if err != nil {
		return nil, err
	}
	resp := make([]LeaveResponse, len(requests))
	for i, l := range requests {
		resp[i] = mapToResponse(l)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, caller access.Caller, id string) (LeaveResponse, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	if !caller.Role.IsStaff() && l.UserID != caller.ID {
		// hidden rows are indistinguishable from absent ones
		return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
	}
	return mapToResponse(*l), nil
}

func (s *service) Approve(ctx context.Context, caller access.Caller, id string) (LeaveResponse, error) {
	return s.review(ctx, caller, id, StatusApproved)
}

func (s *service) Reject(ctx context.Context, caller access.Caller, id string) (LeaveResponse, error) {
	return s.review(ctx, caller, id, StatusRejected)
}

// review is the pending -> approved|rejected transition. The write is a
// single conditional UPDATE guarded by status='pending'; a concurrent
// reviewer losing the race observes zero affected rows and gets a conflict,
// never a silent overwrite. The fresh row is re-fetched for the response
// instead of patching client-side state.
func (s *service) review(ctx context.Context, caller access.Caller, id, targetStatus string) (LeaveResponse, error) {
	s.logger.Debug("review leave requested",
		zap.String("leave_id", id),
		zap.String("reviewer_id", caller.ID.String()),
		zap.String("target_status", targetStatus),
	)

	if !caller.Role.IsStaff() {
		return LeaveResponse{}, leaveerrors.ErrReviewForbidden
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("review leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	now := time.Now().UTC()
	affected, err := qtx.TransitionStatus(ctx, id, StatusPending, targetStatus, caller.ID, now)
	if err != nil {
		s.logger.Error("review leave transition failed",
			zap.String("leave_id", id),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	if affected == 0 {
		// guard failed: either no such row, or it is no longer pending
		if _, findErr := qtx.FindByID(ctx, id); findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
			}
			return LeaveResponse{}, findErr
		}
		s.logger.Warn("review leave lost the race",
			zap.String("leave_id", id),
			zap.String("target_status", targetStatus),
		)
		return LeaveResponse{}, leaveerrors.ErrNotPending
	}

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		return LeaveResponse{}, err
	}

	if err := s.events.LeaveDecided(ctx, tx, *l); err != nil {
		s.logger.Error("review leave event enqueue failed",
			zap.String("leave_id", id),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("review leave commit failed",
			zap.String("leave_id", id),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	s.logger.Info("review leave success",
		zap.String("leave_id", id),
		zap.String("status", targetStatus),
		zap.String("reviewed_by", caller.ID.String()),
	)
	return mapToResponse(*l), nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(l LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:        l.ID.String(),
		UserID:    l.UserID.String(),
		LeaveType: l.LeaveType,
		StartDate: l.StartDate.Format("2006-01-02"),
		EndDate:   l.EndDate.Format("2006-01-02"),
		Days:      DurationDays(l.StartDate, l.EndDate),
		Reason:    l.Reason,
		Status:    l.Status,
	}
	if l.ReviewedBy != nil {
		v := l.ReviewedBy.String()
		resp.ReviewedBy = &v
	}
	if l.ReviewedAt != nil {
		v := l.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &v
	}
	return resp
}
