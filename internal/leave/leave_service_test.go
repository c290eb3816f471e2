package leave_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"go-worksuite/internal/access"
	"go-worksuite/internal/leave"
	leaveerrors "go-worksuite/internal/leave/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeLeaveRepository struct {
	withTxFn               func(tx *sql.Tx) leave.Repository
	createFn               func(ctx context.Context, l *leave.LeaveRequest) error
	findAllFn              func(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]leave.LeaveRequest, error)
	findByIDFn             func(ctx context.Context, id string) (*leave.LeaveRequest, error)
	hasOverlappingPeriodFn func(ctx context.Context, userID string, startDate, endDate time.Time) (bool, error)
	transitionStatusFn     func(ctx context.Context, id, fromStatus, toStatus string, reviewerID uuid.UUID, reviewedAt time.Time) (int64, error)
}

func (f *fakeLeaveRepository) WithTx(tx *sql.Tx) leave.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeLeaveRepository) Create(ctx context.Context, l *leave.LeaveRequest) error {
	if f.createFn != nil {
		return f.createFn(ctx, l)
	}
	return nil
}

func (f *fakeLeaveRepository) FindAll(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]leave.LeaveRequest, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, scope)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) FindByID(ctx context.Context, id string) (*leave.LeaveRequest, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveRepository) HasOverlappingPeriod(ctx context.Context, userID string, startDate, endDate time.Time) (bool, error) {
	if f.hasOverlappingPeriodFn != nil {
		return f.hasOverlappingPeriodFn(ctx, userID, startDate, endDate)
	}
	return false, nil
}

func (f *fakeLeaveRepository) TransitionStatus(ctx context.Context, id, fromStatus, toStatus string, reviewerID uuid.UUID, reviewedAt time.Time) (int64, error) {
	if f.transitionStatusFn != nil {
		return f.transitionStatusFn(ctx, id, fromStatus, toStatus, reviewerID, reviewedAt)
	}
	return 1, nil
}

type leaveServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service leave.Service
	repo    *fakeLeaveRepository
}

func setupLeaveServiceTest(t *testing.T) *leaveServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeLeaveRepository{}
	svc := leave.NewService(db, repo, leave.NoopEventSink())

	return &leaveServiceDeps{
		db:      db,
		sqlMock: sqlMock,
		service: svc,
		repo:    repo,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func teamCaller(id uuid.UUID) access.Caller {
	return access.Caller{ID: id, Role: access.RoleTeam}
}

func hrCaller(id uuid.UUID) access.Caller {
	return access.Caller{ID: id, Role: access.RoleHR}
}

func TestDurationDays(t *testing.T) {
	start, _ := time.Parse("2006-01-02", "2024-01-01")
	end, _ := time.Parse("2006-01-02", "2024-01-05")
	assert.Equal(t, 5, leave.DurationDays(start, end))

	sameDay, _ := time.Parse("2006-01-02", "2024-06-10")
	assert.Equal(t, 1, leave.DurationDays(sameDay, sameDay))

	// timestamps loaded from a timestamptz column carry a time-of-day
	// component; the count goes by calendar date, not elapsed hours
	lateStart := time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)
	earlyEnd := time.Date(2024, 1, 5, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, 5, leave.DurationDays(lateStart, earlyEnd))

	assert.Equal(t, 1, leave.DurationDays(
		time.Date(2024, 6, 10, 23, 59, 0, 0, time.UTC),
		time.Date(2024, 6, 10, 0, 1, 0, 0, time.UTC),
	))
}

func TestLeaveService_Create(t *testing.T) {
	ctx := context.Background()
	callerID := uuid.New()

	t.Run("success files for self", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		req := leave.CreateLeaveRequest{
			LeaveType: "annual",
			StartDate: "2026-03-01",
			EndDate:   "2026-03-03",
			Reason:    "Family event",
		}

		deps.repo.hasOverlappingPeriodFn = func(ctx context.Context, uid string, startDate, endDate time.Time) (bool, error) {
			assert.Equal(t, callerID.String(), uid)
			assert.Equal(t, "2026-03-01", startDate.Format("2006-01-02"))
			assert.Equal(t, "2026-03-03", endDate.Format("2006-01-02"))
			return false, nil
		}
		deps.repo.createFn = func(ctx context.Context, l *leave.LeaveRequest) error {
			assert.Equal(t, callerID, l.UserID)
			assert.Equal(t, leave.StatusPending, l.Status)
			assert.Nil(t, l.ReviewedBy)
			return nil
		}

		resp, err := deps.service.Create(ctx, teamCaller(callerID), req)
		assert.NoError(t, err)
		assert.Equal(t, leave.StatusPending, resp.Status)
		assert.Equal(t, 3, resp.Days)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("staff may file for another user", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		target := uuid.New()
		deps.repo.createFn = func(ctx context.Context, l *leave.LeaveRequest) error {
			assert.Equal(t, target, l.UserID)
			return nil
		}

		resp, err := deps.service.Create(ctx, hrCaller(uuid.New()), leave.CreateLeaveRequest{
			UserID:    target.String(),
			LeaveType: "sick",
			StartDate: "2026-04-01",
			EndDate:   "2026-04-01",
		})
		assert.NoError(t, err)
		assert.Equal(t, target.String(), resp.UserID)
	})

	t.Run("team member cannot file for someone else", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, teamCaller(callerID), leave.CreateLeaveRequest{
			UserID:    uuid.New().String(),
			LeaveType: "annual",
			StartDate: "2026-04-01",
			EndDate:   "2026-04-02",
		})
		assert.ErrorIs(t, err, leaveerrors.ErrCreateForOtherForbidden)
	})

	t.Run("rejects inverted date range", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, teamCaller(callerID), leave.CreateLeaveRequest{
			LeaveType: "annual",
			StartDate: "2026-03-05",
			EndDate:   "2026-03-01",
		})
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateRange)
	})

	t.Run("rejects overlapping period", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.hasOverlappingPeriodFn = func(context.Context, string, time.Time, time.Time) (bool, error) {
			return true, nil
		}

		_, err := deps.service.Create(ctx, teamCaller(callerID), leave.CreateLeaveRequest{
			LeaveType: "annual",
			StartDate: "2026-03-01",
			EndDate:   "2026-03-03",
		})
		assert.ErrorIs(t, err, leaveerrors.ErrLeaveOverlap)
	})
}

func TestLeaveService_Review(t *testing.T) {
	ctx := context.Background()
	reviewer := uuid.New()
	leaveID := uuid.New()

	t.Run("approve sets reviewer and timestamp via conditional update", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		now := time.Now().UTC()
		deps.repo.transitionStatusFn = func(ctx context.Context, id, from, to string, reviewerID uuid.UUID, reviewedAt time.Time) (int64, error) {
			assert.Equal(t, leaveID.String(), id)
			assert.Equal(t, leave.StatusPending, from)
			assert.Equal(t, leave.StatusApproved, to)
			assert.Equal(t, reviewer, reviewerID)
			return 1, nil
		}
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return &leave.LeaveRequest{
				ID:         leaveID,
				UserID:     uuid.New(),
				LeaveType:  "annual",
				StartDate:  now,
				EndDate:    now,
				Status:     leave.StatusApproved,
				ReviewedBy: &reviewer,
				ReviewedAt: &now,
			}, nil
		}

		resp, err := deps.service.Approve(ctx, hrCaller(reviewer), leaveID.String())
		assert.NoError(t, err)
		assert.Equal(t, leave.StatusApproved, resp.Status)
		assert.NotNil(t, resp.ReviewedBy)
		assert.Equal(t, reviewer.String(), *resp.ReviewedBy)
		assert.NotNil(t, resp.ReviewedAt)
	})

	t.Run("second approval reports conflict instead of silent overwrite", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.transitionStatusFn = func(context.Context, string, string, string, uuid.UUID, time.Time) (int64, error) {
			return 0, nil
		}
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return &leave.LeaveRequest{ID: leaveID, Status: leave.StatusApproved}, nil
		}

		_, err := deps.service.Approve(ctx, hrCaller(uuid.New()), leaveID.String())
		assert.ErrorIs(t, err, leaveerrors.ErrNotPending)
	})

	t.Run("reject of a missing request is not found", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.transitionStatusFn = func(context.Context, string, string, string, uuid.UUID, time.Time) (int64, error) {
			return 0, nil
		}
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return nil, gorm.ErrRecordNotFound
		}

		_, err := deps.service.Reject(ctx, hrCaller(uuid.New()), uuid.New().String())
		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
	})

	t.Run("team member may not review", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Approve(ctx, teamCaller(uuid.New()), leaveID.String())
		assert.ErrorIs(t, err, leaveerrors.ErrReviewForbidden)
	})

	t.Run("transition error is propagated", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		boom := errors.New("connection reset")
		deps.repo.transitionStatusFn = func(context.Context, string, string, string, uuid.UUID, time.Time) (int64, error) {
			return 0, boom
		}

		_, err := deps.service.Approve(ctx, hrCaller(uuid.New()), leaveID.String())
		assert.ErrorIs(t, err, boom)
	})
}

func TestLeaveService_GetByID(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	leaveID := uuid.New()

	row := &leave.LeaveRequest{
		ID:        leaveID,
		UserID:    owner,
		LeaveType: "annual",
		StartDate: time.Now(),
		EndDate:   time.Now(),
		Status:    leave.StatusPending,
	}

	t.Run("owner sees own request", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()
		deps.repo.findByIDFn = func(context.Context, string) (*leave.LeaveRequest, error) { return row, nil }

		resp, err := deps.service.GetByID(ctx, teamCaller(owner), leaveID.String())
		assert.NoError(t, err)
		assert.Equal(t, owner.String(), resp.UserID)
	})

	t.Run("another team member gets not found, not forbidden", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()
		deps.repo.findByIDFn = func(context.Context, string) (*leave.LeaveRequest, error) { return row, nil }

		_, err := deps.service.GetByID(ctx, teamCaller(uuid.New()), leaveID.String())
		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
	})
}
