package leave_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"go-worksuite/internal/access"
	"go-worksuite/internal/leave"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newLeaveTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	assert.NoError(t, err)

	sqlDB, err := db.DB()
	assert.NoError(t, err)
	// an in-memory sqlite database exists per connection
	sqlDB.SetMaxOpenConns(1)

	err = db.Exec(`CREATE TABLE leave_requests (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		leave_type TEXT NOT NULL DEFAULT 'annual',
		start_date DATETIME NOT NULL,
		end_date DATETIME NOT NULL,
		reason TEXT,
		status TEXT NOT NULL DEFAULT 'pending',
		reviewed_by TEXT,
		reviewed_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	)`).Error
	assert.NoError(t, err)

	return db
}

func mustDate(t *testing.T, v string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", v)
	assert.NoError(t, err)
	return d
}

func TestLeaveRepository_TransitionStatus(t *testing.T) {
	ctx := context.Background()
	db := newLeaveTestDB(t)
	repo := leave.NewRepository(db)

	l := &leave.LeaveRequest{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		LeaveType: "annual",
		StartDate: mustDate(t, "2026-05-01"),
		EndDate:   mustDate(t, "2026-05-03"),
		Status:    leave.StatusPending,
	}
	assert.NoError(t, repo.Create(ctx, l))

	reviewer := uuid.New()
	now := time.Now().UTC()

	affected, err := repo.TransitionStatus(ctx, l.ID.String(), leave.StatusPending, leave.StatusApproved, reviewer, now)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	got, err := repo.FindByID(ctx, l.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, got.Status)
	assert.NotNil(t, got.ReviewedBy)
	assert.Equal(t, reviewer, *got.ReviewedBy)
	assert.NotNil(t, got.ReviewedAt)

	// the losing reviewer sees zero rows, the stored decision is untouched
	affected, err = repo.TransitionStatus(ctx, l.ID.String(), leave.StatusPending, leave.StatusRejected, uuid.New(), time.Now().UTC())
	assert.NoError(t, err)
	assert.Equal(t, int64(0), affected)

	got, err = repo.FindByID(ctx, l.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, got.Status)
	assert.Equal(t, reviewer, *got.ReviewedBy)
}

func TestLeaveRepository_TransitionStatus_MissingRow(t *testing.T) {
	ctx := context.Background()
	db := newLeaveTestDB(t)
	repo := leave.NewRepository(db)

	affected, err := repo.TransitionStatus(ctx, uuid.New().String(), leave.StatusPending, leave.StatusApproved, uuid.New(), time.Now().UTC())
	assert.NoError(t, err)
	assert.Equal(t, int64(0), affected)
}

func TestLeaveRepository_HasOverlappingPeriod(t *testing.T) {
	ctx := context.Background()
	db := newLeaveTestDB(t)
	repo := leave.NewRepository(db)

	userID := uuid.New()
	seed := func(start, end, status string) {
		assert.NoError(t, repo.Create(ctx, &leave.LeaveRequest{
			ID:        uuid.New(),
			UserID:    userID,
			LeaveType: "annual",
			StartDate: mustDate(t, start),
			EndDate:   mustDate(t, end),
			Status:    status,
		}))
	}

	seed("2026-06-10", "2026-06-12", leave.StatusApproved)
	seed("2026-07-01", "2026-07-05", leave.StatusRejected)

	cases := []struct {
		name    string
		start   string
		end     string
		overlap bool
	}{
		{"inside existing period", "2026-06-11", "2026-06-11", true},
		{"touching last day", "2026-06-12", "2026-06-14", true},
		{"fully before", "2026-06-01", "2026-06-09", false},
		{"fully after", "2026-06-13", "2026-06-15", false},
		{"rejected rows do not block", "2026-07-02", "2026-07-03", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := repo.HasOverlappingPeriod(ctx, userID.String(), mustDate(t, tc.start), mustDate(t, tc.end))
			assert.NoError(t, err)
			assert.Equal(t, tc.overlap, got)
		})
	}

	t.Run("other users never collide", func(t *testing.T) {
		got, err := repo.HasOverlappingPeriod(ctx, uuid.New().String(), mustDate(t, "2026-06-11"), mustDate(t, "2026-06-11"))
		assert.NoError(t, err)
		assert.False(t, got)
	})
}

func TestLeaveRepository_WithTx_JoinsTransaction(t *testing.T) {
	ctx := context.Background()
	db := newLeaveTestDB(t)
	repo := leave.NewRepository(db)

	sqlDB, err := db.DB()
	assert.NoError(t, err)

	tx, err := sqlDB.BeginTx(ctx, nil)
	assert.NoError(t, err)

	l := &leave.LeaveRequest{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		LeaveType: "annual",
		StartDate: mustDate(t, "2026-08-01"),
		EndDate:   mustDate(t, "2026-08-02"),
		Status:    leave.StatusPending,
	}
	qtx := repo.WithTx(tx)
	assert.NoError(t, qtx.Create(ctx, l))

	// visible inside the transaction
	got, err := qtx.FindByID(ctx, l.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, leave.StatusPending, got.Status)

	assert.NoError(t, tx.Rollback())

	// gone with the rollback: the insert never ran in autocommit
	_, err = repo.FindByID(ctx, l.ID.String())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

type failingEventSink struct{}

func (failingEventSink) LeaveDecided(context.Context, *sql.Tx, leave.LeaveRequest) error {
	return assert.AnError
}

func TestLeaveService_Review_RollsBackWhenEventEnqueueFails(t *testing.T) {
	ctx := context.Background()
	db := newLeaveTestDB(t)
	repo := leave.NewRepository(db)

	sqlDB, err := db.DB()
	assert.NoError(t, err)

	l := &leave.LeaveRequest{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		LeaveType: "annual",
		StartDate: mustDate(t, "2026-09-01"),
		EndDate:   mustDate(t, "2026-09-03"),
		Status:    leave.StatusPending,
	}
	assert.NoError(t, repo.Create(ctx, l))

	svc := leave.NewService(sqlDB, repo, failingEventSink{})
	reviewer := access.Caller{ID: uuid.New(), Role: access.RoleHR}

	_, err = svc.Approve(ctx, reviewer, l.ID.String())
	assert.ErrorIs(t, err, assert.AnError)

	// the decision and its event commit together or not at all
	got, err := repo.FindByID(ctx, l.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, leave.StatusPending, got.Status)
	assert.Nil(t, got.ReviewedBy)
	assert.Nil(t, got.ReviewedAt)
}
