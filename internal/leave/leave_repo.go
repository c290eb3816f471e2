package leave

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *LeaveRequest) error
	FindAll(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]LeaveRequest, error)
	FindByID(ctx context.Context, id string) (*LeaveRequest, error)
	HasOverlappingPeriod(ctx context.Context, userID string, startDate, endDate time.Time) (bool, error)

	// TransitionStatus performs the conditional state change as a single
	// UPDATE guarded by the expected current status. Zero rows affected
	// means the guard failed: the row is gone or already terminal.
	TransitionStatus(ctx context.Context, id, fromStatus, toStatus string, reviewerID uuid.UUID, reviewedAt time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

// conn returns the handle queries run on. After WithTx it is rebound to the
// transaction's connection, so every statement joins the caller's tx instead
// of autocommitting on the pool.
func (r *repository) conn(ctx context.Context) *gorm.DB {
	if r.tx == nil {
		return r.db.WithContext(ctx)
	}
	db := r.db.Session(&gorm.Session{Context: ctx, NewDB: true})
	db.Statement.ConnPool = r.tx
	return db
}

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	return r.conn(ctx).Create(l).Error
}

func (r *repository) FindAll(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	err := r.conn(ctx).
		Scopes(scope).
		Order("start_date DESC").
		Find(&requests).Error
	return requests, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.conn(ctx).First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) HasOverlappingPeriod(ctx context.Context, userID string, startDate, endDate time.Time) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Model(&LeaveRequest{}).
		Where("user_id = ?", userID).
		Where("status <> ?", StatusRejected).
		Where("NOT (end_date < ? OR start_date > ?)", startDate, endDate).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) TransitionStatus(ctx context.Context, id, fromStatus, toStatus string, reviewerID uuid.UUID, reviewedAt time.Time) (int64, error) {
	res := r.conn(ctx).
		Model(&LeaveRequest{}).
		Where("id = ? AND status = ?", id, fromStatus).
		Updates(map[string]any{
			"status":      toStatus,
			"reviewed_by": reviewerID,
			"reviewed_at": reviewedAt,
		})
	return res.RowsAffected, res.Error
}
