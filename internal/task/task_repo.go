package task

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=task_repo.go -destination=mock/task_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, t *Task) error
	FindAll(ctx context.Context, scope func(*gorm.DB) *gorm.DB, projectID string) ([]Task, error)
	FindByID(ctx context.Context, id string, scope func(*gorm.DB) *gorm.DB) (*Task, error)
	Update(ctx context.Context, t *Task) error
	UpdateStatus(ctx context.Context, id, fromStatus, toStatus string) (int64, error)
	Assign(ctx context.Context, id string, assigneeID *uuid.UUID) error
	Delete(ctx context.Context, id string) error
	FindDueBetween(ctx context.Context, from, to time.Time) ([]Task, error)

	CreateComment(ctx context.Context, c *Comment) error
	FindComments(ctx context.Context, taskID string) ([]Comment, error)
	FindCommentByID(ctx context.Context, id string) (*Comment, error)
	DeleteComment(ctx context.Context, id string) error
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

func (r *repository) Create(ctx context.Context, t *Task) error {
	return r.conn(ctx).Create(t).Error
}

func (r *repository) FindAll(ctx context.Context, scope func(*gorm.DB) *gorm.DB, projectID string) ([]Task, error) {
	q := r.conn(ctx).Scopes(scope)
	if projectID != "" {
		q = q.Where("tasks.project_id = ?", projectID)
	}

	var tasks []Task
	err := q.Order("created_at DESC").Find(&tasks).Error
	return tasks, err
}

func (r *repository) FindByID(ctx context.Context, id string, scope func(*gorm.DB) *gorm.DB) (*Task, error) {
	var t Task
	err := r.conn(ctx).
		Scopes(scope).
		First(&t, "tasks.id = ?", id).Error
	return &t, err
}

func (r *repository) Update(ctx context.Context, t *Task) error {
	return r.conn(ctx).Save(t).Error
}

// UpdateStatus is a compare-and-set guarded by the previously-read status.
func (r *repository) UpdateStatus(ctx context.Context, id, fromStatus, toStatus string) (int64, error) {
	res := r.conn(ctx).
		Model(&Task{}).
		Where("id = ? AND status = ?", id, fromStatus).
		Update("status", toStatus)
	return res.RowsAffected, res.Error
}

func (r *repository) Assign(ctx context.Context, id string, assigneeID *uuid.UUID) error {
	return r.conn(ctx).
		Model(&Task{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"assignee_id": assigneeID,
			"updated_at":  time.Now().UTC(),
		}).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.conn(ctx).Delete(&Task{}, "id = ?", id).Error
}

// FindDueBetween lists assigned, still-open tasks whose due date falls in
// [from, to). Backs the reminder job.
func (r *repository) FindDueBetween(ctx context.Context, from, to time.Time) ([]Task, error) {
	var tasks []Task
	err := r.conn(ctx).
		Where("assignee_id IS NOT NULL").
		Where("due_date >= ? AND due_date < ?", from, to).
		Where("status NOT IN ?", []string{StatusCompleted}).
		Order("due_date ASC").
		Find(&tasks).Error
	return tasks, err
}

func (r *repository) CreateComment(ctx context.Context, c *Comment) error {
	return r.conn(ctx).Create(c).Error
}

func (r *repository) FindComments(ctx context.Context, taskID string) ([]Comment, error) {
	var comments []Comment
	err := r.conn(ctx).
		Where("task_id = ?", taskID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

func (r *repository) FindCommentByID(ctx context.Context, id string) (*Comment, error) {
	var c Comment
	err := r.conn(ctx).First(&c, "id = ?", id).Error
	return &c, err
}

func (r *repository) DeleteComment(ctx context.Context, id string) error {
	return r.conn(ctx).Delete(&Comment{}, "id = ?", id).Error
}
